package handlers

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/harentsoaR/diabetes-api/internal/middleware"
	"github.com/harentsoaR/diabetes-api/internal/services"
)

// patientForm uses pointers so that 0 is accepted but a missing field is not.
type patientForm struct {
	Name          string   `form:"name" binding:"required"`
	Age           *int     `form:"age" binding:"required"`
	Sex           string   `form:"sex" binding:"required"`
	Glucose       *float64 `form:"glucose" binding:"required"`
	BMI           *float64 `form:"bmi" binding:"required"`
	BloodPressure *float64 `form:"bloodpressure" binding:"required"`
	Pedigree      *float64 `form:"pedigree" binding:"required"`
}

// finite rejects NaN and ±Inf, which strconv accepts.
func (f patientForm) finite() bool {
	for _, v := range []float64{*f.Glucose, *f.BMI, *f.BloodPressure, *f.Pedigree} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (h *Handler) Home(c *gin.Context) {
	id, ok := h.doctorID(c)
	if !ok {
		return
	}

	d, err := h.Auth.Doctor(c.Request.Context(), id)
	if err != nil {
		h.internalError(c, err)
		return
	}
	if d == nil {
		// account gone since the cookie was issued
		h.Session.End(c)
		middleware.RedirectToLogin(c)
		return
	}

	c.HTML(http.StatusOK, "home.html", gin.H{"Title": "Accueil", "Doctor": d})
}

func (h *Handler) AddPatientPage(c *gin.Context) {
	c.HTML(http.StatusOK, "add_patient.html", gin.H{"Title": "Nouveau patient", "Doctor": true})
}

// CreatePatient predicts, stores the patient with its prediction, and shows
// the result on the form.
func (h *Handler) CreatePatient(c *gin.Context) {
	id, ok := h.doctorID(c)
	if !ok {
		return
	}

	var form patientForm
	if err := c.ShouldBind(&form); err != nil || !form.finite() {
		c.String(http.StatusUnprocessableEntity, "formulaire invalide")
		return
	}

	p, err := h.Patients.Create(c.Request.Context(), id, services.PatientInput{
		Name:          form.Name,
		Age:           *form.Age,
		Sex:           form.Sex,
		Glucose:       *form.Glucose,
		BMI:           *form.BMI,
		BloodPressure: *form.BloodPressure,
		Pedigree:      *form.Pedigree,
	})
	if err != nil {
		h.internalError(c, err)
		return
	}

	h.Logger.Info().
		Int64("doctor_id", id).
		Int64("patient_id", p.ID).
		Int("result", p.Result).
		Msg("patient evaluated")

	c.HTML(http.StatusOK, "add_patient.html", gin.H{
		"Title":   "Nouveau patient",
		"Doctor":  true,
		"Patient": p,
	})
}

func (h *Handler) ListPatients(c *gin.Context) {
	id, ok := h.doctorID(c)
	if !ok {
		return
	}

	list, err := h.Patients.List(c.Request.Context(), id)
	if err != nil {
		h.internalError(c, err)
		return
	}

	c.HTML(http.StatusOK, "patients.html", gin.H{"Title": "Mes patients", "Doctor": true, "List": list})
}

// DeletePatient removes a patient of the signed-in doctor. Someone else's
// patient, or one that does not exist, is a silent redirect.
func (h *Handler) DeletePatient(c *gin.Context) {
	doctorID, ok := h.doctorID(c)
	if !ok {
		return
	}

	patientID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusUnprocessableEntity, "identifiant invalide")
		return
	}

	err = h.Patients.Delete(c.Request.Context(), doctorID, patientID)
	switch {
	case errors.Is(err, services.ErrNotOwner), errors.Is(err, services.ErrPatientNotFound):
		h.Logger.Warn().
			Int64("doctor_id", doctorID).
			Int64("patient_id", patientID).
			Err(err).
			Msg("delete refused")
		middleware.Redirect(c, "/patients")
		return
	case err != nil:
		h.internalError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/patients")
}
