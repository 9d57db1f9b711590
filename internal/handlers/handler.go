package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/harentsoaR/diabetes-api/internal/middleware"
	"github.com/harentsoaR/diabetes-api/internal/services"
)

// Handler carries what the routes need. All fields are safe for concurrent
// use and shared by every request.
type Handler struct {
	Auth     *services.AuthService
	Patients *services.PatientService
	Session  *middleware.Session
	Logger   zerolog.Logger
}

func NewHandler(auth *services.AuthService, patients *services.PatientService, session *middleware.Session, logger zerolog.Logger) *Handler {
	return &Handler{
		Auth:     auth,
		Patients: patients,
		Session:  session,
		Logger:   logger,
	}
}

// internalError records err for the request logger and answers with a bare
// 500. Infrastructure details never reach the page.
func (h *Handler) internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatus(http.StatusInternalServerError)
}

// doctorID reads the id set by the session middleware.
func (h *Handler) doctorID(c *gin.Context) (int64, bool) {
	id, ok := middleware.DoctorID(c)
	if !ok {
		middleware.RedirectToLogin(c)
	}
	return id, ok
}
