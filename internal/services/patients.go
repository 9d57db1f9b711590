package services

import (
	"context"
	"errors"

	"github.com/harentsoaR/diabetes-api/internal/models"
	"github.com/harentsoaR/diabetes-api/internal/repository"
	"github.com/harentsoaR/diabetes-api/internal/utils"
)

// Classifier is the risk model used on patient creation.
type Classifier interface {
	Predict(f models.Features) int
}

type PatientService struct {
	patients repository.PatientRepository
	model    Classifier
}

func NewPatientService(patients repository.PatientRepository, model Classifier) *PatientService {
	return &PatientService{patients: patients, model: model}
}

type PatientInput struct {
	Name          string
	Age           int
	Sex           string
	Glucose       float64
	BMI           float64
	BloodPressure float64
	Pedigree      float64
}

// Create runs the classifier and stores the patient with its prediction.
func (s *PatientService) Create(ctx context.Context, doctorID int64, in PatientInput) (*models.Patient, error) {
	p := &models.Patient{
		DoctorID:      doctorID,
		Name:          in.Name,
		Age:           in.Age,
		Sex:           in.Sex,
		Glucose:       in.Glucose,
		BMI:           in.BMI,
		BloodPressure: in.BloodPressure,
		Pedigree:      in.Pedigree,
	}
	p.Result = s.model.Predict(p.Features())

	if err := s.patients.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

type PatientList struct {
	Patients  []*models.Patient
	Total     int
	Diabetics int
	Percent   float64
}

// List returns the doctor's patients, newest first, with the share of
// diabetic predictions.
func (s *PatientService) List(ctx context.Context, doctorID int64) (*PatientList, error) {
	patients, err := s.patients.ListByDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	out := &PatientList{Patients: patients, Total: len(patients)}
	for _, p := range patients {
		if p.IsDiabetic() {
			out.Diabetics++
		}
	}
	out.Percent = utils.Percent(out.Diabetics, out.Total)
	return out, nil
}

// Delete removes a patient owned by doctorID together with its prediction.
func (s *PatientService) Delete(ctx context.Context, doctorID, patientID int64) error {
	owner, err := s.patients.GetOwner(ctx, patientID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPatientNotFound
	}
	if err != nil {
		return err
	}
	if owner != doctorID {
		return ErrNotOwner
	}

	err = s.patients.Delete(ctx, patientID, doctorID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPatientNotFound
	}
	return err
}
