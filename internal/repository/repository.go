// Package repository holds the SQL for doctors, patients and predictions.
// Every statement binds its values positionally.
package repository

import (
	"context"
	"errors"

	"github.com/harentsoaR/diabetes-api/internal/models"
)

var ErrNotFound = errors.New("not found")

type DoctorRepository interface {
	Create(ctx context.Context, d *models.Doctor) error
	GetByID(ctx context.Context, id int64) (*models.Doctor, error)
	GetByUsername(ctx context.Context, username string) (*models.Doctor, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}

type PatientRepository interface {
	// Create inserts the patient and its prediction row in one transaction.
	Create(ctx context.Context, p *models.Patient) error
	ListByDoctor(ctx context.Context, doctorID int64) ([]*models.Patient, error)
	GetOwner(ctx context.Context, patientID int64) (int64, error)
	// Delete removes the patient's predictions and then the patient, in one
	// transaction, only if doctorID owns it.
	Delete(ctx context.Context, patientID, doctorID int64) error
}
