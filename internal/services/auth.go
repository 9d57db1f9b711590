package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/harentsoaR/diabetes-api/internal/models"
	"github.com/harentsoaR/diabetes-api/internal/repository"
	"github.com/harentsoaR/diabetes-api/internal/utils"
)

type AuthService struct {
	doctors repository.DoctorRepository
}

func NewAuthService(doctors repository.DoctorRepository) *AuthService {
	return &AuthService{doctors: doctors}
}

type RegisterInput struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Register creates a doctor account. The duplicate check is a lookup before
// the insert, not a constraint.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.Doctor, error) {
	if in.Password != in.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	exists, err := s.doctors.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDoctorExists
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	d := &models.Doctor{Username: in.Username, Email: in.Email, Password: hashed}
	if err := s.doctors.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Login returns ErrInvalidCredentials for both an unknown username and a
// wrong password.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.Doctor, error) {
	d, err := s.doctors.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPasswordHash(password, d.Password) {
		return nil, ErrInvalidCredentials
	}
	return d, nil
}

// Doctor returns the doctor with the given id, or nil if there is none.
func (s *AuthService) Doctor(ctx context.Context, id int64) (*models.Doctor, error) {
	d, err := s.doctors.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return d, err
}
