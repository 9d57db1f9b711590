package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/harentsoaR/diabetes-api/internal/database"
	"github.com/harentsoaR/diabetes-api/internal/models"
)

type doctorRepo struct {
	db database.Querier
}

func NewDoctorRepo(db database.Querier) DoctorRepository {
	return &doctorRepo{db: db}
}

func (r *doctorRepo) Create(ctx context.Context, d *models.Doctor) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO medecins (username, email, password) VALUES ($1, $2, $3) RETURNING id`,
		d.Username, d.Email, d.Password,
	).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("insert doctor: %w", err)
	}
	return nil
}

func (r *doctorRepo) GetByID(ctx context.Context, id int64) (*models.Doctor, error) {
	return r.scanOne(ctx, "get doctor by id",
		`SELECT id, username, email, password FROM medecins WHERE id = $1`, id)
}

func (r *doctorRepo) GetByUsername(ctx context.Context, username string) (*models.Doctor, error) {
	return r.scanOne(ctx, "get doctor by username",
		`SELECT id, username, email, password FROM medecins WHERE username = $1`, username)
}

// ExistsByUsernameOrEmail is a plain lookup; a concurrent registration can
// still slip in between it and Create.
func (r *doctorRepo) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`SELECT id FROM medecins WHERE username = $1 OR email = $2 LIMIT 1`, username, email,
	).Scan(&id)
	if errors.Is(err, database.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup doctor: %w", err)
	}
	return true, nil
}

func (r *doctorRepo) scanOne(ctx context.Context, op, query string, args ...any) (*models.Doctor, error) {
	var d models.Doctor
	err := r.db.QueryRow(ctx, query, args...).Scan(&d.ID, &d.Username, &d.Email, &d.Password)
	if errors.Is(err, database.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &d, nil
}
