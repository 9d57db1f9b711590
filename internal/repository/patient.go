package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/harentsoaR/diabetes-api/internal/database"
	"github.com/harentsoaR/diabetes-api/internal/models"
)

type patientRepo struct {
	db database.DB
}

func NewPatientRepo(db database.DB) PatientRepository {
	return &patientRepo{db: db}
}

const patientCols = `id, doctorid, name, age, sex, glucose, bmi, bloodpressure, pedigree, result, created_at`

func (r *patientRepo) Create(ctx context.Context, p *models.Patient) error {
	return r.db.WithTx(ctx, func(q database.Querier) error {
		err := q.QueryRow(ctx, `
			INSERT INTO patients (doctorid, name, age, sex, glucose, bmi, bloodpressure, pedigree, result)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
			RETURNING id, created_at`,
			p.DoctorID, p.Name, p.Age, p.Sex, p.Glucose, p.BMI, p.BloodPressure, p.Pedigree, p.Result,
		).Scan(&p.ID, &p.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert patient: %w", err)
		}

		if _, err := q.Exec(ctx,
			`INSERT INTO predictions (patientid, result) VALUES ($1, $2)`, p.ID, p.Result,
		); err != nil {
			return fmt.Errorf("insert prediction: %w", err)
		}
		return nil
	})
}

func (r *patientRepo) ListByDoctor(ctx context.Context, doctorID int64) ([]*models.Patient, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+patientCols+` FROM patients WHERE doctorid = $1 ORDER BY created_at DESC, id DESC`, doctorID)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()

	var patients []*models.Patient
	for rows.Next() {
		var p models.Patient
		if err := rows.Scan(&p.ID, &p.DoctorID, &p.Name, &p.Age, &p.Sex,
			&p.Glucose, &p.BMI, &p.BloodPressure, &p.Pedigree, &p.Result, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		patients = append(patients, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepo) GetOwner(ctx context.Context, patientID int64) (int64, error) {
	var doctorID int64
	err := r.db.QueryRow(ctx, `SELECT doctorid FROM patients WHERE id = $1`, patientID).Scan(&doctorID)
	if errors.Is(err, database.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get patient owner: %w", err)
	}
	return doctorID, nil
}

func (r *patientRepo) Delete(ctx context.Context, patientID, doctorID int64) error {
	return r.db.WithTx(ctx, func(q database.Querier) error {
		var owner int64
		err := q.QueryRow(ctx, `SELECT doctorid FROM patients WHERE id = $1`, patientID).Scan(&owner)
		if errors.Is(err, database.ErrNoRows) || (err == nil && owner != doctorID) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get patient owner: %w", err)
		}

		if _, err := q.Exec(ctx, `DELETE FROM predictions WHERE patientid = $1`, patientID); err != nil {
			return fmt.Errorf("delete predictions: %w", err)
		}
		if _, err := q.Exec(ctx, `DELETE FROM patients WHERE id = $1 AND doctorid = $2`, patientID, doctorID); err != nil {
			return fmt.Errorf("delete patient: %w", err)
		}
		return nil
	})
}
