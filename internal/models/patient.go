package models

import "time"

const (
	ResultHealthy  = 0
	ResultDiabetic = 1
)

// Patient is a clinical record owned by exactly one Doctor.
type Patient struct {
	ID            int64     `json:"id"`
	DoctorID      int64     `json:"doctor_id"`
	Name          string    `json:"name"`
	Age           int       `json:"age"`
	Sex           string    `json:"sex"`
	Glucose       float64   `json:"glucose"`
	BMI           float64   `json:"bmi"`
	BloodPressure float64   `json:"bloodpressure"`
	Pedigree      float64   `json:"pedigree"`
	Result        int       `json:"result"`
	CreatedAt     time.Time `json:"created_at"`
}

// IsDiabetic reports whether the stored prediction is positive.
func (p *Patient) IsDiabetic() bool {
	return p.Result == ResultDiabetic
}

// Features returns the model input for this patient. Age and sex are
// recorded but are not model inputs.
func (p *Patient) Features() Features {
	return Features{
		Glucose:       p.Glucose,
		BMI:           p.BMI,
		BloodPressure: p.BloodPressure,
		Pedigree:      p.Pedigree,
	}
}

// Prediction duplicates a Patient's result in the predictions table.
type Prediction struct {
	ID        int64 `json:"id"`
	PatientID int64 `json:"patient_id"`
	Result    int   `json:"result"`
}

// Features is the classifier input.
type Features struct {
	Glucose       float64
	BMI           float64
	BloodPressure float64
	Pedigree      float64
}

// Vector returns the features in the order the model was trained on:
// glucose, bmi, bloodpressure, pedigree.
func (f Features) Vector() []float64 {
	return []float64{f.Glucose, f.BMI, f.BloodPressure, f.Pedigree}
}
