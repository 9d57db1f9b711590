// Package predictor loads the pre-trained diabetes classifier and runs it.
//
// The artifact is a JSON document exported from the training pipeline. Two
// model kinds are understood: a logistic regression and a forest of binary
// decision trees. Both take the same four inputs, in order: glucose, bmi,
// bloodpressure, pedigree.
package predictor

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/harentsoaR/diabetes-api/internal/models"
)

// FeatureNames is the input order the model was trained with.
var FeatureNames = []string{"glucose", "bmi", "bloodpressure", "pedigree"}

const (
	KindLogistic = "logistic"
	KindForest   = "forest"
)

type artifact struct {
	Kind     string   `json:"kind"`
	Features []string `json:"features"`

	// logistic
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	Threshold    *float64  `json:"threshold"`

	// forest
	Trees []tree `json:"trees"`
}

type classifier interface {
	classify(x []float64) int
}

// Predictor is an immutable handle on a loaded model. It is safe for
// concurrent use.
type Predictor struct {
	kind  string
	model classifier
}

// Load reads and validates the model artifact at path.
func Load(path string) (*Predictor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model artifact: %w", err)
	}
	defer f.Close()

	p, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("load model artifact %s: %w", path, err)
	}
	return p, nil
}

// Parse decodes a model artifact.
func Parse(r io.Reader) (*Predictor, error) {
	var a artifact
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&a); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	if err := checkFeatures(a.Features); err != nil {
		return nil, err
	}

	switch a.Kind {
	case KindLogistic:
		m, err := newLogistic(a)
		if err != nil {
			return nil, err
		}
		return &Predictor{kind: a.Kind, model: m}, nil
	case KindForest:
		m, err := newForest(a.Trees)
		if err != nil {
			return nil, err
		}
		return &Predictor{kind: a.Kind, model: m}, nil
	default:
		return nil, fmt.Errorf("unsupported model kind %q", a.Kind)
	}
}

func checkFeatures(names []string) error {
	if len(names) != len(FeatureNames) {
		return fmt.Errorf("model expects %d features %v, want %v", len(names), names, FeatureNames)
	}
	for i, n := range names {
		if n != FeatureNames[i] {
			return fmt.Errorf("feature %d is %q, want %q", i, n, FeatureNames[i])
		}
	}
	return nil
}

// Kind returns the model family of the loaded artifact.
func (p *Predictor) Kind() string {
	return p.kind
}

// Predict returns 1 when the patient is classified diabetic and 0 otherwise.
func (p *Predictor) Predict(f models.Features) int {
	return p.model.classify(f.Vector())
}

type logistic struct {
	coef      []float64
	intercept float64
	threshold float64
}

func newLogistic(a artifact) (*logistic, error) {
	if len(a.Coefficients) != len(FeatureNames) {
		return nil, fmt.Errorf("logistic model has %d coefficients, want %d", len(a.Coefficients), len(FeatureNames))
	}
	threshold := 0.5
	if a.Threshold != nil {
		threshold = *a.Threshold
	}
	if threshold <= 0 || threshold >= 1 {
		return nil, fmt.Errorf("threshold must be in (0,1), got %v", threshold)
	}
	coef := make([]float64, len(a.Coefficients))
	copy(coef, a.Coefficients)
	return &logistic{coef: coef, intercept: a.Intercept, threshold: threshold}, nil
}

func (l *logistic) probability(x []float64) float64 {
	z := l.intercept
	for i, c := range l.coef {
		z += c * x[i]
	}
	return 1 / (1 + math.Exp(-z))
}

func (l *logistic) classify(x []float64) int {
	if l.probability(x) >= l.threshold {
		return models.ResultDiabetic
	}
	return models.ResultHealthy
}
