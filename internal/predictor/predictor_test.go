package predictor

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harentsoaR/diabetes-api/internal/models"
)

func mustParse(t *testing.T, doc string) *Predictor {
	t.Helper()
	p, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	return p
}

func TestLoad_ShippedArtifact(t *testing.T) {
	p, err := Load(filepath.Join("..", "..", "ml", "model.json"))
	require.NoError(t, err)
	assert.Equal(t, KindLogistic, p.Kind())

	high := models.Features{Glucose: 148, BMI: 33.6, BloodPressure: 72, Pedigree: 0.627}
	low := models.Features{Glucose: 85, BMI: 26.6, BloodPressure: 66, Pedigree: 0.351}
	assert.Equal(t, 1, p.Predict(high))
	assert.Equal(t, 0, p.Predict(low))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "model.json"))
	assert.Error(t, err)
}

// Each coefficient isolates one position of the input vector, so a wrong
// order flips the outcome.
func TestPredict_FeatureOrder(t *testing.T) {
	positions := []struct {
		coefficients string
		features     models.Features
	}{
		{"[1, 0, 0, 0]", models.Features{Glucose: 10}},
		{"[0, 1, 0, 0]", models.Features{BMI: 10}},
		{"[0, 0, 1, 0]", models.Features{BloodPressure: 10}},
		{"[0, 0, 0, 1]", models.Features{Pedigree: 10}},
	}

	for _, pos := range positions {
		p := mustParse(t, `{"kind":"logistic","features":["glucose","bmi","bloodpressure","pedigree"],
			"coefficients":`+pos.coefficients+`,"intercept":-5}`)
		assert.Equal(t, 1, p.Predict(pos.features), "coefficients %s", pos.coefficients)
		assert.Equal(t, 0, p.Predict(models.Features{}), "coefficients %s", pos.coefficients)
	}
}

func TestPredict_Threshold(t *testing.T) {
	p := mustParse(t, `{"kind":"logistic","features":["glucose","bmi","bloodpressure","pedigree"],
		"coefficients":[0,0,0,0],"intercept":0,"threshold":0.6}`)
	// sigmoid(0) = 0.5 < 0.6
	assert.Equal(t, 0, p.Predict(models.Features{}))
}

const forestDoc = `{
  "kind": "forest",
  "features": ["glucose", "bmi", "bloodpressure", "pedigree"],
  "trees": [
    {"nodes": [{"feature": 0, "threshold": 127.5, "left": 1, "right": 2}, {"leaf": true, "value": 0}, {"leaf": true, "value": 1}]},
    {"nodes": [{"feature": 1, "threshold": 30, "left": 1, "right": 2}, {"leaf": true, "value": 0}, {"leaf": true, "value": 1}]},
    {"nodes": [{"feature": 3, "threshold": 0.5, "left": 1, "right": 2}, {"leaf": true, "value": 0}, {"leaf": true, "value": 1}]}
  ]
}`

func TestPredict_ForestMajority(t *testing.T) {
	p := mustParse(t, forestDoc)
	assert.Equal(t, KindForest, p.Kind())

	tests := []struct {
		name string
		f    models.Features
		want int
	}{
		{"no votes", models.Features{Glucose: 100, BMI: 25, Pedigree: 0.2}, 0},
		{"one vote", models.Features{Glucose: 150, BMI: 25, Pedigree: 0.2}, 0},
		{"two votes", models.Features{Glucose: 150, BMI: 35, Pedigree: 0.2}, 1},
		{"three votes", models.Features{Glucose: 150, BMI: 35, Pedigree: 0.9}, 1},
		{"threshold goes left", models.Features{Glucose: 127.5, BMI: 30, Pedigree: 0.5}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Predict(tt.f))
		})
	}
}

func TestPredict_ForestTieIsHealthy(t *testing.T) {
	p := mustParse(t, `{"kind":"forest","features":["glucose","bmi","bloodpressure","pedigree"],
		"trees":[{"nodes":[{"leaf":true,"value":1}]},{"nodes":[{"leaf":true,"value":0}]}]}`)

	assert.Equal(t, models.ResultHealthy, p.Predict(models.Features{Glucose: 200, BMI: 40, Pedigree: 1}))
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `model.pkl`},
		{"unknown kind", `{"kind":"svm","features":["glucose","bmi","bloodpressure","pedigree"]}`},
		{"age included", `{"kind":"logistic","features":["glucose","bmi","bloodpressure","pedigree","age"],"coefficients":[1,1,1,1,1]}`},
		{"wrong order", `{"kind":"logistic","features":["bmi","glucose","bloodpressure","pedigree"],"coefficients":[1,1,1,1]}`},
		{"short coefficients", `{"kind":"logistic","features":["glucose","bmi","bloodpressure","pedigree"],"coefficients":[1,1]}`},
		{"bad threshold", `{"kind":"logistic","features":["glucose","bmi","bloodpressure","pedigree"],"coefficients":[1,1,1,1],"threshold":1.5}`},
		{"unknown field", `{"kind":"logistic","features":["glucose","bmi","bloodpressure","pedigree"],"coefficients":[1,1,1,1],"classes":[0,1]}`},
		{"empty forest", `{"kind":"forest","features":["glucose","bmi","bloodpressure","pedigree"],"trees":[]}`},
		{"cyclic tree", `{"kind":"forest","features":["glucose","bmi","bloodpressure","pedigree"],
			"trees":[{"nodes":[{"feature":0,"threshold":1,"left":0,"right":1},{"leaf":true,"value":1}]}]}`},
		{"bad leaf", `{"kind":"forest","features":["glucose","bmi","bloodpressure","pedigree"],
			"trees":[{"nodes":[{"leaf":true,"value":2}]}]}`},
		{"feature out of range", `{"kind":"forest","features":["glucose","bmi","bloodpressure","pedigree"],
			"trees":[{"nodes":[{"feature":4,"threshold":1,"left":1,"right":2},{"leaf":true},{"leaf":true}]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}
