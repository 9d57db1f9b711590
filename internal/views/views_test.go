package views

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates_AllPagesParse(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{"register.html", "login.html", "home.html", "add_patient.html", "patients.html"} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestTemplates_EscapesError(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "login.html", map[string]any{
		"Title": "Connexion",
		"Error": "<script>x</script>",
	})
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "<script>x</script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestFuncs(t *testing.T) {
	label := funcs["resultLabel"].(func(int) string)
	assert.Equal(t, "Diabétique", label(1))
	assert.Equal(t, "Non diabétique", label(0))

	date := funcs["date"].(func(interface{ Format(string) string }) string)
	assert.Equal(t, "01/03/2024 10:20", date(time.Date(2024, 3, 1, 10, 20, 0, 0, time.UTC)))
}
