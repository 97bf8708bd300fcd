package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/uniguide/internal/advisor"
	"github.com/abhisek/uniguide/internal/config"
	"github.com/abhisek/uniguide/internal/mlmodel"
)

const yamlRecord = `
cgpa: 3.0
level: 300
department: Mathematics
cgpa_trend: [3.4, 3.0]
past_courses:
  - {course: MTH101, grade: B}
  - {course: MTH102, grade: B}
  - {course: MTH103, grade: C}
  - {course: MTH104, grade: B}
  - {course: MTH105, grade: A}
  - {course: MTH106, grade: C}
current_courses:
  - {course: MTH201, status: Registered}
  - {course: MTH202, status: Registered}
  - {course: MTH203, status: In Progress}
  - {course: MTH204, status: In Progress}
  - {course: MTH205, status: Registered}
  - {course: MTH206, status: Registered}
`

func TestDecodeRecord(t *testing.T) {
	jsonRecord := `{"cgpa": 2.4, "cgpaTrend": "2.6, 2.4", "pastCourses": [], "currentCourses": []}`

	tests := []struct {
		name  string
		data  string
		ext   string
		cgpa  float64
		trend []float64
	}{
		{"yaml by extension", yamlRecord, ".yaml", 3.0, []float64{3.4, 3.0}},
		{"json by extension", jsonRecord, ".json", 2.4, []float64{2.6, 2.4}},
		{"sniffed json", jsonRecord, "", 2.4, []float64{2.6, 2.4}},
		{"sniffed yaml", yamlRecord, "", 3.0, []float64{3.4, 3.0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := decodeRecord([]byte(tt.data), tt.ext)
			require.NoError(t, err)
			assert.Equal(t, tt.cgpa, raw.CGPA)
			assert.Equal(t, tt.trend, raw.Trend.Values())
		})
	}

	_, err := decodeRecord([]byte(`{"cgpa": `), ".json")
	assert.Error(t, err)
}

func TestAssessCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "student.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlRecord), 0o644))
	t.Setenv("UNIGUIDE_DB", filepath.Join(dir, "uniguide.db"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"assess", "--json", path})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())

	var resp advisor.Response
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, 200, resp.Status)
	assert.Equal(t, "Moderate", resp.RiskTier.String())
	assert.Equal(t, "Medium", resp.MLRiskLevel)
	assert.Equal(t, "Mathematics", resp.Department)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version", "--json"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())

	var b buildInfo
	require.NoError(t, json.Unmarshal(out.Bytes(), &b))
	assert.Equal(t, version, b.Version)
	assert.Equal(t, "gpa_cgpa,level,total_courses,trend_delta", b.Features)
	assert.NotEmpty(t, b.ModelFormat, "built-in artifact format")
}

func TestModelSource_RemoteScale(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Model.URL = "http://inference:8000"
	cfg.Model.ConfidenceScale = "percent"

	info := mlmodel.Describe(modelSource(cfg))
	assert.Equal(t, "http://inference:8000", info.Source)
	assert.Equal(t, "percent", info.Scale)
}
