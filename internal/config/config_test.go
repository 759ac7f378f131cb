package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"maternal-vitals/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 5000, c.Server.Port)
	assert.Equal(t, "../maternal_training_data.csv", c.Data.Source)
	assert.Equal(t, 120*time.Second, c.Simulator.Interval)
	assert.Equal(t, model.DefaultProfiles(), c.Simulator.Profiles)
	assert.False(t, c.Publish.Kafka.Enabled())
}

func TestLoad_Overrides(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
server:
  port: 8088
  mode: release
simulator:
  interval: 5s
  seed: 42
log:
  level: debug
  format: text
publish:
  kafka:
    brokers: ["localhost:9092"]
    topic: vitals
`)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8088, c.Server.Port)
	assert.Equal(t, "release", c.Server.Mode)
	assert.Equal(t, 5*time.Second, c.Simulator.Interval)
	assert.Equal(t, int64(42), c.Simulator.Seed)
	assert.Equal(t, "debug", c.Log.Level)
	// untouched sections keep their defaults
	assert.Equal(t, DefaultSource, c.Data.Source)
	assert.Len(t, c.Simulator.Profiles, 3)
	assert.True(t, c.Publish.Kafka.Enabled())
	assert.Equal(t, "vitals", c.Publish.Kafka.Topic)
	assert.Equal(t, "maternal-vitals", c.Publish.Kafka.Source)
}

func TestLoad_SourceRelativeToConfigDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "patients.csv"), []byte("a\n1\n"), 0o644))
	path := writeConfig(t, dir, "data:\n  source: patients.csv\n")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "patients.csv"), c.Data.Source)

	// falls back to the path as given when nothing exists next to the config
	path = writeConfig(t, dir, "data:\n  source: elsewhere.csv\n")
	c, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "elsewhere.csv", c.Data.Source)
}

const customProfiles = `
simulator:
  profiles:
    - name: stable
      fetal_heart_rate: {min: 130, max: 140}
      maternal_heart_rate: {min: 70, max: 75}
      systolic: {min: 110, max: 112}
      diastolic: {min: 70, max: 72}
      fetal_movement: {min: 40, max: 45}
    - name: watch
      fetal_heart_rate: {min: 150, max: 160}
      maternal_heart_rate: {min: 85, max: 90}
      systolic: {min: 125, max: 130}
      diastolic: {min: 80, max: 85}
      fetal_movement: {min: 25, max: 30}
    - name: critical
      fetal_heart_rate: {min: 175, max: 185}
      maternal_heart_rate: {min: 105, max: 115}
      systolic: {min: 145, max: 155}
      diastolic: {min: 92, max: 98}
      fetal_movement: {min: 6, max: 12}
`

func TestLoad_CustomProfiles(t *testing.T) {
	path := writeConfig(t, t.TempDir(), customProfiles)

	c, err := Load(path)
	require.NoError(t, err)
	require.Len(t, c.Simulator.Profiles, 3)
	assert.Equal(t, "stable", c.Simulator.Profiles[0].Name)
	assert.Equal(t, model.Range{Min: 130, Max: 140}, c.Simulator.Profiles[0].FetalHeartRate)
	assert.Equal(t, "critical", c.Simulator.Profiles[2].Name)
}

func TestLoad_ProfilesMustCoverEverySlot(t *testing.T) {
	single := `
simulator:
  profiles:
    - name: stable
      fetal_heart_rate: {min: 130, max: 140}
      maternal_heart_rate: {min: 70, max: 75}
      systolic: {min: 110, max: 112}
      diastolic: {min: 70, max: 72}
      fetal_movement: {min: 40, max: 45}
`
	_, err := Load(writeConfig(t, t.TempDir(), single))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Profiles")

	// a fourth profile would never be sampled
	four := customProfiles + `    - name: extra
      fetal_heart_rate: {min: 130, max: 140}
      maternal_heart_rate: {min: 70, max: 75}
      systolic: {min: 110, max: 112}
      diastolic: {min: 70, max: 72}
      fetal_movement: {min: 40, max: 45}
`
	_, err = Load(writeConfig(t, t.TempDir(), four))
	assert.Error(t, err)
}

func TestLoad_ProfileWithOmittedRange(t *testing.T) {
	content := strings.Replace(customProfiles, "      fetal_movement: {min: 25, max: 30}\n", "", 1)
	require.NotEqual(t, customProfiles, content)

	_, err := Load(writeConfig(t, t.TempDir(), content))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `profile "watch": fetal_movement: range not set`)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad port":       "server:\n  port: 70000\n",
		"bad mode":       "server:\n  mode: verbose\n",
		"zero interval":  "simulator:\n  interval: 0s\n",
		"empty source":   "data:\n  source: \"\"\n",
		"bad log format": "log:\n  format: xml\n",
		"bad broker":     "publish:\n  kafka:\n    brokers: [\"not a broker\"]\n",
		"inverted range": strings.Replace(customProfiles,
			"fetal_heart_rate: {min: 130, max: 140}", "fetal_heart_rate: {min: 160, max: 120}", 1),
		"unnamed profile": strings.Replace(customProfiles, "- name: watch\n     ", "-", 1),
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, t.TempDir(), content))
			assert.Error(t, err)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, t.TempDir(), "server: [unterminated"))
	assert.Error(t, err)
}
