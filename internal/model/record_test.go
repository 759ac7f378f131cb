package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBloodPressure(t *testing.T) {
	assert.Equal(t, "118/76", FormatBloodPressure(118, 76))

	sys, dia, err := ParseBloodPressure("150/95")
	require.NoError(t, err)
	assert.Equal(t, 150, sys)
	assert.Equal(t, 95, dia)

	for _, bad := range []string{"", "120", "120/", "/80", "a/b", "120/80/60"} {
		_, _, err := ParseBloodPressure(bad)
		assert.Error(t, err, bad)
	}
}

func TestRecordClone(t *testing.T) {
	r := Record{"a": int64(1), "b": "x"}
	c := r.Clone()
	c["a"] = int64(2)

	assert.Equal(t, int64(1), r["a"])
	assert.Equal(t, "x", c["b"])
}

func TestDefaultProfiles(t *testing.T) {
	profiles := DefaultProfiles()
	require.Len(t, profiles, 3)
	for _, p := range profiles {
		assert.NoError(t, p.Validate())
	}

	high := profiles[2]
	assert.True(t, high.Admits(Vitals{FetalHeartRate: 170, MaternalHeartRate: 120, BloodPressure: "160/90", FetalMovement: 5}))
	assert.False(t, high.Admits(Vitals{FetalHeartRate: 169, MaternalHeartRate: 120, BloodPressure: "160/90", FetalMovement: 5}))
	assert.False(t, high.Admits(Vitals{FetalHeartRate: 180, MaternalHeartRate: 110, BloodPressure: "150", FetalMovement: 10}))
}

func TestProfileValidate(t *testing.T) {
	p := DefaultProfiles()[0]
	p.Diastolic = Range{Min: 90, Max: 80}

	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "diastolic")
}

func TestProfileValidate_UnsetRange(t *testing.T) {
	assert.EqualError(t, Range{}.Validate(), "range not set")
	assert.NoError(t, Range{Min: 0, Max: 5}.Validate())

	// what a profile with only one YAML key decodes to
	p := Profile{Name: "partial", FetalHeartRate: Range{Min: 120, Max: 160}}
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `profile "partial": maternal_heart_rate: range not set`)

	for _, p := range DefaultProfiles() {
		assert.NoError(t, p.Validate(), p.Name)
	}
}
