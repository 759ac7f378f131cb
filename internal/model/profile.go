package model

import (
	"errors"
	"fmt"
)

// Range is an inclusive integer interval.
type Range struct {
	Min int `yaml:"min" json:"min"`
	Max int `yaml:"max" json:"max"`
}

func (r Range) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// Validate rejects inverted ranges and the zero Range, which is what an
// omitted YAML key decodes to.
func (r Range) Validate() error {
	if r.Min == 0 && r.Max == 0 {
		return errors.New("range not set")
	}
	if r.Min > r.Max {
		return fmt.Errorf("min %d greater than max %d", r.Min, r.Max)
	}
	return nil
}

// RiskSlots is the number of leading records driven by a profile: normal,
// medium and high.
const RiskSlots = 3

// Profile holds the sampling ranges for one risk tier.
type Profile struct {
	Name              string `yaml:"name" json:"name" validate:"required"`
	FetalHeartRate    Range  `yaml:"fetal_heart_rate" json:"fetal_heart_rate"`
	MaternalHeartRate Range  `yaml:"maternal_heart_rate" json:"maternal_heart_rate"`
	Systolic          Range  `yaml:"systolic" json:"systolic"`
	Diastolic         Range  `yaml:"diastolic" json:"diastolic"`
	FetalMovement     Range  `yaml:"fetal_movement" json:"fetal_movement"`
}

// Validate checks that every range is well formed.
func (p Profile) Validate() error {
	ranges := []struct {
		name string
		r    Range
	}{
		{"fetal_heart_rate", p.FetalHeartRate},
		{"maternal_heart_rate", p.MaternalHeartRate},
		{"systolic", p.Systolic},
		{"diastolic", p.Diastolic},
		{"fetal_movement", p.FetalMovement},
	}
	for _, it := range ranges {
		if err := it.r.Validate(); err != nil {
			return fmt.Errorf("profile %q: %s: %w", p.Name, it.name, err)
		}
	}
	return nil
}

// Admits reports whether v could have been sampled from p.
func (p Profile) Admits(v Vitals) bool {
	sys, dia, err := ParseBloodPressure(v.BloodPressure)
	if err != nil {
		return false
	}
	return p.FetalHeartRate.Contains(v.FetalHeartRate) &&
		p.MaternalHeartRate.Contains(v.MaternalHeartRate) &&
		p.Systolic.Contains(sys) &&
		p.Diastolic.Contains(dia) &&
		p.FetalMovement.Contains(v.FetalMovement)
}

// DefaultProfiles returns the Normal, Medium and High tiers, in the order of the
// record slots they drive (0, 1, 2).
func DefaultProfiles() []Profile {
	return []Profile{
		{
			Name:              "normal",
			FetalHeartRate:    Range{120, 160},
			MaternalHeartRate: Range{70, 90},
			Systolic:          Range{110, 120},
			Diastolic:         Range{70, 80},
			FetalMovement:     Range{30, 50},
		},
		{
			Name:              "medium",
			FetalHeartRate:    Range{150, 170},
			MaternalHeartRate: Range{85, 100},
			Systolic:          Range{125, 135},
			Diastolic:         Range{80, 90},
			FetalMovement:     Range{20, 40},
		},
		{
			Name:              "high",
			FetalHeartRate:    Range{170, 190},
			MaternalHeartRate: Range{100, 120},
			Systolic:          Range{140, 160},
			Diastolic:         Range{90, 100},
			FetalMovement:     Range{5, 20},
		},
	}
}
