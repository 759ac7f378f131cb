package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Field names written by the simulator. Every other column of the source is
// passed through untouched.
const (
	FieldFetalHeartRate    = "fetalHeartRate"
	FieldMaternalHeartRate = "maternalHeartRate"
	FieldBloodPressure     = "bloodPressure"
	FieldFetalMovement     = "fetalMovement"
)

// Record is one patient's field set keyed by column name.
// Values are int64, float64, bool, string or nil as inferred from the source.
type Record map[string]any

// Clone returns a shallow copy. Values are scalars so this is enough to make
// the copy independent of r.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Vitals is the subset of a Record that the simulator produces each cycle.
type Vitals struct {
	FetalHeartRate    int    `json:"fetalHeartRate"`
	MaternalHeartRate int    `json:"maternalHeartRate"`
	BloodPressure     string `json:"bloodPressure"`
	FetalMovement     int    `json:"fetalMovement"`
}

// Fields converts v into record fields ready to be merged over an existing record.
// Integers are stored as int64 to match what the loaders infer.
func (v Vitals) Fields() Record {
	return Record{
		FieldFetalHeartRate:    int64(v.FetalHeartRate),
		FieldMaternalHeartRate: int64(v.MaternalHeartRate),
		FieldBloodPressure:     v.BloodPressure,
		FieldFetalMovement:     int64(v.FetalMovement),
	}
}

// FormatBloodPressure renders a reading as "<systolic>/<diastolic>".
func FormatBloodPressure(systolic, diastolic int) string {
	return fmt.Sprintf("%d/%d", systolic, diastolic)
}

// ParseBloodPressure is the inverse of FormatBloodPressure.
func ParseBloodPressure(s string) (systolic, diastolic int, err error) {
	sys, dia, ok := strings.Cut(s, "/")
	if !ok {
		return 0, 0, fmt.Errorf("blood pressure %q: missing '/'", s)
	}
	if systolic, err = strconv.Atoi(sys); err != nil {
		return 0, 0, fmt.Errorf("blood pressure %q: systolic: %w", s, err)
	}
	if diastolic, err = strconv.Atoi(dia); err != nil {
		return 0, 0, fmt.Errorf("blood pressure %q: diastolic: %w", s, err)
	}
	return systolic, diastolic, nil
}

// VitalsUpdate is the new vitals applied to one record slot in a cycle.
type VitalsUpdate struct {
	Index   int    `json:"index"`
	Profile string `json:"profile"`
	Vitals  Vitals `json:"vitals"`
}

// Cycle describes one completed simulator mutation.
type Cycle struct {
	Seq     uint64         `json:"seq"`
	At      time.Time      `json:"at"`
	Updates []VitalsUpdate `json:"updates"`
}
