package viewmodel

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

// Planner form defaults, used when a field does not parse.
const (
	DefaultSets        = 3
	DefaultReps        = 10
	DefaultWeight      = 50.0
	DefaultRestSeconds = 90
)

// WorkoutForm is the free text typed into the planner.
type WorkoutForm struct {
	Sets     string
	Reps     string
	Weight   string
	RestTime string
}

type ParsedWorkout struct {
	Sets            int
	Reps            int
	Weight          float64
	RestTimeSeconds int
}

// FieldError reports one planner field that failed validation.
type FieldError struct {
	Field string
	Value string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

// ParseWorkoutForm converts the planner's text fields. Every field always
// gets a usable value: unparsable input falls back to the defaults. The
// returned error lists each invalid field as a *FieldError (use
// multierr.Errors to get them all); sets and reps must be positive, rest
// non-negative and weight non-negative unless the exercise is bodyweight,
// in which case weight is ignored and set to 0.
func ParseWorkoutForm(form WorkoutForm, bodyweight bool) (ParsedWorkout, error) {
	var errs error
	parsed := ParsedWorkout{
		Sets:            DefaultSets,
		Reps:            DefaultReps,
		Weight:          DefaultWeight,
		RestTimeSeconds: DefaultRestSeconds,
	}

	if n, err := strconv.Atoi(strings.TrimSpace(form.Sets)); err != nil || n <= 0 {
		errs = multierr.Append(errs, &FieldError{Field: "sets", Value: form.Sets})
	} else {
		parsed.Sets = n
	}

	if n, err := strconv.Atoi(strings.TrimSpace(form.Reps)); err != nil || n <= 0 {
		errs = multierr.Append(errs, &FieldError{Field: "reps", Value: form.Reps})
	} else {
		parsed.Reps = n
	}

	if bodyweight {
		parsed.Weight = 0
	} else if w, err := strconv.ParseFloat(strings.TrimSpace(form.Weight), 64); err != nil || w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
		errs = multierr.Append(errs, &FieldError{Field: "weight", Value: form.Weight})
	} else {
		parsed.Weight = w
	}

	if n, err := strconv.Atoi(strings.TrimSpace(form.RestTime)); err != nil || n < 0 {
		errs = multierr.Append(errs, &FieldError{Field: "rest time", Value: form.RestTime})
	} else {
		parsed.RestTimeSeconds = n
	}

	return parsed, errs
}
