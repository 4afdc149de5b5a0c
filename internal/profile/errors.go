package profile

import (
	"errors"
	"fmt"
)

// ErrEmptyCohort is returned when a threshold rule filters every row out of
// the population. Callers must treat this as "no data", not as an all-zero
// profile.
var ErrEmptyCohort = errors.New("empty cohort")

// MissingFeatureError reports a vector that does not supply a value for a
// feature the active comparison uses.
type MissingFeatureError struct {
	Feature Feature
}

func (e *MissingFeatureError) Error() string {
	return fmt.Sprintf("missing feature %q", e.Feature)
}
