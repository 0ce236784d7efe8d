package ballistics

import (
	"errors"
	"fmt"
)

// Error kinds reported by the engine
var (
	ErrInvalidProfile     = errors.New("invalid bullet profile")
	ErrInvalidEnvironment = errors.New("invalid environment")
	ErrInvalidRequest     = errors.New("invalid simulation request")
	ErrZeroNotAchievable  = errors.New("zero not achievable")
	ErrSimulationTimeout  = errors.New("simulation timeout")
)

// ValidationError reports which input field was rejected
type ValidationError struct {
	Kind   error
	Field  string
	Value  float64
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s=%g %s", e.Kind, e.Field, e.Value, e.Reason)
}

func (e *ValidationError) Unwrap() error { return e.Kind }

func invalid(kind error, field string, value float64, reason string) error {
	return &ValidationError{Kind: kind, Field: field, Value: value, Reason: reason}
}

// Describe turns an engine error into a message suitable for an end user
func Describe(err error) string {
	var verr *ValidationError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &verr) && errors.Is(err, ErrInvalidProfile):
		return fmt.Sprintf("The bullet profile is not usable: %s %s.", verr.Field, verr.Reason)
	case errors.As(err, &verr) && errors.Is(err, ErrInvalidEnvironment):
		return fmt.Sprintf("The shooting conditions are not physical: %s %s.", verr.Field, verr.Reason)
	case errors.As(err, &verr):
		return fmt.Sprintf("The request is incomplete: %s %s.", verr.Field, verr.Reason)
	case errors.Is(err, ErrZeroNotAchievable):
		return "No launch angle reaches the requested zero. Try a shorter zero range or a faster load."
	case errors.Is(err, ErrSimulationTimeout):
		return "The bullet never reached the full range; the trajectory was cut short."
	default:
		return err.Error()
	}
}
