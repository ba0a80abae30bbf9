package services

import (
	"errors"
	"fmt"
	"math"
)

// ErrorKind classifies prediction-time failures.
type ErrorKind int

const (
	KindGeneric ErrorKind = iota
	KindModelNotFitted
)

func (k ErrorKind) String() string {
	switch k {
	case KindModelNotFitted:
		return "model_not_fitted"
	case KindGeneric:
		return "generic"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// InferenceError is the only error type Infer returns.
type InferenceError struct {
	Kind ErrorKind
	Err  error
}

func (e *InferenceError) Error() string { return e.Err.Error() }

func (e *InferenceError) Unwrap() error { return e.Err }

func classify(err error) *InferenceError {
	var ie *InferenceError
	if errors.As(err, &ie) {
		return ie
	}
	if errors.Is(err, ErrNotFitted) {
		return &InferenceError{Kind: KindModelNotFitted, Err: err}
	}
	return &InferenceError{Kind: KindGeneric, Err: err}
}

// Infer runs a single prediction for row and returns its scalar output.
// A panic inside the model is reported as a generic failure.
func Infer(model Regressor, row Row) (value float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			value = 0
			err = &InferenceError{Kind: KindGeneric, Err: fmt.Errorf("model panicked: %v", r)}
		}
	}()

	out, err := model.Predict([][]float64{row.Values})
	if err != nil {
		return 0, classify(err)
	}
	if len(out) == 0 {
		return 0, &InferenceError{Kind: KindGeneric, Err: errors.New("model returned no predictions")}
	}
	if math.IsNaN(out[0]) || math.IsInf(out[0], 0) {
		return 0, &InferenceError{Kind: KindGeneric, Err: fmt.Errorf("model returned non-finite value %v", out[0])}
	}
	return out[0], nil
}
