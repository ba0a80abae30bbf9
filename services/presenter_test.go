package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPresent(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
		want    Message
	}{
		{
			"success rounds to two decimals",
			Outcome{Kind: OutcomeSuccess, Value: 123.456},
			Message{Level: LevelSuccess, Text: "Predicted Units Sold: 123.46"},
		},
		{
			"success whole number",
			Outcome{Kind: OutcomeSuccess, Value: 40},
			Message{Level: LevelSuccess, Text: "Predicted Units Sold: 40.00"},
		},
		{
			"model not loaded",
			Outcome{Kind: OutcomeModelNotLoaded, Err: ErrModelNotLoaded},
			Message{Level: LevelError, Text: "Model not loaded. Please check your model path."},
		},
		{
			"model not fitted",
			Outcome{Kind: OutcomeModelNotFitted, Err: ErrNotFitted},
			Message{Level: LevelError, Text: "The model is not trained. Please ensure the model is fitted before saving."},
		},
		{
			"generic failure",
			Outcome{Kind: OutcomeFailed, Err: errors.New("shape mismatch")},
			Message{Level: LevelError, Text: "Error during prediction: shape mismatch"},
		},
		{
			"generic failure without cause",
			Outcome{Kind: OutcomeFailed},
			Message{Level: LevelError, Text: "Error during prediction: unknown error"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Present(tt.outcome))
		})
	}
}

func TestPresentLoadError(t *testing.T) {
	err := &LoadError{Path: "m.json", Err: errors.New("open m.json: no such file or directory")}
	assert.Equal(t,
		Message{Level: LevelError, Text: "Error loading model: open m.json: no such file or directory"},
		PresentLoadError(err))
}

func TestPresentInvalidInput(t *testing.T) {
	msg := PresentInvalidInput(errors.New("day out of range"))
	assert.Equal(t, LevelError, msg.Level)
	assert.Equal(t, "Invalid input: day out of range", msg.Text)
}
