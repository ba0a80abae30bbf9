package services

import "fmt"

// OutcomeKind is the result of one submission.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeModelNotLoaded
	OutcomeModelNotFitted
	OutcomeFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeModelNotLoaded:
		return "model_not_loaded"
	case OutcomeModelNotFitted:
		return "model_not_fitted"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// Outcome carries either the predicted value or the failure cause.
type Outcome struct {
	Kind  OutcomeKind
	Value float64
	Err   error
}

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Message is the single line of text shown to the user.
type Message struct {
	Level Level
	Text  string
}

const (
	msgNotLoaded = "Model not loaded. Please check your model path."
	msgNotFitted = "The model is not trained. Please ensure the model is fitted before saving."
)

// Present renders an outcome as a user-facing message.
func Present(o Outcome) Message {
	switch o.Kind {
	case OutcomeSuccess:
		return Message{Level: LevelSuccess, Text: fmt.Sprintf("Predicted Units Sold: %.2f", o.Value)}
	case OutcomeModelNotLoaded:
		return Message{Level: LevelError, Text: msgNotLoaded}
	case OutcomeModelNotFitted:
		return Message{Level: LevelError, Text: msgNotFitted}
	case OutcomeFailed:
		return Message{Level: LevelError, Text: fmt.Sprintf("Error during prediction: %s", causeOf(o.Err))}
	default:
		return Message{Level: LevelError, Text: fmt.Sprintf("Error during prediction: unknown outcome %s", o.Kind)}
	}
}

// PresentLoadError renders the startup banner shown while the artifact
// failed to load.
func PresentLoadError(err error) Message {
	return Message{Level: LevelError, Text: fmt.Sprintf("Error loading model: %s", causeOf(err))}
}

// PresentInvalidInput renders a form submission that could not be bound.
func PresentInvalidInput(err error) Message {
	return Message{Level: LevelError, Text: fmt.Sprintf("Invalid input: %s", causeOf(err))}
}

func causeOf(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
