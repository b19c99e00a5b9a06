package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrNoTrack           = errors.New("no track information available")
	ErrPlaceholderTrack  = errors.New("track information not loaded yet")
	ErrRatingRejected    = errors.New("rating was not accepted")
	ErrStreamUnavailable = errors.New("stream unavailable")
	ErrPlaybackFailed    = errors.New("could not play stream")
	ErrConfigNotFound    = errors.New("config file not found")
	ErrInvalidConfig     = errors.New("invalid configuration")
)

// RadioError wraps an error with a user-friendly suggestion.
type RadioError struct {
	Err        error
	Suggestion string
}

func (e *RadioError) Error() string {
	return e.Err.Error()
}

func (e *RadioError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &RadioError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	// Check if it's already a RadioError with suggestion
	var radioErr *RadioError
	if errors.As(err, &radioErr) && radioErr.Suggestion != "" {
		return radioErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	// Rating a track that hasn't been identified yet
	if errors.Is(err, ErrNoTrack) || errors.Is(err, ErrPlaceholderTrack) {
		return "Wait for track information to load before rating"
	}

	if errors.Is(err, ErrRatingRejected) {
		return "The rating service did not accept the vote. Try again in a moment"
	}

	// Stream errors
	if errors.Is(err, ErrStreamUnavailable) || errors.Is(err, ErrPlaybackFailed) ||
		strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "timeout") {
		return "Check your internet connection and try again"
	}

	// Config errors
	if errors.Is(err, ErrConfigNotFound) || errors.Is(err, ErrInvalidConfig) ||
		strings.Contains(errStr, "config") {
		return "Run 'neoradio config init' to create a configuration file"
	}

	// Server errors
	if strings.Contains(errStr, "500") || strings.Contains(errStr, "server error") {
		return "The radio service is having issues. Try again in a moment"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}
