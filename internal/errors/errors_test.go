package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestGetSuggestion(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "nil error",
			err:  nil,
			want: "",
		},
		{
			name: "explicit suggestion wins",
			err:  WithSuggestion(errors.New("boom"), "try turning it off and on"),
			want: "try turning it off and on",
		},
		{
			name: "no track yet",
			err:  ErrNoTrack,
			want: "Wait for track information to load before rating",
		},
		{
			name: "placeholder track",
			err:  fmt.Errorf("rate: %w", ErrPlaceholderTrack),
			want: "Wait for track information to load before rating",
		},
		{
			name: "rating rejected",
			err:  fmt.Errorf("%w: status 502", ErrRatingRejected),
			want: "The rating service did not accept the vote. Try again in a moment",
		},
		{
			name: "stream unavailable",
			err:  ErrStreamUnavailable,
			want: "Check your internet connection and try again",
		},
		{
			name: "connection refused text",
			err:  errors.New("dial tcp: connection refused"),
			want: "Check your internet connection and try again",
		},
		{
			name: "config error",
			err:  ErrConfigNotFound,
			want: "Run 'neoradio config init' to create a configuration file",
		},
		{
			name: "unknown error",
			err:  errors.New("something odd"),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetSuggestion(tt.err); got != tt.want {
				t.Errorf("GetSuggestion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}

	got := Format(errors.New("something odd"))
	if got != "Error: something odd" {
		t.Errorf("Format() = %q", got)
	}

	got = Format(ErrNoTrack)
	if !strings.Contains(got, "Suggestion:") {
		t.Errorf("Format() = %q, want a suggestion section", got)
	}
}

func TestRadioErrorUnwrap(t *testing.T) {
	err := WithSuggestion(ErrRatingRejected, "retry")
	if !errors.Is(err, ErrRatingRejected) {
		t.Error("wrapped error does not match its sentinel")
	}
}
