package whisper

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsTransientAPIError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{&apiError{status: 429}, true},
		{&apiError{status: 500}, true},
		{&apiError{status: 503}, true},
		{&apiError{status: 400}, false},
		{&apiError{status: 401}, false},
		{fmt.Errorf("chunk 2: %w", &apiError{status: 429}), true},
		{errors.New("connection refused"), false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := isTransientAPIError(tt.err); got != tt.want {
			t.Fatalf("isTransientAPIError(%v) = %v; want %v", tt.err, got, tt.want)
		}
	}
}
