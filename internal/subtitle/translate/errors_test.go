package translate

import (
	"fmt"
	"testing"
)

func TestIsTransientAPIError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{&apiError{status: 429}, true},
		{&apiError{status: 502}, true},
		{&apiError{status: 400}, false},
		{&apiError{status: 403}, false},
		{fmt.Errorf("bulk translate: %w", &apiError{status: 500}), true},
		{ErrUnparseable, false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := isTransientAPIError(tt.err); got != tt.want {
			t.Fatalf("isTransientAPIError(%v) = %v; want %v", tt.err, got, tt.want)
		}
	}
}
