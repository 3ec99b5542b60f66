package downloadmgr

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"fetch failed", &ErrFetchFailed{URL: "x", Err: errors.New("connection reset")}, true},
		{"empty", &ErrEmptyResponse{URL: "x"}, true},
		{"too many requests", &ErrInvalidResponse{StatusCode: 429}, true},
		{"bad gateway", &ErrInvalidResponse{StatusCode: 502}, true},
		{"wrapped", fmt.Errorf("asset: %w", &ErrInvalidResponse{StatusCode: 503}), true},
		{"not found", &ErrInvalidResponse{StatusCode: 404}, false},
		{"hash mismatch", &ErrHashMismatch{}, false},
		{"invalid url", &ErrInvalidURL{URL: "x"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTransient(tt.err); got != tt.want {
				t.Errorf("IsTransient() = %v, want %v", got, tt.want)
			}
		})
	}
}
