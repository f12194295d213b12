package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("bad input"), KindValidation},
		{"conflict", Conflict("overlap"), KindConflict},
		{"capacity", Capacity("full"), KindCapacity},
		{"duplicate", Duplicate("again"), KindDuplicate},
		{"state", State("closed"), KindState},
		{"authorization", Authorization("not yours"), KindAuthorization},
		{"not found", NotFound("missing"), KindNotFound},
		{"plain error", errors.New("boom"), KindUnknown},
		{"wrapped", fmt.Errorf("loading: %w", NotFound("missing")), KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestSentinelSurvivesWrapping(t *testing.T) {
	sentinel := Conflict("requested time overlaps an existing booking")
	wrapped := fmt.Errorf("create booking: %w", sentinel)

	assert.ErrorIs(t, wrapped, sentinel)
	assert.NotErrorIs(t, wrapped, Conflict("different message"))
	assert.Equal(t, "requested time overlaps an existing booking", MessageOf(wrapped))
}
