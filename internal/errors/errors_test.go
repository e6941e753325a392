package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	err := New(CodeNotFound, "video not found")
	assert.Equal(t, "NOT_FOUND: video not found", err.Error())

	wrapped := Wrap(assert.AnError, CodeInternal, "failed to list videos")
	assert.Contains(t, wrapped.Error(), "INTERNAL_ERROR: failed to list videos (caused by: ")
	assert.ErrorIs(t, wrapped, assert.AnError)
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil error", err: nil, want: ""},
		{name: "app error", err: New(CodeInvalidState, "video already liked"), want: CodeInvalidState},
		{name: "wrapped by fmt", err: fmt.Errorf("like: %w", New(CodeNotFound, "video not found")), want: CodeNotFound},
		{name: "outermost app error wins", err: Wrap(New(CodeNotFound, "video not found"), CodeConflict, "conflict"), want: CodeConflict},
		{name: "plain error", err: assert.AnError, want: CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CodeOf(tt.err))
		})
	}
}

func TestIs(t *testing.T) {
	assert.True(t, Is(New(CodeNotFound, "x"), CodeNotFound))
	assert.False(t, Is(New(CodeNotFound, "x"), CodeInvalidState))
	assert.False(t, Is(nil, CodeInternal))
}
