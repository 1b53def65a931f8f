package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad input")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("car %s not found", "x")))
	assert.Equal(t, KindConflict, KindOf(Conflict("overlap")))
	assert.Equal(t, KindConcurrency, KindOf(Concurrency("lost race")))
	assert.Equal(t, KindInternal, KindOf(Internal(errors.New("boom"))))
}

func TestKindOfUnknownErrorIsInternal(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("cancel booking: %w", Conflict("too late"))

	assert.Equal(t, KindConflict, KindOf(err))
	assert.True(t, IsKind(err, KindConflict))
	assert.False(t, IsKind(err, KindValidation))
}

func TestInternalUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestMessageFormatting(t *testing.T) {
	err := NotFound("booking %s not found", "abc")
	assert.Equal(t, "booking abc not found", err.Error())
}
