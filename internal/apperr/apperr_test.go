package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, Validation, KindOf(Invalid("BAD", "bad input")))
	assert.Equal(t, NotFound, KindOf(fmt.Errorf("queue: join: %w", Missing("BARBER_NOT_FOUND", "no barber"))))
	assert.Equal(t, Internal, KindOf(errors.New("connection reset")))
	assert.Equal(t, Internal, KindOf(nil))
}

func TestWrapUnwrap(t *testing.T) {
	cause := errors.New("duplicate key")
	err := Wrap(Conflict, "EMAIL_EXISTS", "email taken", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "EMAIL_EXISTS")

	e, ok := As(fmt.Errorf("outer: %w", err))
	assert.True(t, ok)
	assert.Equal(t, "EMAIL_EXISTS", e.Code)
}
