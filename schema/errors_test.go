package schema

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidInputError(t *testing.T) {
	err := NewInvalidInput("slope", "is missing")
	assert.Equal(t, "invalid input: slope is missing", err.Error())
	assert.ErrorIs(t, err, ErrInvalidInput)

	wrapped := fmt.Errorf("north.json: %w", err)
	assert.ErrorIs(t, wrapped, ErrInvalidInput)

	var target *InvalidInputError
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "slope", target.Field)

	assert.Equal(t, "invalid input: document is empty", NewInvalidInput("", "document is empty").Error())
}
