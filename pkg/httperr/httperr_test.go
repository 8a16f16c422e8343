package httperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessage(t *testing.T) {
	t.Parallel()

	errValidation := errors.New("validation")

	assert.Equal(t, "only 2 items left in stock", Message(fmt.Errorf("only 2 items left in stock: %w", errValidation), errValidation))
	assert.Equal(t, "items required", Message(fmt.Errorf("%w: items required", errValidation), errValidation))
	assert.Equal(t, "validation", Message(errValidation, errValidation))
	assert.Equal(t, "boom", Message(errors.New("boom"), errValidation))
	assert.Equal(t, "", Message(nil, errValidation))
}
