package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePlate(t *testing.T) {
	assert.NoError(t, validatePlate("ABC1234"))
	assert.NoError(t, validatePlate("ABC12345"))
	assert.NoError(t, validatePlate("  ABC1234  "))

	assert.ErrorIs(t, validatePlate(""), ErrInvalidPlate)
	assert.ErrorIs(t, validatePlate("ABC123"), ErrInvalidPlate)
	assert.ErrorIs(t, validatePlate("ABC123456"), ErrInvalidPlate)
}

func TestValidateModel(t *testing.T) {
	assert.NoError(t, validateModel("Gol"))
	assert.NoError(t, validateModel(strings.Repeat("x", 50)))

	assert.ErrorIs(t, validateModel("x"), ErrInvalidModel)
	assert.ErrorIs(t, validateModel(strings.Repeat("x", 51)), ErrInvalidModel)
}

func TestValidateTypeName(t *testing.T) {
	assert.NoError(t, validateTypeName("Motorcycle"))

	assert.ErrorIs(t, validateTypeName(""), ErrInvalidName)
	assert.ErrorIs(t, validateTypeName("   "), ErrInvalidName)
	assert.ErrorIs(t, validateTypeName(strings.Repeat("x", 51)), ErrInvalidName)
}

func TestValidateSlotNumber(t *testing.T) {
	assert.NoError(t, validateSlotNumber(1))
	assert.NoError(t, validateSlotNumber(999))

	assert.ErrorIs(t, validateSlotNumber(0), ErrInvalidSlotNumber)
	assert.ErrorIs(t, validateSlotNumber(-3), ErrInvalidSlotNumber)
	assert.ErrorIs(t, validateSlotNumber(1000), ErrInvalidSlotNumber)
}
