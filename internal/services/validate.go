package services

import "strings"

// Bounds mirror the column sizes in the models package.
const (
	minPlateLen = 7
	maxPlateLen = 8
	minModelLen = 2
	maxModelLen = 50
	maxNameLen  = 50
	minSlotNum  = 1
	maxSlotNum  = 999
)

func validateTypeName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxNameLen {
		return ErrInvalidName
	}
	return nil
}

func validatePlate(plate string) error {
	plate = strings.TrimSpace(plate)
	if len(plate) < minPlateLen || len(plate) > maxPlateLen {
		return ErrInvalidPlate
	}
	return nil
}

func validateModel(model string) error {
	model = strings.TrimSpace(model)
	if len(model) < minModelLen || len(model) > maxModelLen {
		return ErrInvalidModel
	}
	return nil
}

func validateSlotNumber(number int) error {
	if number < minSlotNum || number > maxSlotNum {
		return ErrInvalidSlotNumber
	}
	return nil
}
