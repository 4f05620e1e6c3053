package animation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mamadbah2/retrocalc/internal/domain/models"
)

// ErrUnknownOperation indicates an operation without a demonstration script.
var ErrUnknownOperation = errors.New("unknown operation")

var scripts = map[models.Operation][]models.AnimationStep{
	models.OperationAddition: {
		{Graphic: "5 + 7 = 12", Description: "Add the ones: 5 + 7 = 12, carry the 1"},
		{Graphic: "1 (carry)", Description: "Add the carried 1 to the tens"},
	},
	models.OperationSubtraction: {
		{Graphic: "23 - 8 = ?", Description: "3 is less than 8, borrow 1 from the tens"},
		{Graphic: "13 - 8 = 5", Description: "After borrowing the ones are 13, and 13 - 8 = 5"},
	},
	models.OperationMultiplication: {
		{Graphic: "3 × 4 = 12", Description: "3 times 4 is 12"},
		{Graphic: "12 × 10 = 120", Description: "12 times 10 (the tens) is 120"},
	},
	models.OperationDivision: {
		{Graphic: "15 ÷ 3 = ?", Description: "Split 15 into 3 groups"},
		{Graphic: "5 in each group", Description: "Each group holds 5, so 15 ÷ 3 = 5"},
	},
}

var titles = map[models.Operation]string{
	models.OperationAddition:       "Addition Demo",
	models.OperationSubtraction:    "Subtraction Demo",
	models.OperationMultiplication: "Multiplication Demo",
	models.OperationDivision:       "Division Demo",
}

// Script returns a copy of the demonstration steps of op.
func Script(op models.Operation) ([]models.AnimationStep, error) {
	steps, ok := scripts[op]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}
	return append([]models.AnimationStep(nil), steps...), nil
}

// ParseOperation matches an operation name case insensitively.
func ParseOperation(raw string) (models.Operation, error) {
	op := models.Operation(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := scripts[op]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownOperation, raw)
	}
	return op, nil
}
