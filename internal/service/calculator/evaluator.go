package calculator

import (
	"strings"

	"github.com/mamadbah2/retrocalc/internal/domain/models"
)

// Evaluator computes the numeric value of an expression.
type Evaluator struct {
	eval func(string) (float64, error)
}

// NewEvaluator returns an Evaluator backed by the bounded arithmetic grammar.
func NewEvaluator() *Evaluator {
	return &Evaluator{eval: parse}
}

// Evaluate rejects any expression containing "/0" before parsing it, then
// returns the value of the expression.
func (e *Evaluator) Evaluate(expr string) (float64, error) {
	if strings.Contains(expr, "/0") {
		return 0, ErrDivisionByZero
	}

	v, err := e.eval(expr)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		// normalize -0
		v = 0
	}
	return v, nil
}

// Calculate evaluates expr and returns its display steps.
func (e *Evaluator) Calculate(expr string) (float64, []models.Step, error) {
	v, err := e.Evaluate(expr)
	if err != nil {
		return 0, nil, err
	}
	return v, Tokenize(expr, v), nil
}
