package calculator

import (
	"math"
	"strconv"
	"strings"

	"github.com/mamadbah2/retrocalc/internal/domain/models"
)

func isOperator(r rune) bool {
	return r == '+' || r == '-' || r == '*' || r == '/'
}

// Split breaks an expression on single-character operator boundaries. Empty
// fragments are dropped and the rest are kept verbatim, so a leading "-" is a
// lone operator step rather than part of a signed operand.
func Split(expr string) []models.Step {
	steps := make([]models.Step, 0, 8)
	var operand strings.Builder

	flush := func() {
		if operand.Len() == 0 {
			return
		}
		steps = append(steps, models.Step{Value: operand.String(), Type: models.StepOperand})
		operand.Reset()
	}

	for _, r := range expr {
		if isOperator(r) {
			flush()
			steps = append(steps, models.Step{Value: string(r), Type: models.StepOperator})
			continue
		}
		operand.WriteRune(r)
	}
	flush()

	return steps
}

// Tokenize returns the display steps of expr followed by the result step.
func Tokenize(expr string, result float64) []models.Step {
	steps := Split(expr)
	return append(steps, models.Step{Value: FormatNumber(result), Type: models.StepResult})
}

// FormatNumber renders a value in its shortest round-tripping decimal form,
// switching to exponent notation outside [1e-6, 1e21).
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}

	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		s = strings.Replace(s, "e+0", "e+", 1)
		return strings.Replace(s, "e-0", "e-", 1)
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}
