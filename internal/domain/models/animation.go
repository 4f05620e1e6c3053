package models

// Operation names an arithmetic operation demonstrated by the animation screen.
type Operation string

const (
	OperationAddition       Operation = "addition"
	OperationSubtraction    Operation = "subtraction"
	OperationMultiplication Operation = "multiplication"
	OperationDivision       Operation = "division"
)

// Operations lists the demonstrated operations in menu order.
var Operations = []Operation{
	OperationAddition,
	OperationSubtraction,
	OperationMultiplication,
	OperationDivision,
}

// AnimationStep is one frame of a demonstration.
type AnimationStep struct {
	Graphic     string `json:"graphic"`
	Description string `json:"description"`
}
