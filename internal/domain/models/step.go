package models

import (
	"encoding/json"
	"fmt"
)

// StepType tags a lexical fragment of an expression.
type StepType uint8

const (
	StepOperand StepType = iota + 1
	StepOperator
	StepResult
)

var stepTypeNames = map[StepType]string{
	StepOperand:  "operand",
	StepOperator: "operator",
	StepResult:   "result",
}

// String returns the wire tag of the step type.
func (t StepType) String() string {
	if name, ok := stepTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("StepType(%d)", uint8(t))
}

// ParseStepType maps a wire tag back to its StepType.
func ParseStepType(tag string) (StepType, error) {
	for t, name := range stepTypeNames {
		if name == tag {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown step type %q", tag)
}

// MarshalJSON encodes the step type as its string tag.
func (t StepType) MarshalJSON() ([]byte, error) {
	name, ok := stepTypeNames[t]
	if !ok {
		return nil, fmt.Errorf("cannot marshal step type %d", uint8(t))
	}
	return json.Marshal(name)
}

// UnmarshalJSON decodes a string tag, rejecting anything outside the closed set.
func (t *StepType) UnmarshalJSON(data []byte) error {
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return fmt.Errorf("step type must be a string: %w", err)
	}
	parsed, err := ParseStepType(tag)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Step is one fragment of a tokenized expression.
type Step struct {
	Value string   `json:"value"`
	Type  StepType `json:"type"`
}
