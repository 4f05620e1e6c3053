package models

import "time"

// CalculationRecord is one successful computation kept in the history.
type CalculationRecord struct {
	ID         int64     `json:"id"`
	Expression string    `json:"expression"`
	Steps      []Step    `json:"steps"`
	Result     float64   `json:"result"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewCalculationRecord stamps a record with the creation time. The id is the
// creation time in Unix milliseconds and is not guaranteed unique.
func NewCalculationRecord(expression string, steps []Step, result float64, now time.Time) CalculationRecord {
	now = now.UTC()
	cp := make([]Step, len(steps))
	copy(cp, steps)
	return CalculationRecord{
		ID:         now.UnixMilli(),
		Expression: expression,
		Steps:      cp,
		Result:     result,
		Timestamp:  now,
	}
}
