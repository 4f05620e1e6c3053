package models

// InputRequest carries the full contents of the calculator input line.
type InputRequest struct {
	Input string `json:"input"`
}

// KeyRequest carries a single key press.
type KeyRequest struct {
	Key string `json:"key" binding:"required"`
}

// OperationRequest selects an animation operation.
type OperationRequest struct {
	Operation string `json:"operation" binding:"required"`
}
