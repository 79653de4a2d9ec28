package calcapi

import "go-chi-calculator/internal/calculator"

// SessionResponse is the JSON body describing a session's current state.
type SessionResponse struct {
	SessionID string             `json:"session_id"`
	State     calculator.State   `json:"state"`
	Display   calculator.Display `json:"display"`
}

// EventResponse is the JSON response for POST /calculator/sessions/{id}/events
// and /keys.
type EventResponse struct {
	SessionResponse
	Changed bool `json:"changed"`
}

// KeysRequest is the JSON body for POST /calculator/sessions/{id}/keys.
type KeysRequest struct {
	Keys string `json:"keys"` // e.g. "12+7="
}

// EvaluateRequest is the JSON body for POST /calculator/evaluate.
type EvaluateRequest struct {
	Previous  calculator.Operand   `json:"previous"`
	Current   calculator.Operand   `json:"current"`
	Operation calculator.Operation `json:"operation"`
}

// EvaluateResponse carries the evaluator's text result; "" means no result.
type EvaluateResponse struct {
	Previous  calculator.Operand   `json:"previous"`
	Current   calculator.Operand   `json:"current"`
	Operation calculator.Operation `json:"operation"`
	Result    string               `json:"result"`
}

// FormatRequest is the JSON body for POST /calculator/format.
type FormatRequest struct {
	Operand string `json:"operand"`
}

// FormatResponse is the JSON response for POST /calculator/format.
type FormatResponse struct {
	Operand   string `json:"operand"`
	Formatted string `json:"formatted"`
}

// ReplayRequest is the JSON body for POST /calculator/replay. Events run
// before Keys.
type ReplayRequest struct {
	Events []calculator.EventMessage `json:"events"`
	Keys   string                    `json:"keys"`
}

// ReplayStep records one applied event.
type ReplayStep struct {
	Event   calculator.EventMessage `json:"event"`
	State   calculator.State        `json:"state"`
	Changed bool                    `json:"changed"`
}

// ReplayResponse is the JSON response for POST /calculator/replay.
type ReplayResponse struct {
	Steps   []ReplayStep       `json:"steps"`
	State   calculator.State   `json:"state"`
	Display calculator.Display `json:"display"`
}
