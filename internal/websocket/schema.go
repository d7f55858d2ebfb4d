package websocket

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionAutosave Action = "autosave"
	ActionSubmit   Action = "submit"
	ActionPing     Action = "ping"
)

// RequestPayload is the single client message shape. QID and Answer are
// only read for the autosave action; Answers only for submit.
type RequestPayload struct {
	Action  Action            `json:"action"`
	QID     string            `json:"q_id,omitempty"`
	Answer  string            `json:"ans,omitempty"`
	Answers map[string]string `json:"answers,omitempty"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError     Event = "error"
	EventSaved     Event = "saved"
	EventSubmitted Event = "submitted"
	EventPong      Event = "pong"
)

type SavedResponse struct {
	Event Event  `json:"event"`
	QID   string `json:"q_id"`
}

type SubmittedResponse struct {
	Event      Event    `json:"event"`
	Status     string   `json:"status"`
	Percentage *float64 `json:"percentage,omitempty"`
	IsPassed   *bool    `json:"is_passed,omitempty"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
