package models

// AskRequest is the payload coming from the frontend into /ask/.
type AskRequest struct {
	Text      string `json:"text"`
	SessionID string `json:"session_id,omitempty"` // generated when empty
}

// Answer is what the orchestrator returns for one turn.
type Answer struct {
	Reply     string `json:"reply"`
	Source    string `json:"source"` // machine-readable tag naming the code path
	SessionID string `json:"session_id"`
}

// ClearSessionRequest is the payload of /clear_session/.
type ClearSessionRequest struct {
	SessionID string `json:"session_id"`
}

// StandardResponse is a plain acknowledgement.
type StandardResponse struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id,omitempty"`
}
