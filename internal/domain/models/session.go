package models

// Session message types accepted on the comparison WebSocket.
const (
	MsgSelect = "select"
	MsgClear  = "clear"
	MsgRatios = "ratios"
	MsgPeriod = "period"

	MsgComparison = "comparison"
	MsgError      = "error"
)

// SessionMessage is a client request on a comparison session.
type SessionMessage struct {
	Type    string           `json:"type" validate:"required,oneof=select clear ratios period"`
	Slot    string           `json:"slot,omitempty"`
	Company *SelectedCompany `json:"company,omitempty"`
	Ratios  []string         `json:"ratios,omitempty"`
	Period  string           `json:"period,omitempty"`
}

// SessionReply is what the server pushes back on a comparison session.
type SessionReply struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId"`
	Data      *Comparison `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
}
