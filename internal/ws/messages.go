package ws

import (
	"time"

	"github.com/AC350144/ClutchCall/pkg/models"
)

// Message types for the analysis socket
const (
	MessageTypeAnalyze   = "analyze"
	MessageTypeAnalysis  = "analysis"
	MessageTypeHeartbeat = "heartbeat"
	MessageTypeError     = "error"
)

// ClientMessage is a request from the browser
type ClientMessage struct {
	Type     string   `json:"type"`
	BetText  string   `json:"betText,omitempty"`
	Bankroll *float64 `json:"bankroll,omitempty"`
	RiskMode string   `json:"riskMode,omitempty"`
}

// ServerMessage is a reply to the browser
type ServerMessage struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// ErrorMessage describes a rejected client message
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SessionStats is the heartbeat payload
type SessionStats struct {
	SessionID        string    `json:"sessionId"`
	ConnectedAt      time.Time `json:"connectedAt"`
	MessagesReceived int64     `json:"messagesReceived"`
	AnalysesRun      int64     `json:"analysesRun"`
}

func (m ClientMessage) request() models.AnalyzeRequest {
	return models.AnalyzeRequest{
		BetText:  m.BetText,
		Bankroll: m.Bankroll,
		RiskMode: m.RiskMode,
	}
}
