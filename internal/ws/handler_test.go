package ws_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AC350144/ClutchCall/internal/ws"
	"github.com/AC350144/ClutchCall/pkg/models"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

type echoAnalyzer struct{}

func (echoAnalyzer) Analyze(_ context.Context, req models.AnalyzeRequest) models.AnalyzeResponse {
	return models.AnalyzeResponse{
		AnalysisID: "ws-test",
		ParsedBet: models.ParsedBet{
			Success:  req.BetText != "",
			Analysis: req.BetText,
		},
	}
}

type reply struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func startServer(t *testing.T, origins []string) string {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	srv := httptest.NewServer(ws.NewHandler(ctx, echoAnalyzer{}, time.Second, origins, log))
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})

	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, msg ws.ClientMessage) reply {
	t.Helper()

	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	var r reply
	if err := conn.ReadJSON(&r); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	return r
}

func TestSession_Analyze(t *testing.T) {
	conn := dial(t, startServer(t, nil))

	r := roundTrip(t, conn, ws.ClientMessage{Type: ws.MessageTypeAnalyze, BetText: "Lakers ML"})
	if r.Type != ws.MessageTypeAnalysis {
		t.Fatalf("expected analysis reply, got %q", r.Type)
	}

	var resp models.AnalyzeResponse
	if err := json.Unmarshal(r.Payload, &resp); err != nil {
		t.Fatalf("bad payload: %v", err)
	}
	if resp.AnalysisID != "ws-test" || resp.Analysis != "Lakers ML" || !resp.Success {
		t.Errorf("unexpected payload: %+v", resp)
	}
}

func TestSession_HeartbeatCountsMessages(t *testing.T) {
	conn := dial(t, startServer(t, nil))

	roundTrip(t, conn, ws.ClientMessage{Type: ws.MessageTypeAnalyze, BetText: "Chiefs ML"})
	r := roundTrip(t, conn, ws.ClientMessage{Type: ws.MessageTypeHeartbeat})
	if r.Type != ws.MessageTypeHeartbeat {
		t.Fatalf("expected heartbeat, got %q", r.Type)
	}

	var stats ws.SessionStats
	if err := json.Unmarshal(r.Payload, &stats); err != nil {
		t.Fatalf("bad payload: %v", err)
	}
	if stats.SessionID == "" || stats.MessagesReceived != 2 || stats.AnalysesRun != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestSession_UnknownType(t *testing.T) {
	conn := dial(t, startServer(t, nil))

	r := roundTrip(t, conn, ws.ClientMessage{Type: "subscribe"})
	if r.Type != ws.MessageTypeError {
		t.Fatalf("expected error reply, got %q", r.Type)
	}

	var e ws.ErrorMessage
	if err := json.Unmarshal(r.Payload, &e); err != nil {
		t.Fatalf("bad payload: %v", err)
	}
	if e.Code != "unknown_message_type" {
		t.Errorf("unexpected code: %q", e.Code)
	}
}

func TestHandler_OriginCheck(t *testing.T) {
	url := startServer(t, []string{"http://localhost:3000"})

	header := http.Header{"Origin": []string{"http://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)
	if err == nil {
		t.Fatal("expected the handshake to be rejected")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403, got %v", resp)
	}

	header = http.Header{"Origin": []string{"http://localhost:3000"}}
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		t.Fatalf("allowed origin rejected: %v", err)
	}
	conn.Close()
}
