package ws

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 16 * 1024

	// Buffer size for outbound messages
	sendBufferSize = 16
)

// session is one browser connection
type session struct {
	id          string
	conn        *websocket.Conn
	send        chan ServerMessage
	analyzer    Analyzer
	timeout     time.Duration
	log         logrus.FieldLogger
	connectedAt time.Time

	received int64
	analyses int64
}

func newSession(id string, conn *websocket.Conn, analyzer Analyzer, timeout time.Duration, log logrus.FieldLogger) *session {
	return &session{
		id:          id,
		conn:        conn,
		send:        make(chan ServerMessage, sendBufferSize),
		analyzer:    analyzer,
		timeout:     timeout,
		log:         log.WithField("session_id", id),
		connectedAt: time.Now(),
	}
}

// readPump handles client messages until the connection drops. It owns
// the send channel and closes it on exit, which stops writePump.
func (s *session) readPump(ctx context.Context) {
	defer close(s.send)

	s.conn.SetReadLimit(maxMessageSize)
	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var msg ClientMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.log.WithError(err).Debug("unexpected close")
			}
			return
		}
		if ctx.Err() != nil {
			return
		}

		atomic.AddInt64(&s.received, 1)
		s.handle(ctx, msg)
	}
}

// writePump delivers replies and keeps the connection alive with pings
func (s *session) writePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			s.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
			return

		case message, ok := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				s.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := s.conn.WriteJSON(message); err != nil {
				s.log.WithError(err).Debug("write failed")
				return
			}

		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (s *session) handle(ctx context.Context, msg ClientMessage) {
	switch msg.Type {
	case MessageTypeAnalyze:
		s.analyze(ctx, msg)
	case MessageTypeHeartbeat:
		s.reply(MessageTypeHeartbeat, s.stats())
	default:
		s.reply(MessageTypeError, ErrorMessage{
			Code:    "unknown_message_type",
			Message: fmt.Sprintf("unknown message type: %s", msg.Type),
		})
	}
}

func (s *session) analyze(ctx context.Context, msg ClientMessage) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp := s.analyzer.Analyze(ctx, msg.request())
	atomic.AddInt64(&s.analyses, 1)
	s.reply(MessageTypeAnalysis, resp)
}

// reply queues a message, dropping it when the client is not keeping up
func (s *session) reply(msgType string, payload interface{}) {
	select {
	case s.send <- ServerMessage{Type: msgType, Payload: payload, Timestamp: time.Now()}:
	default:
		s.log.WithField("type", msgType).Warn("send buffer full, dropping message")
	}
}

func (s *session) stats() SessionStats {
	return SessionStats{
		SessionID:        s.id,
		ConnectedAt:      s.connectedAt,
		MessagesReceived: atomic.LoadInt64(&s.received),
		AnalysesRun:      atomic.LoadInt64(&s.analyses),
	}
}
