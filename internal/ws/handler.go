// Package ws serves live slip analysis over a websocket.
package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/AC350144/ClutchCall/pkg/models"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Analyzer runs a slip analysis
type Analyzer interface {
	Analyze(ctx context.Context, req models.AnalyzeRequest) models.AnalyzeResponse
}

// Handler upgrades requests to analysis sessions
type Handler struct {
	ctx      context.Context
	analyzer Analyzer
	timeout  time.Duration
	upgrader websocket.Upgrader
	log      logrus.FieldLogger
}

// NewHandler creates a websocket handler. Sessions live until the client
// leaves or ctx is cancelled. An empty origins list accepts any origin.
func NewHandler(ctx context.Context, analyzer Analyzer, timeout time.Duration, origins []string, log logrus.FieldLogger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		ctx:      ctx,
		analyzer: analyzer,
		timeout:  timeout,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(origins),
		},
		log: log,
	}
}

// ServeHTTP upgrades the connection and starts the session pumps
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	s := newSession(uuid.NewString(), conn, h.analyzer, h.timeout, h.log)

	// use the handler context, the request context ends with ServeHTTP
	go s.writePump(h.ctx)
	go s.readPump(h.ctx)

	s.log.Info("analysis session opened")
}

func originChecker(origins []string) func(r *http.Request) bool {
	if len(origins) == 0 {
		return func(*http.Request) bool { return true }
	}

	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}

	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		// non-browser clients send no origin
		return origin == "" || allowed[origin]
	}
}
