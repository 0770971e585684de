package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/yourusername/astramine/internal/metrics"
	"github.com/yourusername/astramine/internal/mining"
)

// Stream timing.
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxFrameBytes  = 8 << 10
	frameDashboard = "dashboard"
	frameError     = "error"
)

// StreamRequest is one inbound frame. Parameters is merged field by field
// onto the session's current record; Reset restores the recommended profile
// before the merge.
type StreamRequest struct {
	Parameters json.RawMessage `json:"parameters,omitempty"`
	Reset      bool            `json:"reset,omitempty"`
}

// StreamFrame is one outbound frame.
type StreamFrame struct {
	Type      string            `json:"type"`
	RequestID string            `json:"requestId"`
	Dashboard *mining.Dashboard `json:"dashboard,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// streamSession is a single dashboard connection.
type streamSession struct {
	id     string
	client string
	conn   *websocket.Conn
	params mining.OperatingParameters
	frames int
	wmu    sync.Mutex
}

func (ss *streamSession) write(frame StreamFrame) error {
	ss.wmu.Lock()
	defer ss.wmu.Unlock()
	_ = ss.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return ss.conn.WriteJSON(frame)
}

func (ss *streamSession) ping() error {
	ss.wmu.Lock()
	defer ss.wmu.Unlock()
	return ss.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied to the client.
		s.logger.WithError(err).WithField("request_id", RequestIDFromContext(r.Context())).Warn("WebSocket upgrade failed")
		return
	}

	session := &streamSession{
		id:     uuid.NewString(),
		client: clientKey(r),
		conn:   conn,
		params: s.advisor.Defaults().Defaults,
	}
	s.runSession(r, session)
}

func (s *Server) runSession(r *http.Request, session *streamSession) {
	started := time.Now()
	reason := "client_closed"

	metrics.StreamSessionOpened()
	s.audit.LogSessionOpened(session.id, r.RemoteAddr, r.Header.Get("Origin"))
	defer func() {
		metrics.StreamSessionClosed()
		s.audit.LogSessionClosed(session.id, session.frames, time.Since(started), reason)
		_ = session.conn.Close()
	}()

	conn := session.conn
	conn.SetReadLimit(maxFrameBytes)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := session.ping(); err != nil {
					return
				}
			case <-done:
				return
			case <-r.Context().Done():
				return
			}
		}
	}()

	// The first frame shows the opening scenario.
	if err := s.sendDashboard(r, session, session.params, uuid.NewString()); err != nil {
		reason = "write_failed"
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				reason = "read_failed"
				s.logger.WithError(err).WithField("session_id", session.id).Warn("Dashboard stream read error")
			}
			return
		}

		frameID := uuid.NewString()
		if !s.limiter.Allow(session.client) {
			metrics.RecordRateLimited()
			if err := session.write(StreamFrame{Type: frameError, RequestID: frameID, Error: "rate limit exceeded"}); err != nil {
				reason = "write_failed"
				return
			}
			continue
		}

		next, err := mergeFrame(session.params, data)
		if err != nil {
			if err := session.write(StreamFrame{Type: frameError, RequestID: frameID, Error: err.Error()}); err != nil {
				reason = "write_failed"
				return
			}
			continue
		}

		if err := s.sendDashboard(r, session, next, frameID); err != nil {
			reason = "write_failed"
			return
		}
	}
}

// mergeFrame overlays an inbound frame on the current parameters.
func mergeFrame(current mining.OperatingParameters, data []byte) (mining.OperatingParameters, error) {
	var req StreamRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return current, fmt.Errorf("malformed frame: %w", err)
	}

	next := current
	if req.Reset {
		next = mining.RecommendedParameters()
	}
	if len(req.Parameters) > 0 {
		if err := json.Unmarshal(req.Parameters, &next); err != nil {
			return current, fmt.Errorf("malformed parameters: %w", err)
		}
	}
	return next, nil
}

// sendDashboard evaluates params and writes the result. On an engine error
// the session keeps its previous record and receives an error frame.
func (s *Server) sendDashboard(r *http.Request, session *streamSession, params mining.OperatingParameters, frameID string) error {
	dashboard, err := s.advisor.Dashboard(r.Context(), frameID, params)
	if err != nil {
		return session.write(StreamFrame{Type: frameError, RequestID: frameID, Error: err.Error()})
	}

	for _, d := range mining.Domains() {
		if before, after := session.params.Value(d.Field), dashboard.Parameters.Value(d.Field); before != after {
			s.audit.LogParameterChange(session.id, d.Field, before, after)
		}
	}
	if session.params.CoinID != dashboard.Parameters.CoinID {
		s.audit.LogParameterChange(session.id, "coinId", session.params.CoinID, dashboard.Parameters.CoinID)
	}

	// Keep the clamped record so later partial frames start from it.
	session.params = dashboard.Parameters
	session.frames++
	return session.write(StreamFrame{Type: frameDashboard, RequestID: frameID, Dashboard: dashboard})
}
