package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/astramine/internal/mining"
)

func dialStream(t *testing.T, s *Server, origin string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	server := httptest.NewServer(s.Handler())
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/dashboard"
	header := http.Header{}
	if origin != "" {
		header.Set("Origin", origin)
	}
	return websocket.DefaultDialer.Dial(wsURL, header)
}

func readFrame(t *testing.T, conn *websocket.Conn) StreamFrame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var frame StreamFrame
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

func TestStreamSession(t *testing.T) {
	conn, _, err := dialStream(t, newTestServer(t, testServerConfig()), "http://localhost:3000")
	require.NoError(t, err)
	defer conn.Close()

	// Opening frame shows the defaults.
	frame := readFrame(t, conn)
	require.Equal(t, frameDashboard, frame.Type)
	require.NotNil(t, frame.Dashboard)
	assert.Equal(t, mining.DefaultParameters(), frame.Dashboard.Parameters)
	assert.NotEmpty(t, frame.RequestID)

	// Partial updates merge onto the current record.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"parameters":{"hashRate":200}}`)))
	frame = readFrame(t, conn)
	require.Equal(t, frameDashboard, frame.Type)
	assert.Equal(t, 200.0, frame.Dashboard.Parameters.HashRate)
	assert.Equal(t, 0.48, frame.Dashboard.Parameters.ReinvestmentRate)

	// An unknown coin is reported and the session keeps its last good record.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"parameters":{"coinId":"dogecoin"}}`)))
	frame = readFrame(t, conn)
	require.Equal(t, frameError, frame.Type)
	assert.Contains(t, frame.Error, "dogecoin")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"parameters":{"reinvestmentRate":0.1}}`)))
	frame = readFrame(t, conn)
	require.Equal(t, frameDashboard, frame.Type)
	assert.Equal(t, "bitcoin", frame.Dashboard.Parameters.CoinID)
	assert.Equal(t, 200.0, frame.Dashboard.Parameters.HashRate)
	assert.Equal(t, 0.1, frame.Dashboard.Parameters.ReinvestmentRate)

	// Malformed frames do not end the session.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`not json`)))
	frame = readFrame(t, conn)
	require.Equal(t, frameError, frame.Type)
	assert.Contains(t, frame.Error, "malformed frame")

	// Reset restores the recommended profile.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"reset":true}`)))
	frame = readFrame(t, conn)
	require.Equal(t, frameDashboard, frame.Type)
	assert.Equal(t, mining.RecommendedParameters(), frame.Dashboard.Parameters)
}

func TestStreamClampsSliderValues(t *testing.T) {
	conn, _, err := dialStream(t, newTestServer(t, testServerConfig()), "")
	require.NoError(t, err)
	defer conn.Close()

	readFrame(t, conn)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"parameters":{"powerConsumption":-4}}`)))
	frame := readFrame(t, conn)
	require.Equal(t, frameDashboard, frame.Type)
	assert.Equal(t, 0.7, frame.Dashboard.Parameters.PowerConsumption)
}

func TestStreamRejectsForeignOrigin(t *testing.T) {
	_, resp, err := dialStream(t, newTestServer(t, testServerConfig()), "https://evil.example")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestStreamFrameRateLimit(t *testing.T) {
	cfg := testServerConfig()
	cfg.RateLimitPerSecond = 0.001
	cfg.RateLimitBurst = 2
	conn, _, err := dialStream(t, newTestServer(t, cfg), "")
	require.NoError(t, err)
	defer conn.Close()

	// The upgrade request spends one token; the first frame spends the last.
	readFrame(t, conn)
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"parameters":{"hashRate":50}}`)))
	assert.Equal(t, frameDashboard, readFrame(t, conn).Type)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"parameters":{"hashRate":60}}`)))
	frame := readFrame(t, conn)
	assert.Equal(t, frameError, frame.Type)
	assert.Equal(t, "rate limit exceeded", frame.Error)
}

func TestMergeFrame(t *testing.T) {
	current := mining.DefaultParameters()

	next, err := mergeFrame(current, []byte(`{"reset":true,"parameters":{"coinId":"kaspa"}}`))
	require.NoError(t, err)
	want := mining.RecommendedParameters()
	want.CoinID = "kaspa"
	assert.Equal(t, want, next)

	next, err = mergeFrame(current, []byte(`{"parameters":{"hashRate":"x"}}`))
	require.Error(t, err)
	assert.Equal(t, current, next)
}
