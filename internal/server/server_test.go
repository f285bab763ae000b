package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/lucheng0127/lightremote/internal/api"
)

func newTestServer(t *testing.T, out *bytes.Buffer) *Server {
	t.Helper()

	cfg := &Config{
		HTTPAddr:    "127.0.0.1:0",
		LightID:     "test",
		LightLabel:  "Light",
		MQTTEnabled: false,
	}
	return NewServer(cfg, out, zaptest.NewLogger(t))
}

func TestServerRegistersLightCommands(t *testing.T) {
	var out bytes.Buffer
	s := newTestServer(t, &out)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/commands", nil)
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp api.CommandsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []string{"turn_off", "turn_on"}, resp.Commands)
}

func TestServerPressDrivesLight(t *testing.T) {
	var out bytes.Buffer
	s := newTestServer(t, &out)

	for _, name := range []string{"turn_on", "turn_off"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/commands/"+name+"/press", nil)
		s.Handler().ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, "Light is ON.\nLight is OFF.\n", out.String())
}

func TestServerStartStopsOnCancel(t *testing.T) {
	var out bytes.Buffer
	s := newTestServer(t, &out)

	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Start(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}
