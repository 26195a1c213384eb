package handlers_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventFeed_RequiresToken(t *testing.T) {
	env := newTestEnv(t)

	wsURL := "ws" + strings.TrimPrefix(env.server.URL, "http") + "/api/events/ws"
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestEventFeed_BroadcastsAuthEvents(t *testing.T) {
	env := newTestEnv(t)

	token := mustIssue(t, env.issuer)
	header := http.Header{"Authorization": []string{"Bearer " + token}}

	wsURL := "ws" + strings.TrimPrefix(env.server.URL, "http") + "/api/events/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, header)
	require.NoError(t, err)
	defer conn.Close()

	// Give the hub a moment to process the registration before the event
	// fires.
	time.Sleep(100 * time.Millisecond)

	env.post(t, "/api/signup", signupPayload())

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, message, err := conn.ReadMessage()
	require.NoError(t, err)

	var decoded struct {
		Action  string `json:"action"`
		Payload struct {
			Type  string `json:"type"`
			Email string `json:"email"`
		} `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(message, &decoded))
	assert.Equal(t, "auth_event", decoded.Action)
	assert.Equal(t, "signup", decoded.Payload.Type)
	assert.Equal(t, "jane@example.com", decoded.Payload.Email)
}
