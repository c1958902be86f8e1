package api

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	models "FinCompare/internal/domain/models"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialSession(t *testing.T) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(newTestEcho(providerFixture()))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/compare"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, msg interface{}) models.SessionReply {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.WriteJSON(msg))
	var reply models.SessionReply
	require.NoError(t, conn.ReadJSON(&reply))
	return reply
}

func TestSessionWebSocketFlow(t *testing.T) {
	conn := dialSession(t)

	r := roundTrip(t, conn, models.SessionMessage{Type: models.MsgRatios, Ratios: []string{"returnOnAssets"}})
	require.Equal(t, models.MsgComparison, r.Type)
	assert.NotEmpty(t, r.SessionID)
	sessionID := r.SessionID
	require.NotNil(t, r.Data)
	assert.False(t, r.Data.Render)

	r = roundTrip(t, conn, models.SessionMessage{
		Type:    models.MsgSelect,
		Slot:    "A",
		Company: &models.SelectedCompany{Symbol: "AAPL", Name: "Apple Inc."},
	})
	require.Equal(t, models.MsgComparison, r.Type)
	assert.Equal(t, sessionID, r.SessionID)
	assert.True(t, r.Data.Render)
	assert.Equal(t, []int{2023, 2022}, r.Data.Years)

	r = roundTrip(t, conn, models.SessionMessage{
		Type:    models.MsgSelect,
		Slot:    "B",
		Company: &models.SelectedCompany{Symbol: "MSFT", Name: "Microsoft Corporation"},
	})
	require.Equal(t, models.MsgComparison, r.Type)
	rows := r.Data.Ratios[0].Rows
	require.Len(t, rows, 2)
	assert.Equal(t, models.Some(0.10), rows[0].CompanyB)
}

func TestSessionWebSocketErrors(t *testing.T) {
	conn := dialSession(t)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{oops")))
	var r models.SessionReply
	require.NoError(t, conn.ReadJSON(&r))
	assert.Equal(t, models.MsgError, r.Type)
	assert.Equal(t, "invalid JSON message", r.Error)

	r = roundTrip(t, conn, map[string]string{"type": "subscribe"})
	assert.Equal(t, models.MsgError, r.Type)
	assert.Contains(t, r.Error, "type")

	r = roundTrip(t, conn, models.SessionMessage{Type: models.MsgClear, Slot: "Z"})
	assert.Equal(t, models.MsgError, r.Type)

	// The session survives bad input.
	r = roundTrip(t, conn, models.SessionMessage{Type: models.MsgPeriod, Period: "quarter"})
	assert.Equal(t, models.MsgComparison, r.Type)
	assert.Equal(t, "quarter", r.Data.Period)
}
