package ws

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/playmatatu/pitchviz/internal/catalog"
	"github.com/playmatatu/pitchviz/internal/config"
	"github.com/playmatatu/pitchviz/internal/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const oneTeam = `{"T1":{"P1":{"x":{"pitch_type":"FF","release_pos_x":-1,"release_pos_z":6,"release_extension":5.5,"vx0":5,"vy0":-130,"vz0":-8,"ax":0,"ay":16,"az":0}}}}`

const twoTeams = `{
  "T1":{"P1":{"x":{"pitch_type":"FF","release_pos_x":-1,"release_pos_z":6,"release_extension":5.5,"vx0":5,"vy0":-130,"vz0":-8,"ax":0,"ay":16,"az":0}}},
  "T2":{"P9":{"y":{"pitch_type":"CU","release_pos_x":1,"release_pos_z":6,"release_extension":5.9,"vx0":-2,"vy0":-105,"vz0":1,"ax":3,"ay":19,"az":-42}}}
}`

type testEnv struct {
	hub    *Hub
	holder *catalog.Holder
	path   string
	srv    *httptest.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	path := filepath.Join(t.TempDir(), "pitches.json")
	require.NoError(t, os.WriteFile(path, []byte(oneTeam), 0o644))

	holder := catalog.NewHolder(catalog.NewFileSource(path))
	_, err := holder.Reload(context.Background())
	require.NoError(t, err)

	cfg := &config.Config{FrameRateHz: 60, PlateY: -60.5, PitchDuration: 0.45}
	hub := NewHub(holder, cfg)
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	r := gin.New()
	r.GET("/ws", HandleWebSocket(hub))
	srv := httptest.NewServer(r)

	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return &testEnv{hub: hub, holder: holder, path: path, srv: srv}
}

func (e *testEnv) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(e.srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

type optionsMsg struct {
	Control string          `json:"control"`
	Options json.RawMessage `json:"options"`
}

func readUntil(t *testing.T, conn *websocket.Conn, match func(Message) bool) Message {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for {
		require.NoError(t, conn.SetReadDeadline(deadline))
		var msg Message
		require.NoError(t, conn.ReadJSON(&msg))
		if match(msg) {
			return msg
		}
	}
}

func optionsFor(control string) func(Message) bool {
	return func(m Message) bool {
		if m.Type != TypeOptions {
			return false
		}
		var o optionsMsg
		return json.Unmarshal(m.Data, &o) == nil && o.Control == control
	}
}

func stateIs(state string) func(Message) bool {
	return func(m Message) bool {
		if m.Type != TypeState {
			return false
		}
		var s viewer.Status
		return json.Unmarshal(m.Data, &s) == nil && s.State == state
	}
}

func isPaused(m Message) bool {
	if m.Type != TypeState {
		return false
	}
	var s viewer.Status
	return json.Unmarshal(m.Data, &s) == nil && s.Paused
}

func isType(typ string) func(Message) bool {
	return func(m Message) bool { return m.Type == typ }
}

func stringOptions(t *testing.T, m Message) []string {
	t.Helper()
	var o optionsMsg
	require.NoError(t, json.Unmarshal(m.Data, &o))
	var out []string
	require.NoError(t, json.Unmarshal(o.Options, &out))
	return out
}

func send(t *testing.T, conn *websocket.Conn, typ string, data interface{}) {
	t.Helper()
	msg := map[string]interface{}{"type": typ}
	if data != nil {
		msg["data"] = data
	}
	require.NoError(t, conn.WriteJSON(msg))
}

func TestDecodeEvent(t *testing.T) {
	ev, err := decodeEvent(Message{Type: "team_change", Data: json.RawMessage(`{"value":"T1"}`)})
	require.NoError(t, err)
	assert.Equal(t, viewer.Event{Type: viewer.TeamChange, Value: "T1"}, ev)

	ev, err = decodeEvent(Message{Type: "trail_change", Data: json.RawMessage(`{"checked":true}`)})
	require.NoError(t, err)
	assert.True(t, ev.Checked)

	ev, err = decodeEvent(Message{Type: "replay"})
	require.NoError(t, err)
	assert.Equal(t, viewer.Replay, ev.Type)

	_, err = decodeEvent(Message{Type: "team_change", Data: json.RawMessage(`[1]`)})
	assert.Error(t, err)
}

func TestViewerSessionOverSocket(t *testing.T) {
	env := newTestEnv(t)
	conn := env.dial(t)

	teams := readUntil(t, conn, optionsFor("team"))
	assert.Equal(t, []string{"T1"}, stringOptions(t, teams))
	initial := readUntil(t, conn, optionsFor("pitcher"))
	assert.Empty(t, stringOptions(t, initial))

	send(t, conn, "team_change", map[string]string{"value": "T1"})
	pitchers := readUntil(t, conn, optionsFor("pitcher"))
	assert.Equal(t, []string{"P1"}, stringOptions(t, pitchers))

	send(t, conn, "pitcher_change", map[string]string{"value": "P1"})
	readUntil(t, conn, stateIs("running"))

	frame := readUntil(t, conn, isType(TypeFrame))
	assert.Contains(t, string(frame.Data), `"name":"ball"`)

	send(t, conn, "pause", nil)
	readUntil(t, conn, isPaused)
}

func TestSocketReportsErrors(t *testing.T) {
	env := newTestEnv(t)
	conn := env.dial(t)
	readUntil(t, conn, optionsFor("team"))

	send(t, conn, "pitcher_change", map[string]string{"value": "P1"})
	msg := readUntil(t, conn, isType(TypeError))
	assert.Contains(t, string(msg.Data), viewer.ErrNoTeamSelected.Error())

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	msg = readUntil(t, conn, isType(TypeError))
	assert.Contains(t, string(msg.Data), "invalid message")
}

func TestReloadAllRepopulatesTeams(t *testing.T) {
	env := newTestEnv(t)
	conn := env.dial(t)
	readUntil(t, conn, optionsFor("team"))
	require.Equal(t, 1, env.hub.Count())

	require.NoError(t, os.WriteFile(env.path, []byte(twoTeams), 0o644))
	cat, err := env.holder.Reload(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, env.hub.ReloadAll(cat))
	teams := readUntil(t, conn, optionsFor("team"))
	assert.Equal(t, []string{"T1", "T2"}, stringOptions(t, teams))
}

func TestDisconnectUnregisters(t *testing.T) {
	env := newTestEnv(t)
	conn := env.dial(t)
	readUntil(t, conn, optionsFor("team"))
	require.Equal(t, 1, env.hub.Count())

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return env.hub.Count() == 0 }, 3*time.Second, 10*time.Millisecond)
}

func TestCatalogEventFromOtherInstance(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(env.path, []byte(twoTeams), 0o644))

	own, _ := json.Marshal(CatalogEvent{Type: eventCatalogReloaded, Origin: env.hub.InstanceID()})
	assert.False(t, env.hub.handleCatalogEvent(context.Background(), own))
	assert.Equal(t, 1, env.holder.Get().Len())

	other, _ := json.Marshal(CatalogEvent{Type: eventCatalogReloaded, Origin: "elsewhere"})
	assert.True(t, env.hub.handleCatalogEvent(context.Background(), other))
	assert.Equal(t, 2, env.holder.Get().Len())

	assert.False(t, env.hub.handleCatalogEvent(context.Background(), []byte("{")))
	unknown, _ := json.Marshal(CatalogEvent{Type: "something_else", Origin: "elsewhere"})
	assert.False(t, env.hub.handleCatalogEvent(context.Background(), unknown))
}

func TestPublishWithoutRedisIsNoop(t *testing.T) {
	assert.NoError(t, PublishCatalogReload(context.Background(), nil, "x", 3))
}
