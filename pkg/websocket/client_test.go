package websocket

import (
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zfogg/swipefeed/pkg/feed"
)

func TestNewClient(t *testing.T) {
	cfg := DefaultConfig()
	client := NewClient(cfg)

	if client == nil {
		t.Fatal("NewClient returned nil")
	}
	if client.getState() != StateDisconnected {
		t.Errorf("Initial state should be StateDisconnected, got %v", client.getState())
	}
	if len(client.listeners) != 0 {
		t.Errorf("Listeners should be empty, got %d", len(client.listeners))
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Host != "localhost" || cfg.Port != 8787 || cfg.Path == "" {
		t.Errorf("DefaultConfig has incorrect values: %+v", cfg)
	}
	if cfg.MaxReconnectAttempts != -1 {
		t.Errorf("MaxReconnectAttempts should be -1 (unlimited), got %d", cfg.MaxReconnectAttempts)
	}
}

func TestURLIncludesToken(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UseTLS = true
	client := NewClient(cfg)
	client.token = "abc"

	assert.Equal(t, "wss://localhost:8787/api/v1/ws?token=abc", client.url())
}

func TestOnUnsubscribe(t *testing.T) {
	client := NewClient(DefaultConfig())
	var first, second int

	unsub := client.On(MessageTypePong, func(Message) { first++ })
	client.On(MessageTypePong, func(Message) { second++ })

	client.emit(Message{Type: MessageTypePong})
	unsub()
	client.emit(Message{Type: MessageTypePong})

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestAnyListenerSeesEveryMessage(t *testing.T) {
	client := NewClient(DefaultConfig())
	var seen []MessageType
	client.On(MessageTypeAny, func(m Message) { seen = append(seen, m.Type) })

	client.emit(Message{Type: MessageTypePong})
	client.emit(Message{Type: MessageTypeLikeCountUpdate, Payload: []byte(`{}`)})

	assert.Equal(t, []MessageType{MessageTypePong, MessageTypeLikeCountUpdate}, seen)
}

func TestDecodeStats(t *testing.T) {
	tests := []struct {
		name    string
		msg     Message
		wantID  string
		check   func(t *testing.T, u feed.StatsUpdate)
		wantErr bool
	}{
		{
			name:   "like count with post_id",
			msg:    Message{Type: MessageTypeLikeCountUpdate, Payload: []byte(`{"post_id":"v1","like_count":12,"timestamp":1}`)},
			wantID: "v1",
			check: func(t *testing.T, u feed.StatsUpdate) {
				require.NotNil(t, u.Likes)
				assert.Equal(t, 12, *u.Likes)
				assert.Nil(t, u.Comments)
			},
		},
		{
			name:   "play count maps to views",
			msg:    Message{Type: MessageTypePlayCountUpdate, Payload: []byte(`{"video_id":"v2","play_count":300}`)},
			wantID: "v2",
			check: func(t *testing.T, u feed.StatsUpdate) {
				require.NotNil(t, u.Views)
				assert.Equal(t, 300, *u.Views)
			},
		},
		{
			name:    "missing id",
			msg:     Message{Type: MessageTypeShareCountUpdate, Payload: []byte(`{"share_count":3}`)},
			wantErr: true,
		},
		{
			name:    "malformed",
			msg:     Message{Type: MessageTypeVideoStats, Payload: []byte(`nope`)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, update, err := DecodeStats(tt.msg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
			tt.check(t, update)
		})
	}
}

func TestGetStats(t *testing.T) {
	client := NewClient(DefaultConfig())

	client.recordMessageSent()
	client.recordMessageReceived()
	client.recordMessageReceived()
	client.recordError("boom")

	stats := client.GetStats()
	assert.Equal(t, int64(1), stats.MessagesSent)
	assert.Equal(t, int64(2), stats.MessagesReceived)
	assert.Equal(t, "boom", stats.LastError)
}

func TestSendWithoutConnection(t *testing.T) {
	client := NewClient(DefaultConfig())
	assert.Error(t, client.Send(MessageTypeHeartbeat, nil))
}

// pushServer upgrades one connection and writes the given frames
func pushServer(t *testing.T, frames []string, gotToken chan<- string) Config {
	t.Helper()
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken <- r.URL.Query().Get("token")
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for _, f := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(f)); err != nil {
				return
			}
		}
		// hold the connection open until the client goes away
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(server.Close)

	u, err := url.Parse(server.URL)
	require.NoError(t, err)
	host, portStr, err := net.SplitHostPort(u.Host)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Host = host
	cfg.Port = port
	cfg.Path = "/ws"
	cfg.HeartbeatIntervalMs = 0
	cfg.MaxReconnectAttempts = 0
	return cfg
}

func TestOnStats_EndToEnd(t *testing.T) {
	gotToken := make(chan string, 1)
	cfg := pushServer(t, []string{
		`{"type":"pong"}`,
		`{"type":"like_count_update","payload":{"post_id":"v1","like_count":5}}`,
		`{"type":"share_count_update","payload":{"share_count":1}}`,
		`{"type":"comment_count_update","payload":{"video_id":"v2","comment_count":9}}`,
	}, gotToken)

	type push struct {
		id     string
		update feed.StatsUpdate
	}
	var mu sync.Mutex
	var pushes []push
	received := make(chan struct{}, 4)

	client := NewClient(cfg)
	client.OnStats(func(id string, u feed.StatsUpdate) {
		mu.Lock()
		pushes = append(pushes, push{id, u})
		mu.Unlock()
		received <- struct{}{}
	})

	require.NoError(t, client.Connect("tok"))
	defer client.Disconnect()
	assert.Equal(t, "tok", <-gotToken)
	assert.True(t, client.IsConnected())

	for i := 0; i < 2; i++ {
		select {
		case <-received:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for stats pushes")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, pushes, 2, "the payload without an id is dropped")
	assert.Equal(t, "v1", pushes[0].id)
	assert.Equal(t, 5, *pushes[0].update.Likes)
	assert.Equal(t, "v2", pushes[1].id)
	assert.Equal(t, 9, *pushes[1].update.Comments)
}

func TestConnectFailure(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 1
	cfg.ConnectTimeoutMs = 500
	client := NewClient(cfg)

	assert.Error(t, client.Connect(""))
	assert.Equal(t, StateError, client.getState())
	assert.NotEmpty(t, client.GetStats().LastError)
}
