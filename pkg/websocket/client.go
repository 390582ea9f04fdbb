package websocket

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	json "github.com/json-iterator/go"
	"github.com/zfogg/swipefeed/pkg/config"
	"github.com/zfogg/swipefeed/pkg/feed"
	"github.com/zfogg/swipefeed/pkg/logger"
)

// MessageType represents the type of WebSocket message
type MessageType string

const (
	MessageTypeLikeCountUpdate    MessageType = "like_count_update"
	MessageTypeCommentCountUpdate MessageType = "comment_count_update"
	MessageTypePostCommented      MessageType = "post_commented"
	MessageTypeShareCountUpdate   MessageType = "share_count_update"
	MessageTypePlayCountUpdate    MessageType = "play_count_update"
	MessageTypeVideoStats         MessageType = "video_stats"
	MessageTypeHeartbeat          MessageType = "heartbeat"
	MessageTypePong               MessageType = "pong"
	MessageTypeError              MessageType = "error"

	// MessageTypeAny subscribes to every message
	MessageTypeAny MessageType = ""
)

// statsMessageTypes carry counter updates for a single video
var statsMessageTypes = []MessageType{
	MessageTypeLikeCountUpdate,
	MessageTypeCommentCountUpdate,
	MessageTypePostCommented,
	MessageTypeShareCountUpdate,
	MessageTypePlayCountUpdate,
	MessageTypeVideoStats,
}

// Message represents a message from the server
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// statsPayload accepts both the video_id and the legacy post_id key
type statsPayload struct {
	VideoID string `json:"video_id"`
	PostID  string `json:"post_id"`
	feed.StatsUpdate
	PlayCount *int `json:"play_count,omitempty"`
}

// DecodeStats extracts the video id and counter update from a stats message
func DecodeStats(msg Message) (string, feed.StatsUpdate, error) {
	var p statsPayload
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		return "", feed.StatsUpdate{}, fmt.Errorf("decode %s payload: %w", msg.Type, err)
	}
	id := p.VideoID
	if id == "" {
		id = p.PostID
	}
	if id == "" {
		return "", feed.StatsUpdate{}, fmt.Errorf("%s payload has no video id", msg.Type)
	}
	update := p.StatsUpdate
	if update.Views == nil && p.PlayCount != nil {
		update.Views = p.PlayCount
	}
	return id, update, nil
}

// Config holds WebSocket client configuration
type Config struct {
	Host                 string
	Port                 int
	Path                 string
	UseTLS               bool
	ConnectTimeoutMs     int
	HeartbeatIntervalMs  int
	ReconnectBaseDelayMs int
	ReconnectMaxDelayMs  int
	MaxReconnectAttempts int
}

// DefaultConfig returns a development configuration
func DefaultConfig() Config {
	return Config{
		Host:                 "localhost",
		Port:                 8787,
		Path:                 "/api/v1/ws",
		UseTLS:               false,
		ConnectTimeoutMs:     15000,
		HeartbeatIntervalMs:  30000,
		ReconnectBaseDelayMs: 2000,
		ReconnectMaxDelayMs:  30000,
		MaxReconnectAttempts: -1, // unlimited
	}
}

// ConfigFromSettings reads the live.* keys
func ConfigFromSettings() Config {
	cfg := DefaultConfig()
	cfg.Host = config.GetString("live.host")
	cfg.Port = config.GetInt("live.port")
	cfg.Path = config.GetString("live.path")
	cfg.UseTLS = config.GetBool("live.tls")
	return cfg
}

// Client manages WebSocket connections
type Client struct {
	config            Config
	conn              *websocket.Conn
	token             string
	state             atomic.Value // ConnectionState
	mu                sync.RWMutex
	writeMu           sync.Mutex
	reconnectAttempts int
	reconnectDelay    int
	listeners         map[MessageType][]listener
	nextListenerID    int
	listenersMu       sync.RWMutex
	ctx               context.Context
	cancel            context.CancelFunc
	statsLock         sync.RWMutex
	stats             ConnectionStats
}

type listener struct {
	id int
	fn func(Message)
}

// ConnectionState represents the state of the WebSocket connection
type ConnectionState int

const (
	StateDisconnected ConnectionState = iota
	StateConnecting
	StateConnected
	StateReconnecting
	StateError
)

// ConnectionStats holds connection statistics
type ConnectionStats struct {
	MessagesReceived int64
	MessagesSent     int64
	ReconnectCount   int
	LastError        string
	ConnectedAt      time.Time
	DisconnectedAt   time.Time
}

// NewClient creates a new WebSocket client
func NewClient(config Config) *Client {
	ctx, cancel := context.WithCancel(context.Background())
	client := &Client{
		config:         config,
		listeners:      make(map[MessageType][]listener),
		ctx:            ctx,
		cancel:         cancel,
		reconnectDelay: config.ReconnectBaseDelayMs,
	}
	client.state.Store(StateDisconnected)
	return client
}

// Connect establishes the WebSocket connection
func (c *Client) Connect(token string) error {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()

	c.setState(StateConnecting)

	conn, err := c.dial()
	if err != nil {
		c.setState(StateError)
		c.recordError(err.Error())
		return err
	}

	c.attach(conn)
	logger.Debug("WebSocket connected", "host", c.config.Host, "port", c.config.Port)
	return nil
}

// Disconnect closes the WebSocket connection and stops reconnecting
func (c *Client) Disconnect() error {
	c.cancel()

	c.mu.Lock()
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	c.mu.Unlock()

	c.setState(StateDisconnected)
	c.recordDisconnected()

	logger.Debug("WebSocket disconnected")
	return nil
}

// IsConnected returns true if the connection is established
func (c *Client) IsConnected() bool {
	return c.getState() == StateConnected
}

// On subscribes to a message type and returns an unsubscribe function.
// Callbacks run on the read loop in arrival order.
func (c *Client) On(msgType MessageType, callback func(Message)) func() {
	c.listenersMu.Lock()
	c.nextListenerID++
	id := c.nextListenerID
	c.listeners[msgType] = append(c.listeners[msgType], listener{id: id, fn: callback})
	c.listenersMu.Unlock()

	return func() {
		c.listenersMu.Lock()
		defer c.listenersMu.Unlock()

		ls := c.listeners[msgType]
		for i, l := range ls {
			if l.id == id {
				c.listeners[msgType] = append(ls[:i:i], ls[i+1:]...)
				break
			}
		}
	}
}

// OnStats subscribes to every counter update message
func (c *Client) OnStats(callback func(videoID string, update feed.StatsUpdate)) func() {
	unsubs := make([]func(), 0, len(statsMessageTypes))
	for _, t := range statsMessageTypes {
		unsubs = append(unsubs, c.On(t, func(msg Message) {
			id, update, err := DecodeStats(msg)
			if err != nil {
				logger.Warn("Dropping stats message", "type", msg.Type, "error", err)
				return
			}
			callback(id, update)
		}))
	}
	return func() {
		for _, unsub := range unsubs {
			unsub()
		}
	}
}

// Send sends a message to the server
func (c *Client) Send(msgType MessageType, payload interface{}) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return fmt.Errorf("not connected")
	}

	msg := struct {
		Type    MessageType `json:"type"`
		Payload interface{} `json:"payload,omitempty"`
	}{msgType, payload}

	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	err = conn.WriteMessage(websocket.TextMessage, data)
	c.writeMu.Unlock()
	if err != nil {
		return err
	}

	c.recordMessageSent()
	return nil
}

// GetStats returns connection statistics
func (c *Client) GetStats() ConnectionStats {
	c.statsLock.RLock()
	defer c.statsLock.RUnlock()
	return c.stats
}

// Private methods

func (c *Client) url() string {
	scheme := "ws"
	if c.config.UseTLS {
		scheme = "wss"
	}

	u := url.URL{
		Scheme: scheme,
		Host:   fmt.Sprintf("%s:%d", c.config.Host, c.config.Port),
		Path:   c.config.Path,
	}

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		q := u.Query()
		q.Set("token", token)
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func (c *Client) dial() (*websocket.Conn, error) {
	timeout := time.Duration(c.config.ConnectTimeoutMs) * time.Millisecond
	dialCtx, cancel := context.WithTimeout(c.ctx, timeout)
	defer cancel()

	conn, _, err := websocket.DefaultDialer.DialContext(dialCtx, c.url(), nil)
	return conn, err
}

// attach installs conn and starts its read and heartbeat loops
func (c *Client) attach(conn *websocket.Conn) {
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	c.setState(StateConnected)
	c.reconnectAttempts = 0
	c.reconnectDelay = c.config.ReconnectBaseDelayMs
	c.recordConnected()

	done := make(chan struct{})
	go c.readLoop(conn, done)
	go c.heartbeatLoop(done)
}

func (c *Client) readLoop(conn *websocket.Conn, done chan struct{}) {
	defer func() {
		close(done)
		c.handleDisconnect(conn)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if c.ctx.Err() == nil {
				c.recordError(err.Error())
				logger.Warn("WebSocket read error", "error", err)
			}
			return
		}

		c.recordMessageReceived()

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warn("Dropping malformed WebSocket frame", "error", err)
			continue
		}
		c.emit(msg)
	}
}

func (c *Client) emit(msg Message) {
	c.listenersMu.RLock()
	callbacks := append([]listener(nil), c.listeners[msg.Type]...)
	if msg.Type != MessageTypeAny {
		callbacks = append(callbacks, c.listeners[MessageTypeAny]...)
	}
	c.listenersMu.RUnlock()

	for _, l := range callbacks {
		l.fn(msg)
	}
}

func (c *Client) heartbeatLoop(done chan struct{}) {
	interval := time.Duration(c.config.HeartbeatIntervalMs) * time.Millisecond
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-done:
			return
		case <-ticker.C:
			if err := c.Send(MessageTypeHeartbeat, nil); err != nil {
				logger.Debug("Failed to send heartbeat", "error", err)
			}
		}
	}
}

func (c *Client) handleDisconnect(conn *websocket.Conn) {
	c.mu.Lock()
	if c.conn == conn {
		_ = c.conn.Close()
		c.conn = nil
	}
	c.mu.Unlock()

	if c.ctx.Err() != nil {
		return
	}

	c.setState(StateReconnecting)
	c.recordDisconnected()

	// Attempt reconnection with exponential backoff
	for {
		if c.config.MaxReconnectAttempts >= 0 && c.reconnectAttempts >= c.config.MaxReconnectAttempts {
			c.setState(StateError)
			logger.Error("Max reconnection attempts reached")
			return
		}

		// Calculate backoff delay with jitter
		backoff := time.Duration(c.reconnectDelay) * time.Millisecond
		jitter := time.Duration(rand.Intn(250)) * time.Millisecond
		waitTime := backoff + jitter

		logger.Debug("Reconnecting WebSocket", "attempt", c.reconnectAttempts+1, "wait_ms", waitTime.Milliseconds())

		select {
		case <-c.ctx.Done():
			return
		case <-time.After(waitTime):
		}

		next, err := c.dial()
		if err != nil {
			c.reconnectAttempts++
			// Exponential backoff: 2x each time, capped at max
			c.reconnectDelay = int(math.Min(
				float64(c.reconnectDelay*2),
				float64(c.config.ReconnectMaxDelayMs),
			))
			continue
		}

		c.statsLock.Lock()
		c.stats.ReconnectCount++
		c.statsLock.Unlock()

		c.attach(next)
		logger.Debug("WebSocket reconnected")
		return
	}
}

func (c *Client) setState(state ConnectionState) {
	c.state.Store(state)
}

func (c *Client) getState() ConnectionState {
	return c.state.Load().(ConnectionState)
}

func (c *Client) recordMessageReceived() {
	c.statsLock.Lock()
	c.stats.MessagesReceived++
	c.statsLock.Unlock()
}

func (c *Client) recordMessageSent() {
	c.statsLock.Lock()
	c.stats.MessagesSent++
	c.statsLock.Unlock()
}

func (c *Client) recordError(errMsg string) {
	c.statsLock.Lock()
	c.stats.LastError = errMsg
	c.statsLock.Unlock()
}

func (c *Client) recordConnected() {
	c.statsLock.Lock()
	c.stats.ConnectedAt = time.Now()
	c.statsLock.Unlock()
}

func (c *Client) recordDisconnected() {
	c.statsLock.Lock()
	c.stats.DisconnectedAt = time.Now()
	c.statsLock.Unlock()
}
