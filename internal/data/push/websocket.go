package push

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cenkalti/backoff/v4"
	"github.com/gorilla/websocket"
	"github.com/penwyp/go-activity-monitor/internal/util"
)

// Envelope is the websocket frame layout: {"event": "<name>", "data": [...]}
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

const wsHandshakeTimeout = 10 * time.Second

// Redial schedule after the push connection drops
var (
	wsRedialInitial = 500 * time.Millisecond
	wsRedialMax     = 30 * time.Second
)

// DialWebSocket connects to a websocket push endpoint and starts reading envelopes.
// The first dial must succeed; a dropped connection is redialled with capped
// exponential backoff until ctx ends or the subscription is closed.
func DialWebSocket(ctx context.Context, url string, header http.Header) (Subscription, error) {
	dialer := &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: wsHandshakeTimeout,
	}

	conn, err := dialWebSocket(ctx, dialer, url, header)
	if err != nil {
		return nil, err
	}

	s := newStream(ctx, "ws")
	ws := &wsConn{current: conn}
	s.closer = ws.close
	s.run(func(ctx context.Context) {
		for {
			readEnvelopes(ctx, s, ws.get())
			if ctx.Err() != nil {
				return
			}
			next, err := redialWebSocket(ctx, dialer, url, header)
			if err != nil {
				return
			}
			if !ws.swap(ctx, next) {
				return
			}
			util.LogInfo("Websocket push reconnected", util.F("url", url))
		}
	})
	// Unblock ReadMessage when the context ends without Close
	go func() {
		<-s.ctx.Done()
		ws.interrupt()
	}()
	s.start()

	util.LogInfo("Subscribed to websocket push", util.F("url", url))
	return s, nil
}

func dialWebSocket(ctx context.Context, dialer *websocket.Dialer, url string, header http.Header) (*websocket.Conn, error) {
	conn, resp, err := dialer.DialContext(ctx, url, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial websocket %s (status %d): %w", url, resp.StatusCode, err)
		}
		return nil, fmt.Errorf("dial websocket %s: %w", url, err)
	}
	return conn, nil
}

// redialWebSocket retries until a dial succeeds or ctx ends
func redialWebSocket(ctx context.Context, dialer *websocket.Dialer, url string, header http.Header) (*websocket.Conn, error) {
	policy := backoff.NewExponentialBackOff(
		backoff.WithInitialInterval(wsRedialInitial),
		backoff.WithMaxInterval(wsRedialMax),
		backoff.WithMaxElapsedTime(0),
	)

	var conn *websocket.Conn
	err := backoff.RetryNotify(func() error {
		c, err := dialWebSocket(ctx, dialer, url, header)
		if err != nil {
			return err
		}
		conn = c
		return nil
	}, backoff.WithContext(policy, ctx), func(err error, wait time.Duration) {
		util.LogWarn("Websocket push redial failed", util.F("error", err), util.F("retry_in", wait.String()))
	})
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// wsConn guards the connection that is replaced on every redial
type wsConn struct {
	mu      sync.Mutex
	current *websocket.Conn
	closed  bool
}

func (w *wsConn) get() *websocket.Conn {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.current
}

// swap installs a redialled connection unless the subscription already ended
func (w *wsConn) swap(ctx context.Context, next *websocket.Conn) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || ctx.Err() != nil {
		_ = next.Close()
		return false
	}
	_ = w.current.Close()
	w.current = next
	return true
}

func (w *wsConn) interrupt() {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.current.SetReadDeadline(time.Now())
}

func (w *wsConn) close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true
	deadline := time.Now().Add(time.Second)
	_ = w.current.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	return w.current.Close()
}

func readEnvelopes(ctx context.Context, s *stream, conn *websocket.Conn) {
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				util.LogWarn("Websocket push connection lost", util.F("error", err))
			}
			return
		}
		if msgType != websocket.TextMessage && msgType != websocket.BinaryMessage {
			continue
		}

		var env Envelope
		if err := sonic.Unmarshal(data, &env); err != nil {
			util.LogWarn("Dropping malformed websocket frame", util.F("error", err))
			continue
		}
		s.deliver(env.Event, env.Data)
	}
}
