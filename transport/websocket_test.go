package transport

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

var testUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// wsTestServer upgrades every request and hands the connection to handler.
func wsTestServer(t *testing.T, handler func(conn *websocket.Conn)) (*httptest.Server, string) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		handler(conn)
	}))
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	return srv, url
}

type wsEvents struct {
	connected chan struct{}
	errors    chan string
	closed    chan int
	binary    chan []byte
	text      chan string
}

func subscribe(tr Transport) *wsEvents {
	ev := &wsEvents{
		connected: make(chan struct{}, 1),
		errors:    make(chan string, 1),
		closed:    make(chan int, 1),
		binary:    make(chan []byte, 8),
		text:      make(chan string, 8),
	}
	tr.OnConnected(func() { ev.connected <- struct{}{} })
	tr.OnConnectionError(func(message string) { ev.errors <- message })
	tr.OnClosed(func(code int, reason string, wasClean bool) { ev.closed <- code })
	tr.OnBinaryMessage(func(data []byte, bytesRemaining int) {
		buf := make([]byte, len(data))
		copy(buf, data)
		ev.binary <- buf
	})
	tr.OnTextMessage(func(text string) { ev.text <- text })
	return ev
}

func TestWebSocketTransport(t *testing.T) {
	t.Run("connect, receive binary and text, clean close", func(t *testing.T) {
		srv, url := wsTestServer(t, func(conn *websocket.Conn) {
			conn.WriteMessage(websocket.BinaryMessage, []byte{1, 2, 3})
			conn.WriteMessage(websocket.TextMessage, []byte(`{"joy": 1}`))
			// Keep reading so the close handshake completes.
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		})
		defer srv.Close()

		tr, err := NewWebSocket(url, nil)
		if err != nil {
			t.Fatal(err)
		}
		ev := subscribe(tr)
		tr.Connect()

		select {
		case <-ev.connected:
		case msg := <-ev.errors:
			t.Fatalf("connection error: %s", msg)
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for connect")
		}
		if !tr.IsConnected() {
			t.Fatal("expected IsConnected after connect")
		}

		select {
		case got := <-ev.binary:
			if len(got) != 3 || got[0] != 1 {
				t.Fatalf("unexpected binary frame: %v", got)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for binary frame")
		}

		select {
		case got := <-ev.text:
			if got != `{"joy": 1}` {
				t.Fatalf("unexpected text frame: %q", got)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for text frame")
		}

		tr.Close(1000, "test stop")
		select {
		case code := <-ev.closed:
			if code != 1000 {
				t.Fatalf("close code = %d, want 1000", code)
			}
		case msg := <-ev.errors:
			t.Fatalf("unexpected connection error: %s", msg)
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for close")
		}
		if tr.IsConnected() {
			t.Fatal("expected disconnected after close")
		}
	})

	t.Run("dial failure reports connection error", func(t *testing.T) {
		tr, err := NewWebSocket("ws://127.0.0.1:1/ws", &Config{
			HandshakeTimeout: 500 * time.Millisecond,
			ReadBufferSize:   1024,
			WriteBufferSize:  1024,
			Delimiter:        []byte("\n\n\n"),
		})
		if err != nil {
			t.Fatal(err)
		}
		ev := subscribe(tr)
		tr.Connect()

		select {
		case msg := <-ev.errors:
			if !strings.Contains(msg, "connection error") {
				t.Fatalf("dial failure not classified as a connection error: %q", msg)
			}
		case <-ev.connected:
			t.Fatal("unexpected connect")
		case <-time.After(3 * time.Second):
			t.Fatal("timeout waiting for connection error")
		}
		if tr.IsConnected() {
			t.Fatal("expected disconnected after dial failure")
		}
	})

	t.Run("close during a pending dial discards the connection", func(t *testing.T) {
		release := make(chan struct{})
		serverConns := make(chan *websocket.Conn, 1)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
			conn, err := testUpgrader.Upgrade(w, r, nil)
			if err != nil {
				return
			}
			serverConns <- conn
		}))
		defer srv.Close()
		url := "ws" + strings.TrimPrefix(srv.URL, "http")

		tr, err := NewWebSocket(url, nil)
		if err != nil {
			t.Fatal(err)
		}
		ev := subscribe(tr)
		tr.Connect()

		// Let the dial reach the held upgrade, then tear down mid-handshake.
		// Handlers stay registered so any stray event would be caught.
		time.Sleep(100 * time.Millisecond)
		tr.Close(1000, "test stop")
		close(release)

		select {
		case conn := <-serverConns:
			conn.SetReadDeadline(time.Now().Add(2 * time.Second))
			if _, _, err := conn.ReadMessage(); err == nil {
				t.Fatal("expected the discarded connection to be closed")
			}
			conn.Close()
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for the server side of the dial")
		}

		if tr.IsConnected() {
			t.Fatal("expected transport to stay disconnected after teardown")
		}
		select {
		case <-ev.connected:
			t.Fatal("connected fired for a torn down transport")
		case msg := <-ev.errors:
			t.Fatalf("unexpected connection error: %s", msg)
		case code := <-ev.closed:
			t.Fatalf("unexpected closed event: %d", code)
		case <-time.After(300 * time.Millisecond):
		}
	})

	t.Run("server initiated close reports closed", func(t *testing.T) {
		srv, url := wsTestServer(t, func(conn *websocket.Conn) {
			conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
				time.Now().Add(time.Second),
			)
			conn.ReadMessage() // wait for the close echo
			conn.Close()
		})
		defer srv.Close()

		tr, err := NewWebSocket(url, nil)
		if err != nil {
			t.Fatal(err)
		}
		ev := subscribe(tr)
		tr.Connect()

		select {
		case <-ev.connected:
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for connect")
		}

		select {
		case code := <-ev.closed:
			if code != websocket.CloseGoingAway {
				t.Fatalf("close code = %d, want %d", code, websocket.CloseGoingAway)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for close")
		}
	})

	t.Run("cleared handlers suppress all events", func(t *testing.T) {
		srv, url := wsTestServer(t, func(conn *websocket.Conn) {
			conn.WriteMessage(websocket.BinaryMessage, []byte{1})
			conn.Close()
		})
		defer srv.Close()

		tr, err := NewWebSocket(url, nil)
		if err != nil {
			t.Fatal(err)
		}
		ev := subscribe(tr)
		tr.ClearHandlers()
		tr.Connect()

		select {
		case <-ev.connected:
			t.Fatal("connected handler fired after clear")
		case <-ev.binary:
			t.Fatal("binary handler fired after clear")
		case <-ev.errors:
			t.Fatal("error handler fired after clear")
		case <-ev.closed:
			t.Fatal("closed handler fired after clear")
		case <-time.After(300 * time.Millisecond):
		}
	})

	t.Run("empty address rejected", func(t *testing.T) {
		if _, err := NewWebSocket("", nil); err == nil {
			t.Fatal("expected configuration error")
		}
	})
}
