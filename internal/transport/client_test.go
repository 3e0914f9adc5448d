package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"nhooyr.io/websocket"

	"github.com/hexhive/hive-client/internal/game"
	"github.com/hexhive/hive-client/internal/hex"
	"github.com/hexhive/hive-client/internal/proto"
)

func wsURLFromHTTP(u string) string {
	return "ws" + strings.TrimPrefix(u, "http")
}

// server accepts one connection and hands it to fn.
func server(t *testing.T, fn func(ctx context.Context, conn *websocket.Conn)) string {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			t.Errorf("accept: %v", err)
			return
		}
		fn(r.Context(), conn)
	}))
	t.Cleanup(ts.Close)
	return wsURLFromHTTP(ts.URL)
}

func waitEvent(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case ev := <-c.Events():
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for transport event")
		return Event{}
	}
}

func snapshotFrame(t *testing.T, current game.Player) []byte {
	t.Helper()
	msg := proto.ServerMsg{
		Type: proto.TypeGameState,
		State: &game.GameState{
			Current: current,
			Stacks: map[hex.Position][]game.Piece{
				hex.Origin: {{Owner: game.White, Class: game.Queen, Index: 1}},
			},
		},
	}
	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal frame: %v", err)
	}
	return data
}

func TestClient_SendAndReceive(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	received := make(chan []byte, 1)
	url := server(t, func(sctx context.Context, conn *websocket.Conn) {
		_, data, err := conn.Read(sctx)
		if err != nil {
			t.Errorf("server read: %v", err)
			return
		}
		received <- data
		if err := conn.Write(sctx, websocket.MessageText, snapshotFrame(t, game.Black)); err != nil {
			t.Errorf("server write: %v", err)
		}
	})

	c := New(url, nil)
	if err := c.Open(ctx); err != nil {
		t.Fatalf("open: %v", err)
	}
	defer c.Close(websocket.StatusNormalClosure, "bye")

	if ev := waitEvent(t, c); ev.Kind != Connected {
		t.Fatalf("first event kind = %v, want Connected", ev.Kind)
	}
	if err := c.Open(ctx); err != ErrAlreadyConnected {
		t.Fatalf("second open err = %v, want ErrAlreadyConnected", err)
	}

	c.Send(ctx, proto.ForfeitMsg())

	select {
	case data := <-received:
		var frame struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(data, &frame); err != nil {
			t.Fatalf("unmarshal sent frame: %v", err)
		}
		if frame.Type != proto.TypeForfeit {
			t.Fatalf("sent type = %q, want %q", frame.Type, proto.TypeForfeit)
		}
	case <-ctx.Done():
		t.Fatal("server never received the frame")
	}

	ev := waitEvent(t, c)
	if ev.Kind != MessageReceived {
		t.Fatalf("event kind = %v, want MessageReceived", ev.Kind)
	}
	if ev.Message.Type != proto.TypeGameState || ev.Message.State == nil {
		t.Fatalf("message = %+v, want a gameState frame", ev.Message)
	}
	if ev.Message.State.CurrentPlayer() != game.Black {
		t.Fatalf("current = %s, want black", ev.Message.State.CurrentPlayer())
	}
}

func TestClient_DropsMalformedFrames(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	url := server(t, func(sctx context.Context, conn *websocket.Conn) {
		frames := [][]byte{
			[]byte("{not json"),
			[]byte(`{"movement":{}}`),
			snapshotFrame(t, game.White),
		}
		for _, f := range frames {
			if err := conn.Write(sctx, websocket.MessageText, f); err != nil {
				t.Errorf("server write: %v", err)
				return
			}
		}
	})

	c := New(url, nil)
	if err := c.Open(ctx); err != nil {
		t.Fatalf("open: %v", err)
	}
	defer c.Close(websocket.StatusNormalClosure, "bye")

	if ev := waitEvent(t, c); ev.Kind != Connected {
		t.Fatalf("first event kind = %v, want Connected", ev.Kind)
	}

	// The two malformed frames are dropped; the valid one arrives intact.
	ev := waitEvent(t, c)
	if ev.Kind != MessageReceived {
		t.Fatalf("event kind = %v, want MessageReceived", ev.Kind)
	}
	if ev.Message.Type != proto.TypeGameState || ev.Message.State == nil {
		t.Fatalf("message = %+v, want a gameState frame", ev.Message)
	}
}

func TestClient_DisconnectedOnServerClose(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	url := server(t, func(sctx context.Context, conn *websocket.Conn) {
		_ = conn.Close(websocket.StatusNormalClosure, "done")
	})

	c := New(url, nil)
	if err := c.Open(ctx); err != nil {
		t.Fatalf("open: %v", err)
	}

	if ev := waitEvent(t, c); ev.Kind != Connected {
		t.Fatalf("first event kind = %v, want Connected", ev.Kind)
	}
	ev := waitEvent(t, c)
	if ev.Kind != Disconnected {
		t.Fatalf("event kind = %v, want Disconnected", ev.Kind)
	}
	if ev.Code != websocket.StatusNormalClosure {
		t.Fatalf("close code = %v, want normal closure", ev.Code)
	}
}
