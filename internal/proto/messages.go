// Package proto defines the wire protocol spoken over the duplex
// connection. Messages are discrete JSON frames with a type discriminator.
package proto

import (
	"encoding/json"
	"fmt"

	"github.com/hexhive/hive-client/internal/game"
)

// ---- Client -> Server ----

const (
	TypeMovement    = "movement"
	TypeForfeit     = "forfeit"
	TypeReadyToPlay = "readyToPlay"
)

// ClientMsg is a frame sent by the client. Movement is set only for
// TypeMovement and always carries the relative encoding.
type ClientMsg struct {
	Type     string                 `json:"type"`
	Movement *game.RelativeMovement `json:"movement,omitempty"`
}

// MovementMsg wraps a relative movement for transmission.
func MovementMsg(m game.RelativeMovement) ClientMsg {
	return ClientMsg{Type: TypeMovement, Movement: &m}
}

// ForfeitMsg signals the sender concedes the game.
func ForfeitMsg() ClientMsg {
	return ClientMsg{Type: TypeForfeit}
}

// ReadyToPlayMsg signals the local agent or opponent may begin.
func ReadyToPlayMsg() ClientMsg {
	return ClientMsg{Type: TypeReadyToPlay}
}

// EncodeClient serializes a client frame.
func EncodeClient(msg ClientMsg) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("proto: encode %s: %w", msg.Type, err)
	}
	return data, nil
}

// ---- Server -> Client ----

const TypeGameState = "gameState"

// ServerMsg is a frame received from the server. State is set only for
// TypeGameState; frames with unrecognized types are delivered as-is and
// ignored by the session.
type ServerMsg struct {
	Type  string          `json:"type"`
	State *game.GameState `json:"state,omitempty"`
}

// DecodeServer parses an inbound frame. Callers drop frames that fail to
// decode; a malformed frame never terminates the connection.
func DecodeServer(data []byte) (ServerMsg, error) {
	var msg ServerMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return ServerMsg{}, fmt.Errorf("proto: decode frame: %w", err)
	}
	if msg.Type == "" {
		return ServerMsg{}, fmt.Errorf("proto: frame missing type")
	}
	if msg.Type == TypeGameState && msg.State == nil {
		return ServerMsg{}, fmt.Errorf("proto: gameState frame missing state")
	}
	return msg, nil
}
