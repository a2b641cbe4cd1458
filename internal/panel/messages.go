package panel

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/thirdlf03/zawa/internal/scene"
	"github.com/thirdlf03/zawa/pkg/math"
)

// Message types exchanged with panel clients.
const (
	MessageTypeGravity  = "gravity"
	MessageTypeCamera   = "camera"
	MessageTypeReset    = "reset"
	MessageTypeState    = "state"
	MessageTypeSelected = "selected"
	MessageTypeInfo     = "info"
	MessageTypeError    = "error"
)

// GravityLimit bounds each gravity axis a client may set.
const GravityLimit = 10

// GravityMessage sets world gravity. Omitted axes keep their current value,
// so a client can edit one axis at a time.
type GravityMessage struct {
	Type string   `json:"type"`
	X    *float32 `json:"x,omitempty"`
	Y    *float32 `json:"y,omitempty"`
	Z    *float32 `json:"z,omitempty"`
}

// StateMessage carries a session snapshot to clients.
type StateMessage struct {
	Type  string      `json:"type"`
	State scene.State `json:"state"`
}

// SelectedMessage announces a new picked ball.
type SelectedMessage struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// InfoMessage is a free-form notice; also used for errors.
type InfoMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewInfoMessage creates an info notice.
func NewInfoMessage(msg string) InfoMessage {
	return InfoMessage{Type: MessageTypeInfo, Message: msg}
}

// NewErrorMessage creates an error notice.
func NewErrorMessage(err error) InfoMessage {
	return InfoMessage{Type: MessageTypeError, Message: err.Error()}
}

// ParseCommand decodes a client message into a session command.
func ParseCommand(data []byte) (scene.Command, error) {
	var base struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &base); err != nil {
		return scene.Command{}, fmt.Errorf("error parsing message: %w", err)
	}

	switch base.Type {
	case MessageTypeGravity:
		var msg GravityMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return scene.Command{}, fmt.Errorf("error parsing gravity message: %w", err)
		}
		return gravityCommand(msg)
	case MessageTypeCamera:
		return scene.Command{Kind: scene.CmdCycleCamera}, nil
	case MessageTypeReset:
		return scene.Command{Kind: scene.CmdReset}, nil
	case "":
		return scene.Command{}, errors.New("message type missing")
	default:
		return scene.Command{}, fmt.Errorf("unknown message type: %s", base.Type)
	}
}

func gravityCommand(msg GravityMessage) (scene.Command, error) {
	cmd := scene.Command{Kind: scene.CmdSetGravity}
	var values [3]float32
	set := 0
	for i, v := range []*float32{msg.X, msg.Y, msg.Z} {
		if v == nil {
			cmd.Keep[i] = true
			continue
		}
		if *v < -GravityLimit || *v > GravityLimit {
			return scene.Command{}, fmt.Errorf("gravity %c = %v outside [-%d, %d]", "xyz"[i], *v, GravityLimit, GravityLimit)
		}
		values[i] = *v
		set++
	}
	if set == 0 {
		return scene.Command{}, errors.New("gravity message sets no axis")
	}
	cmd.Gravity = math.Vec3{X: values[0], Y: values[1], Z: values[2]}
	return cmd, nil
}
