package scene

import "github.com/thirdlf03/zawa/pkg/math"

// CommandKind identifies an operator command.
type CommandKind int

const (
	CmdSetGravity CommandKind = iota
	CmdCycleCamera
	CmdReset
)

// String returns the command name used on the wire.
func (k CommandKind) String() string {
	switch k {
	case CmdSetGravity:
		return "gravity"
	case CmdCycleCamera:
		return "camera"
	case CmdReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Command is an operator request applied at the start of the next frame.
type Command struct {
	Kind    CommandKind
	Gravity math.Vec3 // CmdSetGravity only
	// Keep marks gravity axes (x, y, z) that retain their current value.
	Keep [3]bool
}

// merge returns current with the axes of cmd.Gravity not marked Keep.
func (cmd Command) merge(current math.Vec3) math.Vec3 {
	if !cmd.Keep[0] {
		current.X = cmd.Gravity.X
	}
	if !cmd.Keep[1] {
		current.Y = cmd.Gravity.Y
	}
	if !cmd.Keep[2] {
		current.Z = cmd.Gravity.Z
	}
	return current
}

// DefaultQueueSize is the number of commands buffered between frames.
const DefaultQueueSize = 64

// Queue carries commands from other goroutines into the frame loop. It
// outlives a session so that a rebuilt session keeps receiving commands.
type Queue struct {
	ch chan Command
}

// NewQueue creates a queue buffering up to size commands.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{ch: make(chan Command, size)}
}

// Post enqueues cmd without blocking. It returns false when the queue is
// full and the command was dropped.
func (q *Queue) Post(cmd Command) bool {
	select {
	case q.ch <- cmd:
		return true
	default:
		return false
	}
}

// Len returns the number of pending commands.
func (q *Queue) Len() int {
	return len(q.ch)
}

func (q *Queue) poll() (Command, bool) {
	select {
	case cmd := <-q.ch:
		return cmd, true
	default:
		return Command{}, false
	}
}
