package playback

import (
	"fmt"
)

type State int32

const (
	StateIdle = State(iota)
	StatePlaying
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StateStopped:
		return "stopped"
	default:
		return fmt.Sprintf("unknown_state_%d", int32(s))
	}
}
