package server

import (
	"github.com/nathoo/delvecore/cli"
	"github.com/nathoo/delvecore/engine"
	"github.com/nathoo/delvecore/types"
)

// Message is the JSON envelope for everything the server sends.
type Message struct {
	Type    string `json:"type"` // "hello", "result", "snapshot" or "error"
	Payload any    `json:"payload"`
	Sender  string `json:"sender"` // session ID
}

// Request is a message from the client. Type selects the action:
//
//	command    free text run through the parser, e.g. {"type":"command","input":"go north"}
//	move       {"dx":1,"dy":0}
//	pickup
//	use        {"slot":1}, 1-based like the "use" command
//	inventory
//	look
//	state      returns a snapshot without taking a turn
type Request struct {
	Type  string `json:"type"`
	Input string `json:"input,omitempty"`
	DX    int    `json:"dx,omitempty"`
	DY    int    `json:"dy,omitempty"`
	Slot  int    `json:"slot,omitempty"`
}

// ResultPayload is sent after each game command.
type ResultPayload struct {
	Output   []string `json:"output"`
	Consumed bool     `json:"consumed"`
	Move     string   `json:"move,omitempty"`
	Status   string   `json:"status"`
	State    Snapshot `json:"state"`
}

// ErrorPayload reports a request the server could not handle.
type ErrorPayload struct {
	Message string `json:"message"`
}

// Snapshot is the full visible game state.
type Snapshot struct {
	Session string            `json:"session"`
	Mode    string            `json:"mode"`
	Goal    string            `json:"goal"`
	Status  string            `json:"status"`
	Turn    int               `json:"turn"`
	Width   int               `json:"width"`
	Height  int               `json:"height"`
	Player  types.Player      `json:"player"`
	NPCs    []types.NPC       `json:"npcs"`
	Items   []types.WorldItem `json:"items"`
	Map     []string          `json:"map"`
	Log     []string          `json:"log"`
}

// snapshotOf captures eng's state. Slices are copied so the snapshot stays
// valid while the session keeps playing.
func snapshotOf(id string, eng *engine.Engine) Snapshot {
	s := eng.State
	return Snapshot{
		Session: id,
		Mode:    s.Condition.Name(),
		Goal:    s.Condition.WinDescription(),
		Status:  s.Status.String(),
		Turn:    s.TurnCount,
		Width:   s.World.Width,
		Height:  s.World.Height,
		Player:  eng.Player(),
		NPCs:    append([]types.NPC{}, s.NPCs...),
		Items:   append([]types.WorldItem{}, s.World.Items...),
		Map:     cli.RenderMap(eng),
		Log:     s.Log.Entries(),
	}
}
