package battle

import "encoding/json"

// Event is a trace entry emitted while a battle is processed.
type Event struct {
	Phase   PhaseID        `json:"phase"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

const (
	EventPhase     = "Phase"
	EventSiegeHeld = "SiegeHeld"
	EventWinner    = "Winner"
	EventKilled    = "CommanderKilled"
	EventCaptured  = "CommanderCaptured"
	EventPromoted  = "CommanderPromoted"
	EventSkill     = "CommanderSkill"
	EventRefund    = "PopulationRefund"
)

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
