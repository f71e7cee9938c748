package tilebatch

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// scriptStep represents a single action in an input script.
type scriptStep struct {
	Action string   `json:"action"`
	Player []string `json:"player,omitempty"`
	Camera []string `json:"camera,omitempty"`
	Frames int      `json:"frames,omitempty"`
	Label  string   `json:"label,omitempty"`
}

// inputScript is the top-level JSON structure for an input script.
type inputScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptedInput replays a JSON input script one frame at a time. It drives
// the demo headlessly and in tests:
//
//	{"steps": [
//	  {"action": "hold", "player": ["right"], "frames": 30},
//	  {"action": "wait", "frames": 10},
//	  {"action": "recenter"},
//	  {"action": "screenshot", "label": "after-recenter"},
//	  {"action": "quit"}
//	]}
type ScriptedInput struct {
	steps  []scriptStep
	cursor int
	remain int // frames left in the current hold/wait step
	done   bool
}

var directionNames = map[string]Direction{
	"up":    DirUp,
	"down":  DirDown,
	"left":  DirLeft,
	"right": DirRight,
}

// LoadInputScript parses a JSON input script.
func LoadInputScript(jsonData []byte) (*ScriptedInput, error) {
	var script inputScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, errors.Wrap(err, "parse input script")
	}
	if len(script.Steps) == 0 {
		return nil, errors.New("parse input script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "hold", "wait", "recenter", "debug", "screenshot", "quit":
		default:
			return nil, errors.Errorf("parse input script: step %d: unknown action %q", i, st.Action)
		}
		for _, name := range append(append([]string(nil), st.Player...), st.Camera...) {
			if _, ok := directionNames[name]; !ok {
				return nil, errors.Errorf("parse input script: step %d: unknown direction %q", i, name)
			}
		}
	}
	return &ScriptedInput{steps: script.Steps}, nil
}

// Done reports whether every step has been replayed.
func (s *ScriptedInput) Done() bool {
	return s.done
}

// Poll implements InputSource. After the last step it returns an empty Input.
func (s *ScriptedInput) Poll() Input {
	if s.done {
		return Input{}
	}
	st := s.steps[s.cursor]

	var in Input
	switch st.Action {
	case "hold":
		in.Player = namedDirections(st.Player)
		in.Camera = namedDirections(st.Camera)
	case "recenter":
		in.Recenter = true
	case "debug":
		in.Debug = true
	case "screenshot":
		in.Screenshot = sanitizeLabel(st.Label)
	case "quit":
		in.Quit = true
	}

	if st.Action == "hold" || st.Action == "wait" {
		if s.remain == 0 {
			s.remain = max(st.Frames, 1)
		}
		s.remain--
		if s.remain > 0 {
			return in
		}
	}
	s.cursor++
	if s.cursor >= len(s.steps) {
		s.done = true
	}
	return in
}

func namedDirections(names []string) Direction {
	var d Direction
	for _, n := range names {
		d |= directionNames[n]
	}
	return d
}
