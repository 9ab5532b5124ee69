package flow

import "fmt"

// State is the display state a submission ends in.
type State int

const (
	// StateIdle is the initial state and the state after an explicit reset.
	StateIdle State = iota
	// StateInvalidInput means the description was empty after trimming.
	StateInvalidInput
	// StateSuccess means the classifier output decoded as a JSON object.
	StateSuccess
	// StateParseError means the classifier output could not be decoded.
	StateParseError
	// StateUnavailable means the classifier call itself failed.
	StateUnavailable
)

var stateNames = map[State]string{
	StateIdle:         "idle",
	StateInvalidInput: "invalid_input",
	StateSuccess:      "success",
	StateParseError:   "parse_error",
	StateUnavailable:  "unavailable",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *State) UnmarshalText(text []byte) error {
	for state, name := range stateNames {
		if name == string(text) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown state: %q", string(text))
}

// Terminal reports whether the state ends a submission cycle.
func (s State) Terminal() bool {
	return s != StateIdle
}
