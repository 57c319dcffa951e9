package horary

// State is the phase of a horary search.
type State int

// Search states.
const (
	Seeding State = iota
	Scanning
	Matched
	Exhausted
)

var stateNames = [...]string{"seeding", "scanning", "matched", "exhausted"}

// String returns the state name.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
