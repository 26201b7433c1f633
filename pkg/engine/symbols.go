package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSymbol is returned when an input symbol name cannot be parsed.
var ErrUnknownSymbol = errors.New("engine: unknown input symbol")

// Symbol identifies one semantic input, independent of the physical key that
// produced it.
type Symbol uint8

// Input symbols understood by the controller.
const (
	MoveForward Symbol = iota
	MoveBack
	StrafeLeft
	StrafeRight
	Ascend
	Descend
	RotateLeft
	RotateRight
	LookUp
	LookDown
	RollCCW
	RollCW
	FocusNear
	FocusFar
	ApertureShrink
	ApertureGrow
	ToggleMode

	symbolCount
)

var symbolNames = [symbolCount]string{
	MoveForward:    "move-forward",
	MoveBack:       "move-back",
	StrafeLeft:     "strafe-left",
	StrafeRight:    "strafe-right",
	Ascend:         "ascend",
	Descend:        "descend",
	RotateLeft:     "rotate-left",
	RotateRight:    "rotate-right",
	LookUp:         "look-up",
	LookDown:       "look-down",
	RollCCW:        "roll-ccw",
	RollCW:         "roll-cw",
	FocusNear:      "focus-near",
	FocusFar:       "focus-far",
	ApertureShrink: "aperture-shrink",
	ApertureGrow:   "aperture-grow",
	ToggleMode:     "toggle-mode",
}

// String returns the kebab-case name of the symbol.
func (s Symbol) String() string {
	if s >= symbolCount {
		return fmt.Sprintf("symbol(%d)", uint8(s))
	}
	return symbolNames[s]
}

// ParseSymbol converts a symbol name back to a Symbol.
func ParseSymbol(name string) (Symbol, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s := Symbol(0); s < symbolCount; s++ {
		if symbolNames[s] == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSymbol, name)
}

// MarshalYAML implements yaml.Marshaler.
func (s Symbol) MarshalYAML() (interface{}, error) {
	return s.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Symbol) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}

	parsed, err := ParseSymbol(name)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// KeySet is the set of symbols held down during one poll. The zero value is
// the empty set.
type KeySet uint32

// Keys builds a KeySet from a list of symbols. Out of range symbols are ignored.
func Keys(symbols ...Symbol) KeySet {
	var ks KeySet
	for _, s := range symbols {
		ks = ks.Add(s)
	}
	return ks
}

// Add returns a copy of the set that also contains s.
func (ks KeySet) Add(s Symbol) KeySet {
	if s >= symbolCount {
		return ks
	}
	return ks | 1<<s
}

// Has reports whether s is in the set.
func (ks KeySet) Has(s Symbol) bool {
	return s < symbolCount && ks&(1<<s) != 0
}

// Empty reports whether no symbol is held.
func (ks KeySet) Empty() bool {
	return ks == 0
}

// Pressed returns the symbols that are in ks but were not in prev, i.e. the
// press transitions since the previous poll.
func (ks KeySet) Pressed(prev KeySet) KeySet {
	return ks &^ prev
}

// Symbols lists the members of the set in declaration order.
func (ks KeySet) Symbols() []Symbol {
	out := make([]Symbol, 0, symbolCount)
	for s := Symbol(0); s < symbolCount; s++ {
		if ks.Has(s) {
			out = append(out, s)
		}
	}
	return out
}

func (ks KeySet) String() string {
	names := make([]string, 0, symbolCount)
	for _, s := range ks.Symbols() {
		names = append(names, s.String())
	}
	return strings.Join(names, ",")
}
