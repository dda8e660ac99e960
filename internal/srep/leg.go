package srep

import "strconv"

// Direction tells whether a leg is an input or an output of its tensor.
type Direction int

// Leg directions.
const (
	In Direction = iota
	Out
)

// String returns "in" or "out".
func (d Direction) String() string {
	if d == In {
		return "in"
	}
	return "out"
}

// LegType classifies how a leg's tag is bound during evaluation.
type LegType int

// Leg types.
const (
	// Free legs share their tag with the output signature of the equation.
	Free LegType = iota
	// Summed legs are contracted: the tag appears on exactly two legs.
	Summed
	// Dummy legs are always evaluated at index 0.
	Dummy
)

// String returns a human-readable name for the leg type.
func (t LegType) String() string {
	switch t {
	case Free:
		return "free"
	case Summed:
		return "summed"
	case Dummy:
		return "dummy"
	default:
		return "unknown"
	}
}

// prefix returns the text prefix of the type, 0 for dummy.
func (t LegType) prefix() byte {
	switch t {
	case Free:
		return 'f'
	case Summed:
		return 's'
	default:
		return 0
	}
}

// Leg is one argument position of a stanza.
type Leg struct {
	Type LegType
	Tag  int
}

// String renders the leg as it appears in srep text.
func (l Leg) String() string {
	if p := l.Type.prefix(); p != 0 {
		return string(p) + strconv.Itoa(l.Tag)
	}
	return strconv.Itoa(l.Tag)
}

// parseLeg parses one comma-separated leg token.
func parseLeg(tok string) (Leg, bool) {
	if tok == "" {
		return Leg{}, false
	}
	typ := Dummy
	switch tok[0] {
	case 'f':
		typ, tok = Free, tok[1:]
	case 's':
		typ, tok = Summed, tok[1:]
	}
	if tok == "" || tok[0] == '+' || tok[0] == '-' {
		return Leg{}, false
	}
	tag, err := strconv.Atoi(tok)
	if err != nil {
		return Leg{}, false
	}
	return Leg{Type: typ, Tag: tag}, true
}

// LegRef locates a leg inside a Srep.
type LegRef struct {
	Stanza int
	Dir    Direction
	Index  int
}
