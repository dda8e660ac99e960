package srep

import (
	"slices"
	"strconv"
	"strings"
	"unicode"
)

// Replacement renames tag Old to New.
type Replacement struct {
	Old, New int
}

// Stanza is one tensor term: a name, an instance id, a conjugate flag and
// ordered input and output legs.
//
// Text form:
//
//	name [conj] [id] "(" inputs ["|" outputs] ")"
//
// e.g. "u0(f0,f1|s0)", "w'3(s2|s4)" or the root "r(s3,s4)".
type Stanza struct {
	name      string
	id        int
	conjugate bool
	ins       []Leg
	outs      []Leg
	hasOuts   bool

	maxTag [3]int
	counts [3]int
}

// ConjugateMark is written between a stanza's name and id when it is conjugated.
const ConjugateMark = '\''

// NewStanza creates a stanza from its parts. The output list is rendered
// whenever outs is non-nil.
func NewStanza(name string, id int, conjugate bool, ins, outs []Leg) *Stanza {
	s := &Stanza{
		name:      name,
		id:        id,
		conjugate: conjugate,
		ins:       slices.Clone(ins),
		outs:      slices.Clone(outs),
		hasOuts:   outs != nil,
	}
	s.Refresh()
	return s
}

// ParseStanza parses a single stanza. Whitespace is ignored.
func ParseStanza(text string) (*Stanza, error) {
	str := stripSpace(text)
	i := 0
	for i < len(str) && isLetter(str[i]) {
		i++
	}
	if i == 0 {
		return nil, syntaxErrorf(str, 0, "expected tensor name")
	}
	s := &Stanza{name: str[:i]}

	if i < len(str) && (str[i] == ConjugateMark || str[i] == '*') {
		s.conjugate = true
		i++
	}

	start := i
	for i < len(str) && str[i] >= '0' && str[i] <= '9' {
		i++
	}
	if i > start {
		id, err := strconv.Atoi(str[start:i])
		if err != nil {
			return nil, syntaxErrorf(str, start, "invalid id %q", str[start:i])
		}
		s.id = id
	}

	if i >= len(str) || str[i] != '(' {
		return nil, syntaxErrorf(str, i, "expected '('")
	}
	if str[len(str)-1] != ')' {
		return nil, syntaxErrorf(str, len(str)-1, "expected ')'")
	}
	body := str[i+1 : len(str)-1]
	if strings.ContainsAny(body, "()") {
		return nil, syntaxErrorf(str, i+1, "unexpected parenthesis in leg list")
	}

	lists := strings.Split(body, "|")
	if len(lists) > 2 {
		return nil, syntaxErrorf(str, i+1, "more than one '|'")
	}

	var err error
	if s.ins, err = parseLegList(str, i+1, lists[0]); err != nil {
		return nil, err
	}
	if len(lists) == 2 {
		s.hasOuts = true
		if s.outs, err = parseLegList(str, i+2+len(lists[0]), lists[1]); err != nil {
			return nil, err
		}
	}

	s.Refresh()
	return s, nil
}

func parseLegList(input string, pos int, list string) ([]Leg, error) {
	if list == "" {
		return nil, nil
	}
	toks := strings.Split(list, ",")
	legs := make([]Leg, 0, len(toks))
	for _, tok := range toks {
		leg, ok := parseLeg(tok)
		if !ok {
			return nil, syntaxErrorf(input, pos, "invalid leg %q", tok)
		}
		legs = append(legs, leg)
		pos += len(tok) + 1
	}
	return legs, nil
}

// Name returns the tensor category label, e.g. "u".
func (s *Stanza) Name() string { return s.name }

// ID returns the instance number.
func (s *Stanza) ID() int { return s.id }

// IsConjugate reports whether the stanza carries the adjoint marker.
func (s *Stanza) IsConjugate() bool { return s.conjugate }

// Ins returns the number of input legs.
func (s *Stanza) Ins() int { return len(s.ins) }

// Outs returns the number of output legs.
func (s *Stanza) Outs() int { return len(s.outs) }

// Arity returns the total number of legs.
func (s *Stanza) Arity() int { return len(s.ins) + len(s.outs) }

// HasOutputList reports whether the text form carries a '|' section.
func (s *Stanza) HasOutputList() bool { return s.hasOuts }

// Leg returns leg j in direction dir.
func (s *Stanza) Leg(dir Direction, j int) Leg {
	if dir == In {
		return s.ins[j]
	}
	return s.outs[j]
}

// LegType returns the type of leg j in direction dir.
func (s *Stanza) LegType(j int, dir Direction) LegType {
	return s.Leg(dir, j).Type
}

// LegTag returns the tag of leg j in direction dir.
func (s *Stanza) LegTag(j int, dir Direction) int {
	return s.Leg(dir, j).Tag
}

// Legs returns a copy of the legs in direction dir.
func (s *Stanza) Legs(dir Direction) []Leg {
	if dir == In {
		return slices.Clone(s.ins)
	}
	return slices.Clone(s.outs)
}

// AllLegs returns a copy of the input legs followed by the output legs.
func (s *Stanza) AllLegs() []Leg {
	return append(slices.Clone(s.ins), s.outs...)
}

// MaxTag returns the largest tag of the given type, or -1 if there is none.
func (s *Stanza) MaxTag(typ LegType) int {
	return s.maxTag[typ]
}

// Count returns the number of legs of the given type.
func (s *Stanza) Count(typ LegType) int {
	return s.counts[typ]
}

// Conjugate toggles the adjoint marker. Input and output roles are unchanged.
func (s *Stanza) Conjugate() {
	s.conjugate = !s.conjugate
}

// ReplaceTags renames tags of legs of type typ. All replacements apply
// simultaneously, so swaps such as {0,1},{1,0} work. Refresh is called.
func (s *Stanza) ReplaceTags(replacements []Replacement, typ LegType) {
	if len(replacements) == 0 {
		return
	}
	m := make(map[int]int, len(replacements))
	for _, r := range replacements {
		m[r.Old] = r.New
	}
	s.replace(m, typ)
	s.Refresh()
}

func (s *Stanza) replace(m map[int]int, typ LegType) {
	for _, legs := range [][]Leg{s.ins, s.outs} {
		for j := range legs {
			if legs[j].Type != typ {
				continue
			}
			if n, ok := m[legs[j].Tag]; ok {
				legs[j].Tag = n
			}
		}
	}
}

// Refresh recomputes cached per-type counts and maximum tags. Call it after
// rewriting tags through anything other than ReplaceTags.
func (s *Stanza) Refresh() {
	s.maxTag = [3]int{-1, -1, -1}
	s.counts = [3]int{}
	for _, legs := range [][]Leg{s.ins, s.outs} {
		for _, l := range legs {
			s.counts[l.Type]++
			s.maxTag[l.Type] = max(s.maxTag[l.Type], l.Tag)
		}
	}
}

// Clone returns a deep copy.
func (s *Stanza) Clone() *Stanza {
	c := *s
	c.ins = slices.Clone(s.ins)
	c.outs = slices.Clone(s.outs)
	return &c
}

// Equal reports whether two stanzas have the same name, id, conjugate flag and legs.
func (s *Stanza) Equal(other *Stanza) bool {
	return s.name == other.name &&
		s.id == other.id &&
		s.conjugate == other.conjugate &&
		slices.Equal(s.ins, other.ins) &&
		slices.Equal(s.outs, other.outs)
}

// String renders the stanza in srep text form.
func (s *Stanza) String() string {
	var b strings.Builder
	b.WriteString(s.name)
	if s.conjugate {
		b.WriteByte(ConjugateMark)
	}
	b.WriteString(strconv.Itoa(s.id))
	b.WriteByte('(')
	writeLegs(&b, s.ins)
	if s.hasOuts || len(s.outs) > 0 {
		b.WriteByte('|')
		writeLegs(&b, s.outs)
	}
	b.WriteByte(')')
	return b.String()
}

func writeLegs(b *strings.Builder, legs []Leg) {
	for j, l := range legs {
		if j > 0 {
			b.WriteByte(',')
		}
		b.WriteString(l.String())
	}
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
