package srep

import (
	"fmt"
	"slices"
	"strings"
)

// Srep is an ordered sequence of stanzas describing a tensor network.
// Stanza order is the textual order, not an evaluation order.
type Srep struct {
	stanzas []*Stanza
}

// ParseSrep parses concatenated stanzas such as "u0(f0,f1|s0)w0(s0|s1)r(s1)".
// An empty string yields an empty Srep.
func ParseSrep(text string) (*Srep, error) {
	str := stripSpace(text)
	sr := &Srep{}
	pos := 0
	for pos < len(str) {
		end := strings.IndexByte(str[pos:], ')')
		if end < 0 {
			return nil, syntaxErrorf(str, pos, "unterminated stanza")
		}
		st, err := ParseStanza(str[pos : pos+end+1])
		if err != nil {
			return nil, err
		}
		sr.stanzas = append(sr.stanzas, st)
		pos += end + 1
	}
	return sr, nil
}

// NewSrep creates a Srep that takes ownership of the given stanzas.
func NewSrep(stanzas ...*Stanza) *Srep {
	return &Srep{stanzas: stanzas}
}

// Len returns the number of stanzas.
func (sr *Srep) Len() int {
	return len(sr.stanzas)
}

// Stanza returns stanza i. The stanza is shared, not copied; call Refresh
// after mutating its legs directly.
func (sr *Srep) Stanza(i int) *Stanza {
	return sr.stanzas[i]
}

// Stanzas returns the stanza slice.
func (sr *Srep) Stanzas() []*Stanza {
	return sr.stanzas
}

// String renders the srep as concatenated stanzas.
func (sr *Srep) String() string {
	var b strings.Builder
	for _, st := range sr.stanzas {
		b.WriteString(st.String())
	}
	return b.String()
}

// Clone returns a deep copy.
func (sr *Srep) Clone() *Srep {
	c := &Srep{stanzas: make([]*Stanza, len(sr.stanzas))}
	for i, st := range sr.stanzas {
		c.stanzas[i] = st.Clone()
	}
	return c
}

// Conjugate toggles the adjoint marker on every stanza.
func (sr *Srep) Conjugate() {
	for _, st := range sr.stanzas {
		st.Conjugate()
	}
}

// MaxTag returns the largest tag of the given type, or -1 if there is none.
func (sr *Srep) MaxTag(typ LegType) int {
	m := -1
	for _, st := range sr.stanzas {
		m = max(m, st.MaxTag(typ))
	}
	return m
}

// Tags returns the distinct tags of the given type in ascending order.
func (sr *Srep) Tags(typ LegType) []int {
	var tags []int
	for tag := range sr.occurrences(typ) {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// Occurrences returns the locations of every leg of the given type, by tag.
func (sr *Srep) Occurrences(typ LegType) map[int][]LegRef {
	occ := make(map[int][]LegRef)
	sr.eachLeg(func(ref LegRef, l *Leg) {
		if l.Type == typ {
			occ[l.Tag] = append(occ[l.Tag], ref)
		}
	})
	return occ
}

func (sr *Srep) occurrences(typ LegType) map[int]int {
	counts := make(map[int]int)
	sr.eachLeg(func(_ LegRef, l *Leg) {
		if l.Type == typ {
			counts[l.Tag]++
		}
	})
	return counts
}

// Adjacency maps each summed tag to the two legs it connects, built in a
// single scan. Call Validate first; tags on a number of legs other than two
// are omitted.
func (sr *Srep) Adjacency() map[int][2]LegRef {
	adj := make(map[int][2]LegRef)
	for tag, refs := range sr.Occurrences(Summed) {
		if len(refs) == 2 {
			adj[tag] = [2]LegRef{refs[0], refs[1]}
		}
	}
	return adj
}

// Validate checks that every summed tag occurs on exactly two legs.
func (sr *Srep) Validate() error {
	counts := sr.occurrences(Summed)
	for _, tag := range sortedKeys(counts) {
		if n := counts[tag]; n != 2 {
			return &ValidationError{
				Type:    "summed_count",
				Tag:     tag,
				Details: fmt.Sprintf("summed tag appears on %d legs, want 2", n),
			}
		}
	}
	return nil
}

// IsValid reports whether Validate succeeds. With strict set the validation
// error is returned as well.
func (sr *Srep) IsValid(strict bool) (bool, error) {
	err := sr.Validate()
	if err != nil && strict {
		return false, err
	}
	return err == nil, nil
}

// Simplify renames summed tags with the given replacements, then renumbers
// them 0..k-1 in order of first appearance.
func (sr *Srep) Simplify(replacements []Replacement) {
	for _, st := range sr.stanzas {
		st.ReplaceTags(replacements, Summed)
	}

	compact := make(map[int]int)
	sr.eachLeg(func(_ LegRef, l *Leg) {
		if l.Type != Summed {
			return
		}
		if _, ok := compact[l.Tag]; !ok {
			compact[l.Tag] = len(compact)
		}
	})
	for _, st := range sr.stanzas {
		st.replace(compact, Summed)
	}
	sr.Refresh()
}

// SimplifyFrees renames free tags with the given replacements.
func (sr *Srep) SimplifyFrees(replacements []Replacement) {
	for _, st := range sr.stanzas {
		st.ReplaceTags(replacements, Free)
	}
}

// Refresh recomputes cached state of every stanza.
func (sr *Srep) Refresh() {
	for _, st := range sr.stanzas {
		st.Refresh()
	}
}

// Contract joins sr with other and returns the result; neither operand changes.
//
// Each tag in tags must be free exactly once in sr and exactly once in other;
// the two legs become a new summed connection. When relabel is set, tags is
// ignored and every free tag common to both operands is contracted, which is
// how an expression is closed against its own conjugate. Summed tags of other
// are shifted past those of sr.
func (sr *Srep) Contract(other *Srep, tags []int, relabel bool) (*Srep, error) {
	left := sr.Clone()
	right := other.Clone()

	offset := left.MaxTag(Summed) + 1
	right.eachLeg(func(_ LegRef, l *Leg) {
		if l.Type == Summed {
			l.Tag += offset
		}
	})
	right.Refresh()
	next := max(left.MaxTag(Summed), right.MaxTag(Summed)) + 1

	if relabel {
		tags = intersect(left.Tags(Free), right.Tags(Free))
	}

	for _, tag := range tags {
		lref, err := left.uniqueFree(tag, "receiver")
		if err != nil {
			return nil, err
		}
		rref, err := right.uniqueFree(tag, "operand")
		if err != nil {
			return nil, err
		}
		*left.leg(lref) = Leg{Type: Summed, Tag: next}
		*right.leg(rref) = Leg{Type: Summed, Tag: next}
		next++
	}

	result := &Srep{stanzas: append(left.stanzas, right.stanzas...)}
	result.Refresh()

	if err := result.Validate(); err != nil {
		return nil, err
	}
	counts := result.occurrences(Free)
	for _, tag := range sortedKeys(counts) {
		if counts[tag] > 2 {
			return nil, &ValidationError{
				Type:    "free_count",
				Tag:     tag,
				Details: fmt.Sprintf("free tag appears on %d legs after contraction", counts[tag]),
			}
		}
	}
	return result, nil
}

func (sr *Srep) uniqueFree(tag int, side string) (LegRef, error) {
	refs := sr.Occurrences(Free)[tag]
	if len(refs) != 1 {
		return LegRef{}, &ValidationError{
			Type:    "contract_tag",
			Tag:     tag,
			Details: fmt.Sprintf("%s has %d free legs with this tag, want 1", side, len(refs)),
		}
	}
	return refs[0], nil
}

func (sr *Srep) leg(ref LegRef) *Leg {
	st := sr.stanzas[ref.Stanza]
	if ref.Dir == In {
		return &st.ins[ref.Index]
	}
	return &st.outs[ref.Index]
}

// eachLeg visits every leg, inputs before outputs within a stanza.
func (sr *Srep) eachLeg(fn func(ref LegRef, l *Leg)) {
	for i, st := range sr.stanzas {
		for j := range st.ins {
			fn(LegRef{Stanza: i, Dir: In, Index: j}, &st.ins[j])
		}
		for j := range st.outs {
			fn(LegRef{Stanza: i, Dir: Out, Index: j}, &st.outs[j])
		}
	}
}

func intersect(a, b []int) []int {
	var out []int
	for _, x := range a {
		if _, found := slices.BinarySearch(b, x); found {
			out = append(out, x)
		}
	}
	return out
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
