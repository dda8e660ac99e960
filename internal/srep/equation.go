package srep

import (
	"fmt"
	"slices"
	"strings"
)

// Equation pairs an output signature (LHS) with its defining expression (RHS),
// written "lhs=rhs".
type Equation struct {
	lhs *Stanza
	rhs *Srep
}

// ParseEquation parses "lhs=rhs". The text must contain exactly one '='.
func ParseEquation(text string) (*Equation, error) {
	parts := strings.Split(text, "=")
	if len(parts) != 2 {
		return nil, &SyntaxError{Input: text, Pos: -1, Details: fmt.Sprintf("expected exactly one '=', found %d", len(parts)-1)}
	}
	lhs, err := ParseStanza(parts[0])
	if err != nil {
		return nil, err
	}
	rhs, err := ParseSrep(parts[1])
	if err != nil {
		return nil, err
	}
	return &Equation{lhs: lhs, rhs: rhs}, nil
}

// NewEquation creates an equation that takes ownership of lhs and rhs.
func NewEquation(lhs *Stanza, rhs *Srep) *Equation {
	return &Equation{lhs: lhs, rhs: rhs}
}

// LHS returns the output signature.
func (e *Equation) LHS() *Stanza {
	return e.lhs
}

// RHS returns the defining expression. It is shared, not copied.
func (e *Equation) RHS() *Srep {
	return e.rhs
}

// SetRHS replaces the defining expression.
func (e *Equation) SetRHS(rhs *Srep) {
	e.rhs = rhs
}

// OutputName returns the name of the output tensor.
func (e *Equation) OutputName() string {
	return e.lhs.Name()
}

// OutputID returns the instance id of the output tensor.
func (e *Equation) OutputID() int {
	return e.lhs.ID()
}

// String renders "lhs=rhs".
func (e *Equation) String() string {
	return e.lhs.String() + "=" + e.rhs.String()
}

// Clone returns a deep copy.
func (e *Equation) Clone() *Equation {
	return &Equation{lhs: e.lhs.Clone(), rhs: e.rhs.Clone()}
}

// Canonicalize renumbers the free tags of the LHS to 0..k-1, input legs
// before output legs, and applies the same renaming to the RHS.
// Applying it again is a no-op.
func (e *Equation) Canonicalize() {
	frees := e.frees()
	if len(frees) == 0 {
		return
	}
	e.rhs.SimplifyFrees(frees)
	e.lhs.ReplaceTags(frees, Free)
}

func (e *Equation) frees() []Replacement {
	var out []Replacement
	seen := make(map[int]bool)
	for _, l := range e.lhs.AllLegs() {
		if l.Type != Free || seen[l.Tag] {
			continue
		}
		seen[l.Tag] = true
		out = append(out, Replacement{Old: l.Tag, New: len(out)})
	}
	return out
}

// Validate checks the RHS and that the free tags used by the RHS are exactly
// those declared by the LHS.
func (e *Equation) Validate() error {
	if err := e.rhs.Validate(); err != nil {
		return err
	}
	if e.lhs.Count(Summed) > 0 {
		return &ValidationError{Type: "lhs_summed", Tag: e.lhs.MaxTag(Summed), Details: "output signature has a summed leg"}
	}

	declared := make(map[int]bool)
	for _, l := range e.lhs.AllLegs() {
		if l.Type != Free {
			continue
		}
		if declared[l.Tag] {
			return &ValidationError{Type: "lhs_duplicate", Tag: l.Tag, Details: "free tag declared twice by output signature"}
		}
		declared[l.Tag] = true
	}

	used := e.rhs.Tags(Free)
	for _, tag := range used {
		if !declared[tag] {
			return &ValidationError{Type: "free_mismatch", Tag: tag, Details: fmt.Sprintf("free tag not declared by %s", e.lhs)}
		}
		delete(declared, tag)
	}
	if len(declared) > 0 {
		unused := make([]int, 0, len(declared))
		for tag := range declared {
			unused = append(unused, tag)
		}
		slices.Sort(unused)
		return &ValidationError{Type: "free_mismatch", Tag: unused[0], Details: fmt.Sprintf("free tag of %s unused by expression", e.lhs)}
	}
	return nil
}
