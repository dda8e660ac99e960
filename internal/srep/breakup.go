package srep

// TemporaryName is the stanza name given to intermediate results of a breakup.
// When the equation already uses it, the letter is repeated until the name is
// free ("tt", "ttt", ...).
const TemporaryName = "t"

// Definition is one step of an evaluation plan: LHS=RHS, where RHS has at
// most two stanzas.
type Definition struct {
	Name  string // Output tensor name
	ID    int    // Output tensor id
	LHS   string // Output signature text
	RHS   string // Defining expression text
	Final bool   // Set on the step producing the equation's own output
}

// String renders "LHS=RHS".
func (d Definition) String() string {
	return d.LHS + "=" + d.RHS
}

// Equation parses the definition.
func (d Definition) Equation() (*Equation, error) {
	return ParseEquation(d.String())
}

// Breakup splits eq into pairwise contractions evaluated left to right:
//
//	t0 = S0 S1
//	t1 = t0 S2
//	...
//	lhs = t(n-3) S(n-1)
//
// A temporary keeps the legs of its pair that connect outside the pair: outer
// free legs with their tags, and summed legs whose partner is not yet merged.
// In a definition the latter become free legs numbered past every outer free
// tag; where the temporary is consumed they keep their summed tag. The order is
// fixed textual order, not a cost-optimised one.
//
// Equations with fewer than three stanzas yield a single final definition.
func Breakup(eq *Equation) ([]Definition, error) {
	if err := eq.Validate(); err != nil {
		return nil, err
	}

	rhs := eq.RHS()
	n := rhs.Len()
	if n < 3 {
		return []Definition{finalDefinition(eq, eq.RHS().String())}, nil
	}

	name := TemporaryNameFor(eq)
	nextFree := max(eq.LHS().MaxTag(Free), rhs.MaxTag(Free)) + 1
	defs := make([]Definition, 0, n-1)
	prev := rhs.Stanza(0).Clone()
	for k := 1; k < n; k++ {
		right := rhs.Stanza(k)
		if k == n-1 {
			defs = append(defs, finalDefinition(eq, prev.String()+right.String()))
			break
		}

		pair := NewSrep(prev.Clone(), right.Clone())
		counts := pair.occurrences(Summed)
		external := func(l Leg) bool {
			return l.Type == Free || (l.Type == Summed && counts[l.Tag] == 1)
		}

		local := make(map[int]int) // outer summed tag -> free tag inside the definition
		seenFree := make(map[int]bool)
		var outerIns, outerOuts, defIns, defOuts []Leg
		pair.eachLeg(func(ref LegRef, l *Leg) {
			if !external(*l) {
				return
			}
			outer := *l
			if outer.Type == Free {
				if seenFree[outer.Tag] {
					return
				}
				seenFree[outer.Tag] = true
			} else {
				local[outer.Tag] = nextFree
				nextFree++
				*l = Leg{Type: Free, Tag: local[outer.Tag]}
			}
			if ref.Dir == In {
				outerIns = append(outerIns, outer)
				defIns = append(defIns, *l)
			} else {
				outerOuts = append(outerOuts, outer)
				defOuts = append(defOuts, *l)
			}
		})
		pair.Refresh()

		id := k - 1
		lhs := NewStanza(name, id, false, defIns, nilIfEmpty(defOuts))
		defs = append(defs, Definition{
			Name: name,
			ID:   id,
			LHS:  lhs.String(),
			RHS:  pair.String(),
		})
		prev = NewStanza(name, id, false, outerIns, nilIfEmpty(outerOuts))
	}
	return defs, nil
}

// TemporaryNameFor returns the temporary name Breakup uses for eq: the
// shortest run of TemporaryName not naming any stanza of the equation.
func TemporaryNameFor(eq *Equation) string {
	used := map[string]bool{eq.OutputName(): true}
	for _, st := range eq.RHS().Stanzas() {
		used[st.Name()] = true
	}
	name := TemporaryName
	for used[name] {
		name += TemporaryName
	}
	return name
}

func finalDefinition(eq *Equation, rhs string) Definition {
	return Definition{
		Name:  eq.OutputName(),
		ID:    eq.OutputID(),
		LHS:   eq.LHS().String(),
		RHS:   rhs,
		Final: true,
	}
}

func nilIfEmpty(legs []Leg) []Leg {
	if len(legs) == 0 {
		return nil
	}
	return legs
}
