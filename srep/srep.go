// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package srep provides the public API of the srep tensor-network notation.
//
// Example:
//
//	eq, err := srep.ParseEquation("e0(f0|f1)=a0(f0|s0)b0(s0|f1)")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	eq.Canonicalize()
//	steps, _ := srep.Breakup(eq)
package srep

import (
	"github.com/born-ml/mera/internal/srep"
)

// Type aliases for public API

// Direction tells whether a leg is an input or an output.
type Direction = srep.Direction

// Leg directions.
const (
	In  Direction = srep.In
	Out Direction = srep.Out
)

// LegType classifies a leg as free, summed or dummy.
type LegType = srep.LegType

// Leg types.
const (
	Free   LegType = srep.Free
	Summed LegType = srep.Summed
	Dummy  LegType = srep.Dummy
)

// Leg is one argument position of a stanza.
type Leg = srep.Leg

// LegRef locates a leg inside a Srep.
type LegRef = srep.LegRef

// Replacement renames tag Old to New.
type Replacement = srep.Replacement

// Stanza is one tensor term.
type Stanza = srep.Stanza

// Srep is an ordered sequence of stanzas.
type Srep = srep.Srep

// Equation pairs an output signature with its defining expression.
type Equation = srep.Equation

// Definition is one pairwise step produced by Breakup.
type Definition = srep.Definition

// SyntaxError reports unparsable text.
type SyntaxError = srep.SyntaxError

// ValidationError reports a structurally invalid srep or equation.
type ValidationError = srep.ValidationError

// Sentinel errors.
var (
	ErrSyntax     = srep.ErrSyntax
	ErrValidation = srep.ErrValidation
)

// TemporaryName is the stanza name of breakup intermediates.
const TemporaryName = srep.TemporaryName

// TemporaryNameFor returns the temporary name Breakup uses for eq.
func TemporaryNameFor(eq *Equation) string {
	return srep.TemporaryNameFor(eq)
}

// ConjugateMark marks a conjugated stanza in text form.
const ConjugateMark = srep.ConjugateMark

// NewStanza creates a stanza from its parts.
func NewStanza(name string, id int, conjugate bool, ins, outs []Leg) *Stanza {
	return srep.NewStanza(name, id, conjugate, ins, outs)
}

// NewSrep creates a Srep from stanzas.
func NewSrep(stanzas ...*Stanza) *Srep {
	return srep.NewSrep(stanzas...)
}

// NewEquation creates an equation from its sides.
func NewEquation(lhs *Stanza, rhs *Srep) *Equation {
	return srep.NewEquation(lhs, rhs)
}

// ParseStanza parses a single stanza.
func ParseStanza(text string) (*Stanza, error) {
	return srep.ParseStanza(text)
}

// ParseSrep parses concatenated stanzas.
func ParseSrep(text string) (*Srep, error) {
	return srep.ParseSrep(text)
}

// ParseEquation parses "lhs=rhs".
func ParseEquation(text string) (*Equation, error) {
	return srep.ParseEquation(text)
}

// Breakup splits an equation into left-to-right pairwise contractions.
func Breakup(eq *Equation) ([]Definition, error) {
	return srep.Breakup(eq)
}
