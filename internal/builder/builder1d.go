// Package builder generates srep text for layered 1-D binary MERA networks
// and the energy terms <psi|h|psi> used to optimise them.
package builder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/born-ml/mera/internal/srep"
)

// Builder1D lays out disentanglers (u), isometries (w) and a root (r0) for a
// chain of sites. Free tags 0..sites-1 are the physical sites.
type Builder1D struct {
	sites int
	srep  strings.Builder
}

// NewBuilder1D builds the network. Only arity 2 is supported and sites must be
// a power of two no smaller than 4.
func NewBuilder1D(sites, arity int, periodic bool) (*Builder1D, error) {
	if arity != 2 {
		return nil, fmt.Errorf("arity must be 2, got %d", arity)
	}
	if sites < 4 || sites&(sites-1) != 0 {
		return nil, fmt.Errorf("sites must be a power of 2 and at least 4, got %d", sites)
	}

	b := &Builder1D{sites: sites}
	tensors := sites / 2
	layer := 0
	summed := 0
	savedForU := 0
	idsU, idsW := 0, 0
	for tensors > 1 {
		savedForW := summed
		periodicLast := b.uLayer(&summed, &idsU, savedForU, tensors, periodic, layer)
		savedForU = summed
		b.wLayer(&summed, &idsW, savedForW, tensors, periodic, periodicLast, layer)
		tensors /= 2
		layer++
	}

	fmt.Fprintf(&b.srep, "r0(s%d,s%d)", summed-2, summed-1)
	return b, nil
}

// Sites returns the number of physical sites.
func (b *Builder1D) Sites() int {
	return b.sites
}

// Srep returns the network text.
func (b *Builder1D) Srep() string {
	return b.srep.String()
}

// BuildEnergyTerm closes psi around the two-site operator h<site> acting on
// site and its right neighbour (wrapping at the end), producing a scalar srep.
func (b *Builder1D) BuildEnergyTerm(site int, psi *srep.Srep) (*srep.Srep, error) {
	if site < 0 || site >= b.sites {
		return nil, fmt.Errorf("site %d out of range [0, %d)", site, b.sites)
	}
	sitep := site + 1
	if sitep == b.sites {
		sitep = 0
	}
	conn := b.sites

	lower := psi.Clone()
	lower.Conjugate()

	h, err := srep.ParseSrep(fmt.Sprintf("h%d(f%d,f%d|f%d,f%d)", site, conn, conn+1, site, sitep))
	if err != nil {
		return nil, err
	}
	upper, err := psi.Contract(h, []int{site, sitep}, false)
	if err != nil {
		return nil, err
	}
	upper.SimplifyFrees([]srep.Replacement{{Old: conn, New: site}, {Old: conn + 1, New: sitep}})
	if err := upper.Validate(); err != nil {
		return nil, err
	}

	term, err := upper.Contract(lower, nil, true)
	if err != nil {
		return nil, err
	}
	return term, nil
}

func (b *Builder1D) uLayer(summed, idsU *int, saved, n int, periodic bool, layer int) int {
	odd := layer&1 == 1
	periodicLast := 0
	for i := 0; i < n; i++ {
		var i0, i1 string
		if layer == 0 {
			i0 = "f" + strconv.Itoa(2*i)
			i1 = "f" + strconv.Itoa(2*i+1)
		} else {
			i0 = "s" + strconv.Itoa(saved)
			i1 = "s" + strconv.Itoa(saved+1)
			saved += 2
		}

		var twoOutputs bool
		if odd {
			twoOutputs = i+1 != n
		} else {
			twoOutputs = i != 0
		}

		fmt.Fprintf(&b.srep, "u%d(%s,%s|", *idsU, i0, i1)
		*idsU++

		if !odd && !twoOutputs && periodic {
			periodicLast = *summed
			*summed++
			fmt.Fprintf(&b.srep, "s%d,", periodicLast)
		}

		fmt.Fprintf(&b.srep, "s%d", *summed)
		*summed++

		if twoOutputs {
			fmt.Fprintf(&b.srep, ",s%d", *summed)
			*summed++
		} else if periodic && odd {
			periodicLast = *summed
			*summed++
			fmt.Fprintf(&b.srep, ",s%d", periodicLast)
		}
		b.srep.WriteByte(')')
	}
	return periodicLast
}

func (b *Builder1D) wLayer(summed, idsW *int, saved, n int, periodic bool, periodicLast, layer int) {
	odd := layer&1 == 1
	if periodic && !odd {
		saved++
	}
	for i := 0; i < n; i++ {
		var twoInputs bool
		if odd {
			twoInputs = i != 0
		} else {
			twoInputs = i+1 != n
		}

		fmt.Fprintf(&b.srep, "w%d(", *idsW)
		*idsW++

		if odd && !twoInputs && periodic {
			fmt.Fprintf(&b.srep, "s%d,", periodicLast)
		}

		fmt.Fprintf(&b.srep, "s%d", saved)
		saved++

		if twoInputs {
			fmt.Fprintf(&b.srep, ",s%d", saved)
			saved++
		} else if periodic && !odd {
			fmt.Fprintf(&b.srep, ",s%d", periodicLast)
		}

		fmt.Fprintf(&b.srep, "|s%d)", *summed)
		*summed++
	}
}
