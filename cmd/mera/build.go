package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/born-ml/mera/internal/builder"
	"github.com/born-ml/mera/internal/srep"
)

func buildCmd(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(stderr)
	sites := fs.Int("sites", 4, "number of physical sites (power of 2, >= 4)")
	periodic := fs.Bool("periodic", false, "periodic boundary conditions")
	energy := fs.Bool("energy", false, "also print the energy term of every site")
	if err := fs.Parse(args); err != nil {
		return err
	}

	b, err := builder.NewBuilder1D(*sites, 2, *periodic)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, b.Srep())
	if !*energy {
		return nil
	}

	psi, err := srep.ParseSrep(b.Srep())
	if err != nil {
		return err
	}
	for site := 0; site < b.Sites(); site++ {
		term, err := b.BuildEnergyTerm(site, psi)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "e%d()=%s\n", site, term)
	}
	return nil
}
