package eval

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/born-ml/mera/internal/srep"
	"github.com/born-ml/mera/internal/tensor"
)

// Config configures an Evaluator.
type Config struct {
	// Breakup evaluates through pairwise temporaries instead of one brute-force
	// sum over every summed index.
	Breakup bool

	// Logger receives evaluation traces. nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns a leaf-mode configuration without logging.
func DefaultConfig() Config {
	return Config{Breakup: false}
}

// binding is a leg reduced to what the inner loop needs.
type binding struct {
	typ srep.LegType
	tag int
}

// factor is one stanza of the expression bound to its tensor.
type factor[T tensor.Scalar] struct {
	t    *tensor.Dense[T]
	conj bool
	legs []binding
	args []int
}

// Evaluator computes the output tensor of an equation from tensors in a registry.
//
// In leaf mode the RHS is evaluated directly: for every combination of free
// index values, the product of all factors is summed over every combination of
// summed index values. In composite mode the equation is first split by
// srep.Breakup and each step is evaluated in leaf mode, with temporaries held
// in a private scope of the registry.
//
// Scratch state belongs to the instance, so distinct evaluators may run
// concurrently as long as they do not write the same output tensor.
type Evaluator[T tensor.Scalar] struct {
	eq     *srep.Equation
	reg    *Registry[T]
	out    Handle
	cfg    Config
	logger *slog.Logger

	plan  []srep.Definition
	temps *Registry[T]

	lhsLegs    []srep.Leg
	free       []int
	freeDims   []int
	summed     []int
	summedDims []int
	outIdx     []int
	factors    []factor[T]
}

// New creates an evaluator for eq. The output tensor named by the LHS must be
// registered; it is resized when the evaluator runs. eq is copied.
func New[T tensor.Scalar](eq *srep.Equation, reg *Registry[T], cfg Config) (*Evaluator[T], error) {
	out, err := reg.OutputOf(eq)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Evaluator[T]{
		eq:     eq.Clone(),
		reg:    reg,
		out:    out,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Equation returns the evaluator's copy of the equation.
func (e *Evaluator[T]) Equation() *srep.Equation {
	return e.eq
}

// Output returns the output tensor.
func (e *Evaluator[T]) Output() *tensor.Dense[T] {
	return e.reg.Tensor(e.out)
}

// Plan returns the breakup steps of the last composite run, nil in leaf mode.
func (e *Evaluator[T]) Plan() []srep.Definition {
	return e.plan
}

// Temporaries returns the registry scope holding the last run's temporaries,
// nil in leaf mode.
func (e *Evaluator[T]) Temporaries() *Registry[T] {
	return e.temps
}

// Run evaluates the equation into the output tensor.
func (e *Evaluator[T]) Run() error {
	if e.cfg.Breakup {
		return e.runComposite()
	}
	return e.runLeaf()
}

// Scalar returns the value of an output tensor without legs.
func (e *Evaluator[T]) Scalar() (T, error) {
	out := e.Output()
	if out.Args() != 0 {
		var zero T
		return zero, &UnsupportedShapeError{
			Stanza:  e.eq.LHS().String(),
			Details: fmt.Sprintf("output has %d legs, not a scalar", out.Args()),
		}
	}
	return out.Data()[0], nil
}

// PrintResult writes one "flatIndex value" line per element of the output.
func (e *Evaluator[T]) PrintResult(w io.Writer) error {
	var err error
	e.Output().Each(func(offset int, _ []int, v T) {
		if err == nil {
			_, err = fmt.Fprintf(w, "%d %v\n", offset, v)
		}
	})
	return err
}

func (e *Evaluator[T]) runComposite() error {
	plan, err := srep.Breakup(e.eq)
	if err != nil {
		return err
	}
	e.plan = plan
	e.temps = e.reg.Scope()

	for _, def := range plan {
		eq, err := def.Equation()
		if err != nil {
			return errors.Wrapf(err, "parse step %s", def)
		}
		if def.Final {
			e.logger.Info("definition of output", slog.String("output", e.eq.LHS().String()), slog.String("definition", def.RHS))
			eq.RHS().Simplify(nil)
		} else {
			e.logger.Debug("definition of temporary", slog.String("temporary", def.LHS), slog.String("definition", def.RHS))
			eq.Canonicalize()
			if _, err := e.temps.Add(def.Name, def.ID, tensor.NewScalar[T]()); err != nil {
				return errors.Wrapf(err, "allocate temporary %s", def.LHS)
			}
		}

		nested, err := New(eq, e.temps, Config{Logger: e.cfg.Logger})
		if err != nil {
			return errors.Wrapf(err, "step %s", eq)
		}
		e.logger.Debug("evaluation", slog.String("equation", eq.String()), slog.Bool("final", def.Final))
		if err := nested.Run(); err != nil {
			return errors.Wrapf(err, "evaluate %s", eq)
		}
	}
	return nil
}

func (e *Evaluator[T]) runLeaf() error {
	if err := e.eq.Validate(); err != nil {
		return err
	}
	if err := e.bind(); err != nil {
		return err
	}

	lhs := e.eq.LHS()
	dims := make(tensor.Shape, len(e.lhsLegs))
	for j, l := range e.lhsLegs {
		dims[j] = 1
		if l.Type == srep.Free {
			dims[j] = e.freeDims[l.Tag]
		}
	}
	output := e.Output()
	if err := output.SetSizes(dims, lhs.Ins()); err != nil {
		return &UnsupportedShapeError{Stanza: lhs.String(), Details: err.Error()}
	}

	e.outIdx = resize(e.outIdx, len(e.lhsLegs))
	for {
		v := e.contract()
		for j, l := range e.lhsLegs {
			if l.Type == srep.Free {
				e.outIdx[j] = e.free[l.Tag]
			}
		}
		output.Set(e.outIdx, v)
		if !next(e.free, e.freeDims) {
			break
		}
	}
	return nil
}

// bind resolves every stanza of the RHS against the registry and collects the
// dimension of each free and summed tag.
func (e *Evaluator[T]) bind() error {
	lhs, rhs := e.eq.LHS(), e.eq.RHS()
	e.lhsLegs = lhs.AllLegs()
	nf := max(lhs.MaxTag(srep.Free), rhs.MaxTag(srep.Free)) + 1
	ns := rhs.MaxTag(srep.Summed) + 1
	e.free = resize(e.free, nf)
	e.freeDims = resize(e.freeDims, nf)
	e.summed = resize(e.summed, ns)
	e.summedDims = resize(e.summedDims, ns)
	e.factors = e.factors[:0]

	for _, st := range rhs.Stanzas() {
		h, ok := e.reg.Lookup(st.Name(), st.ID())
		if !ok {
			return &LookupError{Name: st.Name(), ID: st.ID()}
		}
		if h == e.out {
			return &UnsupportedShapeError{Stanza: st.String(), Details: "output tensor also appears in its own definition"}
		}
		t := e.reg.Tensor(h)
		if t.Args() != st.Arity() {
			return &UnsupportedShapeError{
				Stanza:  st.String(),
				Details: fmt.Sprintf("stanza has %d legs, tensor has %d", st.Arity(), t.Args()),
			}
		}

		f := factor[T]{t: t, conj: st.IsConjugate(), args: make([]int, st.Arity())}
		for j, l := range st.AllLegs() {
			f.legs = append(f.legs, binding{typ: l.Type, tag: l.Tag})
			var err error
			switch l.Type {
			case srep.Free:
				err = setDim(e.freeDims, l, t.ArgSize(j), st)
			case srep.Summed:
				err = setDim(e.summedDims, l, t.ArgSize(j), st)
			}
			if err != nil {
				return err
			}
		}
		e.factors = append(e.factors, f)
	}
	return nil
}

func setDim(dims []int, l srep.Leg, size int, st *srep.Stanza) error {
	if dims[l.Tag] != 0 && dims[l.Tag] != size {
		return &UnsupportedShapeError{
			Stanza:  st.String(),
			Details: fmt.Sprintf("leg %s has dimension %d, elsewhere %d", l, size, dims[l.Tag]),
		}
	}
	dims[l.Tag] = size
	return nil
}

// contract sums the product of all factors over every summed index
// combination at the current free indices.
func (e *Evaluator[T]) contract() T {
	clear(e.summed)
	var sum T
	for {
		sum += e.product()
		if !next(e.summed, e.summedDims) {
			break
		}
	}
	return sum
}

// product multiplies the factors at the current free and summed indices,
// stopping at the first zero.
func (e *Evaluator[T]) product() T {
	prod := tensor.One[T]()
	for i := range e.factors {
		f := &e.factors[i]
		for j, b := range f.legs {
			switch b.typ {
			case srep.Summed:
				f.args[j] = e.summed[b.tag]
			case srep.Free:
				f.args[j] = e.free[b.tag]
			default:
				f.args[j] = 0
			}
		}
		v := f.t.At(f.args)
		if f.conj {
			v = tensor.Conj(v)
		}
		prod *= v
		if prod == 0 {
			break
		}
	}
	return prod
}

// Eval parses text, evaluates it against reg and returns the output tensor.
// If the output is not registered, a scratch tensor is created in a private
// scope so reg is left untouched.
func Eval[T tensor.Scalar](text string, reg *Registry[T], cfg Config) (*tensor.Dense[T], error) {
	eq, err := srep.ParseEquation(text)
	if err != nil {
		return nil, err
	}
	target := reg
	if _, ok := reg.Lookup(eq.OutputName(), eq.OutputID()); !ok {
		target = reg.Scope()
		if _, err := target.Add(eq.OutputName(), eq.OutputID(), tensor.NewScalar[T]()); err != nil {
			return nil, err
		}
	}
	ev, err := New(eq, target, cfg)
	if err != nil {
		return nil, err
	}
	if err := ev.Run(); err != nil {
		return nil, err
	}
	return ev.Output(), nil
}
