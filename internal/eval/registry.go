package eval

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/born-ml/mera/internal/srep"
	"github.com/born-ml/mera/internal/tensor"
)

// Key identifies a tensor by stanza name and instance id.
type Key struct {
	Name string
	ID   int
}

// String renders the key as it prefixes a stanza, e.g. "u0".
func (k Key) String() string {
	return k.Name + strconv.Itoa(k.ID)
}

// Handle is a storage index into a Registry.
type Handle int

// Registry maps (name, id) keys to tensors.
//
// A registry created by Scope sees every tensor of its parent, and tensors
// added to it shadow the parent's without modifying it. The parent must not
// grow while a scope is in use. A Registry is not safe for concurrent writes.
type Registry[T tensor.Scalar] struct {
	parent  *Registry[T]
	base    int
	keys    []Key
	index   map[Key]Handle
	tensors []*tensor.Dense[T]
}

// NewRegistry creates an empty registry.
func NewRegistry[T tensor.Scalar]() *Registry[T] {
	return &Registry[T]{index: make(map[Key]Handle)}
}

// Scope returns a child registry for temporaries.
func (r *Registry[T]) Scope() *Registry[T] {
	return &Registry[T]{
		parent: r,
		base:   r.Len(),
		index:  make(map[Key]Handle),
	}
}

// Add registers t under (name, id).
func (r *Registry[T]) Add(name string, id int, t *tensor.Dense[T]) (Handle, error) {
	key := Key{Name: name, ID: id}
	if _, ok := r.index[key]; ok {
		return 0, errors.Wrap(ErrDuplicate, key.String())
	}
	h := Handle(r.base + len(r.tensors))
	r.keys = append(r.keys, key)
	r.tensors = append(r.tensors, t)
	r.index[key] = h
	return h, nil
}

// Lookup returns the handle of (name, id), searching this scope first.
func (r *Registry[T]) Lookup(name string, id int) (Handle, bool) {
	key := Key{Name: name, ID: id}
	for s := r; s != nil; s = s.parent {
		if h, ok := s.index[key]; ok {
			return h, true
		}
	}
	return 0, false
}

// Tensor returns the tensor behind h.
func (r *Registry[T]) Tensor(h Handle) *tensor.Dense[T] {
	if int(h) < r.base {
		return r.parent.Tensor(h)
	}
	return r.tensors[int(h)-r.base]
}

// Key returns the key h was registered under.
func (r *Registry[T]) Key(h Handle) Key {
	if int(h) < r.base {
		return r.parent.Key(h)
	}
	return r.keys[int(h)-r.base]
}

// Len returns the number of tensors visible from this registry.
func (r *Registry[T]) Len() int {
	return r.base + len(r.tensors)
}

// OutputOf resolves the output tensor named by the LHS of eq.
func (r *Registry[T]) OutputOf(eq *srep.Equation) (Handle, error) {
	h, ok := r.Lookup(eq.OutputName(), eq.OutputID())
	if !ok {
		return 0, &LookupError{Name: eq.OutputName(), ID: eq.OutputID()}
	}
	return h, nil
}
