// Package ir holds the host intermediate representation AsyncIR dialects attach
// to: modules, regions, operations, values, and the process-wide registry of
// operation kinds and value types.
//
// The main elements in the package are:
//
//   - Module: a named container of operations. Everything dialects build lives
//     inside a Module, which assigns each operation a module-unique OpId in
//     creation order.
//
//   - Region: an ordered list of operations. The Module owns one body region,
//     and operations may own nested regions of their own, which is how scoping
//     is expressed: a value produced inside a region is visible to that region
//     and to regions nested in it, never to enclosing or sibling regions.
//
//   - Op: the interface every operation variant implements, normally by
//     embedding BaseOp. Dialect-specific capabilities (like the asynchronous
//     dependency contract in package dialects/async) are reached by type
//     assertion on the Op value, not by inheritance.
//
//   - Registry: dialects register their operation kinds and value types once,
//     at process startup, from their package init. See RegisterDialect,
//     RegisterOpKind and RegisterType.
//
// # Error handling
//
// Construction-time API misuse -- attaching an operation of an unregistered
// kind, attaching to a nil region -- panics with a github.com/gomlx/exceptions
// exception: those are programming errors in the pass or frontend building the
// module. Everything that depends on the contents of a module (verification,
// parsing) returns an error instead; verification errors are fatal to the
// compilation unit, there is no degraded mode.
package ir

import (
	"github.com/google/uuid"
)

// OpId is a unique operation id within a Module, assigned in creation order.
type OpId int

// InvalidOpId indicates an operation that is not attached to any module.
const InvalidOpId = OpId(-1)

// Module is a named container of operations, owner of the body Region.
//
// A Module is built and transformed by one compiler pass at a time; there is
// no internal locking.
type Module struct {
	name string
	id   uuid.UUID
	body *Region
	ops  []Op // every op in the module, in creation order, indexed by OpId.
}

// NewModule creates an empty module with the given name.
func NewModule(name string) *Module {
	m := &Module{name: name, id: uuid.New()}
	m.body = &Region{module: m}
	return m
}

// Name of the module, set at construction.
func (m *Module) Name() string { return m.name }

// UUID uniquely identifies the module instance within the process. It is used
// in diagnostics when a token from one module leaks into another.
func (m *Module) UUID() uuid.UUID { return m.id }

// Body returns the module's top-level region.
func (m *Module) Body() *Region { return m.body }

// NumOps returns the number of operations created in the module, including
// operations nested in regions.
func (m *Module) NumOps() int { return len(m.ops) }

// OpById returns the operation with the given id, or nil if no such operation
// exists in the module.
func (m *Module) OpById(id OpId) Op {
	if id < 0 || int(id) >= len(m.ops) {
		return nil
	}
	return m.ops[id]
}

// register assigns the next module-unique id to op.
func (m *Module) register(op Op) OpId {
	id := OpId(len(m.ops))
	m.ops = append(m.ops, op)
	return id
}

// Walk visits every operation in the module in pre-order (an operation before
// the contents of its nested regions). It stops and returns the first error
// returned by fn.
func (m *Module) Walk(fn func(op Op) error) error {
	return m.body.Walk(fn)
}

// Region is an ordered sequence of operations. The module body is a region,
// and operations may own nested regions.
type Region struct {
	module *Module
	parent Op // operation owning this region; nil for the module body.
	ops    []Op
}

// Module that ultimately contains this region.
func (r *Region) Module() *Module { return r.module }

// Parent returns the operation owning this region, or nil for a module body.
func (r *Region) Parent() Op { return r.parent }

// Ops returns the operations directly in this region, in order. The returned
// slice is owned by the region and must not be modified.
func (r *Region) Ops() []Op { return r.ops }

// Walk visits the region's operations in pre-order, recursing into nested
// regions. It stops and returns the first error returned by fn.
func (r *Region) Walk(fn func(op Op) error) error {
	for _, op := range r.ops {
		if err := fn(op); err != nil {
			return err
		}
		for _, nested := range op.Regions() {
			if err := nested.Walk(fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// IsAncestorOf reports whether values defined in r are in scope for operations
// in other: true when r == other or when r (transitively) encloses other.
func (r *Region) IsAncestorOf(other *Region) bool {
	for other != nil {
		if other == r {
			return true
		}
		parent := other.parent
		if parent == nil {
			return false
		}
		other = parent.Region()
	}
	return false
}
