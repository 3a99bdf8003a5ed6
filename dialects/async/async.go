// Package async defines the asynchronous dependency dialect: the completion
// Token type and the capability interface through which any operation variant
// declares which tokens it waits on and which token it produces.
//
// The dependency edges form a directed graph over the operations of a module;
// VerifyModule checks it is a well-formed DAG (acyclic, single producer per
// token, no duplicate edges, every edge in scope). Operations with no path
// between them in that graph may later be run concurrently by whatever runtime
// the module is lowered to; this package only represents and verifies the
// graph, it never schedules or executes anything.
//
// Importing the package registers the dialect with the host registry:
//
//	import _ "github.com/asyncir/asyncir/dialects/async"
package async

import (
	"github.com/gomlx/exceptions"

	"github.com/asyncir/asyncir/ir"
	"github.com/asyncir/asyncir/types/xslices"
)

// Op is the capability implemented by every operation variant that
// participates in the asynchronous dependency graph. It is the sole sanctioned
// way for passes to inspect and mutate dependency edges; an operation's
// internal storage is not part of the contract.
type Op interface {
	ir.Op

	// Dependencies returns the tokens this operation waits on, in the order
	// they were first added. It never mutates the operation and is safe to
	// call on a graph still under construction. The returned slice is owned
	// by the operation and must not be modified by the caller.
	Dependencies() []*Token

	// AddDependency appends t to the dependency list if it is not already
	// present; adding a token twice is a silent no-op, not an error. The call
	// is deliberately permissive -- it does not check that t belongs to the
	// same module, so graphs can be built incrementally; VerifyModule catches
	// out-of-scope tokens afterwards.
	AddDependency(t *Token)
}

// Producer is the capability of operation variants that complete with a
// token. Sink variants (like AwaitOp) simply do not implement it: asking a
// sink for its produced token is a failed type assertion at pass-authoring
// time, not a runtime failure.
type Producer interface {
	Op

	// Done returns the token marking this operation's completion. Fixed at
	// construction; an operation never produces more than one token.
	Done() *Token
}

// AsAsync returns op's async capability, if it has one.
func AsAsync(op ir.Op) (Op, bool) {
	a, ok := op.(Op)
	return a, ok
}

// Deps implements the dependency-list half of the Op capability: an ordered
// sequence with set semantics, scanned linearly since the expected arity is
// small. Operation variants embed it.
type Deps struct {
	deps []*Token
}

// Dependencies returns the tokens in first-added order.
func (d *Deps) Dependencies() []*Token { return d.deps }

// AddDependency appends t if not already present.
func (d *Deps) AddDependency(t *Token) {
	if t == nil {
		exceptions.Panicf("async.AddDependency: nil token")
	}
	for _, dep := range d.deps {
		if dep == t {
			return
		}
	}
	d.deps = append(d.deps, t)
}

// Operands exposes the dependencies as generic ir values, for the printer and
// other value-kind agnostic tooling.
func (d *Deps) Operands() []ir.Value {
	return xslices.Map(d.deps, func(t *Token) ir.Value { return t })
}
