package async

import (
	"github.com/asyncir/asyncir/ir"
)

// Operation kinds registered by this dialect.
const (
	ExecuteKind  = "async.execute"
	DispatchKind = "async.dispatch"
	AwaitKind    = "async.await"
)

// TargetAttr names the execution target of a DispatchOp.
const TargetAttr = "target"

// ExecuteOp wraps a body region whose operations run asynchronously: the
// operation completes, releasing its token, once the body has finished. The
// body may itself contain async operations.
type ExecuteOp struct {
	ir.BaseOp
	Deps
	done *Token
}

// Execute creates an async.execute operation in r, with an empty body region.
func Execute(r *ir.Region, loc ir.Location) *ExecuteOp {
	op := &ExecuteOp{}
	ir.AttachOp(op, &op.BaseOp, ExecuteKind, r, loc)
	op.done = newToken(op)
	op.AddRegion()
	return op
}

// Body returns the region executed asynchronously.
func (op *ExecuteOp) Body() *ir.Region { return op.Regions()[0] }

// Done returns the operation's completion token.
func (op *ExecuteOp) Done() *Token { return op.done }

// Result implements ir.ValueProducer.
func (op *ExecuteOp) Result() ir.Value { return op.done }

// DispatchOp represents one unit of work routed to a named heterogeneous
// execution target (see package targets). Which target actually runs it, and
// at what cost, is a scheduling concern outside this representation; the
// operation only records the request and its dependency edges.
type DispatchOp struct {
	ir.BaseOp
	Deps
	done *Token
}

// Dispatch creates an async.dispatch operation in r, aimed at the named
// target. The target is validated during verification, not here, so modules
// can be built before their target set is configured.
func Dispatch(r *ir.Region, target string, loc ir.Location) *DispatchOp {
	op := &DispatchOp{}
	ir.AttachOp(op, &op.BaseOp, DispatchKind, r, loc)
	op.SetAttr(TargetAttr, target)
	op.done = newToken(op)
	return op
}

// Target this dispatch is aimed at.
func (op *DispatchOp) Target() string { return op.Attr(TargetAttr) }

// Done returns the operation's completion token.
func (op *DispatchOp) Done() *Token { return op.done }

// Result implements ir.ValueProducer.
func (op *DispatchOp) Result() ir.Value { return op.done }

// AwaitOp blocks the surrounding synchronous control flow until its
// dependencies have completed. It is a sink in the dependency graph: it
// consumes tokens and produces none, so it deliberately does not implement
// Producer.
type AwaitOp struct {
	ir.BaseOp
	Deps
}

// Await creates an async.await operation in r waiting on t. More tokens can be
// added with AddDependency; t may be nil to start with no dependencies.
func Await(r *ir.Region, t *Token, loc ir.Location) *AwaitOp {
	op := &AwaitOp{}
	ir.AttachOp(op, &op.BaseOp, AwaitKind, r, loc)
	if t != nil {
		op.AddDependency(t)
	}
	return op
}

var (
	_ Producer = (*ExecuteOp)(nil)
	_ Producer = (*DispatchOp)(nil)
	_ Op       = (*AwaitOp)(nil)

	_ ir.ValueProducer = (*ExecuteOp)(nil)
	_ ir.ValueProducer = (*DispatchOp)(nil)
	_ ir.WithOperands  = (*AwaitOp)(nil)
)
