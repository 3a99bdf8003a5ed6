package async

import (
	"github.com/pkg/errors"

	"github.com/asyncir/asyncir/ir"
	"github.com/asyncir/asyncir/targets"
)

// DialectName under which this package registers itself.
const DialectName = "async"

func init() {
	ir.RegisterType(TokenType)
	ir.RegisterDialect(ir.Dialect{Name: DialectName, VerifyModule: VerifyModule})
	ir.RegisterOpKind(ir.OpKind{Name: ExecuteKind, Build: buildExecute})
	ir.RegisterOpKind(ir.OpKind{Name: DispatchKind, Build: buildDispatch, Verify: verifyDispatch})
	ir.RegisterOpKind(ir.OpKind{Name: AwaitKind, Build: buildAwait})
}

func buildExecute(r *ir.Region, state *ir.OpState) (ir.Op, error) {
	op := Execute(r, state.Loc)
	return op, attachParsedDeps(op, state)
}

func buildDispatch(r *ir.Region, state *ir.OpState) (ir.Op, error) {
	target := state.Attrs[TargetAttr]
	if target == "" {
		return nil, errors.Errorf("async.dispatch requires a %q attribute", TargetAttr)
	}
	op := Dispatch(r, target, state.Loc)
	return op, attachParsedDeps(op, state)
}

func buildAwait(r *ir.Region, state *ir.OpState) (ir.Op, error) {
	op := Await(r, nil, state.Loc)
	return op, attachParsedDeps(op, state)
}

// attachParsedDeps turns the generic operands of a parsed operation into
// dependency tokens. Unlike AddDependency, a duplicate in a statically
// written operand list is reported, not silently dropped.
func attachParsedDeps(op Op, state *ir.OpState) error {
	for ii, operand := range state.Operands {
		t, ok := operand.(*Token)
		if !ok {
			return errors.Errorf("operand #%d of %q is a !%s, expected a !%s",
				ii, state.Kind, operand.Type().Name(), TypeName)
		}
		before := len(op.Dependencies())
		op.AddDependency(t)
		if len(op.Dependencies()) == before {
			return errors.Errorf("duplicate dependency %s in the operand list of %q", t, state.Kind)
		}
	}
	return nil
}

// verifyDispatch checks the dispatch target is a registered execution target.
func verifyDispatch(irOp ir.Op) error {
	op, ok := irOp.(*DispatchOp)
	if !ok {
		return errors.Errorf("operation of kind %q is not an async.DispatchOp", irOp.Kind())
	}
	if op.Target() == "" {
		return errors.Errorf("missing %q attribute", TargetAttr)
	}
	if !targets.Has(op.Target()) {
		return errors.Errorf("target %q is not a registered execution target", op.Target())
	}
	return nil
}
