package ir_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asyncir/asyncir/dialects/async"
	"github.com/asyncir/asyncir/ir"
	_ "github.com/asyncir/asyncir/targets/standard"
)

func TestModuleConstruction(t *testing.T) {
	m := ir.NewModule("pipeline")
	require.Equal(t, "pipeline", m.Name())
	require.Equal(t, 0, m.NumOps())
	require.Nil(t, m.Body().Parent())
	require.Same(t, m, m.Body().Module())

	exec := async.Execute(m.Body(), ir.Loc("pipeline.air", 2, 3))
	inner := async.Dispatch(exec.Body(), "cpu", ir.UnknownLoc())
	await := async.Await(m.Body(), exec.Done(), ir.UnknownLoc())

	require.Equal(t, ir.OpId(0), exec.Id())
	require.Equal(t, ir.OpId(1), inner.Id())
	require.Equal(t, ir.OpId(2), await.Id())
	require.Equal(t, 3, m.NumOps())

	require.Same(t, ir.Op(exec), m.OpById(0))
	require.Same(t, ir.Op(inner), m.OpById(1))
	require.Nil(t, m.OpById(3))
	require.Nil(t, m.OpById(ir.InvalidOpId))

	// Regions: the body of exec is owned by exec and nested in the module body.
	require.Same(t, ir.Op(exec), exec.Body().Parent())
	require.True(t, m.Body().IsAncestorOf(exec.Body()))
	require.True(t, exec.Body().IsAncestorOf(exec.Body()))
	require.False(t, exec.Body().IsAncestorOf(m.Body()))

	require.Equal(t, ir.Loc("pipeline.air", 2, 3), exec.Location())
	require.True(t, inner.Location().IsUnknown())
	require.Equal(t, "cpu", inner.Attr(async.TargetAttr))
}

func TestWalkIsPreOrder(t *testing.T) {
	m := ir.NewModule("walk")
	exec := async.Execute(m.Body(), ir.UnknownLoc())
	async.Dispatch(exec.Body(), "cpu", ir.UnknownLoc())
	async.Await(m.Body(), exec.Done(), ir.UnknownLoc())

	var kinds []string
	var ids []ir.OpId
	require.NoError(t, m.Walk(func(op ir.Op) error {
		kinds = append(kinds, op.Kind())
		ids = append(ids, op.Id())
		return nil
	}))
	require.Equal(t, []string{async.ExecuteKind, async.DispatchKind, async.AwaitKind}, kinds)
	require.Equal(t, []ir.OpId{0, 1, 2}, ids)
}

// unregisteredOp is a variant whose kind is never registered.
type unregisteredOp struct {
	ir.BaseOp
}

func TestAttachOpRequiresRegistration(t *testing.T) {
	m := ir.NewModule("registry")
	require.Panics(t, func() {
		op := &unregisteredOp{}
		ir.AttachOp(op, &op.BaseOp, "bogus.op", m.Body(), ir.UnknownLoc())
	})
	require.Panics(t, func() {
		op := &unregisteredOp{}
		ir.AttachOp(op, &op.BaseOp, async.AwaitKind, nil, ir.UnknownLoc())
	})
}

func TestRegistryLookups(t *testing.T) {
	require.True(t, ir.IsRegisteredOpKind(async.ExecuteKind))
	require.False(t, ir.IsRegisteredOpKind("bogus.op"))

	kind, found := ir.OpKindByName(async.DispatchKind)
	require.True(t, found)
	require.Equal(t, async.DispatchKind, kind.Name)

	typ, found := ir.TypeByName(async.TypeName)
	require.True(t, found)
	require.Equal(t, async.TokenType, typ)
	_, found = ir.TypeByName("bogus.type")
	require.False(t, found)
}

func TestLocationString(t *testing.T) {
	require.Equal(t, `loc("demo.air":3:7)`, ir.Loc("demo.air", 3, 7).String())
	require.Equal(t, "loc(unknown)", ir.UnknownLoc().String())
	require.True(t, ir.UnknownLoc().IsUnknown())
	require.False(t, ir.Loc("demo.air", 3, 7).IsUnknown())
}

func TestDescribe(t *testing.T) {
	m := ir.NewModule("describe")
	exec := async.Execute(m.Body(), ir.Loc("demo.air", 1, 1))
	require.Equal(t, `"async.execute" (#0) loc("demo.air":1:1)`, ir.Describe(exec))
	require.Equal(t, "<nil operation>", ir.Describe(nil))
}
