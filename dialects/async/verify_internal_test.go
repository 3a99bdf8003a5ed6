package async

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asyncir/asyncir/ir"
)

// rogueOp claims another operation's token as its own produced token. The
// public constructors cannot build such an operation; verification must still
// reject it when a dialect-external variant misimplements the capability.
type rogueOp struct {
	ir.BaseOp
	Deps
	stolen *Token
}

func (op *rogueOp) Done() *Token { return op.stolen }

const rogueKind = "async.test_rogue"

func init() {
	ir.RegisterOpKind(ir.OpKind{Name: rogueKind})
}

func TestVerifyRejectsForeignProducedToken(t *testing.T) {
	m := ir.NewModule("rogue")
	p := Execute(m.Body(), ir.UnknownLoc())

	rogue := &rogueOp{stolen: p.Done()}
	ir.AttachOp(rogue, &rogue.BaseOp, rogueKind, m.Body(), ir.UnknownLoc())

	err := VerifyModule(m)
	require.ErrorContains(t, err, "owned by operation")
}

func TestVerifyRejectsNilProducedToken(t *testing.T) {
	m := ir.NewModule("nil-token")
	rogue := &rogueOp{} // Done() returns nil.
	ir.AttachOp(rogue, &rogue.BaseOp, rogueKind, m.Body(), ir.UnknownLoc())

	err := VerifyModule(m)
	require.ErrorContains(t, err, "nil produced token")
}

func TestVerifyRejectsDuplicateStaticEdges(t *testing.T) {
	// AddDependency dedupes, but a variant with its own storage might not;
	// duplicates in a dependency list are reported, never silently fixed.
	m := ir.NewModule("dup-edges")
	p := Execute(m.Body(), ir.UnknownLoc())
	rogue := &rogueOp{stolen: p.Done()}
	ir.AttachOp(rogue, &rogue.BaseOp, rogueKind, m.Body(), ir.UnknownLoc())
	rogue.deps = []*Token{p.Done(), p.Done()}

	err := VerifyModule(m)
	require.ErrorContains(t, err, "more than once")
}
