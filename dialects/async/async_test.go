package async_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/asyncir/asyncir/dialects/async"
	"github.com/asyncir/asyncir/ir"
	_ "github.com/asyncir/asyncir/targets/standard"
)

func TestAddDependencyIsIdempotent(t *testing.T) {
	m := ir.NewModule("idempotence")
	p := async.Execute(m.Body(), ir.UnknownLoc())
	q := async.Execute(m.Body(), ir.UnknownLoc())

	t1 := p.Done()
	q.AddDependency(t1)
	q.AddDependency(t1)
	require.Equal(t, []*async.Token{t1}, q.Dependencies())
}

func TestDependenciesPreserveFirstAddedOrder(t *testing.T) {
	m := ir.NewModule("order")
	a := async.Dispatch(m.Body(), "cpu", ir.UnknownLoc())
	b := async.Dispatch(m.Body(), "gpu", ir.UnknownLoc())
	c := async.Dispatch(m.Body(), "accel", ir.UnknownLoc())
	sink := async.Await(m.Body(), nil, ir.UnknownLoc())

	sink.AddDependency(a.Done())
	sink.AddDependency(b.Done())
	sink.AddDependency(a.Done()) // Repeat add must not reorder.
	sink.AddDependency(c.Done())
	require.Equal(t, []*async.Token{a.Done(), b.Done(), c.Done()}, sink.Dependencies())
}

func TestProducedTokensAreDistinct(t *testing.T) {
	m := ir.NewModule("producers")
	p := async.Execute(m.Body(), ir.UnknownLoc())
	q := async.Dispatch(m.Body(), "cpu", ir.UnknownLoc())

	require.NotSame(t, p.Done(), q.Done())
	require.Same(t, p.Done(), p.Done()) // Fixed at construction.
	require.Same(t, ir.Op(p), p.Done().Producer())
	require.Same(t, ir.Op(q), q.Done().Producer())
}

func TestSinkHasNoProducedToken(t *testing.T) {
	m := ir.NewModule("sink")
	p := async.Execute(m.Body(), ir.UnknownLoc())
	sink := async.Await(m.Body(), p.Done(), ir.UnknownLoc())

	// The async capability is there...
	capability, ok := async.AsAsync(sink)
	require.True(t, ok)
	require.Equal(t, []*async.Token{p.Done()}, capability.Dependencies())

	// ...but the producer capability is not: a sink consumes only.
	_, ok = ir.Op(sink).(async.Producer)
	require.False(t, ok)

	// And the sink yields no printable result either.
	_, ok = ir.Op(sink).(ir.ValueProducer)
	require.False(t, ok)
}

func TestAddNilDependencyPanics(t *testing.T) {
	m := ir.NewModule("nil-dep")
	sink := async.Await(m.Body(), nil, ir.UnknownLoc())
	require.Panics(t, func() { sink.AddDependency(nil) })
}

func TestTokenStringAndResolve(t *testing.T) {
	m := ir.NewModule("resolve")
	p := async.Execute(m.Body(), ir.UnknownLoc())
	q := async.Dispatch(m.Body(), "cpu", ir.UnknownLoc())
	async.Await(m.Body(), q.Done(), ir.UnknownLoc())

	require.Equal(t, "%t0", p.Done().String())
	require.Equal(t, "%t1", q.Done().String())

	// Within the same module, the printed name resolves back to the identical token.
	for _, token := range []*async.Token{p.Done(), q.Done()} {
		resolved, err := async.ResolveToken(m, token.String())
		require.NoError(t, err)
		require.Same(t, token, resolved)
	}

	_, err := async.ResolveToken(m, "%t99")
	require.ErrorContains(t, err, "does not match any operation")
	_, err = async.ResolveToken(m, "%t2") // The await produces nothing.
	require.ErrorContains(t, err, "does not produce a token")
	_, err = async.ResolveToken(m, "t0")
	require.ErrorContains(t, err, "malformed token name")
	_, err = async.ResolveToken(m, "%tx")
	require.ErrorContains(t, err, "malformed token name")
}
