package async

import (
	"github.com/pkg/errors"

	"github.com/asyncir/asyncir/ir"
)

// VerifyModule checks the asynchronous dependency graph of m:
//
//   - No duplicate edges: a dependency list never mentions the same token
//     twice. AddDependency guarantees this for dynamically added edges;
//     statically constructed lists are checked, not silently fixed.
//   - Single producer: each token is reported by exactly the operation that
//     owns it, and by no other operation.
//   - Scope containment: the producer of every consumed token lives in the
//     consumer's module, in the consumer's region or a region enclosing it.
//   - Acyclicity: no operation transitively depends on its own completion.
//
// It runs automatically from ir.Module.Verify through the dialect hook. Any
// violation is fatal to the compilation unit: the returned error names the
// offending operation and its location, and a module that fails has no
// well-defined execution order to fall back to.
func VerifyModule(m *ir.Module) error {
	var asyncOps []Op
	_ = m.Walk(func(op ir.Op) error {
		if a, ok := AsAsync(op); ok {
			asyncOps = append(asyncOps, a)
		}
		return nil
	})

	// Edge-local invariants and the producer of every token.
	producers := make(map[*Token]ir.Op)
	for _, op := range asyncOps {
		deps := op.Dependencies()
		for ii, t := range deps {
			if t == nil {
				return errors.Errorf("operation %s has a nil dependency", ir.Describe(op))
			}
			for _, previous := range deps[:ii] {
				if previous == t {
					return errors.Errorf("operation %s lists dependency %s more than once", ir.Describe(op), t)
				}
			}
		}
		producer, ok := op.(Producer)
		if !ok {
			continue
		}
		t := producer.Done()
		if t == nil {
			return errors.Errorf("operation %s reports a nil produced token", ir.Describe(op))
		}
		if t.Producer() != ir.Op(op) {
			return errors.Errorf("operation %s returns token %s owned by operation %s",
				ir.Describe(op), t, ir.Describe(t.Producer()))
		}
		if previous, seen := producers[t]; seen {
			return errors.Errorf("operations %s and %s report the same produced token",
				ir.Describe(previous), ir.Describe(op))
		}
		producers[t] = op
	}

	// Scope containment.
	for _, op := range asyncOps {
		for _, t := range op.Dependencies() {
			producer := t.Producer()
			if producer == nil || producer.Module() == nil {
				return errors.Errorf("operation %s depends on token %s whose producer is not attached to any module",
					ir.Describe(op), t)
			}
			if producer.Module() != op.Module() {
				return errors.Errorf("operation %s depends on token %s produced in a different module %q (%s)",
					ir.Describe(op), t, producer.Module().Name(), producer.Module().UUID())
			}
			if !producer.Region().IsAncestorOf(op.Region()) {
				return errors.Errorf("operation %s depends on token %s produced by %s in a region not visible from the consumer",
					ir.Describe(op), t, ir.Describe(producer))
			}
		}
	}

	// Acyclicity of the "completes before" relation: an operation completes
	// after the producers of its consumed tokens and after the operations
	// nested in its own regions. Depth-first traversal with an in-progress
	// marker; operations are visited in creation order so the error names the
	// earliest operation on the cycle.
	const (
		white = iota // unvisited
		grey         // in progress
		black        // done, known cycle-free
	)
	colors := make(map[ir.Op]int, m.NumOps())
	var visit func(op ir.Op) error
	visit = func(op ir.Op) error {
		switch colors[op] {
		case grey:
			return errors.Errorf("dependency cycle: operation %s transitively depends on its own completion",
				ir.Describe(op))
		case black:
			return nil
		}
		colors[op] = grey
		if a, ok := AsAsync(op); ok {
			for _, t := range a.Dependencies() {
				if err := visit(t.Producer()); err != nil {
					return err
				}
			}
		}
		for _, region := range op.Regions() {
			for _, nested := range region.Ops() {
				if err := visit(nested); err != nil {
					return err
				}
			}
		}
		colors[op] = black
		return nil
	}
	return m.Walk(visit)
}
