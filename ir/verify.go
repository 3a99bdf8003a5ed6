package ir

import (
	"github.com/pkg/errors"

	"github.com/asyncir/asyncir/types/xslices"
)

// Verify checks the module: every operation must have a registered kind and
// pass its kind's local verifier, and every registered dialect's module
// verifier must accept the module.
//
// Passes are expected to call Verify at their boundaries: a module handed from
// one pass to the next must verify cleanly. The first violation found is
// returned, wrapped with the offending operation's location; a module that
// fails verification has no well-defined execution order and compilation of it
// must stop.
func (m *Module) Verify() error {
	err := m.Walk(func(op Op) error {
		kind, found := OpKindByName(op.Kind())
		if !found {
			return errors.Errorf("operation %s has an unregistered kind", Describe(op))
		}
		if kind.Verify == nil {
			return nil
		}
		if err := kind.Verify(op); err != nil {
			return errors.WithMessagef(err, "operation %s failed verification", Describe(op))
		}
		return nil
	})
	if err != nil {
		return err
	}
	for _, name := range xslices.SortedKeys(registeredDialects) {
		dialect := registeredDialects[name]
		if dialect.VerifyModule == nil {
			continue
		}
		if err := dialect.VerifyModule(m); err != nil {
			return errors.WithMessagef(err, "module %q failed %q dialect verification", m.name, name)
		}
	}
	return nil
}
