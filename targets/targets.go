// Package targets keeps the process-wide registry of heterogeneous execution
// targets (CPU, GPU, accelerators) that async.dispatch operations may name.
//
// The registry only records which targets exist: assigning operations to
// targets, cost models and code generation belong to the scheduler and
// backends, outside this repository.
//
// The standard set is registered by importing, for the side effect:
//
//	import _ "github.com/asyncir/asyncir/targets/standard"
package targets

import (
	"os"

	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/asyncir/asyncir/types/xslices"
)

// Target describes one execution backend operations may be dispatched to.
type Target struct {
	// Name is the short name used in the "target" attribute, e.g. "gpu".
	Name string `yaml:"name"`

	// Description is a longer description used to pretty-print.
	Description string `yaml:"description"`
}

// Registration happens once, during process initialization; the registry is
// read-only afterwards and carries no lock.
var registered = make(map[string]Target)

// Register an execution target. To be safe, call Register during
// initialization of a package.
func Register(t Target) {
	if t.Name == "" {
		exceptions.Panicf("targets.Register: target must have a name")
	}
	registered[t.Name] = t
}

// Has reports whether a target with the given name was registered.
func Has(name string) bool {
	_, found := registered[name]
	return found
}

// Get returns the registered target with the given name.
func Get(name string) (Target, error) {
	t, found := registered[name]
	if !found {
		return Target{}, errors.Errorf("target %q is not registered -- register it, or import targets/standard for the standard set", name)
	}
	return t, nil
}

// List returns the registered targets sorted by name.
func List() []Target {
	return xslices.Map(xslices.SortedKeys(registered), func(name string) Target {
		return registered[name]
	})
}

// LoadFile registers every target listed in a YAML file: a sequence of
// documents with "name" and "description" fields.
func LoadFile(path string) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read targets file %q", path)
	}
	var loaded []Target
	if err := yaml.Unmarshal(contents, &loaded); err != nil {
		return errors.Wrapf(err, "failed to parse targets file %q", path)
	}
	for ii, t := range loaded {
		if t.Name == "" {
			return errors.Errorf("target #%d in %q has no name", ii, path)
		}
		Register(t)
	}
	return nil
}
