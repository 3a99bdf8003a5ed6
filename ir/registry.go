package ir

import (
	"github.com/gomlx/exceptions"
)

// OpState is the generic form of one operation as assembled by the parser:
// everything known about the operation before the dialect-specific builder
// turns it into a concrete variant.
type OpState struct {
	// Kind of the operation, e.g. "async.dispatch".
	Kind string

	// Operands already resolved to the values produced by earlier operations.
	Operands []Value

	// Attrs parsed from the attribute dictionary. May be nil.
	Attrs map[string]string

	// HasRegion is set when a region body follows the operation header. The
	// builder must return an operation owning at least one region; the parser
	// then fills the first one.
	HasRegion bool

	// Loc of the operation: the explicit loc(...) clause if present, otherwise
	// the position of the operation in the parsed text.
	Loc Location
}

// OpKind describes one registered operation kind.
type OpKind struct {
	// Name of the kind, conventionally "<dialect>.<mnemonic>".
	Name string

	// Build constructs the operation variant from its parsed generic form and
	// attaches it to r. Required for kinds that appear in textual modules.
	Build func(r *Region, state *OpState) (Op, error)

	// Verify checks operation-local invariants. Optional.
	Verify func(op Op) error
}

// Dialect groups operation kinds under a common prefix and can contribute a
// module-wide verifier for invariants that span operations.
type Dialect struct {
	Name string

	// VerifyModule checks dialect invariants over a whole module. Optional.
	VerifyModule func(m *Module) error
}

// The process-wide registry. It is mutated only from package init functions
// (one-time registration at process startup) and read-only afterwards, so it
// carries no lock.
var (
	registeredOpKinds  = make(map[string]OpKind)
	registeredTypes    = make(map[string]Type)
	registeredDialects = make(map[string]Dialect)
)

// RegisterDialect registers a dialect. To be safe, call it during
// initialization of the dialect package.
func RegisterDialect(d Dialect) {
	if d.Name == "" {
		exceptions.Panicf("ir.RegisterDialect: dialect must have a name")
	}
	registeredDialects[d.Name] = d
}

// RegisterOpKind registers an operation kind. To be safe, call it during
// initialization of the dialect package defining the kind.
func RegisterOpKind(k OpKind) {
	if k.Name == "" {
		exceptions.Panicf("ir.RegisterOpKind: operation kind must have a name")
	}
	registeredOpKinds[k.Name] = k
}

// RegisterType registers a value type under its Name. To be safe, call it
// during initialization of the dialect package defining the type.
func RegisterType(t Type) {
	if t == nil || t.Name() == "" {
		exceptions.Panicf("ir.RegisterType: type must have a name")
	}
	registeredTypes[t.Name()] = t
}

// IsRegisteredOpKind reports whether an operation kind with the given name was
// registered.
func IsRegisteredOpKind(name string) bool {
	_, found := registeredOpKinds[name]
	return found
}

// OpKindByName returns the registered operation kind with the given name.
func OpKindByName(name string) (OpKind, bool) {
	k, found := registeredOpKinds[name]
	return k, found
}

// TypeByName returns the registered type with the given name (without the "!"
// prefix used in the textual form).
func TypeByName(name string) (Type, bool) {
	t, found := registeredTypes[name]
	return t, found
}
