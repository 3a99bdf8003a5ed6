package ir

import (
	"fmt"

	"github.com/gomlx/exceptions"
)

// Op is implemented by every operation variant attached to a Module.
//
// Almost every variant implements it by embedding BaseOp and calling AttachOp
// from its constructor. Dialect capabilities beyond this common surface are
// reached by type assertion on the Op value.
type Op interface {
	// Kind is the registered operation kind, e.g. "async.execute".
	Kind() string

	// Id is the operation's unique id within its Module.
	Id() OpId

	// Region containing the operation.
	Region() *Region

	// Module containing the operation.
	Module() *Module

	// Location the operation originated from. May be unknown.
	Location() Location

	// Regions nested in (owned by) the operation.
	Regions() []*Region

	// Attrs returns the operation's attributes. It may be nil when the
	// operation carries none. The returned map is owned by the operation.
	Attrs() map[string]string
}

// Type is a registered value type. The name is printed prefixed with "!",
// e.g. !async.token.
type Type interface {
	Name() string
}

// Value is a result produced by an operation, usable as an operand of other
// operations. The only value kind currently registered is the async completion
// token, but the printer, parser and verifier stay value-kind agnostic.
type Value interface {
	// Producer is the operation whose result this value is. A value has
	// exactly one producer, fixed at construction.
	Producer() Op

	// Type of the value.
	Type() Type
}

// ValueProducer is implemented by operation variants whose operations yield a
// result value.
type ValueProducer interface {
	Result() Value
}

// WithOperands is implemented by operation variants whose incoming edges are
// value operands. The printer and parser handle such operations generically.
type WithOperands interface {
	Operands() []Value
}

// BaseOp is the common scaffolding embedded by every operation variant. Its
// zero value is not usable: constructors must call AttachOp.
type BaseOp struct {
	self    Op // the variant embedding this BaseOp.
	kind    string
	id      OpId
	region  *Region
	loc     Location
	attrs   map[string]string
	regions []*Region
}

// AttachOp initializes base and appends op (the variant embedding base) to
// region r, assigning it the next module-unique id. Dialect constructors call
// this first, before variant-specific setup.
//
// It panics (an exception, see package doc) if r is nil or if kind was never
// registered: dialect packages must register their operation kinds at init.
func AttachOp(op Op, base *BaseOp, kind string, r *Region, loc Location) {
	if op == nil || base == nil {
		exceptions.Panicf("ir.AttachOp: nil operation for kind %q", kind)
	}
	if r == nil {
		exceptions.Panicf("ir.AttachOp: operation kind %q requires a region to attach to", kind)
	}
	if !IsRegisteredOpKind(kind) {
		exceptions.Panicf("ir.AttachOp: operation kind %q was never registered -- import the dialect package defining it", kind)
	}
	base.self = op
	base.kind = kind
	base.region = r
	base.loc = loc
	base.id = r.module.register(op)
	r.ops = append(r.ops, op)
}

// Kind is the registered operation kind.
func (b *BaseOp) Kind() string { return b.kind }

// Id of the operation within its module.
func (b *BaseOp) Id() OpId {
	if b.region == nil {
		return InvalidOpId
	}
	return b.id
}

// Region containing the operation.
func (b *BaseOp) Region() *Region { return b.region }

// Module containing the operation.
func (b *BaseOp) Module() *Module {
	if b.region == nil {
		return nil
	}
	return b.region.module
}

// Location the operation originated from.
func (b *BaseOp) Location() Location { return b.loc }

// setLoc overrides the operation location. Used by the parser when an
// explicit loc(...) clause follows the operation.
func (b *BaseOp) setLoc(loc Location) { b.loc = loc }

// Regions nested in the operation.
func (b *BaseOp) Regions() []*Region { return b.regions }

// AddRegion appends a new, empty nested region owned by this operation.
func (b *BaseOp) AddRegion() *Region {
	if b.region == nil {
		exceptions.Panicf("ir.BaseOp.AddRegion: operation not attached to a module")
	}
	r := &Region{module: b.region.module, parent: b.self}
	b.regions = append(b.regions, r)
	return r
}

// SetAttr sets a string attribute on the operation.
func (b *BaseOp) SetAttr(key, value string) {
	if b.attrs == nil {
		b.attrs = make(map[string]string)
	}
	b.attrs[key] = value
}

// Attr returns the attribute value for key, or "" if unset.
func (b *BaseOp) Attr(key string) string { return b.attrs[key] }

// Attrs returns the operation's attributes (possibly nil).
func (b *BaseOp) Attrs() map[string]string { return b.attrs }

// Describe returns a one-line description of op used in diagnostics, e.g.
// `"async.execute" (#3) loc("demo.air":2:3)`.
func Describe(op Op) string {
	if op == nil {
		return "<nil operation>"
	}
	return fmt.Sprintf("%q (#%d) %s", op.Kind(), op.Id(), op.Location())
}
