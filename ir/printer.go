package ir

import (
	"fmt"
	"strings"

	"github.com/asyncir/asyncir/types/xslices"
)

// The canonical textual form of a module, as emitted by Module.String and read
// back by Parse:
//
//	module @pipeline {
//	  %t0 = "async.execute"() ({
//	    %t1 = "async.dispatch"() {target = "gpu"} : !async.token loc("demo.air":3:5)
//	  }) : !async.token loc("demo.air":2:3)
//	  "async.await"(%t0) loc("demo.air":6:3)
//	}
//
// Each operation line is:
//
//	[%tN = ] "kind" ( operands ) [ {attrs} ] [ ({ region-body }) ] [ : !type ] [ loc(...) ]
//
// Result values are named %tN where N is the producing operation's module id;
// since ids are assigned in creation order and the printer walks in the same
// order, printing and re-parsing a module preserves the numbering.

// String renders the module in its canonical textual form.
func (m *Module) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "module @%s {\n", m.name)
	m.body.print(&sb, 1)
	sb.WriteString("}\n")
	return sb.String()
}

// ValueName returns the canonical textual name of a value: "%t<id>" with the
// producing operation's module id.
func ValueName(v Value) string {
	return fmt.Sprintf("%%t%d", v.Producer().Id())
}

func (r *Region) print(sb *strings.Builder, indent int) {
	for _, op := range r.ops {
		printOp(sb, op, indent)
	}
}

func printOp(sb *strings.Builder, op Op, indent int) {
	prefix := strings.Repeat("  ", indent)
	sb.WriteString(prefix)

	var result Value
	if producer, ok := op.(ValueProducer); ok {
		result = producer.Result()
	}
	if result != nil {
		fmt.Fprintf(sb, "%s = ", ValueName(result))
	}
	fmt.Fprintf(sb, "%q(", op.Kind())
	if withOperands, ok := op.(WithOperands); ok {
		for ii, operand := range withOperands.Operands() {
			if ii > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(ValueName(operand))
		}
	}
	sb.WriteString(")")

	if attrs := op.Attrs(); len(attrs) > 0 {
		sb.WriteString(" {")
		for ii, key := range xslices.SortedKeys(attrs) {
			if ii > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(sb, "%s = %q", key, attrs[key])
		}
		sb.WriteString("}")
	}

	for _, nested := range op.Regions() {
		sb.WriteString(" ({\n")
		nested.print(sb, indent+1)
		sb.WriteString(prefix)
		sb.WriteString("})")
	}

	if result != nil {
		fmt.Fprintf(sb, " : !%s", result.Type().Name())
	}
	if loc := op.Location(); !loc.IsUnknown() {
		sb.WriteString(" ")
		sb.WriteString(loc.String())
	}
	sb.WriteString("\n")
}
