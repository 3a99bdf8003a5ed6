// asyncir_verify parses a module in its textual form, verifies its
// asynchronous dependency graph, and reports a summary.
//
//	asyncir_verify [-targets extra_targets.yaml] [-print] module.air
//
// Exits non-zero if parsing or verification fails.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"

	"github.com/asyncir/asyncir/dialects/async"
	"github.com/asyncir/asyncir/ir"
	"github.com/asyncir/asyncir/targets"
	_ "github.com/asyncir/asyncir/targets/standard"
)

var (
	flagTargets = flag.String("targets", "", "YAML file with extra execution targets to register, "+
		"on top of the standard cpu/gpu/accel set.")
	flagPrint = flag.Bool("print", false, "Print the module back in its canonical textual form "+
		"after verification.")
)

func main() {
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		klog.Errorf("Missing module file to verify. See 'asyncir_verify -help'.")
		os.Exit(1)
	}
	if len(args) > 1 {
		klog.Errorf("Too many arguments. See 'asyncir_verify -help'.")
		os.Exit(1)
	}

	if *flagTargets != "" {
		must.M(targets.LoadFile(*flagTargets))
	}

	path := args[0]
	contents := must.M1(os.ReadFile(path))
	m, err := ir.Parse(path, string(contents))
	if err != nil {
		klog.Errorf("Failed to parse %s: %+v", path, err)
		os.Exit(1)
	}
	if err = m.Verify(); err != nil {
		klog.Errorf("Module %q failed verification: %+v", m.Name(), err)
		os.Exit(1)
	}

	report(m)
	if *flagPrint {
		fmt.Print(m)
	}
}

// report prints the per-kind and per-target operation counts of a verified
// module.
func report(m *ir.Module) {
	perKind := make(map[string]int)
	perTarget := make(map[string]int)
	numEdges := 0
	_ = m.Walk(func(op ir.Op) error {
		perKind[op.Kind()]++
		if a, ok := async.AsAsync(op); ok {
			numEdges += len(a.Dependencies())
		}
		if dispatch, ok := op.(*async.DispatchOp); ok {
			perTarget[dispatch.Target()]++
		}
		return nil
	})

	fmt.Println(titleStyle.Render(fmt.Sprintf("Module %q", m.Name())))
	fmt.Printf("\t%s operations, %s dependency edges\n",
		humanize.Comma(int64(m.NumOps())), humanize.Comma(int64(numEdges)))
	fmt.Println(countTable("operation kind", perKind))
	if len(perTarget) > 0 {
		fmt.Println(countTable("dispatch target", perTarget))
	}
}
