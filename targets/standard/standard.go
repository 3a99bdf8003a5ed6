// Package standard registers the standard execution targets: cpu, gpu and
// accel. Import it for the side effect:
//
//	import _ "github.com/asyncir/asyncir/targets/standard"
package standard

import "github.com/asyncir/asyncir/targets"

func init() {
	targets.Register(targets.Target{Name: "cpu", Description: "Host CPU"})
	targets.Register(targets.Target{Name: "gpu", Description: "Graphics processing unit"})
	targets.Register(targets.Target{Name: "accel", Description: "Dedicated ML accelerator"})
}
