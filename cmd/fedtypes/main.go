// fedtypes is a small tool to experiment with computation type signatures.
//
// It checks assignability between type signatures given in the command line or in a YAML file of checks,
// and with -demo it wraps and traces a federated computation, printing its definition.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gomlx/fedcomp/types"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"
)

var (
	flagChecks = flag.String("checks", "", "YAML file with a list of assignability checks, see testdata/checks.yaml")
	flagDemo   = flag.Bool("demo", false, "Wrap, trace and execute a sample federated computation")
	flagJSON   = flag.Bool("json", false, "With -demo, also print the traced computation as JSON")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `fedtypes checks whether a target type signature is assignable from a source type signature.

$ fedtypes '<f=(int32 -> int32),x=int32>' '<(int32 -> int32),int32>'
$ fedtypes -checks=checks.yaml
$ fedtypes -demo -json

Usage:
`)
		flag.PrintDefaults()
	}
	klog.InitFlags(flag.CommandLine)
	flag.Parse()

	switch {
	case *flagDemo:
		must.M(runDemo(os.Stdout, *flagJSON))
	case *flagChecks != "":
		failures := must.M1(runChecksFile(*flagChecks, os.Stdout))
		if failures > 0 {
			klog.Errorf("%d check(s) failed", failures)
			os.Exit(1)
		}
	case flag.NArg() == 2:
		target := must.M1(types.Parse(flag.Arg(0)))
		source := must.M1(types.Parse(flag.Arg(1)))
		if err := types.CheckAssignable(target, source); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		fmt.Printf("type %s is assignable from source type %s\n", target, source)
	default:
		flag.Usage()
		os.Exit(2)
	}
}
