package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gomlx/fedcomp/types"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

// ChecksFile is the format of the YAML file given with -checks.
type ChecksFile struct {
	Checks []Check `yaml:"checks"`
}

// Check is one assignability check: whether Target is assignable from Source is expected to be Want.
type Check struct {
	Name   string `yaml:"name,omitempty"`
	Target string `yaml:"target"`
	Source string `yaml:"source"`
	Want   bool   `yaml:"want"`
}

// runChecksFile runs the checks of the YAML file at path, see runChecks. The file is closed before returning.
func runChecksFile(path string, w io.Writer) (failures int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to open checks file %q", path)
	}
	defer func() { _ = f.Close() }()
	return runChecks(f, w)
}

// runChecks reads the checks from r, runs them and reports one line per check to w.
// It returns the number of failed checks.
func runChecks(r io.Reader, w io.Writer) (failures int, err error) {
	var file ChecksFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return 0, errors.Wrap(err, "failed to parse checks file")
	}
	for i, check := range file.Checks {
		name := check.Name
		if name == "" {
			name = fmt.Sprintf("#%d", i)
		}
		target, err := types.Parse(check.Target)
		if err != nil {
			return failures, errors.WithMessagef(err, "check %s", name)
		}
		source, err := types.Parse(check.Source)
		if err != nil {
			return failures, errors.WithMessagef(err, "check %s", name)
		}
		got := types.IsAssignableFrom(target, source)
		status := "ok"
		if got != check.Want {
			status = "FAILED"
			failures++
		}
		klog.V(1).Infof("check %s: IsAssignableFrom(%s, %s)=%v", name, target, source, got)
		if _, err := fmt.Fprintf(w, "%-6s %s: %s <- %s: %v\n", status, name, target, source, got); err != nil {
			return failures, errors.Wrap(err, "failed to write report")
		}
	}
	return failures, nil
}
