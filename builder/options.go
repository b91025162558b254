package builder

import (
	"io"

	"omibyte.io/svdload/targets"
)

// DefaultNamespace holds the peripheral labels unless Options says otherwise.
const DefaultNamespace = "Peripherals"

type Options struct {
	// Targets is searched for device specific tweaks. The built-in table is
	// used when it is nil.
	Targets targets.Targets

	Namespace string

	// Strict stops the pass at the first failure instead of recording it.
	Strict bool

	// Progress receives the human readable progress lines. Nothing is
	// printed when it is nil.
	Progress io.Writer

	Environment Env
}

func (o Options) namespace() string {
	if len(o.Namespace) > 0 {
		return o.Namespace
	}
	if ns := o.Environment.Value("SVDLOAD_NAMESPACE"); len(ns) > 0 {
		return ns
	}
	return DefaultNamespace
}

func (o Options) targets() targets.Targets {
	if o.Targets != nil {
		return o.Targets
	}
	return targets.All()
}
