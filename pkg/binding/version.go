package binding

import "github.com/yaklabco/gramlint/pkg/lint"

// Version is the version of the handle layer.
//
//nolint:gochecknoglobals // Set via ldflags at build time
var Version = "1.0.0"

// EngineVersion returns the version of the analysis engine.
func EngineVersion() string {
	return lint.Version
}

// BindingVersion returns the version of the handle layer.
func BindingVersion() string {
	return Version
}
