package lint

// Version is the engine version reported to callers.
//
//nolint:gochecknoglobals // Set via ldflags at build time
var Version = "0.4.0"
