package kvline

//nolint:gochecknoglobals // set via ldflags at build time.
var (
	// Version is the kvline version, set via ldflags.
	Version = "dev"
	// CompiledAt is the build timestamp, set via ldflags.
	CompiledAt = "unknown"
)

// VersionString formats Version and CompiledAt for the version command.
func VersionString() string {
	return "kvline " + Version + " (compiled " + CompiledAt + ")"
}
