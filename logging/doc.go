// Package logging builds the slog.Logger shared by the CLI, the HTTP service
// and the Fx event log. Output is JSON by default, or logfmt-style text for
// interactive use.
package logging
