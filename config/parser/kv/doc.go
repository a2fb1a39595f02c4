// Package kv parses "key=value" text into properties or tagged structs.
//
// Parser implements config.Parser. The input is split into tokens (lines by
// default, words for command lines), each token is split at its first '='
// and the value is converted to the type the target declares for the key:
//
//   - *properties.Properties: the type comes from the Schema given with
//     WithSchema; without a schema every value is kept as raw text
//   - pointer to struct: the type is the field type. Fields are matched by
//     the `kv:"name"` tag or by their lowercased name; `kv:"-"` skips a field
//
// Usage:
//
//	type Settings struct {
//	    Count  uint      `kv:"count"`
//	    Ratios []float64 `kv:"ratios"`
//	}
//
//	parser := kv.NewParser(kv.WithPolicy(kv.Collect))
//	var s Settings
//	err := parser.Parse([]byte("count=3\nratios=1,2.5\n"), &s, "")
//
// A key that has no schema entry or field is a KeyNotFound error. What
// happens to failing entries depends on the Policy: Abort stops at the first
// one, Skip logs and continues, Collect continues and returns them all.
// Every entry error is a *LineError wrapping a *parse.Error.
package kv
