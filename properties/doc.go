// Package properties holds parsed key/value results.
//
// A Properties value is owned by the caller: the parsing pipeline fills the
// instance it is given and keeps no global state. Keys are ordered by first
// insertion.
//
// The type of each key is supplied per invocation through a Schema, which
// maps key names to a Kind such as "uint" or "[]float". Schemas can be
// written in YAML or TOML and loaded with the config parsers:
//
//	count: uint
//	ratios: "[]float"
//	name: string
package properties
