// Package toml provides a TOML parser implementation for the config package.
//
// It uses github.com/BurntSushi/toml and walks colon-separated paths through
// toml.Primitive values, so that only the selected table is decoded into the
// target:
//
//	parser := toml.NewParser()
//	var schema properties.Schema
//	err := parser.Parse(data, &schema, "db:primary")
package toml
