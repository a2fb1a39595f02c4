// Package yaml provides a YAML parser implementation for the config package.
//
// This package uses github.com/goccy/go-yaml for YAML parsing with native
// PathString support. The parser converts colon-separated paths
// (e.g., "schemas:server") to YAML path format (e.g., "$.schemas.server")
// internally. Kinds decode through encoding.TextUnmarshaler, so a schema file
// is a plain mapping of key to kind name:
//
//	truc: string
//	bidule: uint
//	blah: "[]uint"
//
// Usage:
//
//	parser := yaml.NewParser(yaml.WithStrict())
//	var schema properties.Schema
//	err := parser.Parse(data, &schema, "schemas:server")
//
// Path Conversion:
//   - Empty path "" -> unmarshal entire document
//   - Single key "key" -> "$.key"
//   - Nested path "schemas:server" -> "$.schemas.server"
package yaml
