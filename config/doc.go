// Package config wires input sources to parsers.
//
// The package uses an interface-based design with four extension points:
//   - DataFetcher: retrieves raw text (config/fetcher/file, config/fetcher/reader, config/fetcher/args)
//   - Parser: decodes the text into a target (config/parser/kv for key=value text,
//     config/parser/yaml and config/parser/toml for schema files)
//   - Defaulter: fills unset fields after parsing
//   - Validator: checks the result last
//
// # Path Navigation
//
// Provider and Load accept a path that selects a section of the input, using
// colon (:) as the separator:
//
//	"server"      -> keys server.* in key=value text, config["server"] in YAML/TOML
//	"db:primary"  -> keys db.primary.*, config["db"]["primary"]
//	""            -> the entire input
//
// # Example
//
//	type Settings struct {
//	    Count  uint      `kv:"count"`
//	    Ratios []float64 `kv:"ratios"`
//	}
//
//	fetcher, err := filefetcher.NewFetcher("settings.ini")()
//	settings, err := config.Load(&Settings{}, "", kv.NewParser(), fetcher)
package config
