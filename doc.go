// Package kvline assembles the key=value parsing pipeline into an Fx
// application.
//
// The pieces live in sub-packages: parse holds the tokenizer and the typed
// value parsers, properties the schema and the ordered result store,
// config/parser/kv the Parser that drives them, and service the HTTP front
// end. App wires them together with the logger:
//
//	app := kvline.NewApp(
//		kvline.WithLogLevel("info"),
//		kvline.WithParseService("parse", nil, listener.WithAddress(":8080")),
//	)
//	app.Run()
package kvline
