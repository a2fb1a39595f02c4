// Package parse splits and converts simple "key=value" text.
//
// The package works on Tokens: zero-copy views into an immutable source
// string that remember their absolute byte offsets. A typical flow is
//
//	lines, err := parse.SplitLines(text)          // one Token per line
//	pair, err := parse.SplitKeyValue(lines[0])     // key / value Tokens
//	n, err := parse.ParseScalar[uint](pair.Value)  // strict conversion
//	v, err := parse.ParseVector[float64](pair.Value)
//
// Every operation returns a *Error on bad input. Its Kind is one of the
// parsing kinds (KeyValueNotParsed, KeyNotFound, ValueNotParsed, EmptyVector,
// VectorValueNotParsed) or one of the input kinds (FileNotOpened, FileIoError,
// ArgError, Empty). Use errors.Is with the matching Err sentinel or KindOf to
// inspect it.
//
// # Chained pairs
//
// The value half of a Pair may contain more '=' characters and can be split
// again:
//
//	a=b=c=35 -> (a, b=c=35) -> (b, c=35) -> (c, 35)
//
// Offsets stay absolute through every step, so errors point into the
// original text.
//
// All functions are pure and safe for concurrent use.
package parse
