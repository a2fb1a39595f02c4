// Package args provides a DataFetcher over process arguments.
//
// The arguments are joined with single spaces into one command line, which a
// word tokenizer (parse.WordPattern) splits back into the original words.
// Pass os.Args[1:], not os.Args.
package args
