package main

// MetaCommandResult reports whether a "."-prefixed REPL command was
// recognized and handled.
type MetaCommandResult int

const (
	MetaCommandSuccess MetaCommandResult = iota
	MetaCommandUnrecognizedCommand
	MetaCommandExit
)
