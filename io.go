package main

import (
	"bufio"
	"fmt"
	"strings"
)

// printPrompt writes the REPL's input prompt; "..." continues a statement
// still accumulating lines up to its terminating ';'.
func printPrompt(buffered bool) {
	if buffered {
		fmt.Print("... ")
		return
	}
	fmt.Print("rsql> ")
}

// readInput reads one line of input, trimmed of surrounding whitespace.
func readInput(reader *bufio.Reader) (string, error) {
	input, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}
