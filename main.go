// Command rsql is a REPL front end for the storage engine in internal/:
// it reads SQL text from stdin, tokenizes and parses it, executes it
// against the connected database, and prints the result as a table.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"rsql/internal/engine"
	"rsql/internal/sql"
)

func main() {
	fmt.Println("rsql — a minimal disk-backed relational database")
	fmt.Println(`Type ".help" for usage, ".exit" to quit.`)

	eng := engine.New()
	defer eng.Close()

	runREPL(eng)
}

func runREPL(eng *engine.Engine) {
	reader := bufio.NewReader(os.Stdin)
	var buffer strings.Builder

	for {
		printPrompt(buffer.Len() > 0)

		line, err := readInput(reader)
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Println()
				return
			}
			fmt.Println("read error:", err)
			return
		}

		if buffer.Len() == 0 {
			if line == "" {
				continue
			}
			if strings.HasPrefix(line, ".") {
				switch handleMetaCommand(line, eng) {
				case MetaCommandExit:
					return
				case MetaCommandUnrecognizedCommand:
					fmt.Printf("unrecognized command %q\n", line)
				}
				continue
			}
		}

		if buffer.Len() > 0 {
			buffer.WriteString(" ")
		}
		buffer.WriteString(line)

		if strings.HasSuffix(line, ";") {
			handleSQL(buffer.String(), eng)
			buffer.Reset()
		}
	}
}

// handleSQL tokenizes, parses, and executes one statement, printing its
// result set (if any) or an error.
func handleSQL(text string, eng *engine.Engine) {
	stmt, err := sql.Parse(text)
	if err != nil {
		fmt.Println("parse error:", err)
		return
	}

	headers, rows, err := eng.Execute(stmt)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	if headers == nil {
		fmt.Println("OK")
		return
	}
	printResultSet(headers, rows)
}

func printResultSet(headers []string, rows [][]string) {
	fmt.Println(strings.Join(headers, " | "))
	for _, row := range rows {
		fmt.Println(strings.Join(row, " | "))
	}
}
