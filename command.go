package main

import (
	"fmt"
	"strings"

	"rsql/internal/engine"
)

// handleMetaCommand processes a "."-prefixed REPL command: .exit, .tables,
// .schema <table>, .help. Anything else is reported unrecognized.
func handleMetaCommand(line string, eng *engine.Engine) MetaCommandResult {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return MetaCommandUnrecognizedCommand
	}

	switch parts[0] {
	case ".exit":
		return MetaCommandExit

	case ".help":
		printHelp()
		return MetaCommandSuccess

	case ".tables":
		names, err := eng.ListTables()
		if err != nil {
			fmt.Println("error:", err)
			return MetaCommandSuccess
		}
		if len(names) == 0 {
			fmt.Println("(no tables)")
			return MetaCommandSuccess
		}
		fmt.Println(strings.Join(names, "\n"))
		return MetaCommandSuccess

	case ".schema":
		if len(parts) < 2 {
			fmt.Println("usage: .schema <table>")
			return MetaCommandSuccess
		}
		schema, err := eng.TableSchema(parts[1])
		if err != nil {
			fmt.Println("error:", err)
			return MetaCommandSuccess
		}
		for _, col := range schema {
			fmt.Printf("%s %s\n", col.Name, col.Type)
		}
		return MetaCommandSuccess

	default:
		return MetaCommandUnrecognizedCommand
	}
}

func printHelp() {
	fmt.Println("Statements:")
	fmt.Println("  CREATE DATABASE name;")
	fmt.Println("  CONNECT name;")
	fmt.Println("  CREATE TABLE name (col INTEGER|TEXT(n)|VARCHAR(n), ...);")
	fmt.Println("  DROP TABLE name;")
	fmt.Println("  CREATE [UNIQUE] INDEX name ON table(column);")
	fmt.Println("  DROP INDEX name ON table;")
	fmt.Println("  INSERT INTO table [(cols)] VALUES (...);")
	fmt.Println("  SELECT cols|* FROM table [[INNER] JOIN t2 ON a=b] [WHERE ...];")
	fmt.Println("  UPDATE table SET col=val, ... [WHERE ...];")
	fmt.Println("  DELETE FROM table [WHERE ...];")
	fmt.Println("  BEGIN; COMMIT; ROLLBACK;")
	fmt.Println("Meta commands:")
	fmt.Println("  .tables        list tables in the connected database")
	fmt.Println("  .schema <tbl>  show a table's columns")
	fmt.Println("  .help          show this help")
	fmt.Println("  .exit          quit")
}
