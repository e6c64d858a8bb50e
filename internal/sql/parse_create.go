package sql

import "fmt"

// parseCreate dispatches CREATE DATABASE, CREATE TABLE, and CREATE [UNIQUE]
// INDEX, which all share the CREATE keyword.
func (p *Parser) parseCreate() (Statement, error) {
	p.advance() // CREATE
	switch p.peek().Kind {
	case TokDatabase:
		p.advance()
		name, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		return &CreateDatabaseStmt{Name: name}, nil
	case TokTable:
		return p.parseCreateTable()
	case TokUnique:
		p.advance()
		if p.peek().Kind != TokIndex {
			return nil, fmt.Errorf("sql: expected INDEX after UNIQUE at offset %d", p.peek().Pos)
		}
		return p.parseCreateIndex(true)
	case TokIndex:
		return p.parseCreateIndex(false)
	default:
		return nil, fmt.Errorf("sql: expected DATABASE, TABLE, or INDEX after CREATE at offset %d", p.peek().Pos)
	}
}

func (p *Parser) parseCreateTable() (Statement, error) {
	p.advance() // TABLE
	tableName, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokLeftParen, "'('"); err != nil {
		return nil, err
	}

	var columns []ColumnDef
	for {
		colName, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		def := ColumnDef{Name: colName}
		switch p.advance().Kind {
		case TokInteger:
			def.Type = TypeInteger
		case TokText:
			def.Type = TypeText
			if p.peek().Kind == TokLeftParen {
				p.advance()
				size, err := p.expect(TokNumber, "column size")
				if err != nil {
					return nil, err
				}
				if _, err := p.expect(TokRightParen, "')'"); err != nil {
					return nil, err
				}
				def.Size = uint32(size.Num)
			}
		default:
			return nil, fmt.Errorf("sql: expected column type at offset %d", p.peek().Pos)
		}
		columns = append(columns, def)

		switch p.advance().Kind {
		case TokComma:
			continue
		case TokRightParen:
			return &CreateTableStmt{TableName: tableName, Columns: columns}, nil
		default:
			return nil, fmt.Errorf("sql: expected ',' or ')' at offset %d", p.peek().Pos)
		}
	}
}

func (p *Parser) parseCreateIndex(unique bool) (Statement, error) {
	p.advance() // INDEX
	indexName, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokOn, "ON"); err != nil {
		return nil, err
	}
	tableName, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokLeftParen, "'('"); err != nil {
		return nil, err
	}
	column, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokRightParen, "')'"); err != nil {
		return nil, err
	}
	return &CreateIndexStmt{IndexName: indexName, TableName: tableName, Column: column, Unique: unique}, nil
}
