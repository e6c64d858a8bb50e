package sql

import "fmt"

// parseInsert parses INSERT INTO table [(col, ...)] VALUES (val, ...).
func (p *Parser) parseInsert() (Statement, error) {
	p.advance() // INSERT
	if _, err := p.expect(TokInto, "INTO"); err != nil {
		return nil, err
	}
	tableName, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}

	var columns []string
	if p.peek().Kind == TokLeftParen {
		p.advance()
		cols, err := p.parseIdentifierList()
		if err != nil {
			return nil, err
		}
		columns = cols
	}

	if _, err := p.expect(TokValues, "VALUES"); err != nil {
		return nil, err
	}
	if _, err := p.expect(TokLeftParen, "'('"); err != nil {
		return nil, err
	}

	var values []Value
	for {
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		values = append(values, v)
		switch p.advance().Kind {
		case TokComma:
			continue
		case TokRightParen:
			return &InsertStmt{TableName: tableName, Columns: columns, Values: values}, nil
		default:
			return nil, fmt.Errorf("sql: expected ',' or ')' at offset %d", p.peek().Pos)
		}
	}
}
