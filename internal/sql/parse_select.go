package sql

import "fmt"

// parseSelect parses SELECT cols|* FROM table [[INNER] JOIN t2 ON a=b]
// [WHERE ...]. Only a single join is supported, matching the reference
// dialect's one-join SELECT.
func (p *Parser) parseSelect() (Statement, error) {
	p.advance() // SELECT

	var columns []string
	if p.peek().Kind == TokAsterisk {
		p.advance()
	} else {
		for {
			col, err := p.expectIdentifier()
			if err != nil {
				return nil, err
			}
			columns = append(columns, col)
			if p.peek().Kind != TokComma {
				break
			}
			p.advance()
		}
	}

	if _, err := p.expect(TokFrom, "FROM"); err != nil {
		return nil, err
	}
	tableName, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}

	var join *JoinClause
	if p.peek().Kind == TokInner || p.peek().Kind == TokJoin {
		if p.peek().Kind == TokInner {
			p.advance()
		}
		if _, err := p.expect(TokJoin, "JOIN"); err != nil {
			return nil, err
		}
		joinTable, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokOn, "ON"); err != nil {
			return nil, err
		}
		leftCol, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokEquals, "'='"); err != nil {
			return nil, err
		}
		rightCol, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		join = &JoinClause{TableName: joinTable, LeftColumn: leftCol, RightColumn: rightCol}
	}

	where, err := p.maybeParseWhere()
	if err != nil {
		return nil, err
	}

	if p.peek().Kind != TokEOF && p.peek().Kind != TokSemicolon {
		return nil, fmt.Errorf("sql: unexpected trailing token at offset %d", p.peek().Pos)
	}

	return &SelectStmt{Columns: columns, TableName: tableName, Join: join, Where: where}, nil
}
