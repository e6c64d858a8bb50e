package sql

// parseUpdate parses UPDATE table SET col=val, ... [WHERE ...].
func (p *Parser) parseUpdate() (Statement, error) {
	p.advance() // UPDATE
	tableName, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokSet, "SET"); err != nil {
		return nil, err
	}

	var assignments []Assignment
	for {
		col, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokEquals, "'='"); err != nil {
			return nil, err
		}
		val, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, Assignment{Column: col, Value: val})

		if p.peek().Kind != TokComma {
			break
		}
		p.advance()
	}

	where, err := p.maybeParseWhere()
	if err != nil {
		return nil, err
	}

	return &UpdateStmt{TableName: tableName, Assignments: assignments, Where: where}, nil
}
