package sql

// parseDelete parses DELETE FROM table [WHERE ...].
func (p *Parser) parseDelete() (Statement, error) {
	p.advance() // DELETE
	if _, err := p.expect(TokFrom, "FROM"); err != nil {
		return nil, err
	}
	tableName, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	where, err := p.maybeParseWhere()
	if err != nil {
		return nil, err
	}
	return &DeleteStmt{TableName: tableName, Where: where}, nil
}
