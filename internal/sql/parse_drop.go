package sql

import "fmt"

// parseDrop dispatches DROP TABLE and DROP INDEX.
func (p *Parser) parseDrop() (Statement, error) {
	p.advance() // DROP
	switch p.peek().Kind {
	case TokTable:
		p.advance()
		name, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		return &DropTableStmt{TableName: name}, nil
	case TokIndex:
		p.advance()
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
		return &DropIndexStmt{IndexName: indexName, TableName: tableName}, nil
	default:
		return nil, fmt.Errorf("sql: expected TABLE or INDEX after DROP at offset %d", p.peek().Pos)
	}
}
