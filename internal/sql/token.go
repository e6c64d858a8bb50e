package sql

// TokenKind identifies the lexical class of a Token.
type TokenKind int

const (
	TokEOF TokenKind = iota

	// Keywords
	TokSelect
	TokInsert
	TokInto
	TokValues
	TokFrom
	TokWhere
	TokAnd
	TokOr
	TokCreate
	TokTable
	TokDelete
	TokUpdate
	TokSet
	TokDrop
	TokDatabase
	TokConnect
	TokIndex
	TokUnique
	TokInner
	TokJoin
	TokOn
	TokBegin
	TokCommit
	TokRollback

	// Data types
	TokInteger
	TokText

	// Literals
	TokIdentifier
	TokStringLiteral
	TokNumber

	// Operators
	TokEquals
	TokNotEquals
	TokLessThan
	TokGreaterThan
	TokLessEquals
	TokGreaterEquals

	// Punctuation
	TokComma
	TokSemicolon
	TokLeftParen
	TokRightParen
	TokAsterisk
)

// Token is one lexical unit produced by the Tokenizer. Text carries the
// literal value for TokIdentifier and TokStringLiteral; Num carries the
// parsed value for TokNumber.
type Token struct {
	Kind TokenKind
	Text string
	Num  int64
	Pos  int
}

var keywords = map[string]TokenKind{
	"SELECT":   TokSelect,
	"INSERT":   TokInsert,
	"INTO":     TokInto,
	"VALUES":   TokValues,
	"FROM":     TokFrom,
	"WHERE":    TokWhere,
	"AND":      TokAnd,
	"OR":       TokOr,
	"CREATE":   TokCreate,
	"TABLE":    TokTable,
	"DELETE":   TokDelete,
	"UPDATE":   TokUpdate,
	"SET":      TokSet,
	"DROP":     TokDrop,
	"DATABASE": TokDatabase,
	"CONNECT":  TokConnect,
	"INDEX":    TokIndex,
	"UNIQUE":   TokUnique,
	"INNER":    TokInner,
	"JOIN":     TokJoin,
	"ON":       TokOn,
	"BEGIN":    TokBegin,
	"COMMIT":   TokCommit,
	"ROLLBACK": TokRollback,
	"INTEGER":  TokInteger,
	"INT":      TokInteger,
	"TEXT":     TokText,
	"VARCHAR":  TokText,
}
