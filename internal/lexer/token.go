package lexer

// TokenType represents the type of a token
type TokenType string

// Span represents the source location of a token
type Span struct {
	Filename string // optional source filename for diagnostics
	Line     int    // 1-based line number
	Column   int    // 1-based column number
	Start    int    // byte offset into the original source
	End      int    // exclusive end offset
}

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string // decoded value for strings, raw text for everything else
	Span    Span
}

// Token type constants
const (
	// Special tokens
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"

	// Identifiers and literals
	IDENT  TokenType = "IDENT"  // counter, total, x
	INT    TokenType = "INT"    // 42
	FLOAT  TokenType = "FLOAT"  // 3.14
	STRING TokenType = "STRING" // "hello {name}"

	// Operators
	ASSIGN   TokenType = "="
	PLUS     TokenType = "+"
	MINUS    TokenType = "-"
	ASTERISK TokenType = "*"
	SLASH    TokenType = "/"
	PERCENT  TokenType = "%"

	EQ     TokenType = "=="
	NOT_EQ TokenType = "!="
	LT     TokenType = "<"
	GT     TokenType = ">"
	LE     TokenType = "<="
	GE     TokenType = ">="

	// Delimiters
	COMMA     TokenType = ","
	COLON     TokenType = ":"
	SEMICOLON TokenType = ";"

	LPAREN   TokenType = "("
	RPAREN   TokenType = ")"
	LBRACE   TokenType = "{"
	RBRACE   TokenType = "}"
	LBRACKET TokenType = "["
	RBRACKET TokenType = "]"

	ARROW TokenType = "->"

	// Keywords
	LET      TokenType = "LET"
	CONST    TokenType = "CONST"
	FUNC     TokenType = "FUNC"
	DISPLAY  TokenType = "DISPLAY"
	SEND     TokenType = "SEND"
	IF       TokenType = "IF"
	ELSE     TokenType = "ELSE"
	WHILE    TokenType = "WHILE"
	DO       TokenType = "DO"
	FOR      TokenType = "FOR"
	TRUE     TokenType = "TRUE"
	FALSE    TokenType = "FALSE"
	BREAK    TokenType = "BREAK"
	CONTINUE TokenType = "CONTINUE"
	AND      TokenType = "AND"
	OR       TokenType = "OR"
	NOT      TokenType = "NOT"

	// Type keywords
	TYPE_INT    TokenType = "TYPE_INT"
	TYPE_FLOAT  TokenType = "TYPE_FLOAT"
	TYPE_STRING TokenType = "TYPE_STRING"
	TYPE_BOOL   TokenType = "TYPE_BOOL"
)

var keywords = map[string]TokenType{
	"let":      LET,
	"const":    CONST,
	"func":     FUNC,
	"display":  DISPLAY,
	"send":     SEND,
	"if":       IF,
	"else":     ELSE,
	"while":    WHILE,
	"do":       DO,
	"for":      FOR,
	"true":     TRUE,
	"false":    FALSE,
	"break":    BREAK,
	"continue": CONTINUE,
	"AND":      AND,
	"OR":       OR,
	"NOT":      NOT,
	"int":      TYPE_INT,
	"float":    TYPE_FLOAT,
	"string":   TYPE_STRING,
	"bool":     TYPE_BOOL,
}

// LookupIdent checks if the identifier is a keyword
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
