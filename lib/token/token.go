package token

// Kind identifies the lexical class of a token.
type Kind int

const (
	EOF Kind = iota
	Newline

	Identifier
	Number
	String

	OpenBrace
	CloseBrace
	OpenParenthese
	CloseParenthese

	If
	Else
	While
	Declaration
	Assignment

	Input
	Print

	Plus
	Minus
	Multiplication
	Division
	Modulo

	Equal
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual
)

var kindNames = map[Kind]string{
	EOF:             "EOF",
	Newline:         "NEWLINE",
	Identifier:      "IDENTIFIER",
	Number:          "NUMBER",
	String:          "STRING",
	OpenBrace:       "'{'",
	CloseBrace:      "'}'",
	OpenParenthese:  "'('",
	CloseParenthese: "')'",
	If:              "'if'",
	Else:            "'else'",
	While:           "'while'",
	Declaration:     "'let'",
	Assignment:      "'='",
	Input:           "'input'",
	Print:           "'print'",
	Plus:            "'+'",
	Minus:           "'-'",
	Multiplication:  "'*'",
	Division:        "'/'",
	Modulo:          "'%'",
	Equal:           "'=='",
	NotEqual:        "'!='",
	Less:            "'<'",
	LessEqual:       "'<='",
	Greater:         "'>'",
	GreaterEqual:    "'>='",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Keywords maps reserved words to their token kinds.
var Keywords = map[string]Kind{
	"if":    If,
	"else":  Else,
	"while": While,
	"input": Input,
	"print": Print,
	"let":   Declaration,
}

// Token is the smallest lexical unit. Text is set for IDENTIFIER and
// STRING tokens, Value for NUMBER tokens.
type Token struct {
	Kind     Kind
	Location Location
	Text     string
	Value    float64
}
