// Package lexer turns source text into a stream of tokens. Tokens are
// produced one at a time; the parser pulls them on demand.
package lexer

import (
	"fmt"
	"strconv"

	"github.com/tisane-lang/tisane/lib/diag"
	"github.com/tisane-lang/tisane/lib/token"
)

var oneCharKind = map[byte]token.Kind{
	'\n': token.Newline,
	'+':  token.Plus,
	'-':  token.Minus,
	'*':  token.Multiplication,
	'/':  token.Division,
	'%':  token.Modulo,
	'{':  token.OpenBrace,
	'}':  token.CloseBrace,
	'(':  token.OpenParenthese,
	')':  token.CloseParenthese,
}

// twoCharToken describes tokens that need one character of lookahead.
// otherwise is the single-character fallback; invalid means the first
// character cannot stand alone.
type twoCharToken struct {
	next      byte
	ifNext    token.Kind
	otherwise token.Kind
	invalid   bool
}

var twoCharKind = map[byte]twoCharToken{
	'=': {next: '=', ifNext: token.Equal, otherwise: token.Assignment},
	'!': {next: '=', ifNext: token.NotEqual, invalid: true},
	'<': {next: '=', ifNext: token.LessEqual, otherwise: token.Less},
	'>': {next: '=', ifNext: token.GreaterEqual, otherwise: token.Greater},
}

// Lexer holds the scanning cursor. Line and column advance on every
// consumed character; a newline increments the line and resets the column.
type Lexer struct {
	source string
	file   string

	line   int
	column int

	index int
	ch    byte
}

// New creates a Lexer over source. file is used for locations only; the
// lexer performs no file I/O. A trailing newline is appended so that every
// statement, comment and string check can rely on one.
func New(file, source string) *Lexer {
	l := &Lexer{
		source: source + "\n",
		file:   file,
		line:   1,
		column: 0,
		index:  -1,
	}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}

	l.index++
	if l.index < len(l.source) {
		l.ch = l.source[l.index]
	} else {
		l.ch = 0
	}
}

func (l *Lexer) peekChar() byte {
	if l.index+1 < len(l.source) {
		return l.source[l.index+1]
	}
	return 0
}

func (l *Lexer) skipWhitespaces() {
	for l.ch == ' ' || l.ch == '\t' {
		l.readChar()
	}
}

func (l *Lexer) skipComments() {
	if l.ch == '#' {
		for l.ch != '\n' {
			l.readChar()
		}
	}
}

// location spans size characters starting at the cursor.
func (l *Lexer) location(size int) token.Location {
	return token.Location{
		File:  l.file,
		Start: token.Position{Line: l.line, Column: l.column},
		End:   token.Position{Line: l.line, Column: l.column + size},
	}
}

func (l *Lexer) twoCharToken(info twoCharToken) (token.Token, error) {
	start := token.Position{Line: l.line, Column: l.column}

	if l.peekChar() != info.next {
		location := token.Location{
			File:  l.file,
			Start: start,
			End:   token.Position{Line: l.line, Column: l.column + 1},
		}
		if info.invalid {
			return token.Token{}, &diag.SyntaxError{
				Location: location,
				Msg:      fmt.Sprintf("Got unexpected token: %q", l.peekChar()),
			}
		}
		return token.Token{Kind: info.otherwise, Location: location}, nil
	}

	l.readChar()
	location := token.Location{
		File:  l.file,
		Start: start,
		End:   token.Position{Line: l.line, Column: l.column + 1},
	}
	return token.Token{Kind: info.ifNext, Location: location}, nil
}

func (l *Lexer) stringToken() (token.Token, error) {
	start := token.Position{Line: l.line, Column: l.column}
	l.readChar()

	startIndex := l.index
	for l.ch != '"' {
		if l.ch == '\n' {
			return token.Token{}, &diag.SyntaxError{
				Location: token.Location{
					File:  l.file,
					Start: start,
					End:   token.Position{Line: l.line, Column: l.column},
				},
				Msg: "Missing closing quote",
			}
		}
		l.readChar()
	}

	location := token.Location{
		File:  l.file,
		Start: start,
		End:   token.Position{Line: l.line, Column: l.column + 1},
	}
	return token.Token{
		Kind:     token.String,
		Location: location,
		Text:     l.source[startIndex:l.index],
	}, nil
}

func (l *Lexer) numberToken() (token.Token, error) {
	start := token.Position{Line: l.line, Column: l.column}

	startIndex := l.index
	for isDigit(l.peekChar()) {
		l.readChar()
	}
	// A second '.' ends the number: "1.2.3" lexes as "1.2" then ".3".
	if l.peekChar() == '.' {
		l.readChar()
		for isDigit(l.peekChar()) {
			l.readChar()
		}
	}

	text := l.source[startIndex : l.index+1]
	location := token.Location{
		File:  l.file,
		Start: start,
		End:   token.Position{Line: l.line, Column: l.column + 1},
	}

	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token.Token{}, &diag.SyntaxError{Location: location, Msg: "Invalid number"}
	}

	return token.Token{Kind: token.Number, Location: location, Value: value}, nil
}

func (l *Lexer) identifierToken() (token.Token, error) {
	start := token.Position{Line: l.line, Column: l.column}

	startIndex := l.index
	for isLetter(l.peekChar()) || isDigit(l.peekChar()) {
		l.readChar()
	}

	name := l.source[startIndex : l.index+1]
	location := token.Location{
		File:  l.file,
		Start: start,
		End:   token.Position{Line: l.line, Column: l.column + 1},
	}

	if kind, ok := token.Keywords[name]; ok {
		return token.Token{Kind: kind, Location: location}, nil
	}

	if len(name) > 32 {
		return token.Token{}, &diag.SyntaxError{Location: location, Msg: "Identifier is too long"}
	}
	return token.Token{Kind: token.Identifier, Location: location, Text: name}, nil
}

// NextToken returns the next token in the stream. After the end of input
// it keeps returning EOF tokens.
func (l *Lexer) NextToken() (token.Token, error) {
	l.skipWhitespaces()
	l.skipComments()

	var tok token.Token
	var err error

	oneChar, isOneChar := oneCharKind[l.ch]
	twoChar, isTwoChar := twoCharKind[l.ch]

	switch {
	case l.ch == 0:
		tok = token.Token{Kind: token.EOF, Location: l.location(0)}
	case isOneChar:
		tok = token.Token{Kind: oneChar, Location: l.location(1)}
	case isTwoChar:
		tok, err = l.twoCharToken(twoChar)
	case l.ch == '"':
		tok, err = l.stringToken()
	case isDigit(l.ch) || l.ch == '.':
		tok, err = l.numberToken()
	case isLetter(l.ch):
		tok, err = l.identifierToken()
	default:
		err = &diag.SyntaxError{
			Location: l.location(1),
			Msg:      fmt.Sprintf("Got unexpected token: %q", l.ch),
		}
	}
	if err != nil {
		return token.Token{}, err
	}

	l.readChar()
	return tok, nil
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}
