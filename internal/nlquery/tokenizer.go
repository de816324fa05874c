package nlquery

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenType classifies a single token of the stock-question language.
type TokenType int

const (
	TokenEOF TokenType = iota

	// Literals and fallbacks.
	TokenItemID // LETTERS-DIGITS, e.g. TV-1234
	TokenNumber
	TokenWord
	TokenQuestionMark

	// Sentence keywords.
	TokenI
	TokenWant
	TokenTo
	TokenKnow
	TokenHowMany
	TokenUnits
	TokenOf
	TokenItem
	TokenItems
	TokenProduct
	TokenProducts
	TokenIn
	TokenThe
	TokenStore
	TokenStock
	TokenShow
	TokenList
	TokenAll
	TokenWhat
	TokenIs
	TokenAre
	TokenAvailable
	TokenLow
	TokenOut
	TokenEmpty
	TokenLess
	TokenThan
	TokenMore
	TokenGreater
	TokenWe
	TokenHave
	TokenDo
	TokenYou
	TokenCan
	TokenGet
	TokenTell
	TokenMe
	TokenAnd
	TokenAlso

	// Product keywords.
	TokenTVs
	TokenTV
	TokenPhones
	TokenPhone
	TokenMobiles
	TokenMobile
	TokenSmartphone
	TokenLaptops
	TokenLaptop
	TokenComputers
	TokenComputer
	TokenTablets
	TokenTablet
	TokenDrives
	TokenDrive
	TokenHard
)

// Token represents a single token produced from the input text.
type Token struct {
	Type TokenType
	Text string
	Pos  int
}

// keywords maps a complete lowercase lexeme to its token type. Because the
// tokenizer always reads a maximal lexeme before classifying it, overlapping
// keyword prefixes (tv/tvs, item/items, phone/phones) cannot shadow each
// other: the longest-specific match always wins.
var keywords = map[string]TokenType{
	"i":          TokenI,
	"want":       TokenWant,
	"to":         TokenTo,
	"know":       TokenKnow,
	"units":      TokenUnits,
	"of":         TokenOf,
	"item":       TokenItem,
	"items":      TokenItems,
	"product":    TokenProduct,
	"products":   TokenProducts,
	"in":         TokenIn,
	"the":        TokenThe,
	"store":      TokenStore,
	"stock":      TokenStock,
	"show":       TokenShow,
	"list":       TokenList,
	"all":        TokenAll,
	"what":       TokenWhat,
	"is":         TokenIs,
	"are":        TokenAre,
	"available":  TokenAvailable,
	"low":        TokenLow,
	"out":        TokenOut,
	"empty":      TokenEmpty,
	"less":       TokenLess,
	"than":       TokenThan,
	"more":       TokenMore,
	"greater":    TokenGreater,
	"we":         TokenWe,
	"have":       TokenHave,
	"do":         TokenDo,
	"you":        TokenYou,
	"can":        TokenCan,
	"get":        TokenGet,
	"tell":       TokenTell,
	"me":         TokenMe,
	"and":        TokenAnd,
	"also":       TokenAlso,
	"tvs":        TokenTVs,
	"tv":         TokenTV,
	"phones":     TokenPhones,
	"phone":      TokenPhone,
	"mobiles":    TokenMobiles,
	"mobile":     TokenMobile,
	"smartphone": TokenSmartphone,
	"laptops":    TokenLaptops,
	"laptop":     TokenLaptop,
	"computers":  TokenComputers,
	"computer":   TokenComputer,
	"tablets":    TokenTablets,
	"tablet":     TokenTablet,
	"drives":     TokenDrives,
	"drive":      TokenDrive,
	"hard":       TokenHard,
}

// Tokenizer converts raw question text into tokens. Tokenization is never
// fatal: characters that match no rule are skipped and recorded in Skipped.
type Tokenizer struct {
	input string
	pos   int

	// Skipped holds the positions of characters that matched no rule.
	Skipped []int
}

// NewTokenizer creates a tokenizer over the given input.
func NewTokenizer(input string) *Tokenizer {
	return &Tokenizer{input: input}
}

func (t *Tokenizer) ch() rune {
	if t.pos >= len(t.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(t.input[t.pos:])
	return r
}

// advance moves past the current rune, which may span several bytes.
func (t *Tokenizer) advance() {
	_, size := utf8.DecodeRuneInString(t.input[t.pos:])
	t.pos += size
}

func (t *Tokenizer) skipWhitespace() {
	for t.ch() == ' ' || t.ch() == '\t' || t.ch() == '\n' || t.ch() == '\r' {
		t.advance()
	}
}

// readLexeme reads a maximal run of letters, digits and hyphens.
func (t *Tokenizer) readLexeme() string {
	var b strings.Builder
	for {
		c := t.ch()
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '-' {
			b.WriteRune(c)
			t.advance()
			continue
		}
		break
	}
	return b.String()
}

// peekLexeme returns the next whitespace-delimited lexeme without consuming
// it, along with the position just past it. Used to fuse "how many".
func (t *Tokenizer) peekLexeme() (string, int) {
	p := t.pos
	for p < len(t.input) {
		c, size := utf8.DecodeRuneInString(t.input[p:])
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			break
		}
		p += size
	}
	start := p
	for p < len(t.input) {
		c, size := utf8.DecodeRuneInString(t.input[p:])
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '-' {
			break
		}
		p += size
	}
	return t.input[start:p], p
}

// isItemID reports whether a lexeme has the LETTERS-DIGITS shape.
func isItemID(lexeme string) bool {
	dash := strings.IndexByte(lexeme, '-')
	if dash <= 0 || dash == len(lexeme)-1 {
		return false
	}
	for _, c := range lexeme[:dash] {
		if !unicode.IsLetter(c) {
			return false
		}
	}
	for _, c := range lexeme[dash+1:] {
		if !unicode.IsDigit(c) {
			return false
		}
	}
	return true
}

func isNumber(lexeme string) bool {
	if lexeme == "" {
		return false
	}
	for _, c := range lexeme {
		if !unicode.IsDigit(c) {
			return false
		}
	}
	return true
}

func isWord(lexeme string) bool {
	if lexeme == "" {
		return false
	}
	for _, c := range lexeme {
		if !unicode.IsLetter(c) {
			return false
		}
	}
	return true
}

// NextToken returns the next token. It returns TokenEOF once the input is
// exhausted and never returns an error: unrecognized characters are skipped.
func (t *Tokenizer) NextToken() Token {
	for {
		t.skipWhitespace()

		if t.pos >= len(t.input) {
			return Token{Type: TokenEOF, Pos: t.pos}
		}

		pos := t.pos

		if t.ch() == '?' {
			t.advance()
			return Token{Type: TokenQuestionMark, Text: "?", Pos: pos}
		}

		lexeme := t.readLexeme()
		if lexeme == "" {
			// Character matches no rule; skip it and keep going.
			t.Skipped = append(t.Skipped, pos)
			t.advance()
			continue
		}

		return t.classify(lexeme, pos)
	}
}

// classify maps a complete lexeme to its token. Priority order: item-id
// literal, multi-word keyword ("how many"), single keyword, number, word.
func (t *Tokenizer) classify(lexeme string, pos int) Token {
	if isItemID(lexeme) {
		return Token{Type: TokenItemID, Text: strings.ToUpper(lexeme), Pos: pos}
	}

	lower := strings.ToLower(lexeme)

	if lower == "how" {
		if next, end := t.peekLexeme(); strings.ToLower(next) == "many" {
			text := t.input[pos:end]
			t.pos = end
			return Token{Type: TokenHowMany, Text: text, Pos: pos}
		}
	}

	if kind, ok := keywords[lower]; ok {
		return Token{Type: kind, Text: lexeme, Pos: pos}
	}

	if isNumber(lexeme) {
		return Token{Type: TokenNumber, Text: lexeme, Pos: pos}
	}

	if isWord(lexeme) {
		return Token{Type: TokenWord, Text: lexeme, Pos: pos}
	}

	// Mixed lexemes like "ab1-c" match no literal rule; fall back to WORD so
	// tokenization stays non-fatal.
	return Token{Type: TokenWord, Text: lexeme, Pos: pos}
}

// TokenizeAll returns every token in the input, excluding the trailing EOF.
func (t *Tokenizer) TokenizeAll() []Token {
	var tokens []Token
	for {
		tok := t.NextToken()
		if tok.Type == TokenEOF {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}
