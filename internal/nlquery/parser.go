package nlquery

import (
	"strconv"
	"strings"
)

// Parser matches one tokenized segment against the fixed set of question
// productions. Matching is deterministic: productions are tried in a fixed
// order and the first full match wins. There is no error recovery inside a
// production; a failed production restores the token position and the next
// one is tried.
type Parser struct {
	tokens []Token
	pos    int
	trace  *Trace
}

// Trace is the structured diagnostic record of one parse attempt.
type Trace struct {
	Tokens   []Token
	Attempts []Attempt
}

// Attempt records one production tried during parsing.
type Attempt struct {
	Production string
	Matched    bool
}

// NewParser creates a parser over an already tokenized segment.
func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

// ParseSegment tokenizes and parses one question segment. A segment that
// matches no production returns ErrNoParse; the caller treats that as a
// first-class outcome, not a fault.
func ParseSegment(text string) (Node, error) {
	node, _, err := ParseSegmentDebug(text)
	return node, err
}

// ParseSegmentDebug is ParseSegment with the diagnostic trace attached.
func ParseSegmentDebug(text string) (Node, *Trace, error) {
	tokens := NewTokenizer(text).TokenizeAll()
	if len(tokens) == 0 {
		return nil, &Trace{}, ErrEmptySegment
	}
	p := NewParser(tokens)
	p.trace = &Trace{Tokens: tokens}
	node, err := p.Parse()
	return node, p.trace, err
}

// Parse consumes the whole token sequence and returns the AST root.
func (p *Parser) Parse() (Node, error) {
	left, err := p.parseSingle()
	if err != nil {
		return nil, err
	}

	if p.atEOF() {
		return left, nil
	}

	// A second question may follow, joined by "and", "also", "and also" or
	// plain adjacency (a shared "?" is consumed by the first single query).
	if _, ok := p.accept(TokenAnd); ok {
		p.accept(TokenAlso)
	} else {
		p.accept(TokenAlso)
	}

	right, err := p.parseSingle()
	if err != nil {
		return nil, err
	}

	if !p.atEOF() {
		// Compounding is capped at two clauses; reporting the excess beats
		// the silent drop a binary grammar would otherwise produce.
		return nil, ErrTooManyClauses
	}

	return &CompoundQuery{Left: left, Right: right}, nil
}

func (p *Parser) current() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF, Pos: len(p.tokens)}
	}
	return p.tokens[p.pos]
}

func (p *Parser) atEOF() bool {
	return p.pos >= len(p.tokens)
}

// accept consumes the current token if it has the given type.
func (p *Parser) accept(kind TokenType) (Token, bool) {
	if p.current().Type != kind {
		return Token{}, false
	}
	tok := p.current()
	p.pos++
	return tok, true
}

// acceptSeq consumes a fixed run of token types, all or nothing.
func (p *Parser) acceptSeq(kinds ...TokenType) bool {
	save := p.pos
	for _, kind := range kinds {
		if _, ok := p.accept(kind); !ok {
			p.pos = save
			return false
		}
	}
	return true
}

// phrase reconstructs the surface text of the tokens in [start, end).
func (p *Parser) phrase(start, end int) string {
	parts := make([]string, 0, end-start)
	for _, tok := range p.tokens[start:end] {
		parts = append(parts, tok.Text)
	}
	return strings.Join(parts, " ")
}

func (p *Parser) record(production string, matched bool) {
	if p.trace != nil {
		p.trace.Attempts = append(p.trace.Attempts, Attempt{Production: production, Matched: matched})
	}
}

// parseSingle matches one complete question, trying each production in the
// fixed grammar order, and consumes an optional trailing question mark.
func (p *Parser) parseSingle() (Node, error) {
	type production struct {
		name string
		try  func() (Node, bool)
	}
	productions := []production{
		{"quantity", p.tryQuantity},
		{"list", p.tryList},
		{"availability", p.tryAvailability},
		{"low_stock", p.tryLowStock},
		{"comparison", p.tryComparison},
	}

	for _, prod := range productions {
		save := p.pos
		node, ok := prod.try()
		p.record(prod.name, ok)
		if ok {
			p.accept(TokenQuestionMark)
			return node, nil
		}
		p.pos = save
	}
	return nil, ErrNoParse
}

// productFromToken maps a product keyword token to its canonical type.
// "hard drive" is handled by the caller because it spans two tokens.
func productFromToken(kind TokenType) (ProductType, bool) {
	switch kind {
	case TokenTVs, TokenTV:
		return ProductTV, true
	case TokenPhones, TokenPhone, TokenMobiles, TokenMobile, TokenSmartphone:
		return ProductPhone, true
	case TokenLaptops, TokenLaptop, TokenComputers, TokenComputer:
		return ProductLaptop, true
	case TokenTablets, TokenTablet:
		return ProductTablet, true
	case TokenDrives, TokenDrive:
		return ProductDrive, true
	case TokenProducts, TokenItems:
		return ProductAll, true
	}
	return "", false
}

// acceptProduct consumes a product type reference, including the two-token
// "hard drive" form.
func (p *Parser) acceptProduct() (ProductType, bool) {
	if p.acceptSeq(TokenHard, TokenDrive) {
		return ProductDrive, true
	}
	if product, ok := productFromToken(p.current().Type); ok {
		p.pos++
		return product, true
	}
	return "", false
}

// acceptProducts consumes the generic "products"/"items" plural.
func (p *Parser) acceptProducts() bool {
	if _, ok := p.accept(TokenProducts); ok {
		return true
	}
	_, ok := p.accept(TokenItems)
	return ok
}

// tryQuantity matches every quantity question form:
//
//	[CAN YOU TELL ME | I WANT TO KNOW] HOW MANY [UNITS OF]
//	  (ITEM <id> | <id> | <product>) [IN [THE] (STORE|STOCK)]
//	  [[DO] WE HAVE]
func (p *Parser) tryQuantity() (Node, bool) {
	start := p.pos

	// Optional politeness or formality prefix.
	if p.current().Type == TokenCan {
		if !p.acceptSeq(TokenCan, TokenYou, TokenTell, TokenMe) {
			return nil, false
		}
	} else if p.current().Type == TokenI {
		if !p.acceptSeq(TokenI, TokenWant, TokenTo, TokenKnow) {
			return nil, false
		}
	}

	if _, ok := p.accept(TokenHowMany); !ok {
		return nil, false
	}

	p.acceptSeq(TokenUnits, TokenOf)

	var itemID string
	var product ProductType
	if _, ok := p.accept(TokenItem); ok {
		tok, ok := p.accept(TokenItemID)
		if !ok {
			return nil, false
		}
		itemID = tok.Text
	} else if tok, ok := p.accept(TokenItemID); ok {
		itemID = tok.Text
	} else if prod, ok := p.acceptProduct(); ok {
		product = prod
	} else {
		return nil, false
	}

	location := LocationStore
	if _, ok := p.accept(TokenIn); ok {
		p.accept(TokenThe)
		if _, ok := p.accept(TokenStore); ok {
			location = LocationStore
		} else if _, ok := p.accept(TokenStock); ok {
			location = LocationStock
		} else {
			return nil, false
		}
	}

	if _, ok := p.accept(TokenDo); ok {
		if !p.acceptSeq(TokenWe, TokenHave) {
			return nil, false
		}
	} else if _, ok := p.accept(TokenWe); ok {
		if _, ok := p.accept(TokenHave); !ok {
			return nil, false
		}
	}

	original := p.phrase(start, p.pos)
	return &QuantityQuery{
		OriginalPhrase: original,
		Style:          styleOf(original),
		ItemID:         itemID,
		Product:        product,
		Location:       location,
	}, true
}

// styleOf derives the query style from the reconstructed phrase. The checks
// run in a fixed order, so a polite question ending in "we have" counts as
// conversational, matching the documented behavior.
func styleOf(phrase string) QueryStyle {
	lower := strings.ToLower(phrase)
	switch {
	case strings.Contains(lower, "we have"):
		return StyleConversational
	case strings.Contains(lower, "can you tell me"):
		return StylePoliteRequest
	case strings.Contains(lower, "i want to know"):
		return StyleFormalRequest
	default:
		return StyleBasic
	}
}

// tryList matches "show/list all products|items" and
// "what products|items are available".
func (p *Parser) tryList() (Node, bool) {
	start := p.pos

	switch p.current().Type {
	case TokenShow, TokenList:
		p.pos++
		if _, ok := p.accept(TokenAll); !ok {
			return nil, false
		}
		if !p.acceptProducts() {
			return nil, false
		}
	case TokenWhat:
		p.pos++
		if !p.acceptProducts() {
			return nil, false
		}
		if !p.acceptSeq(TokenAre, TokenAvailable) {
			return nil, false
		}
	default:
		return nil, false
	}

	return &ListQuery{
		OriginalPhrase: p.phrase(start, p.pos),
		Target:         TargetAllProducts,
	}, true
}

// tryAvailability matches "what is available" and "show available products".
func (p *Parser) tryAvailability() (Node, bool) {
	start := p.pos

	if p.acceptSeq(TokenWhat, TokenIs, TokenAvailable) {
		return &AvailabilityQuery{
			OriginalPhrase: p.phrase(start, p.pos),
			Target:         TargetAvailableProducts,
		}, true
	}

	if p.acceptSeq(TokenShow, TokenAvailable) && p.acceptProducts() {
		return &AvailabilityQuery{
			OriginalPhrase: p.phrase(start, p.pos),
			Target:         TargetAvailableProducts,
		}, true
	}

	return nil, false
}

// tryLowStock matches the low-stock and out-of-stock question forms.
func (p *Parser) tryLowStock() (Node, bool) {
	start := p.pos
	threshold := DefaultLowStockThreshold
	matched := false

	switch {
	case p.acceptSeq(TokenShow, TokenLow, TokenStock):
		matched = true
	case p.acceptSeq(TokenWhat, TokenIs, TokenLow, TokenIn, TokenStock):
		matched = true
	case p.acceptSeq(TokenShow, TokenEmpty):
		if p.acceptProducts() {
			matched = true
			threshold = 0
		}
	case p.current().Type == TokenWhat:
		save := p.pos
		p.pos++
		if p.acceptProducts() {
			if _, ok := p.accept(TokenAre); ok {
				if _, ok := p.accept(TokenLow); ok {
					matched = true
				} else if p.acceptSeq(TokenOut, TokenOf, TokenStock) {
					matched = true
					threshold = 0
				}
			}
		}
		if !matched {
			p.pos = save
		}
	}

	if !matched {
		return nil, false
	}

	return &LowStockQuery{
		OriginalPhrase: p.phrase(start, p.pos),
		Threshold:      threshold,
	}, true
}

// tryComparison matches "show products less|more|greater than <number>".
func (p *Parser) tryComparison() (Node, bool) {
	start := p.pos

	if _, ok := p.accept(TokenShow); !ok {
		return nil, false
	}
	if !p.acceptProducts() {
		return nil, false
	}

	var op CompareOp
	switch p.current().Type {
	case TokenLess:
		op = OpLessThan
	case TokenMore, TokenGreater:
		op = OpGreaterThan
	default:
		return nil, false
	}
	p.pos++

	if _, ok := p.accept(TokenThan); !ok {
		return nil, false
	}

	tok, ok := p.accept(TokenNumber)
	if !ok {
		return nil, false
	}
	value, err := strconv.Atoi(tok.Text)
	if err != nil {
		return nil, false
	}

	return &ComparisonQuery{
		OriginalPhrase: p.phrase(start, p.pos),
		Operator:       op,
		Value:          value,
	}, true
}
