package sfv

// Item represents an item: a bare item with optional parameters.
type Item struct {
	Value      BareItem
	Parameters Params
}

// NewItem wraps a bare item with no parameters.
func NewItem(v BareItem) Item {
	return Item{Value: v}
}

// parseBareItem parses a bare item using 1-2 character lookahead
// to determine the type.
func (p *Parser) parseBareItem() (BareItem, error) {
	if p.isEOF() {
		return nil, p.newParseError("expected bare item, got EOF")
	}

	c := p.peek()

	switch {
	case c == '"':
		return p.parseString()

	case c == ':':
		return p.parseByteSequence()

	case c == '?':
		return p.parseBoolean()

	case c == '@':
		return p.parseDate()

	case c == '%':
		// Display string only when followed by '"'
		if p.peekAt(1) != '"' {
			return nil, p.newParseError("expected '\"' after '%' in display string")
		}
		return p.parseDisplayString()

	case c == '-' || isDigit(c):
		return p.parseNumber()

	case c == '*' || isAlpha(c):
		return p.parseToken()

	default:
		return nil, p.newParseError("invalid bare item start character")
	}
}

// parseItem parses a bare item followed by its parameters.
func (p *Parser) parseItem() (Item, error) {
	value, err := p.parseBareItem()
	if err != nil {
		return Item{}, err
	}

	params, err := p.parseParameters()
	if err != nil {
		return Item{}, err
	}

	return Item{
		Value:      value,
		Parameters: params,
	}, nil
}

// ParseItem parses the whole input as an item field.
// Leading and trailing spaces are discarded; anything else left over fails.
func (p *Parser) ParseItem() (*Item, error) {
	if err := p.checkInputLength(); err != nil {
		return nil, err
	}

	p.skipSP()

	item, err := p.parseItem()
	if err != nil {
		return nil, err
	}

	p.skipSP()
	if err := p.checkTrailing("item"); err != nil {
		return nil, err
	}

	return &item, nil
}
