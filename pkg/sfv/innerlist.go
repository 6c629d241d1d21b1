package sfv

// Member is a list member or dictionary value: either an Item or an InnerList.
type Member interface {
	member()
}

// InnerList represents a parenthesized list of items with its own parameters.
type InnerList struct {
	Items      []Item
	Parameters Params
}

func (Item) member()      {}
func (InnerList) member() {}

// parseInnerList parses an inner list: (item1 item2 ...).
// Items are separated by one or more SP (0x20), never HTAB.
func (p *Parser) parseInnerList() (InnerList, error) {
	if !p.consume('(') {
		return InnerList{}, p.newParseError("expected '(' at start of inner list")
	}

	var items []Item

	for {
		p.skipSP()

		if p.consume(')') {
			break
		}
		if p.isEOF() {
			return InnerList{}, p.newParseError("expected ')' at end of inner list")
		}

		// Check inner list member limit before parsing next item
		if p.limits.MaxInnerListMembers > 0 && len(items) >= p.limits.MaxInnerListMembers {
			return InnerList{}, p.newLimitError("inner list members", len(items)+1, p.limits.MaxInnerListMembers)
		}

		item, err := p.parseItem()
		if err != nil {
			return InnerList{}, err
		}
		items = append(items, item)

		if c := p.peek(); c != ' ' && c != ')' {
			if p.isEOF() {
				return InnerList{}, p.newParseError("expected ')' at end of inner list")
			}
			return InnerList{}, p.newParseError("expected space between inner list items")
		}
	}

	// Parameters on the inner list itself
	params, err := p.parseParameters()
	if err != nil {
		return InnerList{}, err
	}

	return InnerList{
		Items:      items,
		Parameters: params,
	}, nil
}

// parseListMember parses an inner list when the member starts with '(',
// otherwise an item.
func (p *Parser) parseListMember() (Member, error) {
	if p.peek() == '(' {
		return p.parseInnerList()
	}
	return p.parseItem()
}
