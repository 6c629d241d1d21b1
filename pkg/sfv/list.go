package sfv

// List represents a list field: a sequence of members.
// Members are Items or InnerLists.
type List struct {
	Members []Member
}

// ParseList parses the whole input as a list field.
// Format: member1, member2, ...
// Optional whitespace (SP or HTAB) may surround members and commas.
// An empty input is the empty list.
func (p *Parser) ParseList() (*List, error) {
	if err := p.checkInputLength(); err != nil {
		return nil, err
	}

	list := &List{}

	p.skipOWS()

	for !p.isEOF() {
		if p.limits.MaxListMembers > 0 && len(list.Members) >= p.limits.MaxListMembers {
			return nil, p.newLimitError("list members", len(list.Members)+1, p.limits.MaxListMembers)
		}

		member, err := p.parseListMember()
		if err != nil {
			return nil, err
		}
		list.Members = append(list.Members, member)

		p.skipOWS()

		if !p.consume(',') {
			break
		}
		p.skipOWS()

		if p.isEOF() {
			return nil, p.newParseError("trailing comma in list not allowed")
		}
	}

	if err := p.checkTrailing("list"); err != nil {
		return nil, err
	}

	return list, nil
}
