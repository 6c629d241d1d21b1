package sfv

// Dictionary represents a dictionary field (ordered map).
// Keys preserves insertion order; Values holds an Item or InnerList per key.
// A key set twice keeps its first position and takes the last value.
type Dictionary struct {
	Keys   []string
	Values map[string]Member
}

// NewDictionary returns an empty dictionary ready for Set.
func NewDictionary() *Dictionary {
	return &Dictionary{Values: make(map[string]Member)}
}

// Get returns the member stored under key.
func (d *Dictionary) Get(key string) (Member, bool) {
	m, ok := d.Values[key]
	return m, ok
}

// Set stores m under key, appending key if it is new.
func (d *Dictionary) Set(key string, m Member) {
	if d.Values == nil {
		d.Values = make(map[string]Member)
	}
	if _, exists := d.Values[key]; !exists {
		d.Keys = append(d.Keys, key)
	}
	d.Values[key] = m
}

// Delete removes key if present.
func (d *Dictionary) Delete(key string) {
	if _, exists := d.Values[key]; !exists {
		return
	}
	delete(d.Values, key)
	for i, k := range d.Keys {
		if k == key {
			d.Keys = append(d.Keys[:i], d.Keys[i+1:]...)
			break
		}
	}
}

// Len returns the number of members.
func (d *Dictionary) Len() int {
	return len(d.Keys)
}

// ParseDictionary parses the whole input as a dictionary field.
// Format: key1=value1, key2, key3=(a b);p=1, ...
// A key without '=' is Boolean(true) followed by optional parameters.
func (p *Parser) ParseDictionary() (*Dictionary, error) {
	if err := p.checkInputLength(); err != nil {
		return nil, err
	}

	dict := NewDictionary()

	// Keys cannot start with a tab, so only spaces are skipped here
	p.skipSP()

	for !p.isEOF() {
		key, err := p.parseKey()
		if err != nil {
			return nil, err
		}

		if _, exists := dict.Values[key]; !exists &&
			p.limits.MaxDictionaryMembers > 0 && dict.Len() >= p.limits.MaxDictionaryMembers {
			return nil, p.newLimitError("dictionary members", dict.Len()+1, p.limits.MaxDictionaryMembers)
		}

		var value Member

		if p.consume('=') {
			value, err = p.parseListMember()
			if err != nil {
				return nil, err
			}
		} else {
			// Bare key = boolean true item, parameters may follow
			params, err := p.parseParameters()
			if err != nil {
				return nil, err
			}
			value = Item{Value: Boolean(true), Parameters: params}
		}

		// Last instance wins for duplicates
		dict.Set(key, value)

		p.skipOWS()

		if !p.consume(',') {
			break
		}
		if p.peek() == '\t' {
			return nil, p.newParseError("tab not allowed after ',' in dictionary")
		}
		p.skipOWS()

		if p.isEOF() {
			return nil, p.newParseError("trailing comma in dictionary not allowed")
		}
	}

	if err := p.checkTrailing("dictionary"); err != nil {
		return nil, err
	}

	return dict, nil
}
