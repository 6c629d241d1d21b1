package sfv

// Parameter represents a key-value pair attached to an item or inner list.
type Parameter struct {
	Key   string
	Value BareItem
}

// Params is an ordered set of parameters. Keys are unique; order is
// insertion order.
type Params []Parameter

// Get returns the value for key.
func (ps Params) Get(key string) (BareItem, bool) {
	for _, p := range ps {
		if p.Key == key {
			return p.Value, true
		}
	}
	return nil, false
}

// Set stores value under key. An existing key keeps its position.
func (ps *Params) Set(key string, value BareItem) {
	for i := range *ps {
		if (*ps)[i].Key == key {
			(*ps)[i].Value = value
			return
		}
	}
	*ps = append(*ps, Parameter{Key: key, Value: value})
}

// Delete removes key if present.
func (ps *Params) Delete(key string) {
	for i := range *ps {
		if (*ps)[i].Key == key {
			*ps = append((*ps)[:i], (*ps)[i+1:]...)
			return
		}
	}
}

// parseParameters parses zero or more ;key or ;key=value entries.
// A key without a value is Boolean(true); a repeated key overwrites the
// earlier value in place.
func (p *Parser) parseParameters() (Params, error) {
	var params Params

	for p.peek() == ';' {
		p.offset++ // consume ';'
		p.skipSP()

		key, err := p.parseKey()
		if err != nil {
			return nil, err
		}

		var value BareItem = Boolean(true)

		if p.consume('=') {
			value, err = p.parseBareItem()
			if err != nil {
				return nil, err
			}
		}

		if _, exists := params.Get(key); !exists &&
			p.limits.MaxParameters > 0 && len(params) >= p.limits.MaxParameters {
			return nil, p.newLimitError("parameters count", len(params)+1, p.limits.MaxParameters)
		}

		params.Set(key, value)
	}

	return params, nil
}
