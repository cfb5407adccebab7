package composition

import (
	"strconv"

	"chemcost/internal/errors"
)

// Parse reads a chemical formula such as "Fe2O3", "Li3Fe2(PO4)3" or
// "Mn0.5Fe0.5O" into a Composition. Amounts are preserved as written, so
// Parse("Ag2O2") is not Equal to Parse("AgO"). Parenthesized and bracketed
// groups may nest and carry multipliers, and whitespace between tokens is
// ignored.
func Parse(formula string) (Composition, error) {
	p := &parser{input: formula}
	amounts, err := p.sequence(0)
	if err != nil {
		return Composition{}, err
	}
	if len(amounts) == 0 {
		return Composition{}, errors.Newf(errors.TypeParse, "empty formula %q", formula)
	}
	c, err := New(amounts)
	if err != nil {
		return Composition{}, errors.Wrapf(errors.TypeParse, err, "invalid formula %q", formula)
	}
	return c, nil
}

// MustParse is Parse for formulas known to be valid, panicking on error. It
// is intended for static tables and tests.
func MustParse(formula string) Composition {
	c, err := Parse(formula)
	if err != nil {
		panic(err)
	}
	return c
}

type parser struct {
	input string
	pos   int
}

// sequence parses element and group terms until the given closing bracket,
// or until the end of input when close is 0.
func (p *parser) sequence(close byte) (map[Element]float64, error) {
	amounts := make(map[Element]float64)
	for {
		p.skipSpace()
		if p.pos >= len(p.input) {
			if close != 0 {
				return nil, p.errorf("missing closing %q", string(close))
			}
			return amounts, nil
		}
		ch := p.input[p.pos]
		switch {
		case ch == close:
			p.pos++
			return amounts, nil
		case ch == '(' || ch == '[':
			p.pos++
			inner, err := p.sequence(matchingBracket(ch))
			if err != nil {
				return nil, err
			}
			mult, err := p.amount()
			if err != nil {
				return nil, err
			}
			for el, amt := range inner {
				amounts[el] += amt * mult
			}
		case ch >= 'A' && ch <= 'Z':
			el, err := p.element()
			if err != nil {
				return nil, err
			}
			amt, err := p.amount()
			if err != nil {
				return nil, err
			}
			amounts[el] += amt
		default:
			return nil, p.errorf("unexpected character %q", string(ch))
		}
	}
}

// element reads one element symbol: an uppercase letter followed by any
// lowercase letters, validated against the periodic table.
func (p *parser) element() (Element, error) {
	start := p.pos
	p.pos++
	for p.pos < len(p.input) && p.input[p.pos] >= 'a' && p.input[p.pos] <= 'z' {
		p.pos++
	}
	el := Element(p.input[start:p.pos])
	if !el.IsValid() {
		p.pos = start
		return "", p.errorf("unknown element %q", el.Symbol())
	}
	return el, nil
}

// amount reads the optional numeric amount after an element or group,
// defaulting to 1.
func (p *parser) amount() (float64, error) {
	start := p.pos
	for p.pos < len(p.input) && (isDigit(p.input[p.pos]) || p.input[p.pos] == '.') {
		p.pos++
	}
	if p.pos == start {
		return 1, nil
	}
	token := p.input[start:p.pos]
	amt, err := strconv.ParseFloat(token, 64)
	if err != nil {
		p.pos = start
		return 0, p.errorf("malformed amount %q", token)
	}
	return amt, nil
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func (p *parser) errorf(format string, args ...interface{}) error {
	err := errors.Newf(errors.TypeParse, format, args...)
	return err.WithContext("formula", p.input).WithContext("position", p.pos)
}

func matchingBracket(open byte) byte {
	if open == '(' {
		return ')'
	}
	return ']'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
