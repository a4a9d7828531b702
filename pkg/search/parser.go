package search

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldType represents the type of field being searched
type FieldType string

const (
	FieldElementType FieldType = "type"
	FieldKind        FieldType = "kind"
	FieldName        FieldType = "name"
	FieldID          FieldType = "id"
	FieldTitle       FieldType = "title"
	FieldTooltip     FieldType = "tooltip"
	FieldContent     FieldType = "content"
)

// Operator represents a search operator
type Operator string

const (
	OperatorEquals   Operator = "="
	OperatorPrefix   Operator = "prefix"
	OperatorContains Operator = "contains"
	OperatorAND      Operator = "AND"
	OperatorOR       Operator = "OR"
)

// Condition represents a single search condition
type Condition struct {
	Field    FieldType
	Operator Operator
	Value    string
	Negate   bool
}

// Query represents a parsed search query
type Query struct {
	Conditions []Condition
	Logic      []Operator // Logic operators between conditions
	Raw        string     // Original query string
}

// Parser handles parsing of search queries
type Parser struct {
	fieldPattern  *regexp.Regexp
	quotedPattern *regexp.Regexp
}

// NewParser creates a new search query parser
func NewParser() *Parser {
	return &Parser{
		fieldPattern:  regexp.MustCompile(`^(\w+):(.+)$`),
		quotedPattern: regexp.MustCompile(`^"([^"]*)"$`),
	}
}

// Parse parses a search query string into a Query object. Adjacent
// conditions without an operator between them are joined with AND.
func (p *Parser) Parse(input string) (*Query, error) {
	query := &Query{
		Raw:        input,
		Conditions: []Condition{},
		Logic:      []Operator{},
	}

	tokens := p.tokenize(input)

	var pending Operator
	negate := false
	for _, token := range tokens {
		switch strings.ToUpper(token) {
		case "AND", "OR":
			if len(query.Conditions) == 0 {
				return nil, fmt.Errorf("unexpected operator %s at beginning of query", token)
			}
			if pending != "" || negate {
				return nil, fmt.Errorf("unexpected operator %s", token)
			}
			pending = Operator(strings.ToUpper(token))
			continue
		case "NOT":
			if negate {
				return nil, fmt.Errorf("unexpected operator %s", token)
			}
			negate = true
			continue
		}

		cond, err := p.parseCondition(token)
		if err != nil {
			return nil, err
		}
		cond.Negate = negate
		negate = false

		if len(query.Conditions) > 0 {
			if pending == "" {
				pending = OperatorAND
			}
			query.Logic = append(query.Logic, pending)
		}
		pending = ""
		query.Conditions = append(query.Conditions, cond)
	}

	if negate {
		return nil, fmt.Errorf("NOT operator requires a condition")
	}
	if pending != "" {
		return nil, fmt.Errorf("%s operator requires a condition", pending)
	}
	return query, nil
}

// tokenize splits the input on spaces outside double quotes
func (p *Parser) tokenize(input string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range input {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case (r == ' ' || r == '\t') && !inQuotes:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return tokens
}

// parseCondition turns one token into a condition. Tokens without a known
// field prefix are free text.
func (p *Parser) parseCondition(token string) (Condition, error) {
	matches := p.fieldPattern.FindStringSubmatch(token)
	if len(matches) != 3 {
		return Condition{Field: FieldContent, Operator: OperatorContains, Value: p.unquote(token)}, nil
	}

	value := p.unquote(matches[2])
	switch field := FieldType(strings.ToLower(matches[1])); field {
	case FieldElementType:
		return Condition{Field: field, Operator: OperatorPrefix, Value: value}, nil
	case FieldKind, FieldID:
		return Condition{Field: field, Operator: OperatorEquals, Value: value}, nil
	case FieldName, FieldTitle, FieldTooltip, FieldContent:
		return Condition{Field: field, Operator: OperatorContains, Value: value}, nil
	default:
		return Condition{}, fmt.Errorf("unknown field: %s", matches[1])
	}
}

// unquote removes quotes from a string if present
func (p *Parser) unquote(s string) string {
	if matches := p.quotedPattern.FindStringSubmatch(s); len(matches) == 2 {
		return matches[1]
	}
	return s
}
