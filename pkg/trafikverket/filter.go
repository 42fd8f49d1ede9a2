package trafikverket

import (
	"encoding/xml"
)

const (
	OperatorEqual       = "EQ"
	OperatorNotEqual    = "NE"
	OperatorGreaterThan = "GT"
	OperatorLessThan    = "LT"
	OperatorExists      = "EXISTS"
	OperatorLike        = "LIKE"

	CombinatorOr  = "OR"
	CombinatorAnd = "AND"
)

// Filter is a node in the predicate tree of a question. It is either a
// Comparison leaf or a Combinator grouping other filters.
type Filter interface {
	xml.Marshaler

	filterNode()
}

// Comparison is a leaf predicate. The operator is used verbatim as the element
// tag so unknown operators are only rejected by the provider.
type Comparison struct {
	Operator string
	Name     *string
	Value    *string
}

func (Comparison) filterNode() {}

func (c Comparison) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: c.Operator}}

	if c.Name != nil {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "name"}, Value: *c.Name})
	}
	if c.Value != nil {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "value"}, Value: *c.Value})
	}

	if err := e.EncodeToken(start); err != nil {
		return err
	}

	return e.EncodeToken(start.End())
}

// isNilFilter also catches nil *Comparison and *Combinator, which satisfy
// Filter through their value methods.
func isNilFilter(f Filter) bool {
	switch node := f.(type) {
	case nil:
		return true
	case *Comparison:
		return node == nil
	case *Combinator:
		return node == nil
	}

	return false
}

// Combinator groups child filters under a boolean element such as OR or AND.
type Combinator struct {
	Kind     string
	Children []Filter
}

func (Combinator) filterNode() {}

func (c Combinator) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: c.Kind}}

	if err := e.EncodeToken(start); err != nil {
		return err
	}

	for _, child := range c.Children {
		if isNilFilter(child) {
			return ErrInvalidFilter
		}
		if err := child.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}

	return e.EncodeToken(start.End())
}

func NewComparison(operator string, name string, value string) Comparison {
	return Comparison{
		Operator: operator,
		Name:     &name,
		Value:    &value,
	}
}

func Eq(name string, value string) Comparison {
	return NewComparison(OperatorEqual, name, value)
}

func Gt(name string, value string) Comparison {
	return NewComparison(OperatorGreaterThan, name, value)
}

func Lt(name string, value string) Comparison {
	return NewComparison(OperatorLessThan, name, value)
}

func NewCombinator(kind string, children ...Filter) Combinator {
	return Combinator{
		Kind:     kind,
		Children: children,
	}
}

// Or combines exactly two filters into a new OR node.
func Or(left Filter, right Filter) (Filter, error) {
	if isNilFilter(left) || isNilFilter(right) {
		return nil, ErrInvalidFilter
	}

	return NewCombinator(CombinatorOr, left, right), nil
}

// OrAll places every filter as a direct child of one OR node.
func OrAll(filters ...Filter) Combinator {
	return NewCombinator(CombinatorOr, filters...)
}

func And(filters ...Filter) Combinator {
	return NewCombinator(CombinatorAnd, filters...)
}
