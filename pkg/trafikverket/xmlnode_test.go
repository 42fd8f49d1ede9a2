package trafikverket

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type xmlNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []xmlNode  `xml:",any"`
}

func (n xmlNode) attributes() map[string]string {
	attributes := map[string]string{}
	for _, attr := range n.Attrs {
		attributes[attr.Name.Local] = attr.Value
	}
	return attributes
}

func (n xmlNode) childrenNamed(name string) []xmlNode {
	var children []xmlNode
	for _, child := range n.Children {
		if child.XMLName.Local == name {
			children = append(children, child)
		}
	}
	return children
}

func (n xmlNode) text() string {
	return strings.TrimSpace(n.Text)
}

func parseXML(t *testing.T, document string) xmlNode {
	t.Helper()

	var node xmlNode
	require.NoError(t, xml.Unmarshal([]byte(document), &node))

	return node
}

func renderFilter(t *testing.T, filter Filter) xmlNode {
	t.Helper()

	rendered, err := xml.Marshal(filter)
	require.NoError(t, err)

	return parseXML(t, string(rendered))
}
