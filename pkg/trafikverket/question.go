package trafikverket

import (
	"encoding/xml"
	"strings"
)

const (
	DefaultSchemaVersion = "1,9"
	DefaultLimit         = 1000
)

// Question describes one request to the provider. Zero values for
// SchemaVersion and Limit fall back to the provider defaults, an empty
// Namespace leaves the attribute off.
type Question struct {
	ObjectType    string
	Filters       []Filter
	Includes      []string
	Namespace     string
	SchemaVersion string
	Limit         int
}

type questionRequest struct {
	XMLName xml.Name      `xml:"REQUEST"`
	Login   questionLogin `xml:"LOGIN"`
	Query   questionQuery `xml:"QUERY"`
}

type questionLogin struct {
	AuthenticationKey string `xml:"authenticationkey,attr"`
}

type questionQuery struct {
	ObjectType    string          `xml:"objecttype,attr"`
	SchemaVersion string          `xml:"schemaversion,attr"`
	Limit         int             `xml:"limit,attr"`
	Namespace     *string         `xml:"namespace,attr,omitempty"`
	Filter        questionFilters `xml:"FILTER"`
	Includes      []string        `xml:"INCLUDE"`
}

type questionFilters []Filter

func (f questionFilters) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	for _, filter := range f {
		if isNilFilter(filter) {
			return ErrInvalidFilter
		}
		if err := filter.MarshalXML(e, xml.StartElement{}); err != nil {
			return err
		}
	}

	return e.EncodeToken(start.End())
}

// CreateQuestion renders the question as an indented XML request document
// authenticated with the configured API key.
func (c *Client) CreateQuestion(q Question) (string, error) {
	if c.config.APIKey == "" {
		return "", ErrMissingAPIKey
	}

	schemaVersion := q.SchemaVersion
	if schemaVersion == "" {
		schemaVersion = DefaultSchemaVersion
	}

	limit := q.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	request := questionRequest{
		Login: questionLogin{
			AuthenticationKey: c.config.APIKey,
		},
		Query: questionQuery{
			ObjectType:    q.ObjectType,
			SchemaVersion: schemaVersion,
			Limit:         limit,
			Filter:        questionFilters(q.Filters),
			Includes:      q.Includes,
		},
	}

	if q.Namespace != "" {
		namespace := q.Namespace
		request.Query.Namespace = &namespace
	}

	var builder strings.Builder
	builder.WriteString(xml.Header)

	encoder := xml.NewEncoder(&builder)
	encoder.Indent("", "  ")

	if err := encoder.Encode(request); err != nil {
		return "", err
	}
	if err := encoder.Close(); err != nil {
		return "", err
	}

	builder.WriteString("\n")

	return builder.String(), nil
}
