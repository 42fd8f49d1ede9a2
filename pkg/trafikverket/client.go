package trafikverket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	resty "gopkg.in/resty.v1"
)

const DefaultEndpoint = "https://api.trafikinfo.trafikverket.se/v2/data.json"

type Config struct {
	APIKey   string
	Endpoint string
}

// Fetcher submits a rendered question and returns the unwrapped result.
type Fetcher interface {
	Fetch(ctx context.Context, question string) (Result, error)
}

type Client struct {
	config Config
	http   *resty.Client
}

func NewClient(config Config) *Client {
	if config.Endpoint == "" {
		config.Endpoint = DefaultEndpoint
	}

	return &Client{
		config: config,
		http:   resty.New(),
	}
}

func (c *Client) Endpoint() string {
	return c.config.Endpoint
}

// Fetch posts the question text verbatim in a single attempt and returns the
// first element of RESPONSE.RESULT.
func (c *Client) Fetch(ctx context.Context, question string) (Result, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "text/xml").
		SetBody(question).
		Post(c.config.Endpoint)

	if err != nil {
		return nil, &TransportError{Err: err}
	}

	return UnwrapResponse(resp.Body())
}

type responseEnvelope struct {
	Response *struct {
		Result []Result `json:"RESULT"`
	} `json:"RESPONSE"`
}

// UnwrapResponse extracts RESPONSE.RESULT[0] from a provider response body.
func UnwrapResponse(body []byte) (Result, error) {
	var envelope responseEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		var typeError *json.UnmarshalTypeError
		if errors.As(err, &typeError) {
			return nil, fmt.Errorf("%w: %s", ErrEnvelopeShape, err)
		}

		return nil, &TransportError{Err: err}
	}

	if envelope.Response == nil {
		return nil, fmt.Errorf("%w: missing RESPONSE", ErrEnvelopeShape)
	}
	if len(envelope.Response.Result) == 0 {
		return nil, fmt.Errorf("%w: RESPONSE.RESULT is empty", ErrEnvelopeShape)
	}

	result := envelope.Response.Result[0]
	if result == nil {
		return nil, fmt.Errorf("%w: RESPONSE.RESULT[0] is null", ErrEnvelopeShape)
	}

	return result, nil
}
