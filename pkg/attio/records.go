package attio

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Ramsey-B/aster/pkg/models"
	"github.com/Ramsey-B/aster/pkg/tracing"
)

// AssertPersonInput identifies a person by email; names are only sent when set.
type AssertPersonInput struct {
	EmailAddresses []string `json:"email_addresses"`
	FirstName      string   `json:"first_name,omitempty"`
	LastName       string   `json:"last_name,omitempty"`
	Description    string   `json:"description,omitempty"`
}

// AssertCompanyInput identifies a company by domain.
type AssertCompanyInput struct {
	Domains     []string `json:"domains"`
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
}

func (c *Client) FetchPerson(ctx context.Context, personID string) (record models.Record, err error) {
	ctx, span := tracing.StartSpan(ctx, "Attio.FetchPerson")
	span.SetAttributes(attribute.String("attio.record_id", personID))
	defer func() { endSpan(span, err) }()

	return c.record(ctx, http.MethodGet, c.endpoint("v1", "people", personID), nil)
}

func (c *Client) FetchCompany(ctx context.Context, companyID string) (record models.Record, err error) {
	ctx, span := tracing.StartSpan(ctx, "Attio.FetchCompany")
	span.SetAttributes(attribute.String("attio.record_id", companyID))
	defer func() { endSpan(span, err) }()

	return c.record(ctx, http.MethodGet, c.endpoint("v1", "companies", companyID), nil)
}

// AssertPerson finds the person matching the input's email addresses or creates one.
func (c *Client) AssertPerson(ctx context.Context, input AssertPersonInput) (record models.Record, err error) {
	ctx, span := tracing.StartSpan(ctx, "Attio.AssertPerson")
	defer func() { endSpan(span, err) }()

	return c.record(ctx, http.MethodPut, c.endpoint("v1", "people"), input)
}

// AssertCompany finds the company matching the input's domains or creates one.
func (c *Client) AssertCompany(ctx context.Context, input AssertCompanyInput) (record models.Record, err error) {
	ctx, span := tracing.StartSpan(ctx, "Attio.AssertCompany")
	defer func() { endSpan(span, err) }()

	return c.record(ctx, http.MethodPut, c.endpoint("v1", "companies"), input)
}

func (c *Client) record(ctx context.Context, method, endpoint string, body any) (models.Record, error) {
	raw, target, err := c.jsonHTTP(ctx, method, endpoint, nil, body)
	if err != nil {
		return models.Record{}, err
	}

	record, err := c.schemas.DecodeRecord(raw)
	if err != nil {
		return models.Record{}, c.decoded(ctx, method, target, err)
	}

	return record, nil
}
