package attio

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Ramsey-B/aster/pkg/models"
	"github.com/Ramsey-B/aster/pkg/parse"
	"github.com/Ramsey-B/aster/pkg/tracing"
)

// PageOptions selects one page of a listing. A zero Limit uses the client's page size.
type PageOptions struct {
	Limit  int
	Offset int
}

type AttributeListOptions struct {
	PageOptions
	ShowArchived *bool
}

// CreateEntryInput links a record to a collection.
type CreateEntryInput struct {
	RecordType models.RecordType `json:"record_type" validate:"required,oneof=person company"`
	RecordID   string            `json:"record_id" validate:"required,uuid"`
}

type EntryValue struct {
	Value         any     `json:"value"`
	CurrencyValue float64 `json:"currency_value"`
}

type PatchEntryBody struct {
	Data struct {
		EntryValues map[string][]EntryValue `json:"entry_values"`
	} `json:"data"`
}

func (c *Client) ListCollections(ctx context.Context) (collections []models.Collection, err error) {
	ctx, span := tracing.StartSpan(ctx, "Attio.ListCollections")
	defer func() { endSpan(span, err) }()

	endpoint := c.endpoint("v1", "collections")
	raw, target, err := c.jsonHTTP(ctx, http.MethodGet, endpoint, nil, nil)
	if err != nil {
		return nil, err
	}

	collections, err = c.schemas.DecodeCollections(raw)
	if err != nil {
		return nil, c.decoded(ctx, http.MethodGet, target, err)
	}

	span.SetAttributes(attribute.Int("attio.collection_count", len(collections)))
	return collections, nil
}

func (c *Client) ListCollectionEntries(ctx context.Context, collectionID string, opts PageOptions) (page models.EntryPage, err error) {
	ctx, span := tracing.StartSpan(ctx, "Attio.ListCollectionEntries")
	span.SetAttributes(
		attribute.String("attio.collection_id", collectionID),
		attribute.Int("attio.offset", opts.Offset),
	)
	defer func() { endSpan(span, err) }()

	endpoint := c.endpoint("v1", "collections", collectionID, "entries")
	raw, target, err := c.jsonHTTP(ctx, http.MethodGet, endpoint, c.pageQuery(opts), nil)
	if err != nil {
		return models.EntryPage{}, err
	}

	page, err = c.schemas.DecodeEntryPage(raw, collectionID)
	if err != nil {
		return models.EntryPage{}, c.decoded(ctx, http.MethodGet, target, err)
	}

	return page, nil
}

func (c *Client) CreateCollectionEntry(ctx context.Context, collectionID string, input CreateEntryInput) (entry models.Entry, err error) {
	ctx, span := tracing.StartSpan(ctx, "Attio.CreateCollectionEntry")
	span.SetAttributes(
		attribute.String("attio.collection_id", collectionID),
		attribute.String("attio.record_id", input.RecordID),
	)
	defer func() { endSpan(span, err) }()

	endpoint := c.endpoint("v1", "collections", collectionID, "entries")
	raw, target, err := c.jsonHTTP(ctx, http.MethodPost, endpoint, nil, input)
	if err != nil {
		return models.Entry{}, err
	}

	entry, err = c.schemas.DecodeEntry(raw, collectionID)
	if err != nil {
		return models.Entry{}, c.decoded(ctx, http.MethodPost, target, err)
	}

	return entry, nil
}

// DeleteCollectionEntry removes an entry. The response body is ignored.
func (c *Client) DeleteCollectionEntry(ctx context.Context, collectionID, entryID string) (err error) {
	ctx, span := tracing.StartSpan(ctx, "Attio.DeleteCollectionEntry")
	span.SetAttributes(
		attribute.String("attio.collection_id", collectionID),
		attribute.String("attio.entry_id", entryID),
	)
	defer func() { endSpan(span, err) }()

	endpoint := c.endpoint("v1", "collections", collectionID, "entries", entryID)
	_, _, err = c.jsonHTTP(ctx, http.MethodDelete, endpoint, nil, nil)
	return err
}

// PatchCollectionEntry sets entry values by attribute id or slug. Each value is
// sent both as-is and as a currency amount; Attio reads whichever key the
// attribute's type expects.
func (c *Client) PatchCollectionEntry(ctx context.Context, collectionID, entryID string, values map[string]any) (err error) {
	ctx, span := tracing.StartSpan(ctx, "Attio.PatchCollectionEntry")
	span.SetAttributes(
		attribute.String("attio.collection_id", collectionID),
		attribute.String("attio.entry_id", entryID),
		attribute.Int("attio.value_count", len(values)),
	)
	defer func() { endSpan(span, err) }()

	endpoint := c.endpoint("v2", "lists", collectionID, "entries", entryID)
	_, _, err = c.jsonHTTP(ctx, http.MethodPatch, endpoint, nil, NewPatchEntryBody(values))
	return err
}

func NewPatchEntryBody(values map[string]any) PatchEntryBody {
	body := PatchEntryBody{}
	body.Data.EntryValues = make(map[string][]EntryValue, len(values))
	for key, value := range values {
		body.Data.EntryValues[key] = []EntryValue{{
			Value:         value,
			CurrencyValue: parse.ParseCurrency(value),
		}}
	}
	return body
}

func (c *Client) ListCollectionAttributes(ctx context.Context, collectionID string, opts AttributeListOptions) (page models.AttributePage, err error) {
	ctx, span := tracing.StartSpan(ctx, "Attio.ListCollectionAttributes")
	span.SetAttributes(attribute.String("attio.collection_id", collectionID))
	defer func() { endSpan(span, err) }()

	query := c.pageQuery(opts.PageOptions)
	if opts.ShowArchived != nil {
		query["show_archived"] = *opts.ShowArchived
	}

	endpoint := c.endpoint("v2", "lists", collectionID, "attributes")
	raw, target, err := c.jsonHTTP(ctx, http.MethodGet, endpoint, query, nil)
	if err != nil {
		return models.AttributePage{}, err
	}

	page, err = c.schemas.DecodeAttributePage(raw)
	if err != nil {
		return models.AttributePage{}, c.decoded(ctx, http.MethodGet, target, err)
	}

	return page, nil
}
