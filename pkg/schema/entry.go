package schema

import (
	"encoding/json"
	"fmt"

	asterrors "github.com/Ramsey-B/aster/pkg/errors"
	"github.com/Ramsey-B/aster/pkg/models"
)

var (
	entryShape = shape{
		required: []string{"id", "record", "created_at", "attributes"},
	}

	pageShape = shape{
		required: []string{"data", "next_page_offset"},
		nullable: []string{"next_page_offset"},
	}
)

type entryWire struct {
	ID         string         `json:"id"`
	CreatedAt  string         `json:"created_at" validate:"datetime=2006-01-02T15:04:05Z07:00"`
	Attributes map[string]any `json:"attributes"`
}

type pageWire struct {
	Data           []json.RawMessage `json:"data"`
	NextPageOffset *int              `json:"next_page_offset"`
}

// DecodeEntry validates a collection entry and transforms its record.
// collectionID is used when the payload does not embed its collection.
func (s *Schemas) DecodeEntry(raw []byte, collectionID string) (models.Entry, error) {
	entry, violations := s.decodeEntry(raw, collectionID)
	if len(violations) > 0 {
		return models.Entry{}, asterrors.NewSchemaViolation("entry", violations...)
	}
	return entry, nil
}

// DecodeEntryPage validates a page of entries. Every element must pass on its own.
func (s *Schemas) DecodeEntryPage(raw []byte, collectionID string) (models.EntryPage, error) {
	page, err := decodePage(raw, "entry page", func(item json.RawMessage) (models.Entry, []asterrors.FieldViolation) {
		return s.decodeEntry(item, collectionID)
	})
	if err != nil {
		return models.EntryPage{}, err
	}
	return page, nil
}

// DecodeAttributePage validates a page of v2 attributes, flattening their compound ids.
func (s *Schemas) DecodeAttributePage(raw []byte) (models.AttributePage, error) {
	page, err := decodePage(raw, "attribute page", s.decodeAttribute)
	if err != nil {
		return models.AttributePage{}, err
	}
	return page, nil
}

func (s *Schemas) decodeEntry(raw json.RawMessage, collectionID string) (models.Entry, []asterrors.FieldViolation) {
	if violations := entryShape.check(raw); len(violations) > 0 {
		return models.Entry{}, violations
	}

	fields, _ := decodeObject(raw)

	var wire entryWire
	if violations := unmarshal(raw, &wire); len(violations) > 0 {
		return models.Entry{}, violations
	}
	if violations := s.checkFormats(wire); len(violations) > 0 {
		return models.Entry{}, violations
	}

	record, violations := s.decodeRecord(fields["record"])
	if len(violations) > 0 {
		return models.Entry{}, nest("record", violations)
	}

	entry := models.Entry{
		ID:           wire.ID,
		CollectionID: collectionID,
		Record:       record,
		CreatedAt:    parseTime(wire.CreatedAt),
		Attributes:   wire.Attributes,
	}

	if value, ok := fields["collection"]; ok && !isNull(value) {
		collection, violations := s.decodeCollection(value)
		if len(violations) > 0 {
			return models.Entry{}, nest("collection", violations)
		}
		entry.Collection = &collection
		entry.CollectionID = collection.ID
	}

	return entry, nil
}

func decodePage[T any](raw []byte, schema string, decode func(json.RawMessage) (T, []asterrors.FieldViolation)) (models.Page[T], error) {
	if violations := pageShape.check(raw); len(violations) > 0 {
		return models.Page[T]{}, asterrors.NewSchemaViolation(schema, violations...)
	}

	var wire pageWire
	if violations := unmarshal(raw, &wire); len(violations) > 0 {
		return models.Page[T]{}, asterrors.NewSchemaViolation(schema, violations...)
	}

	page := models.Page[T]{
		Data:           make([]T, 0, len(wire.Data)),
		NextPageOffset: wire.NextPageOffset,
	}
	for i, item := range wire.Data {
		decoded, violations := decode(item)
		if len(violations) > 0 {
			return models.Page[T]{}, asterrors.NewSchemaViolation(schema, nest(fmt.Sprintf("data[%d]", i), violations)...)
		}
		page.Data = append(page.Data, decoded)
	}

	return page, nil
}
