package schema

import (
	"encoding/json"
	"fmt"

	asterrors "github.com/Ramsey-B/aster/pkg/errors"
	"github.com/Ramsey-B/aster/pkg/models"
)

var (
	legacyAttributeShape = shape{
		required: []string{"id", "collection_id", "name", "type", "created_at"},
	}

	collectionShape = shape{
		required: []string{"id", "name", "is_public", "created_at", "attributes", "members"},
		arrays:   map[string]shape{"attributes": legacyAttributeShape},
	}

	attributeShape = shape{
		required: []string{"id", "title", "api_slug", "type"},
		objects: map[string]shape{
			"id": {required: []string{"workspace_id", "object_id", "attribute_id"}},
		},
	}
)

type legacyAttributeWire struct {
	ID           string `json:"id" validate:"uuid"`
	CollectionID string `json:"collection_id" validate:"uuid"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	CreatedAt    string `json:"created_at" validate:"datetime=2006-01-02T15:04:05Z07:00"`
}

type collectionWire struct {
	ID         string                `json:"id"`
	Name       string                `json:"name"`
	IsPublic   bool                  `json:"is_public"`
	CreatedAt  string                `json:"created_at" validate:"datetime=2006-01-02T15:04:05Z07:00"`
	Attributes []legacyAttributeWire `json:"attributes" validate:"dive"`
	Members    []any                 `json:"members"`
}

// attributeWire is the v2 attribute shape with its compound id.
type attributeWire struct {
	ID struct {
		WorkspaceID string `json:"workspace_id"`
		ObjectID    string `json:"object_id"`
		AttributeID string `json:"attribute_id"`
	} `json:"id"`
	Title                 string  `json:"title"`
	APISlug               string  `json:"api_slug"`
	Type                  string  `json:"type"`
	IsSystemAttribute     bool    `json:"is_system_attribute"`
	IsRequired            bool    `json:"is_required"`
	IsUnique              bool    `json:"is_unique"`
	IsMultiselect         bool    `json:"is_multiselect"`
	IsArchived            bool    `json:"is_archived"`
	IsDefaultValueEnabled bool    `json:"is_default_value_enabled"`
	CreatedAt             *string `json:"created_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
}

// DecodeCollections validates a collection listing.
func (s *Schemas) DecodeCollections(raw []byte) ([]models.Collection, error) {
	items, violations := decodeArray(raw)
	if violations != nil {
		return nil, asterrors.NewSchemaViolation("collections", violations...)
	}

	collections := make([]models.Collection, 0, len(items))
	for i, item := range items {
		collection, violations := s.decodeCollection(item)
		if len(violations) > 0 {
			return nil, asterrors.NewSchemaViolation("collections", nest(fmt.Sprintf("[%d]", i), violations)...)
		}
		collections = append(collections, collection)
	}

	return collections, nil
}

func (s *Schemas) decodeCollection(raw json.RawMessage) (models.Collection, []asterrors.FieldViolation) {
	if violations := collectionShape.check(raw); len(violations) > 0 {
		return models.Collection{}, violations
	}

	var wire collectionWire
	if violations := unmarshal(raw, &wire); len(violations) > 0 {
		return models.Collection{}, violations
	}
	if violations := s.checkFormats(wire); len(violations) > 0 {
		return models.Collection{}, violations
	}

	attributes := make([]models.Attribute, len(wire.Attributes))
	for i, a := range wire.Attributes {
		attributes[i] = models.Attribute{
			AttributeID:  a.ID,
			CollectionID: a.CollectionID,
			Title:        a.Name,
			Type:         a.Type,
			CreatedAt:    parseOptionalTime(&a.CreatedAt),
		}
	}

	return models.Collection{
		ID:            wire.ID,
		Name:          wire.Name,
		IsPublic:      wire.IsPublic,
		CreatedAt:     parseTime(wire.CreatedAt),
		CollectionURL: s.CollectionURL(wire.ID),
		Attributes:    attributes,
		Members:       wire.Members,
	}, nil
}

func (s *Schemas) decodeAttribute(raw json.RawMessage) (models.Attribute, []asterrors.FieldViolation) {
	if violations := attributeShape.check(raw); len(violations) > 0 {
		return models.Attribute{}, violations
	}

	var wire attributeWire
	if violations := unmarshal(raw, &wire); len(violations) > 0 {
		return models.Attribute{}, violations
	}
	if violations := s.checkFormats(wire); len(violations) > 0 {
		return models.Attribute{}, violations
	}

	return models.Attribute{
		AttributeID:           wire.ID.AttributeID,
		CollectionID:          wire.ID.ObjectID,
		WorkspaceID:           wire.ID.WorkspaceID,
		Title:                 wire.Title,
		APISlug:               wire.APISlug,
		Type:                  wire.Type,
		IsSystemAttribute:     wire.IsSystemAttribute,
		IsRequired:            wire.IsRequired,
		IsUnique:              wire.IsUnique,
		IsMultiselect:         wire.IsMultiselect,
		IsArchived:            wire.IsArchived,
		IsDefaultValueEnabled: wire.IsDefaultValueEnabled,
		CreatedAt:             parseOptionalTime(wire.CreatedAt),
	}, nil
}
