package models

import "time"

// Collection is an Attio list of records
type Collection struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	IsPublic      bool        `json:"is_public"`
	CreatedAt     time.Time   `json:"created_at"`
	CollectionURL string      `json:"collection_url"`
	Attributes    []Attribute `json:"attributes"`
	Members       []any       `json:"members"`
}

// Attribute describes one column of a collection. Legacy and v2 listings are
// both flattened into this shape; the v2-only fields are zero for legacy ones.
type Attribute struct {
	AttributeID           string     `json:"attribute_id"`
	CollectionID          string     `json:"collection_id"`
	WorkspaceID           string     `json:"workspace_id,omitempty"`
	Title                 string     `json:"title"`
	APISlug               string     `json:"api_slug,omitempty"`
	Type                  string     `json:"type"`
	IsSystemAttribute     bool       `json:"is_system_attribute"`
	IsRequired            bool       `json:"is_required"`
	IsUnique              bool       `json:"is_unique"`
	IsMultiselect         bool       `json:"is_multiselect"`
	IsArchived            bool       `json:"is_archived"`
	IsDefaultValueEnabled bool       `json:"is_default_value_enabled"`
	CreatedAt             *time.Time `json:"created_at,omitempty"`
}

// Entry links one collection to one record
type Entry struct {
	ID           string         `json:"id"`
	CollectionID string         `json:"collection_id"`
	Collection   *Collection    `json:"collection,omitempty"`
	Record       Record         `json:"record"`
	CreatedAt    time.Time      `json:"created_at,omitzero"`
	Attributes   map[string]any `json:"attributes,omitempty"`
}

// Page is one page of a paginated listing. NextPageOffset is nil on the last page.
type Page[T any] struct {
	Data           []T  `json:"data"`
	NextPageOffset *int `json:"next_page_offset"`
}

type EntryPage = Page[Entry]

type AttributePage = Page[Attribute]
