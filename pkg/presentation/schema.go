// Package presentation maps records to the display views served to hosts,
// each described by an ObjectSchema.
package presentation

import (
	"fmt"

	"github.com/Gobusters/ectolinq"
)

type ValueType string

const (
	TypeString  ValueType = "string"
	TypeNumber  ValueType = "number"
	TypeBoolean ValueType = "boolean"
	TypeArray   ValueType = "array"
	TypeObject  ValueType = "object"
)

// ValueHint tells the host how to render a value.
type ValueHint string

const (
	HintURL      ValueHint = "url"
	HintDateTime ValueHint = "datetime"
	HintImage    ValueHint = "image_attachment"
)

type Property struct {
	Name    string        `json:"name"`
	Type    ValueType     `json:"type"`
	Hint    ValueHint     `json:"hint,omitempty"`
	FromKey string        `json:"from_key,omitempty"`
	Items   *Property     `json:"items,omitempty"`
	Object  *ObjectSchema `json:"object,omitempty"`
}

type ObjectSchema struct {
	Properties         []Property `json:"properties"`
	DisplayProperty    string     `json:"display_property"`
	IDProperty         string     `json:"id_property"`
	FeaturedProperties []string   `json:"featured_properties,omitempty"`
	IdentityName       string     `json:"identity_name,omitempty"`
}

// Validate checks that every referenced property is declared, recursing into nested objects.
func (s ObjectSchema) Validate() error {
	names := ectolinq.Map(s.Properties, func(p Property) string { return p.Name })

	refs := append([]string{s.DisplayProperty, s.IDProperty}, s.FeaturedProperties...)
	for _, ref := range refs {
		if !ectolinq.Contains(names, ref) {
			return fmt.Errorf("property '%s' is referenced but not declared", ref)
		}
	}

	for _, p := range s.Properties {
		nested := p.Object
		if nested == nil && p.Items != nil {
			nested = p.Items.Object
		}
		if nested == nil {
			continue
		}
		if err := nested.Validate(); err != nil {
			return fmt.Errorf("%s: %w", p.Name, err)
		}
	}
	return nil
}

func str(name string) Property {
	return Property{Name: name, Type: TypeString}
}

func hinted(name string, hint ValueHint) Property {
	return Property{Name: name, Type: TypeString, Hint: hint}
}

func idFrom(name string) Property {
	return Property{Name: name, Type: TypeString, FromKey: "id"}
}

func stringList(name string) Property {
	return Property{Name: name, Type: TypeArray, Items: &Property{Type: TypeString}}
}

func objects(name string, schema ObjectSchema) Property {
	return Property{Name: name, Type: TypeArray, Items: &Property{Type: TypeObject, Object: &schema}}
}

func object(name string, schema ObjectSchema) Property {
	return Property{Name: name, Type: TypeObject, Object: &schema}
}

var (
	CollectionSchema = ObjectSchema{
		Properties: []Property{
			idFrom("collection_id"),
			hinted("collection_url", HintURL),
			str("name"),
		},
		DisplayProperty:    "name",
		IDProperty:         "collection_id",
		FeaturedProperties: []string{"name"},
		IdentityName:       "Collection",
	}

	RoleSchema = ObjectSchema{
		Properties: []Property{
			idFrom("role_id"),
			str("title"),
			hinted("started_at", HintDateTime),
			hinted("ended_at", HintDateTime),
			hinted("created_at", HintDateTime),
			object("company_record", ObjectSchema{
				Properties:      []Property{idFrom("company_id"), str("name")},
				DisplayProperty: "name",
				IDProperty:      "company_id",
			}),
			object("person_record", ObjectSchema{
				Properties:      []Property{idFrom("person_id"), str("name"), str("first_name"), str("last_name")},
				DisplayProperty: "first_name",
				IDProperty:      "person_id",
			}),
		},
		DisplayProperty: "title",
		IDProperty:      "role_id",
	}

	PersonSchema = ObjectSchema{
		Properties: []Property{
			idFrom("person_id"),
			str("name"),
			str("first_name"),
			str("last_name"),
			stringList("email_addresses"),
			hinted("avatar_url", HintImage),
			str("description"),
			objects("roles", RoleSchema),
		},
		DisplayProperty: "name",
		IDProperty:      "person_id",
	}

	CompanySchema = ObjectSchema{
		Properties: []Property{
			idFrom("company_id"),
			str("name"),
			stringList("domains"),
			hinted("logo_url", HintImage),
			str("description"),
			objects("roles", RoleSchema),
		},
		DisplayProperty: "name",
		IDProperty:      "company_id",
	}

	RecordSchema = ObjectSchema{
		Properties: []Property{
			str("record_id"),
			hinted("record_url", HintURL),
			str("record_type"),
			str("display_name"),
			object("person", PersonSchema),
			object("company", CompanySchema),
			object("meta", ParsedEmailSchema),
		},
		DisplayProperty: "display_name",
		IDProperty:      "record_id",
		IdentityName:    "Record",
	}

	EntrySchema = ObjectSchema{
		Properties: []Property{
			idFrom("entry_id"),
			object("collection", CollectionSchema),
			object("record", RecordSchema),
			hinted("created_at", HintDateTime),
			{Name: "attributes", Type: TypeObject},
		},
		DisplayProperty:    "entry_id",
		IDProperty:         "entry_id",
		FeaturedProperties: []string{"record"},
		IdentityName:       "CollectionEntry",
	}

	ParsedEmailSchema = ObjectSchema{
		Properties: []Property{
			str("address"),
			str("name"),
			str("first_name"),
			str("last_name"),
		},
		DisplayProperty:    "address",
		IDProperty:         "address",
		FeaturedProperties: []string{"name"},
	}
)

// Schemas lists every descriptor by the name routes expose it under.
var Schemas = map[string]ObjectSchema{
	"collection":   CollectionSchema,
	"role":         RoleSchema,
	"person":       PersonSchema,
	"company":      CompanySchema,
	"record":       RecordSchema,
	"entry":        EntrySchema,
	"parsed_email": ParsedEmailSchema,
}
