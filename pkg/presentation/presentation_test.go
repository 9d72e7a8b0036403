package presentation

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/aster/pkg/models"
	"github.com/Ramsey-B/aster/pkg/parse"
)

func ptr[T any](v T) *T {
	return &v
}

func TestSchemas(t *testing.T) {
	for name, schema := range Schemas {
		t.Run("should declare every referenced property of "+name, func(t *testing.T) {
			assert.NoError(t, schema.Validate())
		})
	}

	t.Run("should reject an undeclared display property", func(t *testing.T) {
		schema := ObjectSchema{Properties: []Property{str("id")}, DisplayProperty: "name", IDProperty: "id"}
		assert.EqualError(t, schema.Validate(), "property 'name' is referenced but not declared")
	})

	t.Run("should report the path of a broken nested schema", func(t *testing.T) {
		schema := ObjectSchema{
			Properties:      []Property{str("id"), objects("roles", ObjectSchema{IDProperty: "role_id"})},
			DisplayProperty: "id",
			IDProperty:      "id",
		}
		assert.EqualError(t, schema.Validate(), "roles: property '' is referenced but not declared")
	})
}

func TestNewRecordView(t *testing.T) {
	startedAt := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	person := &models.Person{
		ID:             "person-1",
		FirstName:      ptr("Tony"),
		LastName:       ptr("Xiao"),
		EmailAddresses: []string{"tony@venice.is"},
		Roles: []models.Role{{
			ID:            "role-1",
			Title:         ptr("Founder"),
			StartedAt:     &startedAt,
			CompanyRecord: models.RoleCompany{ID: "company-1", Name: ptr("Venice")},
			PersonRecord:  models.RolePerson{ID: "person-1", FirstName: ptr("Tony"), Name: "Tony"},
		}},
	}

	t.Run("should rename ids and join the person name", func(t *testing.T) {
		view := NewRecordView(models.Record{
			RecordID:    "person-1",
			RecordType:  models.RecordTypePerson,
			RecordURL:   "https://app.attio.com/venice/person/person-1",
			DisplayName: "Tony Xiao",
			Person:      person,
		})

		require.NotNil(t, view.Person)
		assert.Nil(t, view.Company)
		assert.Equal(t, "person-1", view.Person.PersonID)
		assert.Equal(t, "Tony Xiao", view.Person.Name)

		require.Len(t, view.Person.Roles, 1)
		role := view.Person.Roles[0]
		assert.Equal(t, "role-1", role.RoleID)
		assert.Equal(t, "company-1", role.CompanyRecord.CompanyID)
		assert.Equal(t, "person-1", role.PersonRecord.PersonID)
		assert.Equal(t, "Tony", role.PersonRecord.Name)
	})

	t.Run("should serialize with the schema's property names", func(t *testing.T) {
		view := NewRecordView(models.Record{
			RecordID:    "company-1",
			RecordType:  models.RecordTypeCompany,
			DisplayName: "Venice",
			Company:     &models.Company{ID: "company-1", Name: "Venice", Domains: []string{"venice.is"}},
		})

		data, err := json.Marshal(view)
		require.NoError(t, err)

		var fields map[string]any
		require.NoError(t, json.Unmarshal(data, &fields))

		names := map[string]bool{}
		for _, p := range RecordSchema.Properties {
			names[p.Name] = true
		}
		for key := range fields {
			assert.True(t, names[key], "unexpected field %s", key)
		}

		company := fields["company"].(map[string]any)
		assert.Equal(t, "company-1", company["company_id"])
		assert.NotContains(t, fields, "person")
	})
}

func TestNewEntryView(t *testing.T) {
	t.Run("should omit a missing collection and creation time", func(t *testing.T) {
		view := NewEntryView(models.Entry{ID: "entry-1", CollectionID: "col-1"})

		assert.Equal(t, "entry-1", view.EntryID)
		assert.Nil(t, view.Collection)
		assert.Nil(t, view.CreatedAt)
	})

	t.Run("should map the embedded collection", func(t *testing.T) {
		createdAt := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
		view := NewEntryView(models.Entry{
			ID:         "entry-1",
			Collection: &models.Collection{ID: "col-1", Name: "Fundraising", CollectionURL: "https://app.attio.com/venice/collection/col-1"},
			CreatedAt:  createdAt,
		})

		require.NotNil(t, view.Collection)
		assert.Equal(t, CollectionView{
			CollectionID:  "col-1",
			CollectionURL: "https://app.attio.com/venice/collection/col-1",
			Name:          "Fundraising",
		}, *view.Collection)
		assert.Equal(t, createdAt, *view.CreatedAt)
	})
}

func TestNewParsedEmailViews(t *testing.T) {
	views := NewParsedEmailViews(parse.ParseEmails("Bart Adams <bart@adams.com>, bill@gates.com"))

	assert.Equal(t, []ParsedEmailView{
		{Address: "bart@adams.com", Name: "Bart Adams", FirstName: "Bart", LastName: "Adams"},
		{Address: "bill@gates.com"},
	}, views)
}
