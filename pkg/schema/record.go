package schema

import (
	"encoding/json"
	"fmt"

	asterrors "github.com/Ramsey-B/aster/pkg/errors"
	"github.com/Ramsey-B/aster/pkg/models"
)

var (
	roleShape = shape{
		required: []string{"id", "title", "started_at", "ended_at", "created_at", "company_record", "person_record"},
		nullable: []string{"title", "started_at", "ended_at", "created_at"},
		objects: map[string]shape{
			"company_record": {
				required: []string{"id", "name"},
				nullable: []string{"name"},
			},
			"person_record": {
				required: []string{"id", "first_name", "last_name"},
				nullable: []string{"first_name", "last_name"},
			},
		},
	}

	personShape = shape{
		required: []string{"id", "created_at", "first_name", "last_name", "avatar_url", "description", "email_addresses", "roles"},
		nullable: []string{"first_name", "last_name", "avatar_url", "description"},
		arrays:   map[string]shape{"roles": roleShape},
	}

	companyShape = shape{
		required: []string{"id", "created_at", "name", "logo_url", "description", "domains", "roles"},
		nullable: []string{"logo_url", "description"},
		arrays:   map[string]shape{"roles": roleShape},
	}
)

type roleWire struct {
	ID            string             `json:"id"`
	Title         *string            `json:"title"`
	StartedAt     *string            `json:"started_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	EndedAt       *string            `json:"ended_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	CreatedAt     *string            `json:"created_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	CompanyRecord models.RoleCompany `json:"company_record"`
	PersonRecord  models.RolePerson  `json:"person_record"`
}

type personWire struct {
	ID             string                       `json:"id" validate:"uuid"`
	CreatedAt      string                       `json:"created_at" validate:"datetime=2006-01-02T15:04:05Z07:00"`
	FirstName      *string                      `json:"first_name"`
	LastName       *string                      `json:"last_name"`
	AvatarURL      *string                      `json:"avatar_url" validate:"omitempty,url"`
	Description    *string                      `json:"description"`
	EmailAddresses []string                     `json:"email_addresses"`
	Roles          []roleWire                   `json:"roles" validate:"dive"`
	Entries        map[string][]models.EntryRef `json:"entries"`
}

type companyWire struct {
	ID          string                       `json:"id" validate:"uuid"`
	CreatedAt   string                       `json:"created_at" validate:"datetime=2006-01-02T15:04:05Z07:00"`
	Name        string                       `json:"name"`
	LogoURL     *string                      `json:"logo_url" validate:"omitempty,url"`
	Description *string                      `json:"description"`
	Domains     []string                     `json:"domains"`
	Roles       []roleWire                   `json:"roles" validate:"dive"`
	Entries     map[string][]models.EntryRef `json:"entries"`
}

// ValidateRecord checks a person or company payload and returns the variant
// selected by its contact_type (or record_type) discriminant.
func (s *Schemas) ValidateRecord(raw []byte) (models.Variant, error) {
	variant, violations := s.validateRecord(raw)
	if len(violations) > 0 {
		return nil, asterrors.NewSchemaViolation("record", violations...)
	}
	return variant, nil
}

// DecodeRecord validates and transforms a person or company payload.
func (s *Schemas) DecodeRecord(raw []byte) (models.Record, error) {
	variant, err := s.ValidateRecord(raw)
	if err != nil {
		return models.Record{}, err
	}
	return s.TransformRecord(variant), nil
}

func (s *Schemas) decodeRecord(raw json.RawMessage) (models.Record, []asterrors.FieldViolation) {
	variant, violations := s.validateRecord(raw)
	if len(violations) > 0 {
		return models.Record{}, violations
	}
	return s.TransformRecord(variant), nil
}

func (s *Schemas) validateRecord(raw json.RawMessage) (models.Variant, []asterrors.FieldViolation) {
	fields, violations := decodeObject(raw)
	if violations != nil {
		return nil, violations
	}

	recordType, violations := discriminant(fields)
	if violations != nil {
		return nil, violations
	}

	switch recordType {
	case models.RecordTypePerson:
		return s.validatePerson(raw)
	default:
		return s.validateCompany(raw)
	}
}

// discriminant reads contact_type, falling back to record_type.
func discriminant(fields map[string]json.RawMessage) (models.RecordType, []asterrors.FieldViolation) {
	key := "contact_type"
	value, ok := fields[key]
	if !ok {
		key = "record_type"
		value, ok = fields[key]
	}
	if !ok {
		return "", []asterrors.FieldViolation{{Field: "contact_type", Message: "is required"}}
	}

	var recordType models.RecordType
	if err := json.Unmarshal(value, &recordType); err != nil || !recordType.Valid() {
		return "", []asterrors.FieldViolation{{
			Field:   key,
			Message: fmt.Sprintf("must be one of [person company], got %s", describe(value)),
		}}
	}

	return recordType, nil
}

func (s *Schemas) validatePerson(raw json.RawMessage) (models.Variant, []asterrors.FieldViolation) {
	if violations := personShape.check(raw); len(violations) > 0 {
		return nil, violations
	}

	var wire personWire
	if violations := unmarshal(raw, &wire); len(violations) > 0 {
		return nil, violations
	}
	if violations := s.checkFormats(wire); len(violations) > 0 {
		return nil, violations
	}

	return &models.Person{
		ID:             wire.ID,
		CreatedAt:      parseTime(wire.CreatedAt),
		FirstName:      wire.FirstName,
		LastName:       wire.LastName,
		AvatarURL:      wire.AvatarURL,
		Description:    wire.Description,
		EmailAddresses: wire.EmailAddresses,
		Roles:          toRoles(wire.Roles),
		Entries:        wire.Entries,
	}, nil
}

func (s *Schemas) validateCompany(raw json.RawMessage) (models.Variant, []asterrors.FieldViolation) {
	if violations := companyShape.check(raw); len(violations) > 0 {
		return nil, violations
	}

	var wire companyWire
	if violations := unmarshal(raw, &wire); len(violations) > 0 {
		return nil, violations
	}
	if violations := s.checkFormats(wire); len(violations) > 0 {
		return nil, violations
	}

	return &models.Company{
		ID:          wire.ID,
		CreatedAt:   parseTime(wire.CreatedAt),
		Name:        wire.Name,
		LogoURL:     wire.LogoURL,
		Description: wire.Description,
		Domains:     wire.Domains,
		Roles:       toRoles(wire.Roles),
		Entries:     wire.Entries,
	}, nil
}

func toRoles(wires []roleWire) []models.Role {
	roles := make([]models.Role, len(wires))
	for i, w := range wires {
		person := w.PersonRecord
		person.Name = JoinName(person.FirstName, person.LastName)

		roles[i] = models.Role{
			ID:            w.ID,
			Title:         w.Title,
			StartedAt:     parseOptionalTime(w.StartedAt),
			EndedAt:       parseOptionalTime(w.EndedAt),
			CreatedAt:     parseOptionalTime(w.CreatedAt),
			CompanyRecord: w.CompanyRecord,
			PersonRecord:  person,
		}
	}
	return roles
}
