package models

import "time"

// RecordType discriminates the two Attio record variants
type RecordType string

const (
	RecordTypePerson  RecordType = "person"
	RecordTypeCompany RecordType = "company"
)

func (t RecordType) Valid() bool {
	return t == RecordTypePerson || t == RecordTypeCompany
}

// EntryRef links a record to one entry of a collection
type EntryRef struct {
	EntryID      string `json:"entry_id"`
	CollectionID string `json:"collection_id"`
}

// Variant is implemented by Person and Company only.
type Variant interface {
	RecordType() RecordType
	RecordID() string
	EntryRefs() map[string][]EntryRef
	isVariant()
}

// Person is the person variant of a record as Attio returns it
type Person struct {
	ID             string                `json:"id"`
	CreatedAt      time.Time             `json:"created_at"`
	FirstName      *string               `json:"first_name"`
	LastName       *string               `json:"last_name"`
	AvatarURL      *string               `json:"avatar_url"`
	Description    *string               `json:"description"`
	EmailAddresses []string              `json:"email_addresses"`
	Roles          []Role                `json:"roles"`
	Entries        map[string][]EntryRef `json:"entries,omitempty"`
}

func (p *Person) RecordType() RecordType           { return RecordTypePerson }
func (p *Person) RecordID() string                 { return p.ID }
func (p *Person) EntryRefs() map[string][]EntryRef { return p.Entries }
func (p *Person) isVariant()                       {}

// Company is the company variant of a record as Attio returns it
type Company struct {
	ID          string                `json:"id"`
	CreatedAt   time.Time             `json:"created_at"`
	Name        string                `json:"name"`
	LogoURL     *string               `json:"logo_url"`
	Description *string               `json:"description"`
	Domains     []string              `json:"domains"`
	Roles       []Role                `json:"roles"`
	Entries     map[string][]EntryRef `json:"entries,omitempty"`
}

func (c *Company) RecordType() RecordType           { return RecordTypeCompany }
func (c *Company) RecordID() string                 { return c.ID }
func (c *Company) EntryRefs() map[string][]EntryRef { return c.Entries }
func (c *Company) isVariant()                       {}

// Role is an edge between a company and a person
type Role struct {
	ID            string      `json:"id"`
	Title         *string     `json:"title"`
	StartedAt     *time.Time  `json:"started_at"`
	EndedAt       *time.Time  `json:"ended_at"`
	CreatedAt     *time.Time  `json:"created_at"`
	CompanyRecord RoleCompany `json:"company_record"`
	PersonRecord  RolePerson  `json:"person_record"`
}

type RoleCompany struct {
	ID   string  `json:"id"`
	Name *string `json:"name"`
}

// RolePerson carries the joined Name alongside the raw name parts
type RolePerson struct {
	ID        string  `json:"id"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Name      string  `json:"name"`
}

// RecordMeta holds the mailbox a record was asserted from. The names come
// from the input string, not from the CRM.
type RecordMeta struct {
	Address   string `json:"address"`
	Name      string `json:"name"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Record is the normalized envelope around a Person or a Company. Exactly one
// of Person and Company is set and it always matches RecordType.
type Record struct {
	RecordID    string      `json:"record_id"`
	RecordType  RecordType  `json:"record_type"`
	RecordURL   string      `json:"record_url"`
	DisplayName string      `json:"display_name"`
	Person      *Person     `json:"person,omitempty"`
	Company     *Company    `json:"company,omitempty"`
	Meta        *RecordMeta `json:"meta,omitempty"`
}

// Variant returns whichever of Person or Company is set.
func (r Record) Variant() Variant {
	if r.Person != nil {
		return r.Person
	}
	if r.Company != nil {
		return r.Company
	}
	return nil
}

// Entries returns the record's collection memberships keyed by collection id.
func (r Record) Entries() map[string][]EntryRef {
	if v := r.Variant(); v != nil {
		return v.EntryRefs()
	}
	return nil
}

// WithMeta returns a copy of the record carrying meta.
func (r Record) WithMeta(meta RecordMeta) Record {
	r.Meta = &meta
	return r
}
