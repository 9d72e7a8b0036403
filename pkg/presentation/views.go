package presentation

import (
	"time"

	"github.com/Gobusters/ectolinq"

	"github.com/Ramsey-B/aster/pkg/models"
	"github.com/Ramsey-B/aster/pkg/parse"
	"github.com/Ramsey-B/aster/pkg/schema"
)

type CollectionView struct {
	CollectionID  string `json:"collection_id"`
	CollectionURL string `json:"collection_url"`
	Name          string `json:"name"`
}

type RoleCompanyView struct {
	CompanyID string  `json:"company_id"`
	Name      *string `json:"name"`
}

type RolePersonView struct {
	PersonID  string  `json:"person_id"`
	Name      string  `json:"name"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

type RoleView struct {
	RoleID        string          `json:"role_id"`
	Title         *string         `json:"title"`
	StartedAt     *time.Time      `json:"started_at"`
	EndedAt       *time.Time      `json:"ended_at"`
	CreatedAt     *time.Time      `json:"created_at"`
	CompanyRecord RoleCompanyView `json:"company_record"`
	PersonRecord  RolePersonView  `json:"person_record"`
}

type PersonView struct {
	PersonID       string     `json:"person_id"`
	Name           string     `json:"name"`
	FirstName      *string    `json:"first_name"`
	LastName       *string    `json:"last_name"`
	EmailAddresses []string   `json:"email_addresses"`
	AvatarURL      *string    `json:"avatar_url"`
	Description    *string    `json:"description"`
	Roles          []RoleView `json:"roles"`
}

type CompanyView struct {
	CompanyID   string     `json:"company_id"`
	Name        string     `json:"name"`
	Domains     []string   `json:"domains"`
	LogoURL     *string    `json:"logo_url"`
	Description *string    `json:"description"`
	Roles       []RoleView `json:"roles"`
}

type RecordView struct {
	RecordID    string            `json:"record_id"`
	RecordURL   string            `json:"record_url"`
	RecordType  models.RecordType `json:"record_type"`
	DisplayName string            `json:"display_name"`
	Person      *PersonView       `json:"person,omitempty"`
	Company     *CompanyView      `json:"company,omitempty"`
	Meta        *ParsedEmailView  `json:"meta,omitempty"`
}

type EntryView struct {
	EntryID    string          `json:"entry_id"`
	Collection *CollectionView `json:"collection,omitempty"`
	Record     RecordView      `json:"record"`
	CreatedAt  *time.Time      `json:"created_at,omitempty"`
	Attributes map[string]any  `json:"attributes,omitempty"`
}

type ParsedEmailView struct {
	Address   string `json:"address"`
	Name      string `json:"name"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

func NewCollectionView(c models.Collection) CollectionView {
	return CollectionView{
		CollectionID:  c.ID,
		CollectionURL: c.CollectionURL,
		Name:          c.Name,
	}
}

func NewCollectionViews(collections []models.Collection) []CollectionView {
	return ectolinq.Map(collections, NewCollectionView)
}

func NewRoleView(r models.Role) RoleView {
	return RoleView{
		RoleID:    r.ID,
		Title:     r.Title,
		StartedAt: r.StartedAt,
		EndedAt:   r.EndedAt,
		CreatedAt: r.CreatedAt,
		CompanyRecord: RoleCompanyView{
			CompanyID: r.CompanyRecord.ID,
			Name:      r.CompanyRecord.Name,
		},
		PersonRecord: RolePersonView{
			PersonID:  r.PersonRecord.ID,
			Name:      r.PersonRecord.Name,
			FirstName: r.PersonRecord.FirstName,
			LastName:  r.PersonRecord.LastName,
		},
	}
}

func newRoleViews(roles []models.Role) []RoleView {
	return ectolinq.Map(roles, NewRoleView)
}

func NewPersonView(p *models.Person) PersonView {
	return PersonView{
		PersonID:       p.ID,
		Name:           schema.JoinName(p.FirstName, p.LastName),
		FirstName:      p.FirstName,
		LastName:       p.LastName,
		EmailAddresses: p.EmailAddresses,
		AvatarURL:      p.AvatarURL,
		Description:    p.Description,
		Roles:          newRoleViews(p.Roles),
	}
}

func NewCompanyView(c *models.Company) CompanyView {
	return CompanyView{
		CompanyID:   c.ID,
		Name:        c.Name,
		Domains:     c.Domains,
		LogoURL:     c.LogoURL,
		Description: c.Description,
		Roles:       newRoleViews(c.Roles),
	}
}

func NewRecordView(r models.Record) RecordView {
	view := RecordView{
		RecordID:    r.RecordID,
		RecordURL:   r.RecordURL,
		RecordType:  r.RecordType,
		DisplayName: r.DisplayName,
	}
	if r.Person != nil {
		person := NewPersonView(r.Person)
		view.Person = &person
	}
	if r.Company != nil {
		company := NewCompanyView(r.Company)
		view.Company = &company
	}
	if r.Meta != nil {
		view.Meta = &ParsedEmailView{
			Address:   r.Meta.Address,
			Name:      r.Meta.Name,
			FirstName: r.Meta.FirstName,
			LastName:  r.Meta.LastName,
		}
	}
	return view
}

func NewRecordViews(records []models.Record) []RecordView {
	return ectolinq.Map(records, NewRecordView)
}

func NewEntryView(e models.Entry) EntryView {
	view := EntryView{
		EntryID:    e.ID,
		Record:     NewRecordView(e.Record),
		Attributes: e.Attributes,
	}
	if e.Collection != nil {
		collection := NewCollectionView(*e.Collection)
		view.Collection = &collection
	}
	if !e.CreatedAt.IsZero() {
		createdAt := e.CreatedAt
		view.CreatedAt = &createdAt
	}
	return view
}

func NewEntryViews(entries []models.Entry) []EntryView {
	return ectolinq.Map(entries, NewEntryView)
}

func NewParsedEmailView(p parse.ParsedEmail) ParsedEmailView {
	return ParsedEmailView{
		Address:   p.Address,
		Name:      p.Name,
		FirstName: p.FirstName,
		LastName:  p.LastName,
	}
}

func NewParsedEmailViews(emails []parse.ParsedEmail) []ParsedEmailView {
	return ectolinq.Map(emails, NewParsedEmailView)
}
