package schema

import (
	"fmt"
	"strings"

	"github.com/Gobusters/ectolinq"
	"github.com/go-playground/validator/v10"

	"github.com/Ramsey-B/aster/pkg/models"
)

const DefaultAppBaseURL = "https://app.attio.com"

// Options configures the URLs derived for records and collections.
type Options struct {
	WorkspaceSlug string
	AppBaseURL    string
}

// Schemas validates Attio payloads and normalizes them into models.
type Schemas struct {
	opts     Options
	validate *validator.Validate
}

func New(opts Options) *Schemas {
	if opts.AppBaseURL == "" {
		opts.AppBaseURL = DefaultAppBaseURL
	}
	opts.AppBaseURL = strings.TrimRight(opts.AppBaseURL, "/")

	return &Schemas{
		opts:     opts,
		validate: newValidator(),
	}
}

// RecordURL returns the Attio web URL of a record.
func (s *Schemas) RecordURL(recordType models.RecordType, id string) string {
	return fmt.Sprintf("%s/%s/%s/%s", s.opts.AppBaseURL, s.opts.WorkspaceSlug, recordType, id)
}

// CollectionURL returns the Attio web URL of a collection.
func (s *Schemas) CollectionURL(id string) string {
	return fmt.Sprintf("%s/%s/collection/%s", s.opts.AppBaseURL, s.opts.WorkspaceSlug, id)
}

// TransformRecord wraps a validated variant in the record envelope.
func (s *Schemas) TransformRecord(v models.Variant) models.Record {
	record := models.Record{
		RecordID:   v.RecordID(),
		RecordType: v.RecordType(),
		RecordURL:  s.RecordURL(v.RecordType(), v.RecordID()),
	}

	switch variant := v.(type) {
	case *models.Person:
		record.DisplayName = JoinName(variant.FirstName, variant.LastName)
		record.Person = variant
	case *models.Company:
		record.DisplayName = variant.Name
		record.Company = variant
	}

	return record
}

// JoinName joins the non-empty name parts with a single space.
func JoinName(parts ...*string) string {
	names := ectolinq.Map(parts, func(p *string) string {
		if p == nil {
			return ""
		}
		return strings.TrimSpace(*p)
	})

	return strings.Join(ectolinq.Filter(names, func(n string) bool {
		return n != ""
	}), " ")
}
