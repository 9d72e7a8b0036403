// Package reconcile resolves free-form inputs to Attio records and links them
// into collections without creating duplicates.
package reconcile

import (
	"context"
	"strings"

	"github.com/Gobusters/ectologger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Ramsey-B/aster/pkg/attio"
	asterrors "github.com/Ramsey-B/aster/pkg/errors"
	"github.com/Ramsey-B/aster/pkg/events"
	"github.com/Ramsey-B/aster/pkg/metrics"
	"github.com/Ramsey-B/aster/pkg/models"
	"github.com/Ramsey-B/aster/pkg/parse"
	"github.com/Ramsey-B/aster/pkg/tracing"
)

const (
	OutcomeAsserted     = "asserted"
	OutcomeFetched      = "fetched"
	OutcomeDeduplicated = "deduplicated"
	OutcomeCreated      = "created"
	OutcomeDeleted      = "deleted"
	OutcomeError        = "error"
)

// RecordClient is the subset of the Attio API the engine calls.
type RecordClient interface {
	FetchPerson(ctx context.Context, personID string) (models.Record, error)
	FetchCompany(ctx context.Context, companyID string) (models.Record, error)
	AssertPerson(ctx context.Context, input attio.AssertPersonInput) (models.Record, error)
	AssertCompany(ctx context.Context, input attio.AssertCompanyInput) (models.Record, error)
	CreateCollectionEntry(ctx context.Context, collectionID string, input attio.CreateEntryInput) (models.Entry, error)
	DeleteCollectionEntry(ctx context.Context, collectionID, entryID string) error
}

type AssertOptions struct {
	// UpdateName sends the mailbox display name along with the address.
	UpdateName bool
}

type AddToCollectionInput struct {
	Input          string
	CollectionID   string
	AllowDuplicate bool
}

type Engine struct {
	client  RecordClient
	emitter events.Emitter
	logger  ectologger.Logger
}

func NewEngine(client RecordClient, emitter events.Emitter, logger ectologger.Logger) *Engine {
	if emitter == nil {
		emitter = events.NoopEmitter{}
	}
	return &Engine{
		client:  client,
		emitter: emitter,
		logger:  logger,
	}
}

// AssertRecord classifies input and finds or creates the matching person
// (for a mailbox) or company (for a domain).
func (e *Engine) AssertRecord(ctx context.Context, input string, opts AssertOptions) (record models.Record, err error) {
	ctx, span := tracing.StartSpan(ctx, "Reconcile.AssertRecord")
	defer func() { e.finish(ctx, span, "assert_record", OutcomeAsserted, err) }()

	classified := parse.Classify(input)
	span.SetAttributes(attribute.String("input.type", string(classified.Type)))

	switch classified.Type {
	case parse.InputTypeEmail:
		record, err = e.assertPerson(ctx, classified.Email, opts.UpdateName)
	case parse.InputTypeDomain:
		record, err = e.client.AssertCompany(ctx, attio.AssertCompanyInput{Domains: []string{classified.Value}})
	default:
		return models.Record{}, asterrors.NewClassificationError(input)
	}
	if err != nil {
		return models.Record{}, err
	}

	e.emit(ctx, events.ForRecord(record))
	return record, nil
}

func (e *Engine) assertPerson(ctx context.Context, email parse.ParsedEmail, updateName bool) (models.Record, error) {
	input := attio.AssertPersonInput{EmailAddresses: []string{email.Address}}
	if updateName {
		input.FirstName = email.FirstName
		input.LastName = email.LastName
	}

	record, err := e.client.AssertPerson(ctx, input)
	if err != nil {
		return models.Record{}, err
	}

	return record.WithMeta(models.RecordMeta{
		Address:   email.Address,
		Name:      email.Name,
		FirstName: email.FirstName,
		LastName:  email.LastName,
	}), nil
}

// AddRecordToCollection asserts the record for input and returns its entry in
// the collection. An existing entry is reused unless AllowDuplicate is set.
// The two steps are not atomic; retrying after a failure converges on the
// same entry.
func (e *Engine) AddRecordToCollection(ctx context.Context, in AddToCollectionInput) (entry models.Entry, err error) {
	ctx, span := tracing.StartSpan(ctx, "Reconcile.AddRecordToCollection")
	span.SetAttributes(
		attribute.String("attio.collection_id", in.CollectionID),
		attribute.Bool("allow_duplicate", in.AllowDuplicate),
	)
	outcome := OutcomeCreated
	defer func() { e.finish(ctx, span, "add_to_collection", outcome, err) }()

	record, err := e.AssertRecord(ctx, in.Input, AssertOptions{})
	if err != nil {
		return models.Entry{}, err
	}

	if existing := record.Entries()[in.CollectionID]; len(existing) > 0 && !in.AllowDuplicate {
		outcome = OutcomeDeduplicated
		entry = existingEntry(existing[0], in.CollectionID, record)
		e.logger.WithContext(ctx).WithFields(map[string]any{
			"record_id":     record.RecordID,
			"collection_id": in.CollectionID,
			"entry_id":      entry.ID,
		}).Debug("Record already in collection")
		e.emit(ctx, events.ForEntry(events.EntryDeduplicated, entry))
		return entry, nil
	}

	entry, err = e.client.CreateCollectionEntry(ctx, in.CollectionID, attio.CreateEntryInput{
		RecordType: record.RecordType,
		RecordID:   record.RecordID,
	})
	if err != nil {
		return models.Entry{}, err
	}

	e.emit(ctx, events.ForEntry(events.EntryCreated, entry))
	return entry, nil
}

// existingEntry is the entry a record already has, carrying the freshly
// asserted record. The collection itself is not fetched.
func existingEntry(ref models.EntryRef, collectionID string, record models.Record) models.Entry {
	if ref.CollectionID != "" {
		collectionID = ref.CollectionID
	}
	return models.Entry{
		ID:           ref.EntryID,
		CollectionID: collectionID,
		Record:       record,
	}
}

// GetOrCreatePerson fetches a person by id, or asserts one from a mailbox.
// Empty input resolves to no record.
func (e *Engine) GetOrCreatePerson(ctx context.Context, emailOrPersonID string, updateName bool) (record *models.Record, err error) {
	emailOrPersonID = strings.TrimSpace(emailOrPersonID)
	if emailOrPersonID == "" {
		return nil, nil
	}

	ctx, span := tracing.StartSpan(ctx, "Reconcile.GetOrCreatePerson")
	outcome := OutcomeAsserted
	defer func() { e.finish(ctx, span, "get_or_create_person", outcome, err) }()

	if parse.IsUUID(emailOrPersonID) {
		outcome = OutcomeFetched
		fetched, err := e.client.FetchPerson(ctx, emailOrPersonID)
		if err != nil {
			return nil, err
		}
		return &fetched, nil
	}

	email, err := parse.ParseEmail(emailOrPersonID)
	if err != nil {
		return nil, asterrors.NewClassificationError(emailOrPersonID)
	}

	asserted, err := e.assertPerson(ctx, email, updateName)
	if err != nil {
		return nil, err
	}

	e.emit(ctx, events.ForRecord(asserted))
	return &asserted, nil
}

// GetOrCreateCompany fetches a company by id, or asserts one from a domain or URL.
// Empty input resolves to no record.
func (e *Engine) GetOrCreateCompany(ctx context.Context, domainOrCompanyID string) (record *models.Record, err error) {
	domainOrCompanyID = strings.TrimSpace(domainOrCompanyID)
	if domainOrCompanyID == "" {
		return nil, nil
	}

	ctx, span := tracing.StartSpan(ctx, "Reconcile.GetOrCreateCompany")
	outcome := OutcomeAsserted
	defer func() { e.finish(ctx, span, "get_or_create_company", outcome, err) }()

	if parse.IsUUID(domainOrCompanyID) {
		outcome = OutcomeFetched
		fetched, err := e.client.FetchCompany(ctx, domainOrCompanyID)
		if err != nil {
			return nil, err
		}
		return &fetched, nil
	}

	domain, err := parse.ParseDomain(domainOrCompanyID, false)
	if err != nil {
		return nil, err
	}

	asserted, err := e.client.AssertCompany(ctx, attio.AssertCompanyInput{Domains: []string{domain}})
	if err != nil {
		return nil, err
	}

	e.emit(ctx, events.ForRecord(asserted))
	return &asserted, nil
}

// DeleteCollectionEntry removes an entry and reports true on success.
func (e *Engine) DeleteCollectionEntry(ctx context.Context, collectionID, entryID string) (deleted bool, err error) {
	ctx, span := tracing.StartSpan(ctx, "Reconcile.DeleteCollectionEntry")
	span.SetAttributes(
		attribute.String("attio.collection_id", collectionID),
		attribute.String("attio.entry_id", entryID),
	)
	defer func() { e.finish(ctx, span, "delete_entry", OutcomeDeleted, err) }()

	if err := e.client.DeleteCollectionEntry(ctx, collectionID, entryID); err != nil {
		return false, err
	}

	e.emit(ctx, events.Event{
		Type:         events.EntryDeleted,
		CollectionID: collectionID,
		EntryID:      entryID,
	})
	return true, nil
}

// emit publishes evt, logging instead of failing the operation.
func (e *Engine) emit(ctx context.Context, evt events.Event) {
	if err := e.emitter.Emit(ctx, evt); err != nil {
		e.logger.WithContext(ctx).WithError(err).Warnf("Failed to emit %s event", evt.Type)
	}
}

func (e *Engine) finish(ctx context.Context, span trace.Span, operation, outcome string, err error) {
	defer span.End()

	if err != nil {
		metrics.RecordReconcile(operation, OutcomeError)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		e.logger.WithContext(ctx).WithError(err).Errorf("Reconcile %s failed", operation)
		return
	}

	metrics.RecordReconcile(operation, outcome)
	span.SetAttributes(attribute.String("reconcile.outcome", outcome))
	span.SetStatus(codes.Ok, "")
}
