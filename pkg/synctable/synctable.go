// Package synctable serves Attio listings one page at a time. The caller
// drives pagination by passing back the continuation of the previous page.
package synctable

import (
	"context"

	"github.com/Gobusters/ectolinq"
	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/aster/pkg/attio"
	"github.com/Ramsey-B/aster/pkg/models"
)

// Continuation points at the next page. A nil continuation means the listing is done.
type Continuation struct {
	Offset int `json:"offset" query:"offset"`
}

type Result[T any] struct {
	Result       []T           `json:"result"`
	Continuation *Continuation `json:"continuation,omitempty"`
}

// DynamicURL is one selectable collection.
type DynamicURL struct {
	Display string `json:"display"`
	Value   string `json:"value"`
}

type Client interface {
	ListCollections(ctx context.Context) ([]models.Collection, error)
	ListCollectionEntries(ctx context.Context, collectionID string, opts attio.PageOptions) (models.EntryPage, error)
}

type Syncer struct {
	client Client
	logger ectologger.Logger
}

func NewSyncer(client Client, logger ectologger.Logger) *Syncer {
	return &Syncer{
		client: client,
		logger: logger,
	}
}

func (s *Syncer) SyncCollections(ctx context.Context) (Result[models.Collection], error) {
	collections, err := s.client.ListCollections(ctx)
	if err != nil {
		return Result[models.Collection]{}, err
	}
	return Result[models.Collection]{Result: collections}, nil
}

// SyncRecords returns the records behind one page of a collection's entries.
func (s *Syncer) SyncRecords(ctx context.Context, collectionID string, continuation *Continuation) (Result[models.Record], error) {
	entries, err := s.SyncCollectionEntries(ctx, collectionID, continuation)
	if err != nil {
		return Result[models.Record]{}, err
	}

	return Result[models.Record]{
		Result: ectolinq.Map(entries.Result, func(entry models.Entry) models.Record {
			return entry.Record
		}),
		Continuation: entries.Continuation,
	}, nil
}

func (s *Syncer) SyncCollectionEntries(ctx context.Context, collectionID string, continuation *Continuation) (Result[models.Entry], error) {
	offset := 0
	if continuation != nil {
		offset = continuation.Offset
	}

	page, err := s.client.ListCollectionEntries(ctx, collectionID, attio.PageOptions{Offset: offset})
	if err != nil {
		return Result[models.Entry]{}, err
	}

	s.logger.WithContext(ctx).Debugf("Synced %d entries of collection %s at offset %d", len(page.Data), collectionID, offset)

	return Result[models.Entry]{
		Result:       page.Data,
		Continuation: next(page.NextPageOffset),
	}, nil
}

// next treats a zero offset like a missing one.
func next(offset *int) *Continuation {
	if offset == nil || *offset == 0 {
		return nil
	}
	return &Continuation{Offset: *offset}
}

func (s *Syncer) ListDynamicURLs(ctx context.Context) ([]DynamicURL, error) {
	collections, err := s.client.ListCollections(ctx)
	if err != nil {
		return nil, err
	}

	return ectolinq.Map(collections, func(col models.Collection) DynamicURL {
		return DynamicURL{Display: col.Name, Value: col.ID}
	}), nil
}

// GetName returns the collection's name, or its id when no collection has one.
func (s *Syncer) GetName(ctx context.Context, collectionID string) (string, error) {
	collections, err := s.client.ListCollections(ctx)
	if err != nil {
		return "", err
	}

	match := ectolinq.Find(collections, func(col models.Collection) bool {
		return col.ID == collectionID
	})
	if match.Name == "" {
		return collectionID, nil
	}
	return match.Name, nil
}
