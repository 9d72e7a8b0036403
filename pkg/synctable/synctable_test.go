package synctable

import (
	"context"
	"errors"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/aster/pkg/attio"
	"github.com/Ramsey-B/aster/pkg/models"
)

type fakeClient struct {
	collections []models.Collection
	page        models.EntryPage
	offsets     []int
	err         error
}

func (f *fakeClient) ListCollections(context.Context) ([]models.Collection, error) {
	return f.collections, f.err
}

func (f *fakeClient) ListCollectionEntries(_ context.Context, _ string, opts attio.PageOptions) (models.EntryPage, error) {
	f.offsets = append(f.offsets, opts.Offset)
	return f.page, f.err
}

func intPtr(i int) *int {
	return &i
}

func newTestSyncer(client Client) *Syncer {
	return NewSyncer(client, ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {}))
}

func TestSyncCollectionEntries(t *testing.T) {
	entry := models.Entry{
		ID:           "entry-1",
		CollectionID: "col-1",
		Record:       models.Record{RecordID: "record-1", RecordType: models.RecordTypeCompany},
	}

	tests := []struct {
		name         string
		continuation *Continuation
		nextOffset   *int
		wantOffset   int
		want         *Continuation
	}{
		{name: "should start at zero without a continuation", continuation: nil, nextOffset: intPtr(250), wantOffset: 0, want: &Continuation{Offset: 250}},
		{name: "should resume from the continuation", continuation: &Continuation{Offset: 250}, nextOffset: intPtr(500), wantOffset: 250, want: &Continuation{Offset: 500}},
		{name: "should stop when there is no next page", continuation: &Continuation{Offset: 500}, nextOffset: nil, wantOffset: 500, want: nil},
		{name: "should stop on a zero next offset", continuation: nil, nextOffset: intPtr(0), wantOffset: 0, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{page: models.EntryPage{Data: []models.Entry{entry}, NextPageOffset: tt.nextOffset}}

			result, err := newTestSyncer(client).SyncCollectionEntries(context.Background(), "col-1", tt.continuation)
			require.NoError(t, err)

			assert.Equal(t, []int{tt.wantOffset}, client.offsets)
			assert.Equal(t, tt.want, result.Continuation)
			assert.Equal(t, []models.Entry{entry}, result.Result)
		})
	}
}

func TestSyncRecords(t *testing.T) {
	t.Run("should return the record of every entry", func(t *testing.T) {
		client := &fakeClient{page: models.EntryPage{
			Data: []models.Entry{
				{ID: "entry-1", Record: models.Record{RecordID: "record-1"}},
				{ID: "entry-2", Record: models.Record{RecordID: "record-2"}},
			},
			NextPageOffset: intPtr(2),
		}}

		result, err := newTestSyncer(client).SyncRecords(context.Background(), "col-1", nil)
		require.NoError(t, err)

		require.Len(t, result.Result, 2)
		assert.Equal(t, "record-2", result.Result[1].RecordID)
		assert.Equal(t, &Continuation{Offset: 2}, result.Continuation)
	})

	t.Run("should return client failures", func(t *testing.T) {
		client := &fakeClient{err: errors.New("boom")}

		_, err := newTestSyncer(client).SyncRecords(context.Background(), "col-1", nil)
		assert.EqualError(t, err, "boom")
	})
}

func TestCollections(t *testing.T) {
	client := &fakeClient{collections: []models.Collection{
		{ID: "col-1", Name: "Fundraising"},
		{ID: "col-2", Name: ""},
	}}
	syncer := newTestSyncer(client)

	t.Run("should sync every collection", func(t *testing.T) {
		result, err := syncer.SyncCollections(context.Background())
		require.NoError(t, err)

		assert.Len(t, result.Result, 2)
		assert.Nil(t, result.Continuation)
	})

	t.Run("should list dynamic urls", func(t *testing.T) {
		urls, err := syncer.ListDynamicURLs(context.Background())
		require.NoError(t, err)

		assert.Equal(t, []DynamicURL{
			{Display: "Fundraising", Value: "col-1"},
			{Display: "", Value: "col-2"},
		}, urls)
	})

	tests := []struct {
		name         string
		collectionID string
		want         string
	}{
		{name: "should return the collection name", collectionID: "col-1", want: "Fundraising"},
		{name: "should fall back to the id for an unnamed collection", collectionID: "col-2", want: "col-2"},
		{name: "should fall back to the id for an unknown collection", collectionID: "col-3", want: "col-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, err := syncer.GetName(context.Background(), tt.collectionID)
			require.NoError(t, err)
			assert.Equal(t, tt.want, name)
		})
	}
}
