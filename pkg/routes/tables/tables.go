// Package tables serves the sync table listings over HTTP. Paginated
// listings take the previous page's continuation as ?offset=.
package tables

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/aster/pkg/models"
	"github.com/Ramsey-B/aster/pkg/presentation"
	"github.com/Ramsey-B/aster/pkg/synctable"
	"github.com/Ramsey-B/aster/pkg/tracing"
	"github.com/Ramsey-B/aster/pkg/utils"
)

type Syncer interface {
	SyncCollections(ctx context.Context) (synctable.Result[models.Collection], error)
	SyncRecords(ctx context.Context, collectionID string, continuation *synctable.Continuation) (synctable.Result[models.Record], error)
	SyncCollectionEntries(ctx context.Context, collectionID string, continuation *synctable.Continuation) (synctable.Result[models.Entry], error)
	ListDynamicURLs(ctx context.Context) ([]synctable.DynamicURL, error)
	GetName(ctx context.Context, collectionID string) (string, error)
}

type SyncHandler struct {
	syncer Syncer
}

func NewSyncHandler(syncer Syncer) *SyncHandler {
	return &SyncHandler{syncer: syncer}
}

type NameResponse struct {
	Name string `json:"name"`
}

func (h *SyncHandler) RegisterRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	sync := g.Group("/sync")
	sync.GET("/collections", h.Collections, m...)
	sync.GET("/collections/:id/records", h.Records, m...)
	sync.GET("/collections/:id/entries", h.Entries, m...)
	sync.GET("/collections/:id/name", h.Name, m...)
	sync.GET("/dynamic-urls", h.DynamicURLs, m...)
}

func (h *SyncHandler) Collections(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "sync_handler.Collections")
	defer span.End()

	result, err := h.syncer.SyncCollections(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, synctable.Result[presentation.CollectionView]{
		Result: presentation.NewCollectionViews(result.Result),
	})
}

func (h *SyncHandler) Records(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "sync_handler.Records")
	defer span.End()

	collectionID, continuation, err := pageParams(c)
	if err != nil {
		return err
	}

	result, err := h.syncer.SyncRecords(ctx, collectionID, continuation)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, synctable.Result[presentation.RecordView]{
		Result:       presentation.NewRecordViews(result.Result),
		Continuation: result.Continuation,
	})
}

func (h *SyncHandler) Entries(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "sync_handler.Entries")
	defer span.End()

	collectionID, continuation, err := pageParams(c)
	if err != nil {
		return err
	}

	result, err := h.syncer.SyncCollectionEntries(ctx, collectionID, continuation)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, synctable.Result[presentation.EntryView]{
		Result:       presentation.NewEntryViews(result.Result),
		Continuation: result.Continuation,
	})
}

func (h *SyncHandler) Name(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "sync_handler.Name")
	defer span.End()

	collectionID, err := utils.RequireParam(c, "id")
	if err != nil {
		return err
	}

	name, err := h.syncer.GetName(ctx, collectionID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, NameResponse{Name: name})
}

func (h *SyncHandler) DynamicURLs(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "sync_handler.DynamicURLs")
	defer span.End()

	urls, err := h.syncer.ListDynamicURLs(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, urls)
}

// pageParams reads the collection id and, when ?offset= is present, the continuation.
func pageParams(c echo.Context) (string, *synctable.Continuation, error) {
	collectionID, err := utils.RequireParam(c, "id")
	if err != nil {
		return "", nil, err
	}

	if c.QueryParam("offset") == "" {
		return collectionID, nil, nil
	}

	offset, err := utils.QueryInt(c, "offset", 0)
	if err != nil {
		return "", nil, err
	}
	return collectionID, &synctable.Continuation{Offset: offset}, nil
}
