package collections

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Ramsey-B/aster/pkg/attio"
	"github.com/Ramsey-B/aster/pkg/models"
	"github.com/Ramsey-B/aster/pkg/presentation"
	"github.com/Ramsey-B/aster/pkg/reconcile"
	"github.com/Ramsey-B/aster/pkg/tracing"
	"github.com/Ramsey-B/aster/pkg/utils"
)

// EntryManager adds and removes collection entries
type EntryManager interface {
	AddRecordToCollection(ctx context.Context, in reconcile.AddToCollectionInput) (models.Entry, error)
	DeleteCollectionEntry(ctx context.Context, collectionID, entryID string) (bool, error)
}

// CollectionClient reads collections and writes entry values
type CollectionClient interface {
	ListCollections(ctx context.Context) ([]models.Collection, error)
	ListCollectionAttributes(ctx context.Context, collectionID string, opts attio.AttributeListOptions) (models.AttributePage, error)
	PatchCollectionEntry(ctx context.Context, collectionID, entryID string, values map[string]any) error
}

// CollectionHandler handles collection API endpoints
type CollectionHandler struct {
	entries EntryManager
	client  CollectionClient
}

func NewCollectionHandler(entries EntryManager, client CollectionClient) *CollectionHandler {
	return &CollectionHandler{
		entries: entries,
		client:  client,
	}
}

type AddEntryRequest struct {
	Input          string `json:"input" validate:"required"`
	AllowDuplicate bool   `json:"allow_duplicate"`
}

type PatchEntryRequest struct {
	Values map[string]any `json:"values" validate:"required,min=1"`
}

type DeleteEntryResponse struct {
	Deleted bool `json:"deleted"`
}

// RegisterRoutes registers collection routes
func (h *CollectionHandler) RegisterRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	collections := g.Group("/collections")
	collections.GET("", h.List, m...)
	collections.GET("/:id/attributes", h.ListAttributes, m...)
	collections.POST("/:id/entries", h.AddEntry, m...)
	collections.PATCH("/:id/entries/:entryId", h.PatchEntry, m...)
	collections.DELETE("/:id/entries/:entryId", h.DeleteEntry, m...)
}

// List handles GET /collections
func (h *CollectionHandler) List(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "collection_handler.List")
	defer span.End()

	collections, err := h.client.ListCollections(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, presentation.NewCollectionViews(collections))
}

// ListAttributes handles GET /collections/:id/attributes?limit=&offset=&show_archived=
func (h *CollectionHandler) ListAttributes(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "collection_handler.ListAttributes")
	defer span.End()

	collectionID, err := utils.RequireParam(c, "id")
	if err != nil {
		return err
	}

	opts := attio.AttributeListOptions{}
	if opts.Limit, err = utils.QueryInt(c, "limit", 0); err != nil {
		return err
	}
	if opts.Offset, err = utils.QueryInt(c, "offset", 0); err != nil {
		return err
	}
	if opts.ShowArchived, err = utils.QueryBool(c, "show_archived"); err != nil {
		return err
	}

	page, err := h.client.ListCollectionAttributes(ctx, collectionID, opts)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, page)
}

// AddEntry handles POST /collections/:id/entries. A reused entry and a new
// one both answer 200.
func (h *CollectionHandler) AddEntry(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "collection_handler.AddEntry")
	defer span.End()

	collectionID, err := utils.RequireParam(c, "id")
	if err != nil {
		return err
	}
	span.SetAttributes(attribute.String("attio.collection_id", collectionID))

	req, err := utils.BindRequest[AddEntryRequest](c)
	if err != nil {
		return err
	}

	entry, err := h.entries.AddRecordToCollection(ctx, reconcile.AddToCollectionInput{
		Input:          req.Input,
		CollectionID:   collectionID,
		AllowDuplicate: req.AllowDuplicate,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, presentation.NewEntryView(entry))
}

// PatchEntry handles PATCH /collections/:id/entries/:entryId
func (h *CollectionHandler) PatchEntry(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "collection_handler.PatchEntry")
	defer span.End()

	collectionID, err := utils.RequireParam(c, "id")
	if err != nil {
		return err
	}
	entryID, err := utils.RequireParam(c, "entryId")
	if err != nil {
		return err
	}

	req, err := utils.BindRequest[PatchEntryRequest](c)
	if err != nil {
		return err
	}

	if err := h.client.PatchCollectionEntry(ctx, collectionID, entryID, req.Values); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// DeleteEntry handles DELETE /collections/:id/entries/:entryId
func (h *CollectionHandler) DeleteEntry(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "collection_handler.DeleteEntry")
	defer span.End()

	collectionID, err := utils.RequireParam(c, "id")
	if err != nil {
		return err
	}
	entryID, err := utils.RequireParam(c, "entryId")
	if err != nil {
		return err
	}

	deleted, err := h.entries.DeleteCollectionEntry(ctx, collectionID, entryID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, DeleteEntryResponse{Deleted: deleted})
}
