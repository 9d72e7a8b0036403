package records

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/aster/pkg/models"
	"github.com/Ramsey-B/aster/pkg/presentation"
	"github.com/Ramsey-B/aster/pkg/reconcile"
	"github.com/Ramsey-B/aster/pkg/tracing"
	"github.com/Ramsey-B/aster/pkg/utils"
)

// Reconciler resolves inputs to records
type Reconciler interface {
	AssertRecord(ctx context.Context, input string, opts reconcile.AssertOptions) (models.Record, error)
	GetOrCreatePerson(ctx context.Context, emailOrPersonID string, updateName bool) (*models.Record, error)
	GetOrCreateCompany(ctx context.Context, domainOrCompanyID string) (*models.Record, error)
}

// RecordHandler handles record reconciliation endpoints
type RecordHandler struct {
	engine Reconciler
}

func NewRecordHandler(engine Reconciler) *RecordHandler {
	return &RecordHandler{engine: engine}
}

type AssertRecordRequest struct {
	Input      string `json:"input" validate:"required"`
	UpdateName bool   `json:"update_name"`
}

type GetOrCreatePersonRequest struct {
	EmailOrPersonID string `json:"email_or_person_id"`
	UpdateName      bool   `json:"update_name"`
}

type GetOrCreateCompanyRequest struct {
	DomainOrCompanyID string `json:"domain_or_company_id"`
}

// RegisterRoutes registers record routes
func (h *RecordHandler) RegisterRoutes(g *echo.Group, m ...echo.MiddlewareFunc) {
	g.POST("/records/assert", h.Assert, m...)
	g.POST("/people/get-or-create", h.GetOrCreatePerson, m...)
	g.POST("/companies/get-or-create", h.GetOrCreateCompany, m...)
}

// Assert handles POST /records/assert
func (h *RecordHandler) Assert(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "record_handler.Assert")
	defer span.End()

	req, err := utils.BindRequest[AssertRecordRequest](c)
	if err != nil {
		return err
	}

	record, err := h.engine.AssertRecord(ctx, req.Input, reconcile.AssertOptions{UpdateName: req.UpdateName})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, presentation.NewRecordView(record))
}

// GetOrCreatePerson handles POST /people/get-or-create. A blank input answers null.
func (h *RecordHandler) GetOrCreatePerson(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "record_handler.GetOrCreatePerson")
	defer span.End()

	req, err := utils.BindRequest[GetOrCreatePersonRequest](c)
	if err != nil {
		return err
	}

	record, err := h.engine.GetOrCreatePerson(ctx, req.EmailOrPersonID, req.UpdateName)
	if err != nil {
		return err
	}

	return respondRecord(c, record)
}

// GetOrCreateCompany handles POST /companies/get-or-create
func (h *RecordHandler) GetOrCreateCompany(c echo.Context) error {
	ctx, span := tracing.StartSpan(c.Request().Context(), "record_handler.GetOrCreateCompany")
	defer span.End()

	req, err := utils.BindRequest[GetOrCreateCompanyRequest](c)
	if err != nil {
		return err
	}

	record, err := h.engine.GetOrCreateCompany(ctx, req.DomainOrCompanyID)
	if err != nil {
		return err
	}

	return respondRecord(c, record)
}

func respondRecord(c echo.Context, record *models.Record) error {
	if record == nil {
		return c.JSON(http.StatusOK, nil)
	}
	return c.JSON(http.StatusOK, presentation.NewRecordView(*record))
}
