package records

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	asterrors "github.com/Ramsey-B/aster/pkg/errors"
	"github.com/Ramsey-B/aster/pkg/middleware"
	"github.com/Ramsey-B/aster/pkg/models"
	"github.com/Ramsey-B/aster/pkg/reconcile"
)

type fakeEngine struct {
	record     models.Record
	err        error
	input      string
	updateName bool
}

func (f *fakeEngine) AssertRecord(_ context.Context, input string, opts reconcile.AssertOptions) (models.Record, error) {
	f.input, f.updateName = input, opts.UpdateName
	return f.record, f.err
}

func (f *fakeEngine) GetOrCreatePerson(_ context.Context, emailOrPersonID string, updateName bool) (*models.Record, error) {
	f.input, f.updateName = emailOrPersonID, updateName
	if f.err != nil || strings.TrimSpace(emailOrPersonID) == "" {
		return nil, f.err
	}
	return &f.record, nil
}

func (f *fakeEngine) GetOrCreateCompany(_ context.Context, domainOrCompanyID string) (*models.Record, error) {
	f.input = domainOrCompanyID
	if f.err != nil || strings.TrimSpace(domainOrCompanyID) == "" {
		return nil, f.err
	}
	return &f.record, nil
}

func companyRecord() models.Record {
	return models.Record{
		RecordID:    "6a1d2b3c-0000-4000-8000-000000000001",
		RecordType:  models.RecordTypeCompany,
		RecordURL:   "https://app.attio.com/venice/company/6a1d2b3c-0000-4000-8000-000000000001",
		DisplayName: "Venice",
		Company: &models.Company{
			ID:      "6a1d2b3c-0000-4000-8000-000000000001",
			Name:    "Venice",
			Domains: []string{"venice.is"},
		},
	}
}

func serve(engine Reconciler, path, body string) *httptest.ResponseRecorder {
	e := echo.New()
	e.HTTPErrorHandler = middleware.Error(ectologger.NewEctoLogger(func(ectologger.EctoLogMessage) {}))
	NewRecordHandler(engine).RegisterRoutes(e.Group(""))

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAssert(t *testing.T) {
	t.Run("should return the record view", func(t *testing.T) {
		engine := &fakeEngine{record: companyRecord()}

		rec := serve(engine, "/records/assert", `{"input":"venice.is","update_name":true}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"record_type":"company"`)
		assert.Contains(t, rec.Body.String(), `"display_name":"Venice"`)
		assert.Equal(t, "venice.is", engine.input)
		assert.True(t, engine.updateName)
	})

	t.Run("should require an input", func(t *testing.T) {
		rec := serve(&fakeEngine{}, "/records/assert", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("should map classification errors to bad requests", func(t *testing.T) {
		engine := &fakeEngine{err: asterrors.NewClassificationError("dd")}

		rec := serve(engine, "/records/assert", `{"input":"dd"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "invalid input 'dd'")
	})
}

func TestGetOrCreate(t *testing.T) {
	t.Run("should answer null for a blank person input", func(t *testing.T) {
		rec := serve(&fakeEngine{}, "/people/get-or-create", `{"email_or_person_id":"  "}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "null", strings.TrimSpace(rec.Body.String()))
	})

	t.Run("should pass the update name flag for people", func(t *testing.T) {
		engine := &fakeEngine{record: companyRecord()}

		rec := serve(engine, "/people/get-or-create", `{"email_or_person_id":"tony@venice.is","update_name":true}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "tony@venice.is", engine.input)
		assert.True(t, engine.updateName)
	})

	t.Run("should return the company view", func(t *testing.T) {
		engine := &fakeEngine{record: companyRecord()}

		rec := serve(engine, "/companies/get-or-create", `{"domain_or_company_id":"https://venice.is"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"domains":["venice.is"]`)
		assert.Equal(t, "https://venice.is", engine.input)
	})
}
