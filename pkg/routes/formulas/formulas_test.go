package formulas

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/aster/pkg/middleware"
)

func newServer() *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = middleware.Error(ectologger.NewEctoLogger(func(ectologger.EctoLogMessage) {}))
	Register(e.Group("/formulas"))
	return e
}

func post(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestFormulaRoutes(t *testing.T) {
	e := newServer()

	tests := []struct {
		name     string
		path     string
		body     string
		status   int
		expected string
	}{
		{
			name:     "should parse an email with a display name",
			path:     "/formulas/parse-email",
			body:     `{"email":"Tony Stark <tony@venice.is>"}`,
			status:   http.StatusOK,
			expected: `{"address":"tony@venice.is","name":"Tony Stark","first_name":"Tony","last_name":"Stark"}`,
		},
		{
			name:     "should parse every mailbox in a list",
			path:     "/formulas/parse-emails",
			body:     `{"emails":"a@venice.is, B <b@venice.is>"}`,
			status:   http.StatusOK,
			expected: `[{"address":"a@venice.is","name":""},{"address":"b@venice.is","name":"B","first_name":"B"}]`,
		},
		{
			name:     "should resolve the registrable domain",
			path:     "/formulas/parse-domain",
			body:     `{"url":"http://www.google.com?id=1232#fda"}`,
			status:   http.StatusOK,
			expected: `{"value":"google.com"}`,
		},
		{
			name:     "should keep the subdomain when asked",
			path:     "/formulas/parse-domain",
			body:     `{"url":"app.attio.com/test?adf=122","include_subdomain":true}`,
			status:   http.StatusOK,
			expected: `{"value":"app.attio.com"}`,
		},
		{
			name:     "should classify unrecognized input without failing",
			path:     "/formulas/classify",
			body:     `{"input":"bademal"}`,
			status:   http.StatusOK,
			expected: `{"type":"error","value":null}`,
		},
		{
			name:     "should build an object from pairs",
			path:     "/formulas/json-build-object",
			body:     `{"key_values":["hello","world","count","4"]}`,
			status:   http.StatusOK,
			expected: `{"hello":"world","count":4}`,
		},
		{
			name:     "should render a template",
			path:     "/formulas/render-template",
			body:     `{"template":"Hello {{name}}","vars":{"name":"there"}}`,
			status:   http.StatusOK,
			expected: `{"value":"Hello there"}`,
		},
		{
			name:     "should render missing variables as empty when not strict",
			path:     "/formulas/render-template",
			body:     `{"template":"Hello {{name}}","strict":false}`,
			status:   http.StatusOK,
			expected: `{"value":"Hello "}`,
		},
		{
			name:     "should join values into a sentence",
			path:     "/formulas/array-to-sentence",
			body:     `{"values":["A","B","C"]}`,
			status:   http.StatusOK,
			expected: `{"value":"A, B & C"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(e, tt.path, tt.body)

			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.expected, rec.Body.String())
		})
	}
}

func TestFormulaRouteErrors(t *testing.T) {
	e := newServer()

	decode := func(t *testing.T, rec *httptest.ResponseRecorder) middleware.ErrorResponse {
		var body middleware.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return body
	}

	t.Run("should fail strict renders on missing variables", func(t *testing.T) {
		rec := post(e, "/formulas/render-template", `{"template":"Hello {{name}}"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "name", decode(t, rec).Meta["variable"])
	})

	t.Run("should reject an unparseable email", func(t *testing.T) {
		rec := post(e, "/formulas/parse-email", `{"email":"nope"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "nope", decode(t, rec).Meta["input"])
	})

	t.Run("should reject a request without a url", func(t *testing.T) {
		rec := post(e, "/formulas/parse-domain", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
