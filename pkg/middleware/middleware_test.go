package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/aster/pkg/context"
	asterrors "github.com/Ramsey-B/aster/pkg/errors"
)

var testLogger = ectologger.NewEctoLogger(func(ectologger.EctoLogMessage) {})

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header   string
		expected string
	}{
		{"Bearer abc", "abc"},
		{"bearer  abc ", "abc"},
		{"Basic abc", ""},
		{"Bearer", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			assert.Equal(t, tt.expected, bearerToken(tt.header))
		})
	}
}

func TestContext(t *testing.T) {
	e := echo.New()
	var token, requestID string
	e.GET("/", func(c echo.Context) error {
		token = context.GetAuthToken(c.Request().Context())
		requestID = context.GetRequestID(c.Request().Context())
		return c.NoContent(http.StatusOK)
	}, Context())

	t.Run("should store the bearer token and generate a request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer attio-token")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, "attio-token", token)
		assert.NotEmpty(t, requestID)
		assert.Equal(t, requestID, rec.Header().Get(echo.HeaderXRequestID))
	})

	t.Run("should keep the caller's request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(echo.HeaderXRequestID, "req-42")
		e.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, "req-42", requestID)
		assert.Empty(t, token)
	})
}

func TestRequireToken(t *testing.T) {
	serve := func(fallback, header string) int {
		e := echo.New()
		e.HTTPErrorHandler = Error(testLogger)
		e.GET("/", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, Context(), RequireToken(testLogger, fallback))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set(echo.HeaderAuthorization, header)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusUnauthorized, serve("", ""))
	assert.Equal(t, http.StatusOK, serve("", "Bearer abc"))
	assert.Equal(t, http.StatusOK, serve("fallback", ""))
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMeta map[string]any
	}{
		{
			name:     "should map classification errors",
			err:      asterrors.NewClassificationError("dd"),
			wantCode: http.StatusBadRequest,
			wantMeta: map[string]any{"input": "dd"},
		},
		{
			name:     "should keep echo errors",
			err:      echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"),
			wantCode: http.StatusMethodNotAllowed,
			wantMeta: map[string]any{},
		},
		{
			name:     "should hide unknown errors",
			err:      errors.New("boom"),
			wantCode: http.StatusInternalServerError,
			wantMeta: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			Error(testLogger)(tt.err, c)

			assert.Equal(t, tt.wantCode, rec.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMeta, body.Meta)
		})
	}

	t.Run("should not write twice", func(t *testing.T) {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		require.NoError(t, c.NoContent(http.StatusAccepted))

		Error(testLogger)(errors.New("late"), c)

		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}
