package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRequest struct {
	Input string `json:"input" validate:"required"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=500"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		value   testRequest
		wantErr string
	}{
		{name: "should accept a valid value", value: testRequest{Input: "venice.is"}},
		{name: "should report a missing field", value: testRequest{}, wantErr: "field 'Input' failed rule 'required'"},
		{name: "should report the rule parameter", value: testRequest{Input: "x", Limit: 900}, wantErr: "field 'Limit' failed rule 'max=500', got '900'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(tt.value)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestBindRequest(t *testing.T) {
	bind := func(body string) (testRequest, error) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		c := echo.New().NewContext(req, httptest.NewRecorder())
		return BindRequest[testRequest](c)
	}

	t.Run("should bind and validate the body", func(t *testing.T) {
		v, err := bind(`{"input":"tony@venice.is","limit":10}`)
		require.NoError(t, err)
		assert.Equal(t, testRequest{Input: "tony@venice.is", Limit: 10}, v)
	})

	t.Run("should return a bad request for invalid bodies", func(t *testing.T) {
		_, err := bind(`{"limit":10}`)
		require.Error(t, err)
		assert.True(t, httperror.IsHTTPError(err))
		assert.Equal(t, http.StatusBadRequest, httperror.GetStatusCode(err))
	})
}
