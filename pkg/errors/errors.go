package errors

import (
	goerrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Gobusters/ectoerror/httperror"
)

// Domain resolution error codes
const (
	CodeInvalidURL     = "INVALID_URL"
	CodeEmptyHost      = "EMPTY_HOST"
	CodeIPAddress      = "IP_ADDRESS"
	CodeTLDNotListed   = "TLD_NOT_LISTED"
	CodeDomainTooShort = "DOMAIN_TOO_SHORT"
)

// ClassificationError is returned when an input is neither a mailbox nor a resolvable domain.
type ClassificationError struct {
	Input   string
	Message string
}

func NewClassificationError(input string) *ClassificationError {
	return &ClassificationError{
		Input:   input,
		Message: "expected an RFC 5322 email address or a domain",
	}
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("invalid input '%s': %s", e.Input, e.Message)
}

func (e *ClassificationError) ToHTTPError() *httperror.HTTPError {
	return httperror.NewHTTPError(http.StatusBadRequest, e.Error()).AddMetaValue("input", e.Input)
}

// FieldViolation describes a single field that failed schema validation.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// SchemaViolation is returned when a successful response body does not match the expected shape.
type SchemaViolation struct {
	Schema     string
	Method     string
	URL        string
	Violations []FieldViolation
}

func NewSchemaViolation(schema string, violations ...FieldViolation) *SchemaViolation {
	return &SchemaViolation{
		Schema:     schema,
		Violations: violations,
	}
}

func (e *SchemaViolation) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		if v.Field == "" {
			parts[i] = v.Message
			continue
		}
		parts[i] = fmt.Sprintf("field '%s' %s", v.Field, v.Message)
	}

	msg := fmt.Sprintf("%s schema violation: %s", e.Schema, strings.Join(parts, "; "))
	if e.Method != "" {
		msg = fmt.Sprintf("%s %s -> %s", e.Method, e.URL, msg)
	}
	return msg
}

// AddRequest records the request whose response failed validation.
func (e *SchemaViolation) AddRequest(method, url string) *SchemaViolation {
	e.Method = method
	e.URL = url
	return e
}

func (e *SchemaViolation) ToHTTPError() *httperror.HTTPError {
	return httperror.NewHTTPError(http.StatusBadGateway, e.Error()).AddMetaValue("schema", e.Schema).AddMetaValue("violations", e.Violations)
}

// RemoteRequestFailure is returned for non-2xx responses and transport failures.
// StatusCode is zero when the request never produced a response.
type RemoteRequestFailure struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

func (e *RemoteRequestFailure) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("attio request %s %s failed: %v", e.Method, e.URL, e.Err)
	}
	if e.Body == "" {
		return fmt.Sprintf("attio request %s %s failed with status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("attio request %s %s failed with status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

func (e *RemoteRequestFailure) Unwrap() error {
	return e.Err
}

func (e *RemoteRequestFailure) ToHTTPError() *httperror.HTTPError {
	code := http.StatusBadGateway
	if e.StatusCode >= 400 && e.StatusCode < 600 {
		code = e.StatusCode
	}
	return httperror.NewHTTPError(code, e.Error()).AddMetaValue("remote_status", e.StatusCode).AddMetaValue("remote_url", e.URL)
}

// TemplateRenderError is returned when a required template variable is missing.
type TemplateRenderError struct {
	Variable string
	Err      error
}

func (e *TemplateRenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to render variable '%s': %v", e.Variable, e.Err)
	}
	return fmt.Sprintf("missing template variable '%s'", e.Variable)
}

func (e *TemplateRenderError) Unwrap() error {
	return e.Err
}

func (e *TemplateRenderError) ToHTTPError() *httperror.HTTPError {
	return httperror.NewHTTPError(http.StatusBadRequest, e.Error()).AddMetaValue("variable", e.Variable)
}

// DomainResolutionError is returned when a hostname has no registrable domain.
type DomainResolutionError struct {
	Input   string
	Code    string
	Message string
}

func NewDomainResolutionError(input, code, message string) *DomainResolutionError {
	return &DomainResolutionError{
		Input:   input,
		Code:    code,
		Message: message,
	}
}

func (e *DomainResolutionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainResolutionError) ToHTTPError() *httperror.HTTPError {
	return httperror.NewHTTPError(http.StatusBadRequest, e.Error()).AddMetaValue("input", e.Input).AddMetaValue("code", e.Code)
}

func IsClassificationError(err error) bool {
	var target *ClassificationError
	return goerrors.As(err, &target)
}

func IsSchemaViolation(err error) bool {
	var target *SchemaViolation
	return goerrors.As(err, &target)
}

func IsRemoteRequestFailure(err error) bool {
	var target *RemoteRequestFailure
	return goerrors.As(err, &target)
}

func IsTemplateRenderError(err error) bool {
	var target *TemplateRenderError
	return goerrors.As(err, &target)
}

func IsDomainResolutionError(err error) bool {
	var target *DomainResolutionError
	return goerrors.As(err, &target)
}

type httpConvertible interface {
	ToHTTPError() *httperror.HTTPError
}

// ToHTTPError converts any of the package's error kinds to an HTTP error.
// Other errors are returned unchanged.
func ToHTTPError(err error) error {
	if err == nil {
		return nil
	}

	var convertible httpConvertible
	if goerrors.As(err, &convertible) {
		return convertible.ToHTTPError()
	}

	return err
}
