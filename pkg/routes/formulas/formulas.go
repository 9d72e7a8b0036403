package formulas

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/aster/pkg/formulas"
	"github.com/Ramsey-B/aster/pkg/parse"
	"github.com/Ramsey-B/aster/pkg/presentation"
	"github.com/Ramsey-B/aster/pkg/tracing"
	"github.com/Ramsey-B/aster/pkg/utils"
)

type EmailRequest struct {
	Email string `json:"email" validate:"required"`
}

type EmailsRequest struct {
	Emails string `json:"emails"`
}

type URLRequest struct {
	URL              string `json:"url" validate:"required"`
	IncludeSubdomain bool   `json:"include_subdomain"`
}

type ClassifyRequest struct {
	Input string `json:"input"`
}

type BuildObjectRequest struct {
	KeyValues []any `json:"key_values"`
}

type RenderTemplateRequest struct {
	Template string         `json:"template" validate:"required"`
	Vars     map[string]any `json:"vars"`
	// Strict defaults to true
	Strict *bool `json:"strict"`
}

type ArrayToSentenceRequest struct {
	Values []string `json:"values"`
}

type ValueResponse struct {
	Value any `json:"value"`
}

// Register registers the connection-free formula routes
func Register(g *echo.Group) {
	g.POST("/parse-email", ParseEmail)
	g.POST("/parse-emails", ParseEmails)
	g.POST("/parse-domain", ParseDomain)
	g.POST("/parse-pathname", ParsePathname)
	g.POST("/classify", Classify)
	g.POST("/json-build-object", JSONBuildObject)
	g.POST("/render-template", RenderTemplate)
	g.POST("/array-to-sentence", ArrayToSentence)
}

func ParseEmail(c echo.Context) error {
	_, span := tracing.StartSpan(c.Request().Context(), "formulas_handler.ParseEmail")
	defer span.End()

	req, err := utils.BindRequest[EmailRequest](c)
	if err != nil {
		return err
	}

	email, err := parse.ParseEmail(req.Email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, presentation.NewParsedEmailView(email))
}

func ParseEmails(c echo.Context) error {
	_, span := tracing.StartSpan(c.Request().Context(), "formulas_handler.ParseEmails")
	defer span.End()

	req, err := utils.BindRequest[EmailsRequest](c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, presentation.NewParsedEmailViews(parse.ParseEmails(req.Emails)))
}

func ParseDomain(c echo.Context) error {
	_, span := tracing.StartSpan(c.Request().Context(), "formulas_handler.ParseDomain")
	defer span.End()

	req, err := utils.BindRequest[URLRequest](c)
	if err != nil {
		return err
	}

	domain, err := parse.ParseDomain(req.URL, req.IncludeSubdomain)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ValueResponse{Value: domain})
}

func ParsePathname(c echo.Context) error {
	_, span := tracing.StartSpan(c.Request().Context(), "formulas_handler.ParsePathname")
	defer span.End()

	req, err := utils.BindRequest[URLRequest](c)
	if err != nil {
		return err
	}

	pathname, err := parse.ParsePathname(req.URL)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ValueResponse{Value: pathname})
}

// Classify always answers 200; unrecognized input is reported in the body.
func Classify(c echo.Context) error {
	_, span := tracing.StartSpan(c.Request().Context(), "formulas_handler.Classify")
	defer span.End()

	req, err := utils.BindRequest[ClassifyRequest](c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, parse.Classify(req.Input))
}

func JSONBuildObject(c echo.Context) error {
	_, span := tracing.StartSpan(c.Request().Context(), "formulas_handler.JSONBuildObject")
	defer span.End()

	req, err := utils.BindRequest[BuildObjectRequest](c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, formulas.JSONBuildObject(req.KeyValues...))
}

func RenderTemplate(c echo.Context) error {
	_, span := tracing.StartSpan(c.Request().Context(), "formulas_handler.RenderTemplate")
	defer span.End()

	req, err := utils.BindRequest[RenderTemplateRequest](c)
	if err != nil {
		return err
	}

	strict := req.Strict == nil || *req.Strict
	rendered, err := formulas.RenderTemplate(req.Template, req.Vars, strict)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ValueResponse{Value: rendered})
}

func ArrayToSentence(c echo.Context) error {
	_, span := tracing.StartSpan(c.Request().Context(), "formulas_handler.ArrayToSentence")
	defer span.End()

	req, err := utils.BindRequest[ArrayToSentenceRequest](c)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, ValueResponse{Value: formulas.ArrayToSentence(req.Values)})
}
