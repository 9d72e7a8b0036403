package schemas

import (
	"net/http"
	"sort"

	"github.com/Gobusters/ectoerror/httperror"
	"github.com/labstack/echo/v4"

	"github.com/Ramsey-B/aster/pkg/presentation"
)

type SchemaResponse struct {
	Name   string                    `json:"name"`
	Schema presentation.ObjectSchema `json:"schema"`
}

// Register registers the presentation schema routes
func Register(g *echo.Group) {
	g.GET("/schemas", List)
	g.GET("/schemas/:name", Get)
}

// List returns every schema ordered by name
func List(c echo.Context) error {
	names := make([]string, 0, len(presentation.Schemas))
	for name := range presentation.Schemas {
		names = append(names, name)
	}
	sort.Strings(names)

	response := make([]SchemaResponse, len(names))
	for i, name := range names {
		response[i] = SchemaResponse{Name: name, Schema: presentation.Schemas[name]}
	}

	return c.JSON(http.StatusOK, response)
}

func Get(c echo.Context) error {
	name := c.Param("name")
	schema, ok := presentation.Schemas[name]
	if !ok {
		return httperror.NewHTTPErrorf(http.StatusNotFound, "schema '%s' not found", name)
	}

	return c.JSON(http.StatusOK, SchemaResponse{Name: name, Schema: schema})
}
