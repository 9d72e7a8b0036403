package formulas

import (
	"strings"

	"github.com/Ramsey-B/aster/pkg/expressions"
)

var defaultTemplate = expressions.NewTemplate(expressions.NewEvaluator())

// RenderTemplate substitutes {{ path }} placeholders with values from vars.
func RenderTemplate(template string, vars map[string]any, strict bool) (string, error) {
	if vars == nil {
		vars = map[string]any{}
	}
	return defaultTemplate.Render(template, vars, strict)
}

// ArrayToSentence joins values as "A, B & C".
func ArrayToSentence(values []string) string {
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	}

	last := len(values) - 1
	return strings.Join(values[:last], ", ") + " & " + values[last]
}
