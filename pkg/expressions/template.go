package expressions

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	asterrors "github.com/Ramsey-B/aster/pkg/errors"
)

var templatePattern = regexp.MustCompile(`\{\{\s*(.+?)\s*\}\}`)

// Template interpolates {{ path }} placeholders with values looked up by the Evaluator.
type Template struct {
	evaluator *Evaluator
}

func NewTemplate(evaluator *Evaluator) *Template {
	return &Template{
		evaluator: evaluator,
	}
}

// Render replaces every placeholder in template. In strict mode a placeholder
// that resolves to nothing fails with a TemplateRenderError naming its path;
// otherwise it renders as an empty string.
func (t *Template) Render(template string, data any, strict bool) (string, error) {
	var renderErr error

	result := templatePattern.ReplaceAllStringFunc(template, func(match string) string {
		if renderErr != nil {
			return match
		}

		submatch := templatePattern.FindStringSubmatch(match)
		if len(submatch) < 2 {
			return match
		}

		path := strings.TrimSpace(submatch[1])
		value, err := t.evaluator.Evaluate(path, data)
		if err != nil {
			renderErr = &asterrors.TemplateRenderError{Variable: path, Err: err}
			return match
		}

		if value == nil {
			if strict {
				renderErr = &asterrors.TemplateRenderError{Variable: path}
			}
			return ""
		}

		rendered, err := formatValue(value)
		if err != nil {
			renderErr = &asterrors.TemplateRenderError{Variable: path, Err: err}
			return match
		}
		return rendered
	})

	if renderErr != nil {
		return "", renderErr
	}
	return result, nil
}

// ExtractExpressions returns the paths referenced by template, in order.
func ExtractExpressions(template string) []string {
	matches := templatePattern.FindAllStringSubmatch(template, -1)
	expressions := make([]string, 0, len(matches))

	for _, match := range matches {
		if len(match) >= 2 {
			expressions = append(expressions, strings.TrimSpace(match[1]))
		}
	}

	return expressions
}

func formatValue(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case fmt.Stringer:
		return v.String(), nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
