package expressions

import (
	"fmt"
	"sync"

	"github.com/jmespath/go-jmespath"
)

// maxCachedExpressions bounds the compiled expression cache. Templates come
// from request bodies, so the set of distinct expressions is unbounded.
const maxCachedExpressions = 1024

// Evaluator resolves JMESPath paths against template variables.
// Compiled expressions are cached until the cache fills, then it starts over.
type Evaluator struct {
	cache    map[string]*jmespath.JMESPath
	maxCache int
	mu       sync.RWMutex
}

// NewEvaluator creates a new expression evaluator
func NewEvaluator() *Evaluator {
	return &Evaluator{
		cache:    make(map[string]*jmespath.JMESPath),
		maxCache: maxCachedExpressions,
	}
}

// Evaluate returns the value at expression, or nil when the path does not exist.
func (e *Evaluator) Evaluate(expression string, data any) (any, error) {
	compiled, err := e.getOrCompile(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid expression %q: %w", expression, err)
	}

	result, err := compiled.Search(data)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate expression %q: %w", expression, err)
	}

	return result, nil
}

// Validate checks if an expression compiles
func (e *Evaluator) Validate(expression string) error {
	_, err := e.getOrCompile(expression)
	return err
}

func (e *Evaluator) getOrCompile(expression string) (*jmespath.JMESPath, error) {
	e.mu.RLock()
	if compiled, ok := e.cache[expression]; ok {
		e.mu.RUnlock()
		return compiled, nil
	}
	e.mu.RUnlock()

	compiled, err := jmespath.Compile(expression)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	if len(e.cache) >= e.maxCache {
		e.cache = make(map[string]*jmespath.JMESPath)
	}
	e.cache[expression] = compiled
	e.mu.Unlock()

	return compiled, nil
}
