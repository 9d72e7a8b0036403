package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// BuildURL sets the query string of base from query, skipping nil values.
// An absolute URL without a path gets "/".
func BuildURL(base string, query map[string]any) (string, error) {
	parsedURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}

	values := url.Values{}
	for key, value := range query {
		if value == nil {
			continue
		}
		values.Set(key, queryValue(value))
	}
	parsedURL.RawQuery = values.Encode()

	if parsedURL.Host != "" && parsedURL.Path == "" {
		parsedURL.Path = "/"
	}

	return parsedURL.String(), nil
}

func queryValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case *bool:
		return strconv.FormatBool(*v)
	case *int:
		return strconv.Itoa(*v)
	}
	return fmt.Sprint(value)
}

// NewJSONRequest builds a request with a JSON body and the headers Attio expects.
// A nil body sends no payload.
func NewJSONRequest(ctx context.Context, method, url string, body any, token string) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
		if len(data) > MaxRequestSize {
			return nil, fmt.Errorf("request body too large: %d bytes (max %d)", len(data), MaxRequestSize)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}
