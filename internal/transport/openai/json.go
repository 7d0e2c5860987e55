package openai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/travelcommerce/smartsearch/internal/domain"
)

// stripFences removes a surrounding markdown code fence, if present.
// Providers wrap JSON in ```json fences even when told not to.
func stripFences(text string) string {
	cleaned := strings.TrimSpace(text)
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}

	if nl := strings.IndexByte(cleaned, '\n'); nl > 0 {
		cleaned = cleaned[nl+1:]
	}
	if fence := strings.LastIndex(cleaned, "```"); fence >= 0 {
		cleaned = cleaned[:fence]
	}
	return strings.TrimSpace(cleaned)
}

// extractJSONObject locates the outermost JSON object in free-form provider
// text.
func extractJSONObject(text string) (string, error) {
	cleaned := stripFences(text)

	start := strings.IndexByte(cleaned, '{')
	end := strings.LastIndexByte(cleaned, '}')
	if start < 0 || end <= start {
		return "", fmt.Errorf("no JSON object in provider text: %w", domain.ErrProviderResponse)
	}
	return strings.TrimSpace(cleaned[start : end+1]), nil
}

// extractJSONArray locates the outermost JSON array in free-form provider
// text.
func extractJSONArray(text string) (string, error) {
	cleaned := stripFences(text)

	start := strings.IndexByte(cleaned, '[')
	end := strings.LastIndexByte(cleaned, ']')
	if start < 0 || end <= start {
		return "", fmt.Errorf("no JSON array in provider text: %w", domain.ErrProviderResponse)
	}
	return strings.TrimSpace(cleaned[start : end+1]), nil
}

// parseIDArray reads an ID list from a JSON array, tolerating both string
// and numeric elements. Anything else is skipped rather than failing the
// whole response.
func parseIDArray(arr string) ([]string, error) {
	dec := json.NewDecoder(strings.NewReader(arr))
	dec.UseNumber()

	var items []any
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("decode id array: %v: %w", err, domain.ErrProviderResponse)
	}

	ids := []string{}
	for _, item := range items {
		switch v := item.(type) {
		case string:
			if id := strings.TrimSpace(v); id != "" {
				ids = append(ids, id)
			}
		case json.Number:
			ids = append(ids, v.String())
		}
	}
	return ids, nil
}
