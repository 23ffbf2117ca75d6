package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tastebud-ai/backend/internal/types"
)

const (
	cacheKey = "catalog:recipes"
	cacheTTL = 24 * time.Hour

	// minFields is the fixed column count: title, ingredients, steps,
	// cuisine, diet, difficulty, image.
	minFields = 7

	defaultImageURL = "https://images.unsplash.com/photo-1546548970-71785318a17b"
)

// Loader fetches the published recipe CSV and parses it into catalog
// recipes. Parsed catalogs are cached in Redis when a client is provided.
type Loader struct {
	sourceURL string
	client    *http.Client
	redis     *redis.Client
}

// NewLoader creates a Loader for the given source URL. redisClient may be
// nil; caching is then skipped.
func NewLoader(sourceURL string, redisClient *redis.Client) *Loader {
	return &Loader{
		sourceURL: sourceURL,
		client:    &http.Client{Timeout: 30 * time.Second},
		redis:     redisClient,
	}
}

// Load returns the parsed catalog. It never fails: any fetch or parse
// problem is logged and yields an empty slice.
func (l *Loader) Load(ctx context.Context) []types.Recipe {
	if recipes, ok := l.fromCache(ctx); ok {
		return recipes
	}

	body, err := l.fetch(ctx)
	if err != nil {
		log.Printf("catalog: failed to fetch %s: %v", l.sourceURL, err)
		return []types.Recipe{}
	}

	recipes := ParseCatalog(body)
	if len(recipes) > 0 {
		l.toCache(ctx, recipes)
	}
	return recipes
}

func (l *Loader) fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.sourceURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return string(body), nil
}

func (l *Loader) fromCache(ctx context.Context) ([]types.Recipe, bool) {
	if l.redis == nil {
		return nil, false
	}
	data, err := l.redis.Get(ctx, cacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var recipes []types.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		log.Printf("catalog: dropping corrupt cache entry: %v", err)
		l.redis.Del(ctx, cacheKey)
		return nil, false
	}
	return recipes, true
}

func (l *Loader) toCache(ctx context.Context, recipes []types.Recipe) {
	if l.redis == nil {
		return
	}
	data, err := json.Marshal(recipes)
	if err != nil {
		return
	}
	if err := l.redis.Set(ctx, cacheKey, data, cacheTTL).Err(); err != nil {
		log.Printf("catalog: failed to cache recipes: %v", err)
	}
}

// ParseCatalog parses the CSV body into recipes. Line 0 is a header and is
// skipped without column remapping; columns are fixed-position. Rows with
// fewer than 7 fields, or with an empty or placeholder title, are dropped.
// Identifiers are the 1-based data line index and keep their gaps after
// drops.
func ParseCatalog(body string) []types.Recipe {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		log.Printf("catalog: source is empty")
		return []types.Recipe{}
	}

	// An HTML body means the resource path resolved to an error page.
	if strings.HasPrefix(trimmed, "<!DOCTYPE html") || strings.HasPrefix(trimmed, "<html") {
		log.Printf("catalog: received HTML instead of CSV")
		return []types.Recipe{}
	}

	var lines []string
	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	if len(lines) < 2 {
		log.Printf("catalog: source must have a header and at least one data row")
		return []types.Recipe{}
	}

	recipes := []types.Recipe{}
	for i := 1; i < len(lines); i++ {
		values := splitLine(lines[i])
		if len(values) < minFields {
			log.Printf("catalog: row %d has insufficient data, skipping", i)
			continue
		}

		placeholder := fmt.Sprintf("Recipe %d", i)
		recipe := types.Recipe{
			ID:          strconv.Itoa(i),
			Title:       fieldOr(values[0], placeholder),
			Ingredients: fieldOr(values[1], "No ingredients listed"),
			Steps:       fieldOr(values[2], "No steps provided"),
			Cuisine:     fieldOr(values[3], "Unknown"),
			Diet:        fieldOr(values[4], "Unknown"),
			Difficulty:  fieldOr(values[5], "Medium"),
			ImageURL:    imageURL(values[6]),
		}

		if strings.TrimSpace(recipe.Title) == "" || recipe.Title == placeholder {
			continue
		}
		recipes = append(recipes, recipe)
	}

	log.Printf("catalog: parsed %d recipes", len(recipes))
	return recipes
}

// splitLine splits a CSV line on commas, honoring double-quoted fields so
// embedded commas survive, and doubled quotes as an escaped literal quote.
func splitLine(line string) []string {
	var result []string
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				current.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case ch == ',' && !inQuotes:
			result = append(result, current.String())
			current.Reset()
		default:
			current.WriteByte(ch)
		}
	}
	result = append(result, current.String())

	for i, field := range result {
		field = strings.TrimSpace(field)
		field = strings.TrimPrefix(field, `"`)
		field = strings.TrimSuffix(field, `"`)
		result[i] = strings.TrimSpace(field)
	}
	return result
}

func fieldOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func imageURL(value string) string {
	if value == "" {
		return defaultImageURL
	}
	return "/" + value
}
