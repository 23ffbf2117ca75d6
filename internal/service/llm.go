package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tastebud-ai/backend/config"
	"github.com/tastebud-ai/backend/internal/types"
)

// Sentinel errors returned by recipe generation. Handlers map these to
// HTTP statuses; the messages double as the user-facing explanation.
var (
	ErrMissingAPIKey     = errors.New("OpenRouter API key not found. Please set OPENROUTER_API_KEY")
	ErrRateLimited       = errors.New("too many requests. Please wait a few seconds and try again")
	ErrInvalidAPIKey     = errors.New("invalid API key. Please check your OpenRouter API key")
	ErrQuotaExceeded     = errors.New("API quota exceeded. Please check your OpenRouter billing")
	ErrMalformedResponse = errors.New("failed to parse recipe data from the model response")
	ErrGenerationFailed  = errors.New("failed to generate recipe. Please try again")
)

const (
	defaultMinInterval = 3 * time.Second
	maxTokens          = 4000

	textSystemPrompt = "You are a professional chef and nutritionist. Provide detailed, creative responses in the requested format. Always respond with valid JSON when JSON format is requested."

	recipeSystemPrompt = "You are a professional chef and nutritionist. Create detailed, creative recipes with accurate nutritional information. Always respond with valid JSON format only."

	generatedImageURL = "https://images.unsplash.com/photo-1546548970-71785318a17b?w=400"
)

// TextGenerator produces free-form model output for a prompt. It is the
// seam between the meal plan orchestrator and the LLM backend; tests
// substitute a stub.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// LLMService talks to an OpenAI-compatible chat completions endpoint
// (OpenRouter by default). A minimum interval between upstream requests
// is enforced across all callers.
type LLMService struct {
	apiKey      string
	apiURL      string
	model       string
	client      *http.Client
	minInterval time.Duration

	mu          sync.Mutex
	lastRequest time.Time
}

// NewLLMService creates an LLM service from configuration. A missing API
// key is tolerated; meal-planning prompts then resolve with canned
// responses and recipe generation fails with ErrMissingAPIKey.
func NewLLMService(cfg *config.Config) *LLMService {
	if cfg.OpenRouterAPIKey == "" {
		log.Printf("llm: no API key configured, falling back to canned responses where possible")
	}
	return &LLMService{
		apiKey:      cfg.OpenRouterAPIKey,
		apiURL:      cfg.OpenRouterAPIURL,
		model:       cfg.OpenRouterModel,
		client:      &http.Client{Timeout: 60 * time.Second},
		minInterval: defaultMinInterval,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// statusError carries a non-2xx upstream status with its response body,
// so callers can distinguish API rejections from transport failures.
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("OpenRouter API error: %d - %s", e.status, e.body)
}

// waitForRateLimit blocks until the minimum inter-request interval has
// elapsed since the previous upstream call, or the context is done.
func (s *LLMService) waitForRateLimit(ctx context.Context) error {
	s.mu.Lock()
	wait := s.minInterval - time.Since(s.lastRequest)
	if wait > 0 {
		log.Printf("llm: rate limiting, waiting %v", wait)
	}
	s.lastRequest = time.Now().Add(wait)
	s.mu.Unlock()

	if wait <= 0 {
		return nil
	}
	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// chat sends one chat completion request and returns the trimmed content
// of the first choice. Non-2xx responses come back as *statusError.
func (s *LLMService) chat(ctx context.Context, system, prompt string, temperature float64) (string, error) {
	if err := s.waitForRateLimit(ctx); err != nil {
		return "", err
	}

	payload, err := json.Marshal(chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Title", "TasteBud AI")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &statusError{status: resp.StatusCode, body: string(body)}
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("invalid response from OpenRouter API")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// GenerateText produces model output for an arbitrary prompt. Meal
// planning prompts degrade gracefully: any failure resolves with a
// canned meal payload instead of an error, so a plan always completes.
func (s *LLMService) GenerateText(ctx context.Context, prompt string) (string, error) {
	if s.apiKey == "" {
		if isMealPrompt(prompt) {
			log.Printf("llm: no API key, using fallback meal response")
			return fallbackMissingKey, nil
		}
		return "", ErrMissingAPIKey
	}

	content, err := s.chat(ctx, textSystemPrompt, prompt, 0.7)
	if err != nil {
		log.Printf("llm: text generation failed: %v", err)
		if isMealPrompt(prompt) {
			var se *statusError
			if errors.As(err, &se) {
				return fallbackAPIError, nil
			}
			return fallbackNetworkError, nil
		}
		return "", err
	}
	return content, nil
}

// isMealPrompt reports whether a prompt belongs to meal planning, which
// qualifies it for canned fallback responses.
func isMealPrompt(prompt string) bool {
	return strings.Contains(prompt, "meal plan") || strings.Contains(prompt, "Generate a unique")
}

// flexStrings accepts either a JSON array of strings or a bare string,
// which some model responses produce for single-item lists.
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*f = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*f = flexStrings{single}
		return nil
	}
	return fmt.Errorf("expected string or list of strings")
}

type recipeDraft struct {
	Title           string                 `json:"title"`
	Description     string                 `json:"description"`
	Ingredients     flexStrings            `json:"ingredients"`
	Steps           flexStrings            `json:"steps"`
	Cuisine         string                 `json:"cuisine"`
	Diet            string                 `json:"diet"`
	Difficulty      string                 `json:"difficulty"`
	MealType        string                 `json:"mealType"`
	NutritionalInfo *types.NutritionalInfo `json:"nutritionalInfo"`
	PrepTime        string                 `json:"prepTime"`
	CookTime        string                 `json:"cookTime"`
	TotalTime       string                 `json:"totalTime"`
}

// GenerateRecipe asks the model for a complete recipe and normalizes the
// result. Upstream rejections are mapped onto the sentinel errors above.
func (s *LLMService) GenerateRecipe(ctx context.Context, params types.RecipeGenerationParams) (*types.GeneratedRecipe, error) {
	if s.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	content, err := s.chat(ctx, recipeSystemPrompt, buildRecipePrompt(params), 0.8)
	if err != nil {
		log.Printf("llm: recipe generation failed: %v", err)
		return nil, mapGenerationError(err)
	}

	raw, err := ExtractJSON(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	var draft recipeDraft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if draft.Title == "" || draft.Description == "" || len(draft.Ingredients) == 0 || len(draft.Steps) == 0 {
		return nil, fmt.Errorf("%w: missing required fields", ErrMalformedResponse)
	}

	nutrition := draft.NutritionalInfo
	if nutrition == nil {
		nutrition = &types.NutritionalInfo{
			Calories: "Not calculated",
			Protein:  "Not calculated",
			Carbs:    "Not calculated",
			Fat:      "Not calculated",
			Fiber:    "Not calculated",
			Sodium:   "Not calculated",
		}
	}

	now := time.Now()
	return &types.GeneratedRecipe{
		ID:              strconv.FormatInt(now.UnixMilli(), 10),
		Title:           draft.Title,
		Description:     draft.Description,
		Ingredients:     draft.Ingredients,
		Steps:           draft.Steps,
		Cuisine:         draft.Cuisine,
		Diet:            draft.Diet,
		Difficulty:      draft.Difficulty,
		MealType:        draft.MealType,
		NutritionalInfo: *nutrition,
		PrepTime:        valueOr(draft.PrepTime, "15 minutes"),
		CookTime:        valueOr(draft.CookTime, "30 minutes"),
		TotalTime:       valueOr(draft.TotalTime, "45 minutes"),
		ImageURL:        generatedImageURL,
		CreatedAt:       now,
	}, nil
}

// mapGenerationError converts upstream failures into the sentinel errors
// surfaced to API clients.
func mapGenerationError(err error) error {
	var se *statusError
	if errors.As(err, &se) {
		switch {
		case se.status == http.StatusTooManyRequests:
			return ErrRateLimited
		case se.status == http.StatusUnauthorized:
			return ErrInvalidAPIKey
		case strings.Contains(se.body, "quota"):
			return ErrQuotaExceeded
		}
	}
	return ErrGenerationFailed
}

func buildRecipePrompt(p types.RecipeGenerationParams) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a detailed and creative %s %s recipe that is %s and %s difficulty.\n\n", p.Cuisine, p.MealType, p.Diet, p.Difficulty)
	b.WriteString("Recipe Requirements:\n")
	fmt.Fprintf(&b, "- Ingredients to use: %s\n", p.Ingredients)
	appendIf(&b, "- Servings: %s\n", p.Servings)
	appendIf(&b, "- Cooking time preference: %s\n", p.CookingTime)
	appendIf(&b, "- Avoid allergens: %s\n", p.Allergens)
	appendIf(&b, "- Spice level: %s\n", p.SpiceLevel)
	appendIf(&b, "- Health goals: %s\n", p.HealthGoals)
	appendIf(&b, "- Available equipment: %s\n", p.EquipmentAvailable)
	appendIf(&b, "- Budget level: %s\n", p.BudgetLevel)

	fmt.Fprintf(&b, `
Please create a comprehensive recipe with:
1. A creative and appetizing title
2. A brief, enticing description
3. Detailed ingredients list with precise measurements
4. Clear, step-by-step cooking instructions
5. Nutritional information (approximate values)
6. Cooking times (prep, cook, total)

Please return ONLY a valid JSON object with this exact structure:
{
  "title": "Creative Recipe Name",
  "description": "A brief, appetizing description of the dish",
  "ingredients": ["ingredient 1 with precise measurements", "ingredient 2 with measurements"],
  "steps": ["detailed step 1", "detailed step 2", "detailed step 3"],
  "cuisine": "%s",
  "diet": "%s",
  "difficulty": "%s",
  "mealType": "%s",
  "nutritionalInfo": {
    "calories": "XXX kcal per serving",
    "protein": "XX g",
    "carbs": "XX g",
    "fat": "XX g",
    "fiber": "XX g",
    "sodium": "XXX mg"
  },
  "prepTime": "XX minutes",
  "cookTime": "XX minutes",
  "totalTime": "XX minutes"
}

Make the recipe creative, detailed, and ensure all nutritional values are realistic estimates based on the ingredients used.`,
		p.Cuisine, p.Diet, p.Difficulty, p.MealType)
	return b.String()
}

func appendIf(b *strings.Builder, format, value string) {
	if value != "" {
		fmt.Fprintf(b, format, value)
	}
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
