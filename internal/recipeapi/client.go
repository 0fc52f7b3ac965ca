package recipeapi

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// SearchFilters describes an ingredient/category/title search request.
type SearchFilters struct {
	IncludeIngredients []string `json:"includeIngredients,omitempty"`
	ExcludeIngredients []string `json:"excludeIngredients,omitempty"`
	IncludeCategories  []string `json:"includeCategories,omitempty"`
	Title              string   `json:"title,omitempty"`
	Page               int      `json:"page"`
	Limit              int      `json:"limit"`
}

// Client talks to the hosted recipe search service.
type Client struct {
	httpClient *resty.Client
}

// NewClient builds a search client for the vendor API.
func NewClient(baseURL, apiKey string) *Client {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	if apiKey != "" {
		client.SetHeader("X-Api-Key", apiKey)
	}

	return &Client{httpClient: client}
}

// Search runs an ingredient/category/title search.
func (c *Client) Search(ctx context.Context, filters SearchFilters) ([]Recipe, error) {
	var response SearchResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(filters).
		SetResult(&response).
		Post("/recipes/search")
	if err != nil {
		return nil, fmt.Errorf("recipe search request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("recipe search returned status %d", resp.StatusCode())
	}

	return response.Data, nil
}

// SearchByDiet searches recipes by the vendor's diet key.
func (c *Client) SearchByDiet(ctx context.Context, dietKey string, limit, page int) ([]Recipe, error) {
	var response SearchResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"diet":  dietKey,
			"limit": strconv.Itoa(limit),
			"page":  strconv.Itoa(page),
		}).
		SetResult(&response).
		Get("/recipes/diet")
	if err != nil {
		return nil, fmt.Errorf("diet search request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("diet search returned status %d", resp.StatusCode())
	}

	return response.Data, nil
}

// SearchByCalorieRange searches recipes whose calorie value falls inside
// [min, max].
func (c *Client) SearchByCalorieRange(ctx context.Context, min, max float64, limit, page int) ([]Recipe, error) {
	if page <= 0 {
		page = 1
	}

	var response SearchResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"minCalories": strconv.FormatFloat(min, 'f', -1, 64),
			"maxCalories": strconv.FormatFloat(max, 'f', -1, 64),
			"limit":       strconv.Itoa(limit),
			"page":        strconv.Itoa(page),
		}).
		SetResult(&response).
		Get("/recipes/calories")
	if err != nil {
		return nil, fmt.Errorf("calorie search request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("calorie search returned status %d", resp.StatusCode())
	}

	return response.Data, nil
}
