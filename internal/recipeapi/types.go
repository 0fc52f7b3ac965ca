package recipeapi

import (
	"encoding/json"
	"strconv"
	"strings"
)

// looseNumber decodes a numeric field the vendor may send as a number, a
// numeric string, or null. Anything else decodes to 0.
type looseNumber float64

func (n *looseNumber) UnmarshalJSON(data []byte) error {
	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*n = looseNumber(num)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(str), 64); err == nil {
			*n = looseNumber(parsed)
		}
		return nil
	}

	*n = 0
	return nil
}

// Recipe is a candidate returned by the vendor search API. The payload is
// semi-structured: several fields appear under one of two names and numeric
// fields may be absent, in which case they decode to 0.
type Recipe struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	PrepTime string  `json:"prep_time"`
	CookTime string  `json:"cook_time"`
	Region   string  `json:"region"`
	Servings string  `json:"servings"`
}

// recipeWire mirrors the vendor payload with every known field alias.
type recipeWire struct {
	ID       string `json:"id"`
	RecipeID string `json:"recipe_id"`
	Name     string `json:"name"`
	Title    string `json:"title"`

	Calories looseNumber `json:"calories"`
	Energy   looseNumber `json:"energy_kcal"`
	Protein  looseNumber `json:"protein"`
	ProteinG looseNumber `json:"protein_g"`
	Carbs    looseNumber `json:"carbs"`
	CarbsG   looseNumber `json:"carbohydrates_g"`
	Fat      looseNumber `json:"fat"`
	FatG     looseNumber `json:"fat_g"`

	PrepTime  string          `json:"prep_time"`
	CookTime  string          `json:"cook_time"`
	TotalTime string          `json:"total_time"`
	Region    string          `json:"region"`
	Servings  json.RawMessage `json:"servings"`
}

func (r *Recipe) UnmarshalJSON(data []byte) error {
	var wire recipeWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	r.ID = firstString(wire.ID, wire.RecipeID)
	r.Name = firstString(wire.Name, wire.Title)
	r.Calories = firstNumber(wire.Calories, wire.Energy)
	r.Protein = firstNumber(wire.Protein, wire.ProteinG)
	r.Carbs = firstNumber(wire.Carbs, wire.CarbsG)
	r.Fat = firstNumber(wire.Fat, wire.FatG)
	r.PrepTime = wire.PrepTime
	r.CookTime = firstString(wire.CookTime, wire.TotalTime)
	r.Region = wire.Region
	r.Servings = rawToString(wire.Servings)
	return nil
}

func firstString(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNumber(values ...looseNumber) float64 {
	for _, v := range values {
		if v != 0 {
			return float64(v)
		}
	}
	return 0
}

// rawToString renders a servings value that may arrive as a string or a
// number as free text.
func rawToString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		return str
	}

	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return strconv.FormatFloat(num, 'f', -1, 64)
	}

	return ""
}

// SearchResponse is the vendor's standard result envelope.
type SearchResponse struct {
	Data []Recipe `json:"data"`
}
