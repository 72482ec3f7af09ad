// internal/services/vision_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/luxeval/luxeval-backend/internal/appraisal"
	"github.com/luxeval/luxeval-backend/internal/models"
)

func TestParseVisionResponseJSONBlock(t *testing.T) {
	content := `Here is my analysis:
{
  "brand": "Louis Vuitton",
  "product_type": "Handbags",
  "model": "Neverfull MM",
  "condition": "Excellent",
  "condition_score": 8.5,
  "confidence": 85,
  "estimated_resale_value": "$1,200 - $1,600"
}`

	result := parseVisionResponse(content)

	assert.Equal(t, "Louis Vuitton", result.Brand)
	assert.Equal(t, "Neverfull MM", result.Model)
	assert.Equal(t, "Handbags", result.Category)
	assert.Equal(t, models.ConditionExcellent, result.Condition)
	assert.Equal(t, 8.5, result.ConditionScore)
	assert.Equal(t, 85, result.Confidence)
	assert.Equal(t, "$1,200 - $1,600", result.SuggestedPrice)
}

func TestParseVisionResponseFreeText(t *testing.T) {
	content := `Brand: Gucci
Model: Marmont
Category: Handbags
Condition: good with minor wear
Score: 7.5
Confidence: 75`

	result := parseVisionResponse(content)

	assert.Equal(t, "Gucci", result.Brand)
	assert.Equal(t, "Marmont", result.Model)
	assert.Equal(t, models.ConditionGood, result.Condition)
	assert.Equal(t, 7.5, result.ConditionScore)
	assert.Equal(t, 75, result.Confidence)
}

func TestParseVisionResponseDefaults(t *testing.T) {
	result := parseVisionResponse("I cannot identify this item clearly.")

	assert.Empty(t, result.Brand)
	assert.Equal(t, models.ConditionGood, result.Condition)
	assert.Equal(t, 7.0, result.ConditionScore)
}

func TestMapCondition(t *testing.T) {
	tests := []struct {
		input string
		want  models.ItemCondition
	}{
		{"New", models.ConditionNew},
		{"mint condition", models.ConditionNew},
		{"Excellent", models.ConditionExcellent},
		// "new" keyword wins over "like new", matching the shipped mapping
		{"like new", models.ConditionNew},
		{"Good", models.ConditionGood},
		{"fair, some wear", models.ConditionFair},
		{"heavily damaged", models.ConditionPoor},
		{"", models.ConditionGood},
		{"unrecognized", models.ConditionGood},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, mapCondition(tt.input), "input %q", tt.input)
	}
}

func TestCombineAnalysisResults(t *testing.T) {
	a := &appraisal.VisionAnalysis{
		Brand: "Prada", Condition: models.ConditionGood,
		ConditionScore: 7.0, Confidence: 60, Details: "front view",
	}
	b := &appraisal.VisionAnalysis{
		Brand: "Louis Vuitton", Model: "Speedy 30", Condition: models.ConditionExcellent,
		ConditionScore: 9.0, Confidence: 90, Details: "tag close-up",
	}

	combined := CombineAnalysisResults([]*appraisal.VisionAnalysis{a, b})

	assert.Equal(t, "Louis Vuitton", combined.Brand)
	assert.Equal(t, "Speedy 30", combined.Model)
	assert.Equal(t, 8.0, combined.ConditionScore)
	assert.Equal(t, 95, combined.Confidence) // 90 + 5, capped
	assert.Contains(t, combined.Details, "Image 1")
	assert.Contains(t, combined.Details, "Image 2")
}

func TestCombineAnalysisResultsSingle(t *testing.T) {
	a := &appraisal.VisionAnalysis{Brand: "Dior", Confidence: 80}
	assert.Same(t, a, CombineAnalysisResults([]*appraisal.VisionAnalysis{a}))
}

func TestCombineAnalysisResultsEmpty(t *testing.T) {
	combined := CombineAnalysisResults(nil)
	assert.Equal(t, models.ConditionGood, combined.Condition)
	assert.Equal(t, 50, combined.Confidence)
}
