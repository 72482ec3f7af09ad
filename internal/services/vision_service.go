// internal/services/vision_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"github.com/luxeval/luxeval-backend/internal/appraisal"
	"github.com/luxeval/luxeval-backend/internal/config"
	"github.com/luxeval/luxeval-backend/internal/models"
)

const visionSystemPrompt = `You are an expert luxury fashion appraiser with deep knowledge of high-end brands, their products, and resale values.

CRITICAL: If the image shows price tags, labels, or product information text, READ IT CAREFULLY and extract all details including:
- Brand name (exact spelling from tag)
- Product name/model (exact wording from tag)
- Original retail price (if visible on tag)
- Product code/SKU (if visible)

Then analyze the image and identify:
1. Brand name (e.g., Louis Vuitton, Gucci, Chanel, Dolce & Gabbana, Prada)
2. Product type/category (e.g., Women's Shoes, Men's Shoes, handbag, dress, jacket)
3. Specific model/style name if identifiable
4. Condition assessment (new, excellent, good, fair, poor)
5. Condition score (1-10 scale)
6. Any visible wear, damage, or authenticity concerns
7. Estimated resale value based on condition

Return your analysis in JSON format with these exact fields:
{
  "brand": "Brand Name",
  "product_type": "Category",
  "model": "Model/Style Name",
  "condition": "Condition",
  "condition_score": 8.5,
  "wear_damage": "Description",
  "authenticity_concerns": "None or description",
  "estimated_resale_value": "$XXX - $YYY",
  "original_retail_price": "If visible on tag"
}`

// VisionService analyzes item photos with an OpenAI vision model. A nil
// client (no API key configured) or any upstream failure degrades to default
// values; callers continue with user-supplied attributes.
type VisionService struct {
	client *openai.Client
	cfg    *config.Config
}

func NewVisionService(cfg *config.Config) *VisionService {
	s := &VisionService{cfg: cfg}
	if cfg.Vision.OpenAIAPIKey != "" {
		s.client = openai.NewClient(cfg.Vision.OpenAIAPIKey)
	}
	return s
}

func (s *VisionService) Configured() bool {
	return s.client != nil
}

// AnalyzeItemImage runs one image through the vision model. It never returns
// a nil analysis: on failure the defaults (condition good, score 7.0,
// confidence 50) are returned along with the error.
func (s *VisionService) AnalyzeItemImage(ctx context.Context, imageURL string) (*appraisal.VisionAnalysis, error) {
	if s.client == nil {
		return defaultVisionAnalysis(), errors.New("vision service not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.Vision.TimeoutSeconds)*time.Second)
	defer cancel()

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     s.cfg.Vision.Model,
		MaxTokens: s.cfg.Vision.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: visionSystemPrompt,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: "Please analyze this luxury item and provide detailed information about its brand, model, condition, and estimated resale value.",
					},
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: imageURL},
					},
				},
			},
		},
	})
	if err != nil {
		logrus.WithError(err).Error("Vision analysis failed")
		return defaultVisionAnalysis(), fmt.Errorf("vision analysis failed: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return defaultVisionAnalysis(), errors.New("empty response from vision model")
	}

	return parseVisionResponse(resp.Choices[0].Message.Content), nil
}

// AnalyzeImages analyzes every provided image and combines the results into a
// single best estimate.
func (s *VisionService) AnalyzeImages(ctx context.Context, imageURLs []string) (*appraisal.VisionAnalysis, error) {
	results := make([]*appraisal.VisionAnalysis, 0, len(imageURLs))
	for _, url := range imageURLs {
		result, err := s.AnalyzeItemImage(ctx, url)
		if err != nil {
			continue
		}
		results = append(results, result)
	}
	if len(results) == 0 {
		return defaultVisionAnalysis(), errors.New("no images analyzed")
	}
	return CombineAnalysisResults(results), nil
}

// CombineAnalysisResults merges per-image analyses: identity fields come from
// the highest-confidence result, condition scores are averaged, and
// confidence gets a small boost per extra image, capped at 95.
func CombineAnalysisResults(results []*appraisal.VisionAnalysis) *appraisal.VisionAnalysis {
	if len(results) == 0 {
		return defaultVisionAnalysis()
	}
	if len(results) == 1 {
		return results[0]
	}

	best := results[0]
	var scoreSum float64
	details := make([]string, 0, len(results))
	for i, r := range results {
		if r.Confidence > best.Confidence {
			best = r
		}
		scoreSum += r.ConditionScore
		details = append(details, fmt.Sprintf("Image %d: %s", i+1, r.Details))
	}

	confidence := best.Confidence + (len(results)-1)*5
	if confidence > 95 {
		confidence = 95
	}

	return &appraisal.VisionAnalysis{
		Brand:          best.Brand,
		Model:          best.Model,
		Category:       best.Category,
		Condition:      best.Condition,
		ConditionScore: scoreSum / float64(len(results)),
		Confidence:     confidence,
		Details:        strings.Join(details, "\n\n"),
		SuggestedPrice: best.SuggestedPrice,
	}
}

func defaultVisionAnalysis() *appraisal.VisionAnalysis {
	return &appraisal.VisionAnalysis{
		Condition:      models.ConditionGood,
		ConditionScore: 7.0,
		Confidence:     50,
		Details:        "Unable to analyze image automatically. Please provide details manually.",
	}
}

var (
	jsonBlockPattern  = regexp.MustCompile(`(?s)\{.*\}`)
	brandPattern      = regexp.MustCompile(`(?i)brand[:\s]+([^\n,]+)`)
	modelPattern      = regexp.MustCompile(`(?i)model[:\s]+([^\n,]+)`)
	categoryPattern   = regexp.MustCompile(`(?i)category[:\s]+([^\n,]+)`)
	conditionPattern  = regexp.MustCompile(`(?i)condition[:\s]+([^\n,]+)`)
	scorePattern      = regexp.MustCompile(`(?i)score[:\s]+(\d+\.?\d*)`)
	confidencePattern = regexp.MustCompile(`(?i)confidence[:\s]+(\d+)`)
)

// parseVisionResponse extracts a structured analysis from the model output.
// A JSON block is preferred; free text is scanned field by field otherwise.
func parseVisionResponse(content string) *appraisal.VisionAnalysis {
	if block := jsonBlockPattern.FindString(content); block != "" {
		var parsed struct {
			Brand                string      `json:"brand"`
			Model                string      `json:"model"`
			Style                string      `json:"style"`
			Category             string      `json:"category"`
			ProductType          string      `json:"product_type"`
			Condition            string      `json:"condition"`
			ConditionScore       float64     `json:"condition_score"`
			Score                float64     `json:"score"`
			Confidence           int         `json:"confidence"`
			Details              string      `json:"details"`
			Notes                string      `json:"notes"`
			EstimatedResaleValue interface{} `json:"estimated_resale_value"`
		}
		if err := json.Unmarshal([]byte(block), &parsed); err == nil {
			result := &appraisal.VisionAnalysis{
				Brand:          strings.TrimSpace(parsed.Brand),
				Model:          firstNonEmpty(parsed.Model, parsed.Style),
				Category:       firstNonEmpty(parsed.Category, parsed.ProductType),
				Condition:      mapCondition(parsed.Condition),
				ConditionScore: 7.0,
				Confidence:     70,
				Details:        firstNonEmpty(parsed.Details, parsed.Notes, content),
			}
			if parsed.ConditionScore > 0 {
				result.ConditionScore = parsed.ConditionScore
			} else if parsed.Score > 0 {
				result.ConditionScore = parsed.Score
			}
			if parsed.Confidence > 0 {
				result.Confidence = parsed.Confidence
			}
			if parsed.EstimatedResaleValue != nil {
				result.SuggestedPrice = fmt.Sprintf("%v", parsed.EstimatedResaleValue)
			}
			return result
		}
	}

	// Fallback: parse free-text response
	result := &appraisal.VisionAnalysis{
		Condition:      models.ConditionGood,
		ConditionScore: 7.0,
		Confidence:     60,
		Details:        content,
	}
	if m := brandPattern.FindStringSubmatch(content); m != nil {
		result.Brand = strings.TrimSpace(m[1])
	}
	if m := modelPattern.FindStringSubmatch(content); m != nil {
		result.Model = strings.TrimSpace(m[1])
	}
	if m := categoryPattern.FindStringSubmatch(content); m != nil {
		result.Category = strings.TrimSpace(m[1])
	}
	if m := conditionPattern.FindStringSubmatch(content); m != nil {
		result.Condition = mapCondition(strings.TrimSpace(m[1]))
	}
	if m := scorePattern.FindStringSubmatch(content); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			result.ConditionScore = v
		}
	}
	if m := confidencePattern.FindStringSubmatch(content); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			result.Confidence = v
		}
	}
	return result
}

func mapCondition(condition string) models.ItemCondition {
	normalized := strings.ToLower(condition)

	switch {
	case strings.Contains(normalized, "new"), strings.Contains(normalized, "mint"):
		return models.ConditionNew
	case strings.Contains(normalized, "excellent"), strings.Contains(normalized, "like new"):
		return models.ConditionExcellent
	case strings.Contains(normalized, "good"):
		return models.ConditionGood
	case strings.Contains(normalized, "fair"), strings.Contains(normalized, "used"):
		return models.ConditionFair
	case strings.Contains(normalized, "poor"), strings.Contains(normalized, "damaged"):
		return models.ConditionPoor
	default:
		return models.ConditionGood
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
