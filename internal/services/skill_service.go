package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/justsurfingit/uplift/internal/metrics"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const maxSkills = 5

// SkillService asks Gemini for the essential skills of a job description.
// Extraction is best effort: any failure yields an empty list and is not retried.
type SkillService struct {
	Logger *zap.Logger

	// generate returns the model's JSON text for a prompt; nil disables extraction.
	generate func(ctx context.Context, prompt string) (string, error)
}

func NewSkillService(ctx context.Context, apiKey, model string, logger *zap.Logger) (*SkillService, error) {
	if apiKey == "" {
		logger.Warn("GEMINI_API_KEY is empty, skill extraction is disabled")
		return &SkillService{Logger: logger}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	config := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"skills": {
					Type:  genai.TypeArray,
					Items: &genai.Schema{Type: genai.TypeString},
				},
			},
			Required: []string{"skills"},
		},
	}

	return &SkillService{
		Logger: logger,
		generate: func(ctx context.Context, prompt string) (string, error) {
			result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
			if err != nil {
				return "", fmt.Errorf("GenAI generate failed: %w", err)
			}
			return result.Text(), nil
		},
	}, nil
}

const skillsPrompt = `List the top 5 essential technical skills from this job description: "%s"`

// ExtractSkills returns at most five skill tags for description, or an empty list.
func (s *SkillService) ExtractSkills(ctx context.Context, description string) []string {
	if s.generate == nil || strings.TrimSpace(description) == "" {
		return []string{}
	}

	text, err := s.generate(ctx, fmt.Sprintf(skillsPrompt, description))
	if err != nil {
		s.Logger.Error("Error extracting skills", zap.Error(err))
		metrics.SkillExtractionsTotal.WithLabelValues("failed").Inc()
		return []string{}
	}
	if text == "" {
		metrics.SkillExtractionsTotal.WithLabelValues("empty").Inc()
		return []string{}
	}

	var data struct {
		Skills []string `json:"skills"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &data); err != nil {
		s.Logger.Error("Error extracting skills", zap.Error(err), zap.String("raw", text))
		metrics.SkillExtractionsTotal.WithLabelValues("failed").Inc()
		return []string{}
	}

	skills := uniqueTrimmed(data.Skills)
	if len(skills) > maxSkills {
		skills = skills[:maxSkills]
	}
	outcome := "ok"
	if len(skills) == 0 {
		outcome = "empty"
	}
	metrics.SkillExtractionsTotal.WithLabelValues(outcome).Inc()
	return skills
}
