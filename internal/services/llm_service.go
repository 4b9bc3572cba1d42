package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"
)

const (
	DescriptionFallback = "Could not generate description at this time."
	DescriptionEmpty    = "Failed to generate description."

	maxExtractionInput = 20000
)

var ErrLLMUnavailable = errors.New("AI is not configured")

type LLMService struct {
	// nil when no API key is configured.
	Client llms.Model
	Logger *zap.Logger
}

// NewLLMService initializes the Gemini client. An empty apiKey yields a service
// whose calls fall back or fail with ErrLLMUnavailable.
func NewLLMService(ctx context.Context, apiKey, model string, logger *zap.Logger) (*LLMService, error) {
	if apiKey == "" {
		logger.Warn("GEMINI_API_KEY is empty, AI description and extraction are disabled")
		return &LLMService{Logger: logger}, nil
	}

	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &LLMService{Client: llm, Logger: logger}, nil
}

const jobDescriptionPrompt = `Generate a professional, structured job description for "%s" at "%s". Focus on key responsibilities and required experience.`

// GenerateJobDescription drafts a description for the post form. It never fails;
// errors are logged and replaced with a fallback sentence.
func (s *LLMService) GenerateJobDescription(ctx context.Context, title, company string) string {
	if s.Client == nil {
		return DescriptionFallback
	}
	prompt := fmt.Sprintf(jobDescriptionPrompt, title, company)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt, llms.WithTemperature(0.7))
	if err != nil {
		s.Logger.Error("Error generating description", zap.Error(err))
		return DescriptionFallback
	}
	if strings.TrimSpace(resp) == "" {
		return DescriptionEmpty
	}
	return resp
}

// JobDraft is the listing the LLM read out of a raw posting.
type JobDraft struct {
	CompanyName string   `json:"company_name"`
	Title       string   `json:"role_title"`
	Location    string   `json:"location"`
	Type        string   `json:"job_type"`
	Description string   `json:"description"`
	TechStack   []string `json:"tech_stack"`
	SalaryRange string   `json:"salary_range"`
	ApplyLink   string   `json:"apply_link"`
}

const jobExtractionPrompt = `
You are an expert Job Data Extraction Agent. Your task is to analyze the provided raw HTML/Text from a job posting and extract structured data.

### INSTRUCTIONS:
1. **Analyze** the text to identify the core job details.
2. **Ignore** navigation menus, footers, "similar jobs" lists, and site advertisements.
3. **Extract** the following fields strictly.
4. **Format** the output as valid JSON only. Do not wrap the output in markdown code blocks.

### OUTPUT SCHEMA:
{
    "company_name": "Name of the company (e.g., Google, StartupInc)",
    "role_title": "Job title (e.g., Senior Backend Engineer)",
    "location": "Job location or 'Remote'",
    "job_type": "One of Full-time, Part-time, Contract, Freelance, Remote, Intern",
    "description": "A clean summary of the job. Focus on Responsibilities and Requirements. Remove HTML tags.",
    "tech_stack": ["Array", "of", "technologies", "mentioned", "e.g., Go, React, AWS"],
    "salary_range": "The salary string if explicitly mentioned (e.g., '$100k - $150k'), otherwise null",
    "apply_link": "The URL to apply, otherwise null"
}

### CONSTRAINT:
If a piece of information is missing, set the value to null. Do not hallucinate or guess.

### RAW CONTENT:
%s
`

// ExtractJobDetails takes raw HTML and returns a structured draft.
func (s *LLMService) ExtractJobDetails(ctx context.Context, rawHTML string) (*JobDraft, error) {
	if s.Client == nil {
		return nil, ErrLLMUnavailable
	}
	if len(rawHTML) > maxExtractionInput {
		rawHTML = rawHTML[:maxExtractionInput]
	}

	prompt := fmt.Sprintf(jobExtractionPrompt, rawHTML)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
	if err != nil {
		return nil, fmt.Errorf("AI extraction failed: %w", err)
	}

	var draft JobDraft
	if err := json.Unmarshal([]byte(stripCodeFence(resp)), &draft); err != nil {
		return nil, fmt.Errorf("AI extraction returned invalid JSON: %w", err)
	}
	return &draft, nil
}

// stripCodeFence removes a ```json ... ``` wrapper the model sometimes adds anyway.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
