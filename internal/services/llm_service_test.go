package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

type fakeModel struct {
	reply   string
	err     error
	prompts []string
}

func (m *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				m.prompts = append(m.prompts, text.Text)
			}
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: m.reply}}}, nil
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func TestLLMService_GenerateJobDescription(t *testing.T) {
	model := &fakeModel{reply: "You will build things."}
	svc := &LLMService{Client: model, Logger: zap.NewNop()}

	got := svc.GenerateJobDescription(context.Background(), "Go Developer", "Stripe")
	assert.Equal(t, "You will build things.", got)
	require.Len(t, model.prompts, 1)
	assert.Contains(t, model.prompts[0], `"Go Developer" at "Stripe"`)
}

func TestLLMService_GenerateJobDescriptionFallbacks(t *testing.T) {
	svc := &LLMService{Client: &fakeModel{err: errors.New("quota")}, Logger: zap.NewNop()}
	assert.Equal(t, DescriptionFallback, svc.GenerateJobDescription(context.Background(), "a", "b"))

	svc = &LLMService{Client: &fakeModel{reply: "  "}, Logger: zap.NewNop()}
	assert.Equal(t, DescriptionEmpty, svc.GenerateJobDescription(context.Background(), "a", "b"))

	svc = &LLMService{Logger: zap.NewNop()}
	assert.Equal(t, DescriptionFallback, svc.GenerateJobDescription(context.Background(), "a", "b"))
}

func TestLLMService_ExtractJobDetails(t *testing.T) {
	model := &fakeModel{reply: "```json\n" + `{"company_name":"Stripe","role_title":"Go Engineer","location":"Remote","tech_stack":["Go","AWS"],"salary_range":null}` + "\n```"}
	svc := &LLMService{Client: model, Logger: zap.NewNop()}

	draft, err := svc.ExtractJobDetails(context.Background(), "<html>"+strings.Repeat("x", maxExtractionInput)+"</html>")
	require.NoError(t, err)
	assert.Equal(t, "Stripe", draft.CompanyName)
	assert.Equal(t, "Go Engineer", draft.Title)
	assert.Equal(t, []string{"Go", "AWS"}, draft.TechStack)
	assert.Empty(t, draft.SalaryRange)

	require.Len(t, model.prompts, 1)
	assert.NotContains(t, model.prompts[0], "</html>", "input is truncated")
}

func TestLLMService_ExtractJobDetailsErrors(t *testing.T) {
	svc := &LLMService{Logger: zap.NewNop()}
	_, err := svc.ExtractJobDetails(context.Background(), "x")
	require.ErrorIs(t, err, ErrLLMUnavailable)

	svc = &LLMService{Client: &fakeModel{reply: "not json"}, Logger: zap.NewNop()}
	_, err = svc.ExtractJobDetails(context.Background(), "x")
	require.Error(t, err)
}
