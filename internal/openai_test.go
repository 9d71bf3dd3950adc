package internal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatClient struct {
	reply   string
	err     error
	prompts []string
	models  []string
}

func (f *fakeChatClient) CreateChatCompletion(ctx context.Context, model, prompt string) (string, error) {
	f.models = append(f.models, model)
	f.prompts = append(f.prompts, prompt)
	if _, ok := ctx.Deadline(); !ok {
		return "", errors.New("missing deadline")
	}
	return f.reply, f.err
}

func TestAISummary(t *testing.T) {
	client := &fakeChatClient{reply: "short summary"}
	ai := NewAI(client, "gpt-4o-mini", time.Minute, false)

	summary, err := ai.Summary(context.Background(), "summarize this")
	require.NoError(t, err)

	assert.Equal(t, "short summary", summary)
	assert.Equal(t, []string{"summarize this"}, client.prompts)
	assert.Equal(t, []string{"gpt-4o-mini"}, client.models)
}

func TestAISummaryError(t *testing.T) {
	cause := errors.New("quota exceeded")
	ai := NewAI(&fakeChatClient{err: cause}, "gpt-4o-mini", time.Minute, false)

	_, err := ai.Summary(context.Background(), "p")
	assert.ErrorIs(t, err, cause)
}

func TestAIWithoutKey(t *testing.T) {
	ai := NewAIWithKey("", "gpt-4o-mini", time.Minute, false)

	_, err := ai.Summary(context.Background(), "p")
	assert.ErrorContains(t, err, "API key is required")
}

func TestValidateModel(t *testing.T) {
	assert.NoError(t, ValidateModel("gpt-4o"))
	assert.ErrorContains(t, ValidateModel("gpt-2"), "unsupported model")
}
