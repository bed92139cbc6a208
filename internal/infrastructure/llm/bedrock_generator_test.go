package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devops-assistant/internal/domain/entity"
)

type fakeInvoker struct {
	lastBody []byte
	respText string
	err      error
}

func (f *fakeInvoker) InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, _ ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	f.lastBody = params.Body
	if f.err != nil {
		return nil, f.err
	}
	body, _ := json.Marshal(anthropicResponse{Content: []anthropicContent{{Type: "text", Text: f.respText}}})
	return &bedrockruntime.InvokeModelOutput{Body: body}, nil
}

func newGenerator(inv invokeAPI) *BedrockGenerator {
	return &BedrockGenerator{
		client:   inv,
		modelID:  "anthropic.claude-3-5-sonnet-20241022-v2:0",
		decoding: DefaultDecoding(),
		timeout:  time.Minute,
	}
}

func TestGenerateReturnsRawText(t *testing.T) {
	fake := &fakeInvoker{respText: "FROM python:latest"}
	g := newGenerator(fake)

	got, err := g.Generate(context.Background(), "generate a dockerfile")
	require.NoError(t, err)
	assert.Equal(t, "FROM python:latest", got)

	var req anthropicRequest
	require.NoError(t, json.Unmarshal(fake.lastBody, &req))
	assert.Equal(t, anthropicVersion, req.AnthropicVersion)
	assert.Equal(t, 4096, req.MaxTokens)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, "generate a dockerfile", req.Messages[0].Content[0].Text)
}

func TestGenerateClassifiesErrors(t *testing.T) {
	g := newGenerator(&fakeInvoker{err: errors.New("connection reset")})
	_, err := g.Generate(context.Background(), "p")
	assert.True(t, entity.IsTransient(err))
	assert.False(t, entity.IsFatal(err))
}

func TestClassifyInvokeError(t *testing.T) {
	assert.True(t, entity.IsFatal(classifyInvokeError(&smithy.GenericAPIError{Code: "AccessDeniedException"})))
	assert.True(t, entity.IsFatal(classifyInvokeError(&smithy.GenericAPIError{Code: "ExpiredTokenException"})))
	assert.True(t, entity.IsTransient(classifyInvokeError(&smithy.GenericAPIError{Code: "ThrottlingException"})))
	assert.True(t, entity.IsTransient(classifyInvokeError(errors.New("dial tcp: timeout"))))
}

func TestGenerateEmptyContent(t *testing.T) {
	fake := &fakeInvoker{}
	fake.respText = ""
	g := newGenerator(fake)
	got, err := g.Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "", got)
}
