// Package llm holds the hosted model client. The client sends one prompt
// per call with a fixed model id and decoding configuration and returns the
// response text as an opaque string.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/smithy-go"

	"devops-assistant/internal/domain/entity"
	"devops-assistant/internal/domain/repository"
	"devops-assistant/internal/infrastructure/metrics"
)

const anthropicVersion = "bedrock-2023-05-31"

// DecodingConfig controls the model's sampling behavior.
type DecodingConfig struct {
	MaxTokens     int      `json:"max_tokens"`
	Temperature   float64  `json:"temperature"`
	TopP          float64  `json:"top_p"`
	TopK          int      `json:"top_k"`
	StopSequences []string `json:"stop_sequences"`
}

// DefaultDecoding matches the deterministic settings the assistant has
// always used for infrastructure code generation.
func DefaultDecoding() DecodingConfig {
	return DecodingConfig{
		MaxTokens:     4096,
		Temperature:   0,
		TopP:          1,
		TopK:          1,
		StopSequences: []string{"Human"},
	}
}

type invokeAPI interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// BedrockGenerator invokes an Anthropic model through the Bedrock runtime.
type BedrockGenerator struct {
	client   invokeAPI
	modelID  string
	decoding DecodingConfig
	timeout  time.Duration
}

func NewBedrockGenerator(cfg aws.Config, modelID string, decoding DecodingConfig, timeout time.Duration) repository.ModelClient {
	return &BedrockGenerator{
		client:   bedrockruntime.NewFromConfig(cfg),
		modelID:  modelID,
		decoding: decoding,
		timeout:  timeout,
	}
}

func (g *BedrockGenerator) ModelID() string { return g.modelID }

type anthropicMessage struct {
	Role    string             `json:"role"`
	Content []anthropicContent `json:"content"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	Temperature      float64            `json:"temperature"`
	TopP             float64            `json:"top_p"`
	TopK             int                `json:"top_k"`
	StopSequences    []string           `json:"stop_sequences,omitempty"`
	Messages         []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
}

// Generate sends the prompt and returns the raw response text. The call is
// bounded by the configured timeout; a deadline hit surfaces as a
// TransientServiceError the user may retry.
func (g *BedrockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	metrics.IncLLMRequest(g.modelID)
	start := time.Now()

	body, err := json.Marshal(anthropicRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        g.decoding.MaxTokens,
		Temperature:      g.decoding.Temperature,
		TopP:             g.decoding.TopP,
		TopK:             g.decoding.TopK,
		StopSequences:    g.decoding.StopSequences,
		Messages: []anthropicMessage{
			{Role: "user", Content: []anthropicContent{{Type: "text", Text: prompt}}},
		},
	})
	if err != nil {
		metrics.IncError("llm", "marshal_request")
		return "", fmt.Errorf("marshal model request: %w", err)
	}

	invokeCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		invokeCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	out, err := g.client.InvokeModel(invokeCtx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(g.modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		metrics.IncError("llm", "invoke_model")
		return "", classifyInvokeError(err)
	}
	metrics.ObserveLLMDuration(time.Since(start))

	var resp anthropicResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		metrics.IncError("llm", "decode_response")
		return "", &entity.TransientServiceError{Op: "decode model response", Err: err}
	}
	if len(resp.Content) == 0 {
		metrics.IncError("llm", "empty_response")
		return "", &entity.TransientServiceError{Op: "model response", Err: errors.New("no content blocks")}
	}

	return resp.Content[0].Text, nil
}

// fatalErrorCodes are authentication/permission failures. Everything else
// from the endpoint is treated as transient and left to the user to retry.
var fatalErrorCodes = map[string]bool{
	"AccessDeniedException":       true,
	"UnrecognizedClientException": true,
	"ExpiredTokenException":       true,
	"InvalidSignatureException":   true,
	"NotAuthorized":               true,
}

func classifyInvokeError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) && fatalErrorCodes[apiErr.ErrorCode()] {
		return &entity.FatalServiceError{Op: "invoke model", Err: err}
	}
	return &entity.TransientServiceError{Op: "invoke model", Err: err}
}
