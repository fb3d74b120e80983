package generation

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/ai/azopenai"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
)

// AzureGenerator talks to an Azure OpenAI deployment
type AzureGenerator struct {
	client         *azopenai.Client
	deploymentName string
}

// NewAzureGenerator creates a generator for the given Azure endpoint
func NewAzureGenerator(endpoint, apiKey, deploymentName string) (*AzureGenerator, error) {
	if endpoint == "" || apiKey == "" || deploymentName == "" {
		return nil, fmt.Errorf("azure openai configuration missing: endpoint, api key and deployment name are required")
	}

	keyCredential := azcore.NewKeyCredential(apiKey)
	client, err := azopenai.NewClientWithKeyCredential(endpoint, keyCredential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create azure openai client: %w", err)
	}

	return &AzureGenerator{client: client, deploymentName: deploymentName}, nil
}

// Complete generates a single completion
func (g *AzureGenerator) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	var messages []azopenai.ChatRequestMessageClassification
	if req.System != "" {
		messages = append(messages, &azopenai.ChatRequestSystemMessage{
			Content: to.Ptr(req.System),
		})
	}
	messages = append(messages, &azopenai.ChatRequestUserMessage{
		Content: azopenai.NewChatRequestUserMessageContent(req.Prompt),
	})

	resp, err := g.client.GetChatCompletions(ctx, azopenai.ChatCompletionsOptions{
		Messages:       messages,
		MaxTokens:      to.Ptr(int32(req.MaxTokens)),
		Temperature:    to.Ptr(float32(req.Temperature)),
		DeploymentName: to.Ptr(g.deploymentName),
	}, nil)
	if err != nil {
		return "", fmt.Errorf("azure openai completion failed: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == nil {
		return "", fmt.Errorf("empty response from azure openai")
	}
	return *resp.Choices[0].Message.Content, nil
}
