// internal/openrouter/mock.go
package openrouter

import (
	"context"

	"github.com/mateusz-szafarz/10x-cards/internal/model"
)

// MockClient returns canned proposals without touching the network. Selected
// once at wiring time (openrouter.use_mock, or no API key configured) so the
// rest of the pipeline never branches on the backend.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) ModelName() string {
	return "mock-gpt-4"
}

func (m *MockClient) GenerateProposals(_ context.Context, sourceText string) ([]model.FlashcardProposal, error) {
	if sourceText == "" {
		return nil, &InvalidRequestError{Message: "source text must not be empty"}
	}
	return []model.FlashcardProposal{
		{
			Front: "What is the main topic discussed in this text?",
			Back:  "The text discusses key concepts that are fundamental to understanding the subject matter presented.",
		},
		{
			Front: "What are the primary benefits mentioned?",
			Back:  "The primary benefits include improved understanding, better retention, and practical application of knowledge.",
		},
		{
			Front: "How does this concept relate to real-world applications?",
			Back:  "This concept can be applied in various real-world scenarios, enabling more effective problem-solving and decision-making.",
		},
		{
			Front: "What are the key takeaways from this material?",
			Back:  "Key takeaways include understanding core principles, recognizing patterns, and applying learned concepts to new situations.",
		},
	}, nil
}
