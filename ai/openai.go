package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"
)

type OpenAINarrator struct {
	client *openai.Client
	model  string
	log    *slog.Logger
}

func NewOpenAINarrator(apiKey, model string, log *slog.Logger) *OpenAINarrator {
	if model == "" {
		model = openai.GPT4oMini
		log.Warn("OPENAI_MODEL not set, defaulting", "model", model)
	}
	log.Info("Initializing OpenAI narrator", "model", model)
	return &OpenAINarrator{
		client: openai.NewClient(apiKey),
		model:  model,
		log:    log,
	}
}

func (n *OpenAINarrator) Generate(ctx context.Context, req NarrationRequest) (string, error) {
	resp, err := n.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: n.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt(req)},
			{Role: openai.ChatMessageRoleUser, Content: transcriptPrompt(req)},
		},
		Temperature: 0.9,
		MaxTokens:   60,
	})
	if err != nil {
		return "", fmt.Errorf("narration call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("narration returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// systemPrompt frames the persona. The hard rule at the end is the
// information constraint: generated text must never expose anyone's
// hidden role, in particular a fellow conspirator's.
func systemPrompt(req NarrationRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s, a player in a social-deduction party game. ", req.Self)
	fmt.Fprintf(&b, "Your secret role is %q. ", req.Role)
	fmt.Fprintf(&b, "Personality: suspicion %.2f, aggressiveness %.2f, defensiveness %.2f (all 0 to 1). ",
		req.Traits.Suspicion, req.Traits.Aggressiveness, req.Traits.Defensiveness)
	if len(req.Others) > 0 {
		fmt.Fprintf(&b, "The other living players are: %s. ", strings.Join(req.Others, ", "))
	}
	b.WriteString("Write exactly one short, casual chat message in character. ")
	b.WriteString("Hard rule: never state, hint at, or imply your own hidden role or any other player's hidden role.")
	return b.String()
}

func transcriptPrompt(req NarrationRequest) string {
	if len(req.Transcript) == 0 {
		return "The chat is quiet. Say something to get the discussion going."
	}
	var b strings.Builder
	b.WriteString("Recent chat:\n")
	for _, msg := range req.Transcript {
		fmt.Fprintf(&b, "%s: %s\n", msg.AuthorName, msg.Content)
	}
	b.WriteString("\nReply with your next message.")
	return b.String()
}
