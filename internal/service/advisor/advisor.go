// Package advisor answers free-form farming questions through a chat
// completion, primed with the farmer's own crops so the answers stay
// concrete.
package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sashabaranov/go-openai"

	"FarmBot/entity"
	"FarmBot/internal/config"
	"FarmBot/internal/lib/sl"
)

// CropLister provides the crops used to prime the prompt.
type CropLister interface {
	ListCrops(ctx context.Context, farmerId string) ([]entity.Crop, error)
}

type Service struct {
	client *openai.Client
	model  string
	crops  CropLister
	log    *slog.Logger
}

// New builds the advisor, or returns nil when no API key is
// configured.
func New(conf *config.Config, crops CropLister, log *slog.Logger) *Service {
	if conf.OpenAI.ApiKey == "" {
		return nil
	}
	return &Service{
		client: openai.NewClient(conf.OpenAI.ApiKey),
		model:  conf.OpenAI.Model,
		crops:  crops,
		log:    log.With(sl.Module("advisor")),
	}
}

const systemPrompt = "You are an agricultural advisor for smallholder farmers in Lebanon. " +
	"Answer briefly and practically, in the language of the question. " +
	"Prefer low-cost advice suited to small family farms."

// Ask sends the question with the farmer's crop context and returns
// the answer text.
func (s *Service) Ask(ctx context.Context, farmer *entity.Farmer, question string) (string, error) {
	system := systemPrompt
	if crops, err := s.crops.ListCrops(ctx, farmer.ID); err != nil {
		s.log.With(sl.Err(err)).Warn("loading crops for prompt")
	} else if len(crops) > 0 {
		names := make([]string, 0, len(crops))
		for _, c := range crops {
			names = append(names, c.Name)
		}
		system += " The farmer grows: " + strings.Join(names, ", ") + "."
	}

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion response")
	}
	return resp.Choices[0].Message.Content, nil
}
