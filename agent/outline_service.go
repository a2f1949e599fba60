package agent

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"slidecraft/config"
	"slidecraft/outline"
)

// GenerationError marks a failure of the external outline or chart producer.
// Callers decide the recovery: outline generation falls back to a local
// template, chart generation surfaces the error to the user.
type GenerationError struct {
	Stage string // "outline" or "chart"
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed (%s): %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// OutlineService turns free-form notes into a structured slide outline by
// calling the configured chat model.
type OutlineService struct {
	chatModel model.ChatModel
	cfg       config.Config
	logger    func(string)
}

// NewOutlineService creates an OutlineService backed by an eino OpenAI chat
// model. "OpenAI-Compatible" providers work through the same client with a
// custom BaseURL.
func NewOutlineService(ctx context.Context, cfg config.Config, logger func(string)) (*OutlineService, error) {
	if logger == nil {
		logger = func(string) {}
	}
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:  cfg.APIKey,
		BaseURL: cfg.BaseURL,
		Model:   cfg.ModelName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create eino chat model: %v", err)
	}
	return &OutlineService{
		chatModel: chatModel,
		cfg:       cfg,
		logger:    logger,
	}, nil
}

// GenerateOutline runs a single-turn chain against the chat model and parses
// the JSON outline out of the reply. Any failure along the way is wrapped as
// a GenerationError; there are no retries here.
func (s *OutlineService) GenerateOutline(ctx context.Context, notes string) (outline.Outline, error) {
	prompt := BuildOutlinePrompt(notes, s.cfg.Language)

	chain := compose.NewChain[*schema.Message, *schema.Message]()
	chain.AppendChatModel(s.chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return outline.Outline{}, &GenerationError{Stage: "outline", Err: err}
	}

	msg := &schema.Message{
		Role:    schema.User,
		Content: prompt,
	}

	resp, err := runnable.Invoke(ctx, msg)
	if err != nil {
		return outline.Outline{}, &GenerationError{Stage: "outline", Err: err}
	}

	s.logger(fmt.Sprintf("[agent] outline reply received (%d chars)", len(resp.Content)))

	o, err := ParseOutlineReply(resp.Content)
	if err != nil {
		return outline.Outline{}, &GenerationError{Stage: "outline", Err: err}
	}
	return o, nil
}
