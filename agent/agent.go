// Package agent orchestrates one chat request: intent short-circuit, document
// ranking, conversation composition and the generation call.
package agent

import (
	"context"
	"strings"

	"maxagent/config"
	apperrors "maxagent/errors"
	"maxagent/llmclient"
	"maxagent/prompts"
	"maxagent/rag"
	"maxagent/web/format"
	"maxagent/web/types"

	"go.uber.org/zap"
)

type Agent struct {
	cfg    *config.Config
	rag    *rag.RAG
	llm    *llmclient.Client
	logger *zap.Logger
}

// Reply is the outcome of one chat turn.
type Reply struct {
	Text   string
	HTML   string
	Tokens int
}

func NewAgent(cfg *config.Config, ragService *rag.RAG, llm *llmclient.Client, logger *zap.Logger) *Agent {
	return &Agent{cfg: cfg, rag: ragService, llm: llm, logger: logger}
}

// Respond runs the full pipeline for one user message. List-intent queries
// answer straight from the store without a generation call; everything else
// ranks the document base, composes the conversation and calls the backend.
// Only input, credential and backend faults surface as errors.
func (a *Agent) Respond(ctx context.Context, message string, history []types.AgentMessage) (Reply, error) {
	if strings.TrimSpace(message) == "" {
		return Reply{}, apperrors.ErrInvalidInput
	}

	if rag.IsDocumentListQuery(message) {
		a.logger.Info("Document list intent, skipping generation")
		text := a.rag.Catalog(ctx)
		return Reply{Text: text, HTML: format.ToHTML(text)}, nil
	}

	if a.cfg.OpenAIAPIKey == "" {
		return Reply{}, apperrors.ErrMissingCredential
	}

	documentContext := a.rag.RelevantContext(ctx, message)
	messages := buildMessages(prompts.SystemMax(), documentContext, history, message)

	text, tokens, err := a.llm.Chat(ctx, messages)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Text: text, HTML: format.ToHTML(text), Tokens: tokens}, nil
}
