package handlers

import (
	"net/http"

	"maxagent/agent"
	apperrors "maxagent/errors"
	"maxagent/web/types"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ChatHandler struct {
	agent  *agent.Agent
	logger *zap.Logger
}

type ChatRequest struct {
	Message string               `json:"message"`
	History []types.AgentMessage `json:"history"`
}

type ChatResponse struct {
	Response     string `json:"response"`
	ResponseHTML string `json:"response_html,omitempty"`
	Tokens       int    `json:"tokens"`
}

func NewChatHandler(agent *agent.Agent, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{agent: agent, logger: logger}
}

// SendMessage handles POST /api/chat. Input and credential faults fail the
// request; store faults were already degraded inside the pipeline.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithClientError(c, http.StatusBadRequest, "Requisição inválida.")
		return
	}
	if req.Message == "" {
		respondWithClientError(c, http.StatusBadRequest, "A mensagem não pode estar vazia.")
		return
	}

	reply, err := h.agent.Respond(c.Request.Context(), req.Message, req.History)
	if err != nil {
		switch {
		case apperrors.IsInvalidInput(err):
			respondWithClientError(c, http.StatusBadRequest, "A mensagem não pode estar vazia.")
		case apperrors.IsMissingCredential(err):
			respondWithError(c, http.StatusInternalServerError, err,
				"Configuração do servidor incompleta.", h.logger)
		case apperrors.IsLLMCommunication(err):
			respondWithError(c, http.StatusBadGateway, err,
				"O serviço de geração de respostas está indisponível no momento.", h.logger)
		default:
			respondWithError(c, http.StatusInternalServerError, err,
				"Erro interno ao processar a mensagem.", h.logger)
		}
		return
	}

	c.JSON(http.StatusOK, ChatResponse{
		Response:     reply.Text,
		ResponseHTML: reply.HTML,
		Tokens:       reply.Tokens,
	})
}
