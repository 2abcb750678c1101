package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"talentforge/hr-platform/internal/models"
	"talentforge/hr-platform/internal/repositories"
	"talentforge/hr-platform/internal/services"
)

// userIDHeader carries the authenticated HR user's id, set by the gateway in
// front of this service.
const userIDHeader = "X-User-ID"

const maxListedSessions = 20

type AssistantHandler struct {
	assistant services.AssistantService
	chatRepo  repositories.ChatRepository
	logger    *zap.Logger
}

func NewAssistantHandler(
	assistant services.AssistantService,
	chatRepo repositories.ChatRepository,
	logger *zap.Logger,
) *AssistantHandler {
	return &AssistantHandler{
		assistant: assistant,
		chatRepo:  chatRepo,
		logger:    logger.Named("assistant_handler"),
	}
}

// HandleChat processes one HR assistant message. Provider failures never
// surface as 5xx: the assistant answers with a degraded reply instead.
func (h *AssistantHandler) HandleChat(c *fiber.Ctx) error {
	userID, err := requestUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var request models.AssistantChatRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}
	if strings.TrimSpace(request.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "message is required",
		})
	}

	response, err := h.assistant.HandleChatMessage(c.UserContext(), userID, request)
	if err != nil {
		h.logger.Error("assistant chat failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to process chat message",
		})
	}

	return c.JSON(response)
}

// HandleAnalytics returns candidate-pool analytics for HR dashboards.
func (h *AssistantHandler) HandleAnalytics(c *fiber.Ctx) error {
	analytics, err := h.assistant.Analytics(c.UserContext())
	if err != nil {
		h.logger.Error("analytics failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to compute analytics",
		})
	}
	return c.JSON(analytics)
}

// HandleListSessions returns the caller's recent chat sessions.
func (h *AssistantHandler) HandleListSessions(c *fiber.Ctx) error {
	userID, err := requestUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	sessions, err := h.chatRepo.FindSessionsByUser(userID, maxListedSessions)
	if err != nil {
		h.logger.Error("failed to list sessions", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load chat sessions",
		})
	}

	return c.JSON(fiber.Map{"sessions": sessions})
}

// HandleSessionMessages returns the message history of one session, owner only.
func (h *AssistantHandler) HandleSessionMessages(c *fiber.Ctx) error {
	userID, err := requestUserID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid session id",
		})
	}

	if _, err := h.chatRepo.FindSession(sessionID, userID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "chat session not found",
		})
	}

	messages, err := h.chatRepo.FindMessages(sessionID)
	if err != nil {
		h.logger.Error("failed to load messages", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to load chat messages",
		})
	}

	return c.JSON(fiber.Map{"messages": messages})
}

func requestUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw := c.Get(userIDHeader)
	if raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "missing "+userIDHeader+" header")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid "+userIDHeader+" header")
	}
	return userID, nil
}
