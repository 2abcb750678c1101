package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"talentforge/hr-platform/internal/services"
)

type ProfileHandler struct {
	profileService services.ProfileService
	maxFileSize    int64
	logger         *zap.Logger
}

func NewProfileHandler(profileService services.ProfileService, maxFileSize int64, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		maxFileSize:    maxFileSize,
		logger:         logger.Named("profile_handler"),
	}
}

// HandleResumeImport accepts a PDF resume upload and folds its text into the
// candidate's profile.
func (h *ProfileHandler) HandleResumeImport(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid user id",
		})
	}

	file, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume file is required",
		})
	}
	if file.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("resume too large, max size: %d bytes", h.maxFileSize),
		})
	}

	result, err := h.profileService.ImportResume(userID, file)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "user not found",
			})
		}
		h.logger.Error("resume import failed", zap.String("user_id", userID.String()), zap.Error(err))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to import resume: %v", err),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}
