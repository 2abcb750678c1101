package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"talentforge/hr-platform/internal/models"
	"talentforge/hr-platform/internal/services"
)

type SearchHandler struct {
	searchService services.SearchService
	vacancySearch services.VacancySearchService
	logger        *zap.Logger
}

func NewSearchHandler(
	searchService services.SearchService,
	vacancySearch services.VacancySearchService,
	logger *zap.Logger,
) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		vacancySearch: vacancySearch,
		logger:        logger.Named("search_handler"),
	}
}

// HandleSearchCandidates runs an ad-hoc candidate search from a request body.
func (h *SearchHandler) HandleSearchCandidates(c *fiber.Ctx) error {
	var request models.CandidateSearchRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	if strings.TrimSpace(request.JobTitle) == "" || strings.TrimSpace(request.JobDescription) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_title and job_description are required",
		})
	}

	result, err := h.searchService.SearchCandidates(c.UserContext(), request)
	if err != nil {
		return h.searchError(c, err)
	}

	return c.JSON(result)
}

// HandleSearchForVacancy runs the search pipeline against a stored vacancy.
func (h *SearchHandler) HandleSearchForVacancy(c *fiber.Ctx) error {
	vacancyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid vacancy id",
		})
	}

	result, err := h.vacancySearch.SearchCandidatesForVacancy(c.UserContext(), vacancyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "vacancy not found",
			})
		}
		return h.searchError(c, err)
	}

	return c.JSON(result)
}

// searchError maps pipeline failures to HTTP statuses. Orchestration failures
// (population load, job embedding) are upstream hiccups the client may retry.
func (h *SearchHandler) searchError(c *fiber.Ctx, err error) error {
	h.logger.Error("candidate search failed", zap.Error(err))

	if errors.Is(err, services.ErrOrchestrationFailure) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error":     "search is temporarily unavailable, please retry",
			"retryable": true,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "candidate search failed",
	})
}
