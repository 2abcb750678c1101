package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"talentforge/hr-platform/internal/models"
	"talentforge/hr-platform/internal/repositories"
)

// VacancySearchService runs the candidate search pipeline against a stored
// vacancy instead of an ad-hoc request body.
type VacancySearchService interface {
	SearchCandidatesForVacancy(ctx context.Context, vacancyID uuid.UUID) (*models.CandidateSearchResponse, error)
}

type vacancySearchService struct {
	vacancyRepo repositories.VacancyRepository
	search      SearchService
	logger      *zap.Logger
}

func NewVacancySearchService(vacancyRepo repositories.VacancyRepository, search SearchService, logger *zap.Logger) VacancySearchService {
	return &vacancySearchService{
		vacancyRepo: vacancyRepo,
		search:      search,
		logger:      logger.Named("vacancy_search"),
	}
}

// SearchCandidatesForVacancy implements VacancySearchService.
func (s *vacancySearchService) SearchCandidatesForVacancy(ctx context.Context, vacancyID uuid.UUID) (*models.CandidateSearchResponse, error) {
	vacancy, err := s.vacancyRepo.FindByID(vacancyID)
	if err != nil {
		return nil, err
	}

	request := models.CandidateSearchRequest{
		JobTitle:        vacancy.Title,
		JobDescription:  vacancy.Description,
		RequiredSkills:  vacancy.RequiredSkills,
		ExperienceLevel: vacancy.ExperienceLevel,
	}
	request.ApplyDefaults()

	s.logger.Info("searching candidates for vacancy",
		zap.String("vacancy_id", vacancyID.String()), zap.String("title", vacancy.Title))

	return s.search.SearchCandidates(ctx, request)
}
