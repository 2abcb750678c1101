package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"talentforge/hr-platform/internal/models"
)

type VacancyRepository interface {
	FindByID(id uuid.UUID) (*models.Vacancy, error)
	FindOpen(limit int) ([]models.Vacancy, error)
}

type vacancyRepository struct {
	db *gorm.DB
}

func NewVacancyRepository(db *gorm.DB) VacancyRepository {
	return &vacancyRepository{db: db}
}

// FindByID implements VacancyRepository.
func (r *vacancyRepository) FindByID(id uuid.UUID) (*models.Vacancy, error) {
	var vacancy models.Vacancy
	if err := r.db.Where("id = ?", id).First(&vacancy).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("vacancy not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find vacancy: %w", err)
	}
	return &vacancy, nil
}

// FindOpen implements VacancyRepository.
func (r *vacancyRepository) FindOpen(limit int) ([]models.Vacancy, error) {
	var vacancies []models.Vacancy
	err := r.db.
		Where("status = ?", models.VacancyOpen).
		Order("created_at DESC").
		Limit(limit).
		Find(&vacancies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load open vacancies: %w", err)
	}
	return vacancies, nil
}
