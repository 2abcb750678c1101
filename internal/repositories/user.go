package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"talentforge/hr-platform/internal/models"
)

// UserRepository is the search core's read-mostly view of the user directory.
// Profile management lives elsewhere; the only write here is the narrow
// self-description update used by resume import.
type UserRepository interface {
	FindByID(id uuid.UUID) (*models.User, error)
	FindActiveCandidates() ([]models.User, error)
	FindCandidatesUpdatedSince(since time.Time, limit int) ([]models.User, error)
	CountCandidates() (int64, error)
	CountCandidatesWithSkills() (int64, error)
	UpdateAbout(id uuid.UUID, about string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// FindByID implements UserRepository.
func (r *userRepository) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user not found: %w", err)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// FindActiveCandidates implements UserRepository. The base search population:
// active accounts with the candidate role, HR and admin accounts excluded.
func (r *userRepository) FindActiveCandidates() ([]models.User, error) {
	var users []models.User
	err := r.db.
		Where("role = ?", models.RoleCandidate).
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate population: %w", err)
	}
	return users, nil
}

// FindCandidatesUpdatedSince implements UserRepository.
func (r *userRepository) FindCandidatesUpdatedSince(since time.Time, limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Where("role = ?", models.RoleCandidate).
		Where("is_active = ?", true).
		Where("updated_at > ?", since).
		Order("updated_at ASC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load updated candidates: %w", err)
	}
	return users, nil
}

// CountCandidates implements UserRepository.
func (r *userRepository) CountCandidates() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("role = ?", models.RoleCandidate).
		Where("is_active = ?", true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count candidates: %w", err)
	}
	return count, nil
}

// CountCandidatesWithSkills implements UserRepository.
func (r *userRepository) CountCandidatesWithSkills() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("role = ?", models.RoleCandidate).
		Where("is_active = ?", true).
		Where("programming_languages IS NOT NULL").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count filled profiles: %w", err)
	}
	return count, nil
}

// UpdateAbout implements UserRepository.
func (r *userRepository) UpdateAbout(id uuid.UUID, about string) error {
	result := r.db.Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"about":      about,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update about: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user not found")
	}
	return nil
}
