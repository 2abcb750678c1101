package services

import (
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"talentforge/hr-platform/internal/models"
	"talentforge/hr-platform/internal/repositories"
)

// maxAboutChars bounds how much extracted resume text lands in the profile
// self-description.
const maxAboutChars = 4000

// ProfileService covers the one profile mutation the search core owns:
// importing a resume into the self-description. The cached profile vector is
// left alone; the refresher notices the bumped updated_at on its next sweep.
type ProfileService interface {
	ImportResume(userID uuid.UUID, file *multipart.FileHeader) (*models.ResumeImportResponse, error)
}

type profileService struct {
	userRepo  repositories.UserRepository
	storage   ResumeStorage
	extractor ResumeTextExtractor
	logger    *zap.Logger
}

func NewProfileService(
	userRepo repositories.UserRepository,
	storage ResumeStorage,
	extractor ResumeTextExtractor,
	logger *zap.Logger,
) ProfileService {
	return &profileService{
		userRepo:  userRepo,
		storage:   storage,
		extractor: extractor,
		logger:    logger.Named("profile"),
	}
}

// ImportResume implements ProfileService. The extracted text fills the
// candidate's self-description only when it is still empty; a hand-written
// About is never overwritten by an upload.
func (s *profileService) ImportResume(userID uuid.UUID, file *multipart.FileHeader) (*models.ResumeImportResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user.Role != models.RoleCandidate {
		return nil, fmt.Errorf("resume import is only available for candidate profiles")
	}

	filename, path, err := s.storage.SaveResume(file)
	if err != nil {
		return nil, err
	}

	text, err := s.extractor.ExtractText(path)
	if err != nil {
		if removeErr := s.storage.Delete(filename); removeErr != nil {
			s.logger.Warn("failed to remove unreadable resume", zap.String("filename", filename), zap.Error(removeErr))
		}
		return nil, err
	}

	aboutUpdated := false
	if strings.TrimSpace(user.About) == "" {
		about := text
		if len(about) > maxAboutChars {
			about = about[:maxAboutChars]
		}
		if err := s.userRepo.UpdateAbout(userID, about); err != nil {
			return nil, err
		}
		aboutUpdated = true
	}

	s.logger.Info("resume imported",
		zap.String("user_id", userID.String()),
		zap.String("filename", filename),
		zap.Int("extracted_chars", len(text)),
		zap.Bool("about_updated", aboutUpdated))

	return &models.ResumeImportResponse{
		UserID:         userID,
		Filename:       filename,
		ExtractedChars: len(text),
		AboutUpdated:   aboutUpdated,
	}, nil
}
