package service

import (
	"learntrack_backend/internal/model"
	"learntrack_backend/internal/repository"
	"learntrack_backend/internal/util"
	"learntrack_backend/pkg/monitoring"
	"strconv"
)

// ProgressService is the progress ledger: the only writer of a user's
// completion state is that user.
type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	ContentRepo  *repository.ContentRepository
}

func NewProgressService(progressRepo *repository.ProgressRepository, contentRepo *repository.ContentRepository) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		ContentRepo:  contentRepo,
	}
}

// SetCompletion upserts the (user, content) ledger entry. Idempotent:
// setting the same value twice leaves the same observable state.
func (s *ProgressService) SetCompletion(userID, contentID uint, completed bool) (*model.ProgressEntry, error) {
	exists, err := s.ContentRepo.Exists(contentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrContentNotFound
	}

	entry, err := s.ProgressRepo.Upsert(userID, contentID, completed)
	if err != nil {
		return nil, err
	}

	monitoring.CompletionToggles.WithLabelValues(strconv.FormatBool(completed)).Inc()
	return entry, nil
}

// GetCompletionMap maps each requested content id to its completion state,
// defaulting to false. Ids the user never touched are not an error.
func (s *ProgressService) GetCompletionMap(userID uint, contentIDs []uint) (map[uint]bool, error) {
	return s.ProgressRepo.CompletionMap(userID, contentIDs)
}
