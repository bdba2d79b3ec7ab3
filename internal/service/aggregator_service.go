package service

import (
	"learntrack_backend/internal/model"
	"learntrack_backend/internal/repository"
	"learntrack_backend/internal/util"
)

// AggregatorService derives completion metrics from catalog and ledger
// snapshots. It holds no state of its own and recomputes on every call, so
// a completion toggle is immediately visible everywhere.
type AggregatorService struct {
	TopicRepo    *repository.TopicRepository
	ContentRepo  *repository.ContentRepository
	ProgressRepo *repository.ProgressRepository
}

func NewAggregatorService(topicRepo *repository.TopicRepository, contentRepo *repository.ContentRepository, progressRepo *repository.ProgressRepository) *AggregatorService {
	return &AggregatorService{
		TopicRepo:    topicRepo,
		ContentRepo:  contentRepo,
		ProgressRepo: progressRepo,
	}
}

// roundPercentage rounds half up to the nearest integer: 1/3 -> 33,
// 2/3 -> 67. Every percentage the API reports goes through here.
func roundPercentage(completed, total int) int {
	if total == 0 {
		return 0
	}
	return (100*completed + total/2) / total
}

// ComputeTopicProgress reports a user's completion over a topic. With
// recursive=true the rollup covers the topic and every descendant subtopic;
// otherwise only direct content counts.
func (s *AggregatorService) ComputeTopicProgress(userID, topicID uint, recursive bool) (*model.TopicProgress, error) {
	exists, err := s.TopicRepo.Exists(topicID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrTopicNotFound
	}

	topicIDs := []uint{topicID}
	if recursive {
		topicIDs, err = s.TopicRepo.SubtreeIDs(topicID)
		if err != nil {
			return nil, err
		}
	}

	contentIDs, err := s.ContentRepo.IDsByTopicIDs(topicIDs)
	if err != nil {
		return nil, err
	}

	completed, err := s.ProgressRepo.CountCompleted(userID, contentIDs)
	if err != nil {
		return nil, err
	}

	total := len(contentIDs)
	return &model.TopicProgress{
		CompletedCount: int(completed),
		TotalCount:     total,
		Percentage:     roundPercentage(int(completed), total),
	}, nil
}

// ComputeOverallProgress rolls up a user's completion across the whole
// catalog.
func (s *AggregatorService) ComputeOverallProgress(userID uint) (*model.OverallProgress, error) {
	total, err := s.ContentRepo.Count()
	if err != nil {
		return nil, err
	}

	completed, err := s.ProgressRepo.CountCompletedAll(userID)
	if err != nil {
		return nil, err
	}

	lastActivity, err := s.ProgressRepo.LastActivity(userID)
	if err != nil {
		return nil, err
	}

	return &model.OverallProgress{
		TotalCompleted: int(completed),
		TotalItems:     int(total),
		Percentage:     roundPercentage(int(completed), int(total)),
		LastActivity:   lastActivity,
	}, nil
}
