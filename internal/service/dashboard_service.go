package service

import (
	"context"
	"encoding/json"
	"learntrack_backend/internal/model"
	"learntrack_backend/internal/repository"
	"learntrack_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	dashboardCacheKey = "admin:dashboard"
	userStatsCacheKey = "admin:user_stats"
	statsCacheTTL     = 60 * time.Second
)

// DashboardService serves the administrator statistics views. The figures
// are presentation-only, so a short Redis TTL is acceptable here; learner
// facing progress is never cached.
type DashboardService struct {
	UserRepo     *repository.UserRepository
	TopicRepo    *repository.TopicRepository
	ContentRepo  *repository.ContentRepository
	ProgressRepo *repository.ProgressRepository
	Redis        *redis.Client
}

func NewDashboardService(userRepo *repository.UserRepository, topicRepo *repository.TopicRepository, contentRepo *repository.ContentRepository, progressRepo *repository.ProgressRepository, rdb *redis.Client) *DashboardService {
	return &DashboardService{
		UserRepo:     userRepo,
		TopicRepo:    topicRepo,
		ContentRepo:  contentRepo,
		ProgressRepo: progressRepo,
		Redis:        rdb,
	}
}

type DashboardStats struct {
	TotalUsers    int64           `json:"total_users"`
	ActiveUsers   int64           `json:"active_users"`
	TotalTopics   int64           `json:"total_topics"`
	TotalContent  int64           `json:"total_content"`
	RecentUsers   []model.User    `json:"recent_users"`
	RecentContent []model.Content `json:"recent_content"`
}

func (s *DashboardService) GetDashboard(ctx context.Context) (*DashboardStats, error) {
	var cached DashboardStats
	if s.readCache(ctx, dashboardCacheKey, &cached) {
		return &cached, nil
	}

	totalUsers, err := s.UserRepo.Count()
	if err != nil {
		return nil, err
	}
	activeUsers, err := s.UserRepo.CountActive()
	if err != nil {
		return nil, err
	}
	totalTopics, err := s.TopicRepo.Count()
	if err != nil {
		return nil, err
	}
	totalContent, err := s.ContentRepo.Count()
	if err != nil {
		return nil, err
	}
	recentUsers, err := s.UserRepo.FindRecent(5)
	if err != nil {
		return nil, err
	}
	recentContent, err := s.ContentRepo.FindRecent(5)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalUsers:    totalUsers,
		ActiveUsers:   activeUsers,
		TotalTopics:   totalTopics,
		TotalContent:  totalContent,
		RecentUsers:   recentUsers,
		RecentContent: recentContent,
	}
	s.writeCache(ctx, dashboardCacheKey, stats)
	return stats, nil
}

type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

type UserStats struct {
	RegistrationByMonth []MonthCount `json:"registration_by_month"`
	TotalProgressItems  int64        `json:"total_progress_items"`
	CompletedItems      int64        `json:"completed_items"`
	CompletionRate      float64      `json:"completion_rate"`
	ActiveUsers30d      int64        `json:"active_users_30d"`
}

func (s *DashboardService) GetUserStats(ctx context.Context) (*UserStats, error) {
	var cached UserStats
	if s.readCache(ctx, userStatsCacheKey, &cached) {
		return &cached, nil
	}

	now := time.Now()

	regTimes, err := s.UserRepo.RegistrationTimesSince(now.AddDate(0, -6, 0))
	if err != nil {
		return nil, err
	}
	byMonth := bucketByMonth(regTimes)

	totalEntries, err := s.ProgressRepo.CountEntries()
	if err != nil {
		return nil, err
	}
	completedEntries, err := s.ProgressRepo.CountCompletedEntries()
	if err != nil {
		return nil, err
	}

	var completionRate float64
	if totalEntries > 0 {
		completionRate = float64(completedEntries) / float64(totalEntries) * 100
	}

	active30d, err := s.UserRepo.CountSeenSince(now.AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}

	stats := &UserStats{
		RegistrationByMonth: byMonth,
		TotalProgressItems:  totalEntries,
		CompletedItems:      completedEntries,
		CompletionRate:      completionRate,
		ActiveUsers30d:      active30d,
	}
	s.writeCache(ctx, userStatsCacheKey, stats)
	return stats, nil
}

func bucketByMonth(times []time.Time) []MonthCount {
	counts := make(map[string]int)
	var order []string
	for _, t := range times {
		month := t.Format("2006-01")
		if _, seen := counts[month]; !seen {
			order = append(order, month)
		}
		counts[month]++
	}

	result := make([]MonthCount, 0, len(order))
	for _, month := range order {
		result = append(result, MonthCount{Month: month, Count: counts[month]})
	}
	return result
}

// readCache and writeCache degrade to a cache miss when Redis is down; the
// dashboard must still render from the database.
func (s *DashboardService) readCache(ctx context.Context, key string, dest interface{}) bool {
	if s.Redis == nil {
		return false
	}
	raw, err := s.Redis.Get(ctx, key).Result()
	if err != nil {
		return false
	}
	return json.Unmarshal([]byte(raw), dest) == nil
}

func (s *DashboardService) writeCache(ctx context.Context, key string, value interface{}) {
	if s.Redis == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.Redis.Set(ctx, key, raw, statsCacheTTL).Err(); err != nil {
		logger.Log.Warn("stats cache write failed", zap.String("key", key), zap.Error(err))
	}
}
