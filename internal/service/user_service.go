package service

import (
	"errors"
	"learntrack_backend/internal/config"
	"learntrack_backend/internal/model"
	"learntrack_backend/internal/repository"
	"learntrack_backend/internal/util"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	UserRepo   *repository.UserRepository
	Aggregator *AggregatorService
	Cfg        *config.Config
}

func NewUserService(userRepo *repository.UserRepository, aggregator *AggregatorService, cfg *config.Config) *UserService {
	return &UserService{
		UserRepo:   userRepo,
		Aggregator: aggregator,
		Cfg:        cfg,
	}
}

func (s *UserService) GetByID(id uint) (*model.User, error) {
	user, err := s.UserRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

type UpdateProfileInput struct {
	Name *string
	Bio  *string
}

func (s *UserService) UpdateProfile(id uint, input UpdateProfileInput) (*model.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}

	if err := s.UserRepo.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetAvatar(id uint, url string) (*model.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	user.Avatar = url
	if err := s.UserRepo.Save(user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the old password and re-issues a token so stale
// sessions stop working.
func (s *UserService) ChangePassword(id uint, oldPassword, newPassword string) (string, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return "", util.ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	user.Password = string(hashed)
	if err := s.UserRepo.Save(user); err != nil {
		return "", err
	}

	return util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

// UserWithProgress is the admin listing row: account plus overall rollup.
type UserWithProgress struct {
	User           model.User `json:"user"`
	CompletedItems int        `json:"completed_items"`
	TotalItems     int        `json:"total_items"`
	Percentage     int        `json:"progress_percentage"`
	LastActivity   *time.Time `json:"last_activity"`
}

func (s *UserService) ListWithProgress() ([]UserWithProgress, error) {
	users, err := s.UserRepo.List()
	if err != nil {
		return nil, err
	}

	rows := make([]UserWithProgress, 0, len(users))
	for _, user := range users {
		overall, err := s.Aggregator.ComputeOverallProgress(user.ID)
		if err != nil {
			return nil, err
		}
		rows = append(rows, UserWithProgress{
			User:           user,
			CompletedItems: overall.TotalCompleted,
			TotalItems:     overall.TotalItems,
			Percentage:     overall.Percentage,
			LastActivity:   overall.LastActivity,
		})
	}
	return rows, nil
}
