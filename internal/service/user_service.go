package service

import (
	"lexile_eval_backend/internal/lexile"
	"lexile_eval_backend/internal/model"
	"lexile_eval_backend/internal/repository"
)

type UserService struct {
	UserRepo    *repository.UserRepository
	FactorRepo  *repository.FactorScoreRepository
	SessionRepo *repository.TestSessionRepository
}

func NewUserService(userRepo *repository.UserRepository, factorRepo *repository.FactorScoreRepository, sessionRepo *repository.TestSessionRepository) *UserService {
	return &UserService{
		UserRepo:    userRepo,
		FactorRepo:  factorRepo,
		SessionRepo: sessionRepo,
	}
}

// Profile is the dashboard view of a student.
type Profile struct {
	StudentID    string              `json:"studentId"`
	Name         string              `json:"name"`
	Age          int                 `json:"age"`
	LexileLevel  int                 `json:"lexileLevel"`
	Band         lexile.Band         `json:"band"`
	ScaleDisplay string              `json:"scaleDisplay"`
	FactorScores map[string]int      `json:"factorScores"`
	RecentTests  []model.TestSession `json:"recentTests"`
}

const recentTestLimit = 10

func (s *UserService) GetProfile(user *model.User) (*Profile, error) {
	scores, err := s.FactorRepo.ListByStudent(user.StudentID)
	if err != nil {
		return nil, err
	}

	factorScores := make(map[string]int, len(scores))
	for _, score := range scores {
		factorScores[score.Factor] = score.Score
	}

	recent, err := s.SessionRepo.ListByStudent(user.StudentID, recentTestLimit)
	if err != nil {
		return nil, err
	}

	return &Profile{
		StudentID:    user.StudentID,
		Name:         user.Name,
		Age:          user.Age,
		LexileLevel:  user.LexileLevel,
		Band:         lexile.Classify(user.LexileLevel),
		ScaleDisplay: lexile.ScaleDisplay(user.LexileLevel),
		FactorScores: factorScores,
		RecentTests:  recent,
	}, nil
}
