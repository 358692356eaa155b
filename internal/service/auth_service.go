package service

import (
	"errors"

	"lexile_eval_backend/internal/config"
	"lexile_eval_backend/internal/lexile"
	"lexile_eval_backend/internal/model"
	"lexile_eval_backend/internal/repository"
	"lexile_eval_backend/internal/util"
	"lexile_eval_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo   *repository.UserRepository
	FactorRepo *repository.FactorScoreRepository
	Cfg        *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, factorRepo *repository.FactorScoreRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo:   userRepo,
		FactorRepo: factorRepo,
		Cfg:        cfg,
	}
}

// Register creates a student account. Passwords are stored as bcrypt hashes
// only. When no initial Lexile level is supplied the age table provides the
// starting estimate. Every configured evaluation factor gets a zero score
// row alongside the account.
func (s *AuthService) Register(user *model.User, initialLexile *int) error {
	_, err := s.UserRepo.FindByStudentID(user.StudentID)
	if err == nil {
		return util.ErrStudentIDTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)

	if initialLexile != nil {
		user.LexileLevel = lexile.Clamp(*initialLexile)
	} else {
		user.LexileLevel = lexile.InitialForAge(user.Age)
	}

	if err := s.UserRepo.Create(user); err != nil {
		// A concurrent registration can slip past the existence check and
		// lose on the unique index instead.
		if repository.IsDuplicateKey(err) {
			return util.ErrStudentIDTaken
		}
		return err
	}

	if err := s.FactorRepo.CreateInitial(user.StudentID, s.Cfg.CurriculumView().EvaluationFactors); err != nil {
		logger.Log.Error("failed to create factor score rows",
			zap.String("studentId", user.StudentID), zap.Error(err))
		return err
	}

	return nil
}

// Login verifies the credential and returns a signed JWT.
func (s *AuthService) Login(studentID, password string) (string, error) {
	user, err := s.UserRepo.FindByStudentID(studentID)
	if err != nil {
		return "", util.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", util.ErrInvalidCredentials
	}

	if err := s.UserRepo.TouchLastLogin(studentID); err != nil {
		logger.Log.Warn("failed to record login time", zap.String("studentId", studentID), zap.Error(err))
	}

	return util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

func (s *AuthService) GetCurrentUser(c *gin.Context) *model.User {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		return nil
	}

	user, err := s.UserRepo.FindByID(claims.UserID)
	if err != nil {
		return nil
	}
	return user
}
