package controller

import (
	"errors"
	"net/http"

	"lexile_eval_backend/internal/config"
	"lexile_eval_backend/internal/lexile"
	"lexile_eval_backend/internal/service"
	"lexile_eval_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TestController struct {
	AuthService *service.AuthService
	TestService *service.TestService
	Cfg         *config.Config
}

func NewTestController(authService *service.AuthService, testService *service.TestService, cfg *config.Config) *TestController {
	return &TestController{
		AuthService: authService,
		TestService: testService,
		Cfg:         cfg,
	}
}

// GetOptions godoc
// @Summary List test configuration options
// @Description Configured topics, difficulty tiers and evaluation factors
// @Tags tests
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=object} "options"
// @Router /api/tests/options [get]
func (c *TestController) GetOptions(ctx *gin.Context) {
	curriculum := c.Cfg.CurriculumView()
	util.Success(ctx, gin.H{
		"topics":            curriculum.Topics,
		"difficultyTiers":   curriculum.DifficultyTiers,
		"evaluationFactors": curriculum.EvaluationFactors,
	})
}

// swagger:model GenerateTestRequest
type GenerateTestRequest struct {
	Topic      string `json:"topic" binding:"required"`
	Difficulty string `json:"difficulty" binding:"required"`
}

// GenerateTest godoc
// @Summary Generate a new reading test
// @Description Generates a story with ten questions at the difficulty tier's Lexile midpoint and opens a test attempt
// @Tags tests
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body GenerateTestRequest true "topic and difficulty"
// @Success 200 {object} util.Response{data=service.StartTestResult} "attempt"
// @Failure 400 {object} util.Response "unknown topic or difficulty"
// @Failure 502 {object} util.Response "generation failed"
// @Router /api/tests/generate [post]
func (c *TestController) GenerateTest(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req GenerateTestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.TestService.StartTest(ctx.Request.Context(), user, req.Topic, req.Difficulty)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrUnknownTopic), errors.Is(err, util.ErrUnknownDifficulty):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, service.ErrGenerationFailed):
			util.Error(ctx, http.StatusBadGateway, "Failed to generate content and questions. Please try again.")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// swagger:model SubmitAnswersRequest
type SubmitAnswersRequest struct {
	// Answers holds one letter per question, case-insensitive, "" for unanswered.
	Answers []string `json:"answers" binding:"required"`
}

// SubmitAnswers godoc
// @Summary Submit answers for an open test attempt
// @Description Grades the attempt, updates factor scores and the Lexile level, and returns the result
// @Tags tests
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   attemptId path string true "attempt id"
// @Param   body body SubmitAnswersRequest true "answers"
// @Success 200 {object} util.Response{data=service.TestResult} "result"
// @Failure 400 {object} util.Response "answer count mismatch"
// @Failure 404 {object} util.Response "attempt not found or expired"
// @Failure 409 {object} util.Response "already submitted"
// @Router /api/tests/{attemptId}/submit [post]
func (c *TestController) SubmitAnswers(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitAnswersRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.TestService.SubmitAnswers(ctx.Request.Context(), user, ctx.Param("attemptId"), req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, lexile.ErrAnswerCountMismatch):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrAttemptNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrTestAlreadySubmitted):
			util.Conflict(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// AbandonTest godoc
// @Summary Abandon the current test attempt
// @Tags tests
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response "abandoned"
// @Router /api/tests/current [delete]
func (c *TestController) AbandonTest(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.TestService.Abandon(ctx.Request.Context(), user.StudentID); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"flowState": service.StateDashboard})
}
