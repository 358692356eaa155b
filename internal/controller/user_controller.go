package controller

import (
	"lexile_eval_backend/internal/service"
	"lexile_eval_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	AuthService *service.AuthService
	UserService *service.UserService
	TestService *service.TestService
}

func NewUserController(authService *service.AuthService, userService *service.UserService, testService *service.TestService) *UserController {
	return &UserController{
		AuthService: authService,
		UserService: userService,
		TestService: testService,
	}
}

// GetProfile godoc
// @Summary Get the current student's dashboard
// @Description Name, age, Lexile level with band and scale, per-factor scores, recent tests and the current test flow state
// @Tags profile
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.Profile} "profile"
// @Failure 401 {object} util.Response "unauthorized"
// @Router /api/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	profile, err := c.UserService.GetProfile(user)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"profile":   profile,
		"flowState": c.TestService.FlowStateFor(ctx.Request.Context(), user.StudentID),
	})
}
