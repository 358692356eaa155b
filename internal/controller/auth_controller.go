package controller

import (
	"errors"

	"lexile_eval_backend/internal/model"
	"lexile_eval_backend/internal/service"
	"lexile_eval_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// swagger:model RegisterRequest
type RegisterRequest struct {
	StudentID     string `json:"studentId" binding:"required"`
	Password      string `json:"password" binding:"required,min=8"`
	Name          string `json:"name" binding:"required"`
	Age           int    `json:"age" binding:"required,gte=5,lte=18"`
	InitialLexile *int   `json:"initialLexile" binding:"omitempty,gte=0,lte=2000"`
}

// Register godoc
// @Summary Register a student
// @Description Creates a student account with a starting Lexile level and zero scores for every evaluation factor
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body RegisterRequest true "registration payload"
// @Success 201 {object} util.Response{data=object} "created"
// @Failure 400 {object} util.Response "invalid payload"
// @Failure 409 {object} util.Response "student id taken"
// @Router /api/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user := &model.User{
		StudentID: req.StudentID,
		Password:  req.Password,
		Name:      req.Name,
		Age:       req.Age,
	}

	if err := c.AuthService.Register(user, req.InitialLexile); err != nil {
		if errors.Is(err, util.ErrStudentIDTaken) {
			util.Conflict(ctx, "student id already registered")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{
		"id":          user.ID,
		"studentId":   user.StudentID,
		"lexileLevel": user.LexileLevel,
	})
}

// swagger:model LoginRequest
type LoginRequest struct {
	StudentID string `json:"studentId" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// Login godoc
// @Summary Log a student in
// @Description Verifies the credential and returns a JWT
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "login payload"
// @Success 200 {object} util.Response{data=object} "token"
// @Failure 400 {object} util.Response "invalid payload"
// @Failure 401 {object} util.Response "invalid credentials"
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.AuthService.Login(req.StudentID, req.Password)
	if err != nil {
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, gin.H{"token": token})
}
