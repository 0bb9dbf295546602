package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"litigator/internal/model"
	"litigator/internal/service"
	"litigator/internal/utils"
	"litigator/pkgs/errcode"
	"litigator/pkgs/response"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{userService: userService}
}

func (uc *UserController) Register(ctx *gin.Context) {
	var req model.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(ctx, errcode.ParamBindError, "invalid registration payload: "+err.Error())
		return
	}

	user, err := uc.userService.Register(ctx.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			response.ConflictError(ctx, errcode.ConflictError, "username already taken")
			return
		}
		response.InternalError(ctx, errcode.InternalServerError, "registration failed")
		return
	}

	response.SuccessWithMessage(ctx, "registered", gin.H{"id": user.ID, "username": user.Username})
}

func (uc *UserController) Login(ctx *gin.Context) {
	var req model.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(ctx, errcode.ParamBindError, "invalid login payload")
		return
	}

	token, user, err := uc.userService.Login(ctx.Request.Context(), &req)
	if err != nil {
		response.UnauthorizedError(ctx, errcode.UnauthorizedError, "invalid username or password")
		return
	}

	response.Success(ctx, gin.H{
		"token":    token,
		"id":       user.ID,
		"username": user.Username,
	})
}

func (uc *UserController) Me(ctx *gin.Context) {
	userID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		response.UnauthorizedError(ctx, errcode.UnauthorizedError, "user not authenticated")
		return
	}

	user, err := uc.userService.GetByID(ctx.Request.Context(), userID)
	if err != nil {
		response.NotFoundError(ctx, errcode.NotFoundError, "user not found")
		return
	}
	response.Success(ctx, user)
}
