package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"litigator/pkgs/errcode"
)

// Response unified API envelope
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// PageData paged list payload
type PageData struct {
	List  any   `json:"list"`
	Total int64 `json:"total"`
}

func Success(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusOK, Response{
		Code:    errcode.Success,
		Message: "success",
		Data:    data,
	})
}

func SuccessWithMessage(ctx *gin.Context, message string, data any) {
	ctx.JSON(http.StatusOK, Response{
		Code:    errcode.Success,
		Message: message,
		Data:    data,
	})
}

func PageSuccess(ctx *gin.Context, list any, total int64) {
	ctx.JSON(http.StatusOK, Response{
		Code:    errcode.Success,
		Message: "success",
		Data:    PageData{List: list, Total: total},
	})
}

func ParamError(ctx *gin.Context, code int, message string) {
	ctx.JSON(http.StatusBadRequest, Response{Code: code, Message: message})
}

func UnauthorizedError(ctx *gin.Context, code int, message string) {
	ctx.JSON(http.StatusUnauthorized, Response{Code: code, Message: message})
}

func NotFoundError(ctx *gin.Context, code int, message string) {
	ctx.JSON(http.StatusNotFound, Response{Code: code, Message: message})
}

func ConflictError(ctx *gin.Context, code int, message string) {
	ctx.JSON(http.StatusConflict, Response{Code: code, Message: message})
}

func InternalError(ctx *gin.Context, code int, message string) {
	ctx.JSON(http.StatusInternalServerError, Response{Code: code, Message: message})
}
