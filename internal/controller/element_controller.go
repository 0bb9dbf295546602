package controller

import (
	"github.com/gin-gonic/gin"

	"litigator/internal/model"
	"litigator/internal/service"
	"litigator/internal/utils"
	"litigator/pkgs/errcode"
	"litigator/pkgs/response"
)

type ElementController struct {
	elementService service.ElementService
}

func NewElementController(elementService service.ElementService) *ElementController {
	return &ElementController{elementService: elementService}
}

func (ec *ElementController) Create(ctx *gin.Context) {
	var req model.CreateElementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(ctx, errcode.ParamBindError, "invalid element payload: "+err.Error())
		return
	}

	element, err := ec.elementService.CreateElement(ctx.Request.Context(), &req)
	if err != nil {
		response.InternalError(ctx, errcode.DatabaseError, "failed to create element")
		return
	}
	response.Success(ctx, element)
}

func (ec *ElementController) ListCauses(ctx *gin.Context) {
	causes, err := ec.elementService.ListCauses(ctx.Request.Context())
	if err != nil {
		response.InternalError(ctx, errcode.DatabaseError, "failed to list causes")
		return
	}
	response.Success(ctx, causes)
}

func (ec *ElementController) ListElements(ctx *gin.Context) {
	causeID := utils.StringToUint(ctx.DefaultQuery("cause_id", "0"))
	elements, err := ec.elementService.ListElements(ctx.Request.Context(), causeID)
	if err != nil {
		response.InternalError(ctx, errcode.DatabaseError, "failed to list elements")
		return
	}
	response.Success(ctx, elements)
}

func (ec *ElementController) CompareFacts(ctx *gin.Context) {
	var req model.CompareFactsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(ctx, errcode.ParamBindError, "invalid comparison payload")
		return
	}

	matches, err := ec.elementService.CompareFacts(ctx.Request.Context(), &req)
	if err != nil {
		response.InternalError(ctx, errcode.InternalServerError, "comparison failed: "+err.Error())
		return
	}
	response.Success(ctx, matches)
}

func (ec *ElementController) Matrix(ctx *gin.Context) {
	matrix, err := ec.elementService.Matrix(ctx.Request.Context())
	if err != nil {
		response.InternalError(ctx, errcode.DatabaseError, "failed to build matrix")
		return
	}
	response.Success(ctx, matrix)
}
