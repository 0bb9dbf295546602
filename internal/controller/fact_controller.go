package controller

import (
	"github.com/gin-gonic/gin"

	"litigator/internal/model"
	"litigator/internal/service"
	"litigator/internal/utils"
	"litigator/pkgs/errcode"
	"litigator/pkgs/response"
)

type FactController struct {
	factService service.FactService
}

func NewFactController(factService service.FactService) *FactController {
	return &FactController{factService: factService}
}

func (fc *FactController) Create(ctx *gin.Context) {
	var req model.CreateFactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(ctx, errcode.ParamBindError, "invalid fact payload: "+err.Error())
		return
	}

	fact, err := fc.factService.Create(ctx.Request.Context(), &req)
	if err != nil {
		response.InternalError(ctx, errcode.DatabaseError, "failed to create fact")
		return
	}
	response.Success(ctx, fact)
}

func (fc *FactController) Update(ctx *gin.Context) {
	id := utils.StringToUint(ctx.Param("id"))
	if id == 0 {
		response.ParamError(ctx, errcode.ParamBindError, "invalid fact id")
		return
	}

	var req model.UpdateFactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(ctx, errcode.ParamBindError, "invalid fact payload")
		return
	}

	fact, err := fc.factService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		response.NotFoundError(ctx, errcode.NotFoundError, "fact not found")
		return
	}
	response.Success(ctx, fact)
}

func (fc *FactController) Delete(ctx *gin.Context) {
	id := utils.StringToUint(ctx.Param("id"))
	if id == 0 {
		response.ParamError(ctx, errcode.ParamBindError, "invalid fact id")
		return
	}

	if err := fc.factService.Delete(ctx.Request.Context(), id); err != nil {
		response.InternalError(ctx, errcode.DatabaseError, "failed to delete fact")
		return
	}
	response.SuccessWithMessage(ctx, "deleted", nil)
}

func (fc *FactController) Get(ctx *gin.Context) {
	id := utils.StringToUint(ctx.Param("id"))
	if id == 0 {
		response.ParamError(ctx, errcode.ParamBindError, "invalid fact id")
		return
	}

	fact, err := fc.factService.Get(ctx.Request.Context(), id)
	if err != nil {
		response.NotFoundError(ctx, errcode.NotFoundError, "fact not found")
		return
	}
	response.Success(ctx, fact)
}

func (fc *FactController) List(ctx *gin.Context) {
	facts, err := fc.factService.List(ctx.Request.Context())
	if err != nil {
		response.InternalError(ctx, errcode.DatabaseError, "failed to list facts")
		return
	}
	response.Success(ctx, facts)
}

func (fc *FactController) LinkCauses(ctx *gin.Context) {
	id := utils.StringToUint(ctx.Param("id"))
	if id == 0 {
		response.ParamError(ctx, errcode.ParamBindError, "invalid fact id")
		return
	}

	var req model.LinkCausesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(ctx, errcode.ParamBindError, "invalid link payload")
		return
	}

	res, err := fc.factService.LinkCauses(ctx.Request.Context(), id, req.CauseIDs)
	if err != nil {
		response.InternalError(ctx, errcode.DatabaseError, "failed to link causes")
		return
	}
	response.Success(ctx, res)
}
