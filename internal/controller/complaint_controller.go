package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"litigator/internal/dao"
	"litigator/internal/model"
	"litigator/internal/service"
	"litigator/internal/utils"
	"litigator/pkgs/errcode"
	"litigator/pkgs/response"
)

type ComplaintController struct {
	complaintService service.ComplaintService
}

func NewComplaintController(complaintService service.ComplaintService) *ComplaintController {
	return &ComplaintController{complaintService: complaintService}
}

func (cc *ComplaintController) CreateSection(ctx *gin.Context) {
	var req model.CreateComplaintSectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(ctx, errcode.ParamBindError, "invalid section payload: "+err.Error())
		return
	}

	section, err := cc.complaintService.CreateSection(ctx.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, dao.ErrSectionExists) {
			response.ConflictError(ctx, errcode.ConflictError, "section already exists")
			return
		}
		response.InternalError(ctx, errcode.DatabaseError, "failed to create section")
		return
	}
	response.Success(ctx, section)
}

func (cc *ComplaintController) GetSection(ctx *gin.Context) {
	id := utils.StringToUint(ctx.Param("id"))
	if id == 0 {
		response.ParamError(ctx, errcode.ParamBindError, "invalid section id")
		return
	}

	section, err := cc.complaintService.GetSection(ctx.Request.Context(), id)
	if err != nil {
		response.NotFoundError(ctx, errcode.NotFoundError, "section not found")
		return
	}
	response.Success(ctx, section)
}

func (cc *ComplaintController) ListSections(ctx *gin.Context) {
	sections, err := cc.complaintService.ListSections(ctx.Request.Context())
	if err != nil {
		response.InternalError(ctx, errcode.DatabaseError, "failed to list sections")
		return
	}
	response.Success(ctx, sections)
}

func (cc *ComplaintController) DraftSection(ctx *gin.Context) {
	var req struct {
		Section string `json:"section" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(ctx, errcode.ParamBindError, "invalid draft payload")
		return
	}

	draft, err := cc.complaintService.DraftSection(ctx.Request.Context(), req.Section)
	if err != nil {
		response.InternalError(ctx, errcode.InternalServerError, "drafting failed: "+err.Error())
		return
	}
	response.Success(ctx, gin.H{"section": req.Section, "draft": draft})
}
