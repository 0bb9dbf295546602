package controller

import (
	"context"
	"io"
	"log"

	"github.com/gin-gonic/gin"

	"litigator/internal/service"
	"litigator/internal/utils"
	"litigator/pkgs/errcode"
	"litigator/pkgs/response"
)

// 50 MB upload ceiling for a single exhibit.
const maxExhibitSize = 50 << 20

type EvidenceController struct {
	evidenceService service.EvidenceService
}

func NewEvidenceController(evidenceService service.EvidenceService) *EvidenceController {
	return &EvidenceController{evidenceService: evidenceService}
}

// Upload accepts a multipart file plus an optional fact_id form field, stores
// it, and kicks off indexing in the background.
func (ec *EvidenceController) Upload(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		response.ParamError(ctx, errcode.ParamBindError, "missing file")
		return
	}
	if fileHeader.Size > maxExhibitSize {
		response.ParamError(ctx, errcode.ParamBindError, "file too large")
		return
	}

	var factID *uint
	if raw := ctx.PostForm("fact_id"); raw != "" {
		id := utils.StringToUint(raw)
		if id == 0 {
			response.ParamError(ctx, errcode.ParamBindError, "invalid fact_id")
			return
		}
		factID = &id
	}

	f, err := fileHeader.Open()
	if err != nil {
		response.InternalError(ctx, errcode.StorageError, "failed to read upload")
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		response.InternalError(ctx, errcode.StorageError, "failed to read upload")
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	exhibit, err := ec.evidenceService.Upload(ctx.Request.Context(), factID, fileHeader.Filename, mimeType, data)
	if err != nil {
		response.InternalError(ctx, errcode.StorageError, "failed to store exhibit")
		return
	}

	// Index without holding the upload open.
	go func(id string) {
		if err := ec.evidenceService.Process(context.Background(), id); err != nil {
			log.Printf("[Evidence] indexing %s failed: %v", id, err)
		}
	}(exhibit.ID)

	response.Success(ctx, exhibit)
}

func (ec *EvidenceController) Reprocess(ctx *gin.Context) {
	id := ctx.Param("id")
	if err := ec.evidenceService.Process(ctx.Request.Context(), id); err != nil {
		response.InternalError(ctx, errcode.RetrievalError, "failed to index exhibit: "+err.Error())
		return
	}
	response.SuccessWithMessage(ctx, "indexed", nil)
}

func (ec *EvidenceController) Get(ctx *gin.Context) {
	exhibit, err := ec.evidenceService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.NotFoundError(ctx, errcode.NotFoundError, "exhibit not found")
		return
	}
	response.Success(ctx, exhibit)
}

func (ec *EvidenceController) Page(ctx *gin.Context) {
	page, size, err := utils.ParsePaginationParams(ctx)
	if err != nil {
		response.ParamError(ctx, errcode.ParamBindError, "invalid pagination params")
		return
	}

	exhibits, total, err := ec.evidenceService.Page(ctx.Request.Context(), page, size)
	if err != nil {
		response.InternalError(ctx, errcode.DatabaseError, "failed to list exhibits")
		return
	}
	response.PageSuccess(ctx, exhibits, total)
}

func (ec *EvidenceController) ListByFact(ctx *gin.Context) {
	factID := utils.StringToUint(ctx.Param("id"))
	if factID == 0 {
		response.ParamError(ctx, errcode.ParamBindError, "invalid fact id")
		return
	}

	exhibits, err := ec.evidenceService.ListByFactID(ctx.Request.Context(), factID)
	if err != nil {
		response.InternalError(ctx, errcode.DatabaseError, "failed to list exhibits")
		return
	}
	response.Success(ctx, exhibits)
}

func (ec *EvidenceController) Delete(ctx *gin.Context) {
	if err := ec.evidenceService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		response.InternalError(ctx, errcode.StorageError, "failed to delete exhibit")
		return
	}
	response.SuccessWithMessage(ctx, "deleted", nil)
}

func (ec *EvidenceController) FileURL(ctx *gin.Context) {
	fileURL, err := ec.evidenceService.FileURL(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.NotFoundError(ctx, errcode.NotFoundError, "exhibit not found")
		return
	}
	response.Success(ctx, gin.H{"url": fileURL})
}
