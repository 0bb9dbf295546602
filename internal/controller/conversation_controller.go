package controller

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"litigator/internal/agent"
	"litigator/internal/model"
	"litigator/internal/service"
	"litigator/internal/utils"
	"litigator/pkgs/errcode"
	"litigator/pkgs/response"
)

type ConversationController struct {
	historyService service.HistoryService
	orchestrator   *agent.Orchestrator
}

func NewConversationController(historyService service.HistoryService, orchestrator *agent.Orchestrator) *ConversationController {
	return &ConversationController{historyService: historyService, orchestrator: orchestrator}
}

func (cc *ConversationController) Create(ctx *gin.Context) {
	userID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		response.UnauthorizedError(ctx, errcode.UnauthorizedError, "user not authenticated")
		return
	}

	var req model.CreateConvRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(ctx, errcode.ParamBindError, "invalid conversation payload")
		return
	}

	conv, err := cc.historyService.CreateConversation(ctx.Request.Context(), userID, req.Title)
	if err != nil {
		response.InternalError(ctx, errcode.DatabaseError, "failed to create conversation")
		return
	}
	response.Success(ctx, conv)
}

func (cc *ConversationController) Page(ctx *gin.Context) {
	userID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		response.UnauthorizedError(ctx, errcode.UnauthorizedError, "user not authenticated")
		return
	}

	page, size, err := utils.ParsePaginationParams(ctx)
	if err != nil {
		response.ParamError(ctx, errcode.ParamBindError, "invalid pagination params")
		return
	}

	convs, total, err := cc.historyService.PageConversations(ctx.Request.Context(), userID, page, size)
	if err != nil {
		response.InternalError(ctx, errcode.DatabaseError, "failed to list conversations")
		return
	}
	response.PageSuccess(ctx, convs, total)
}

func (cc *ConversationController) Delete(ctx *gin.Context) {
	userID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		response.UnauthorizedError(ctx, errcode.UnauthorizedError, "user not authenticated")
		return
	}

	if err := cc.historyService.DeleteConversation(ctx.Request.Context(), userID, ctx.Param("id")); err != nil {
		response.NotFoundError(ctx, errcode.NotFoundError, "conversation not found")
		return
	}
	response.SuccessWithMessage(ctx, "deleted", nil)
}

func (cc *ConversationController) Archive(ctx *gin.Context) {
	userID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		response.UnauthorizedError(ctx, errcode.UnauthorizedError, "user not authenticated")
		return
	}

	if err := cc.historyService.ArchiveConversation(ctx.Request.Context(), userID, ctx.Param("id")); err != nil {
		response.NotFoundError(ctx, errcode.NotFoundError, "conversation not found")
		return
	}
	response.SuccessWithMessage(ctx, "archived", nil)
}

func (cc *ConversationController) Pin(ctx *gin.Context) {
	userID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		response.UnauthorizedError(ctx, errcode.UnauthorizedError, "user not authenticated")
		return
	}

	if err := cc.historyService.PinConversation(ctx.Request.Context(), userID, ctx.Param("id")); err != nil {
		response.NotFoundError(ctx, errcode.NotFoundError, "conversation not found")
		return
	}
	response.SuccessWithMessage(ctx, "pinned", nil)
}

func (cc *ConversationController) Messages(ctx *gin.Context) {
	userID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		response.UnauthorizedError(ctx, errcode.UnauthorizedError, "user not authenticated")
		return
	}

	msgs, err := cc.historyService.ListMessages(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		response.NotFoundError(ctx, errcode.NotFoundError, "conversation not found")
		return
	}
	response.Success(ctx, msgs)
}

type agentChatRequest struct {
	ConvID string `json:"conv_id"`
	Query  string `json:"query" binding:"required"`
}

// AgentChat streams the tool-calling agent's reply as SSE and appends both
// turns to the conversation history.
func (cc *ConversationController) AgentChat(ctx *gin.Context) {
	userID, err := utils.GetUserIDFromContext(ctx)
	if err != nil {
		response.UnauthorizedError(ctx, errcode.UnauthorizedError, "user not authenticated")
		return
	}

	var req agentChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(ctx, errcode.ParamBindError, "invalid chat payload")
		return
	}
	if req.ConvID == "" {
		req.ConvID = uuid.NewString()
	}

	// Prior turns feed the prompt.
	var history []*model.Message
	if msgs, err := cc.historyService.ListMessages(ctx.Request.Context(), userID, req.ConvID); err == nil {
		history = msgs
	}

	sr, err := cc.orchestrator.Stream(ctx.Request.Context(), req.Query, utils.MessageList2ChatHistory(history))
	if err != nil {
		response.InternalError(ctx, errcode.InternalServerError, "agent execution failed: "+err.Error())
		return
	}

	if _, err := cc.historyService.AppendTurn(ctx.Request.Context(), userID, req.ConvID, "user", req.Query); err != nil {
		log.Printf("[Chat] failed to save user turn: %v", err)
	}

	ctx.Writer.Header().Set("Content-Type", "text/event-stream")
	ctx.Writer.Header().Set("Cache-Control", "no-cache")
	ctx.Writer.Header().Set("Connection", "keep-alive")

	var full []byte
	defer func() {
		sr.Close()
		if len(full) > 0 {
			if _, err := cc.historyService.AppendTurn(context.Background(), userID, req.ConvID, "assistant", string(full)); err != nil {
				log.Printf("[Chat] failed to save assistant turn: %v", err)
			}
		}
	}()

	ctx.Stream(func(w io.Writer) bool {
		msg, err := sr.Recv()
		if errors.Is(err, io.EOF) {
			return false
		}
		if err != nil {
			log.Printf("[Chat] stream error: %v", err)
			return false
		}

		full = append(full, msg.Content...)
		sse.Encode(w, sse.Event{Data: []byte(msg.Content)})
		ctx.Writer.Flush()
		return true
	})
}
