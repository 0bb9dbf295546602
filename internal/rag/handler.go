package rag

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino/schema"
	"github.com/gin-gonic/gin"

	"litigator/pkgs/errcode"
	"litigator/pkgs/response"
)

type chatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Query      string         `json:"query"`
	ChatThread []chatTurn     `json:"chatThread"`
	Config     map[string]any `json:"config"`
	RequestID  string         `json:"request_id"`
}

// Handler adapts the processor to a gin streaming endpoint. Each request gets
// a fresh stream; the processor runs on its own goroutine and the handler
// drains the stream into the response as SSE frames until the sentinel.
type Handler struct {
	proc *Processor
}

func NewHandler(proc *Processor) *Handler {
	return &Handler{proc: proc}
}

// Attach registers the streaming endpoint at path.
func (h *Handler) Attach(r gin.IRouter, path string) {
	r.POST(path, h.handle)
}

func (h *Handler) handle(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, errcode.ParamBindError, "invalid request body")
		return
	}

	cfg := NewSearchConfig(req.Config)
	requestID := req.RequestID
	if requestID == "" {
		requestID = strconv.FormatInt(time.Now().Unix(), 10)
	}

	thread := make([]*schema.Message, 0, len(req.ChatThread))
	for _, turn := range req.ChatThread {
		thread = append(thread, &schema.Message{
			Role:    schema.RoleType(turn.Role),
			Content: turn.Content,
		})
	}

	stream := NewStream()
	em := NewEmitter(requestID, stream)

	// The processor is fire-and-forget: it always terminates the stream with
	// an end event, and no failure inside it ever surfaces as an HTTP error.
	// A client disconnect does not cancel it; it runs to completion.
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[RAG] panic in request %s: %v", requestID, r)
				em.Error(fmt.Sprintf("%v", r))
			}
			em.End()
			stream.Close()
		}()
		if err := h.proc.ProcessRequest(context.Background(), em, req.Query, thread, cfg); err != nil {
			log.Printf("[RAG] request %s failed: %v", requestID, err)
			em.Error(err.Error())
		}
	}()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		env, ok := stream.Next()
		if !ok {
			return false
		}
		data, err := sonic.Marshal(env.Data)
		if err != nil {
			log.Printf("[RAG] failed to encode %s event: %v", env.Event, err)
			data = []byte("{}")
		}
		fmt.Fprintf(w, "event:%s\ndata: %s\n\n", env.Event, data)
		return true
	})
}
