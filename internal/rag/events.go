package rag

import (
	"github.com/google/uuid"
)

// Event kinds carried on the wire.
const (
	EventInfo           = "info"
	EventProcessingStep = "processing_step"
	EventAnswer         = "answer"
	EventCitation       = "citation"
	EventError          = "error"
	EventEnd            = "end"
)

// ProcessingStep is an observability block surfaced to the client before the
// completion call, e.g. the exact LLM payload.
type ProcessingStep struct {
	Title   string `json:"title"`
	Type    string `json:"type"`
	Content any    `json:"content"`
}

type infoPayload struct {
	RequestID string `json:"request_id"`
	MessageID string `json:"message_id"`
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
}

type stepPayload struct {
	RequestID      string         `json:"request_id"`
	MessageID      string         `json:"message_id"`
	ProcessingStep ProcessingStep `json:"processingStep"`
}

type answerPayload struct {
	RequestID     string        `json:"request_id"`
	MessageID     string        `json:"message_id"`
	Role          string        `json:"role"`
	AnswerPartial answerPartial `json:"answerPartial"`
}

type answerPartial struct {
	Answer string `json:"answer"`
}

type citationPayload struct {
	RequestID      string   `json:"request_id"`
	MessageID      string   `json:"message_id"`
	TextCitations  []string `json:"textCitations"`
	ImageCitations []string `json:"imageCitations"`
}

type errorPayload struct {
	RequestID string `json:"request_id"`
	MessageID string `json:"message_id"`
	Message   string `json:"message"`
}

// Emitter writes the typed event vocabulary for one request onto its stream.
// Every send is best effort: the stream never blocks, and sends after close
// are dropped rather than surfaced as errors, so a vanished client cannot
// kill the producing goroutine.
type Emitter struct {
	requestID string
	stream    *Stream
}

func NewEmitter(requestID string, stream *Stream) *Emitter {
	return &Emitter{requestID: requestID, stream: stream}
}

func (e *Emitter) Info(message, details string) {
	e.stream.Send(EventInfo, infoPayload{
		RequestID: e.requestID,
		MessageID: uuid.NewString(),
		Message:   message,
		Details:   details,
	})
}

func (e *Emitter) Step(step ProcessingStep) {
	e.stream.Send(EventProcessingStep, stepPayload{
		RequestID:      e.requestID,
		MessageID:      uuid.NewString(),
		ProcessingStep: step,
	})
}

// Answer emits one partial-answer delta. Callers pass the same messageID for
// every delta of a single logical answer.
func (e *Emitter) Answer(messageID, content string) {
	e.stream.Send(EventAnswer, answerPayload{
		RequestID:     e.requestID,
		MessageID:     messageID,
		Role:          "assistant",
		AnswerPartial: answerPartial{Answer: content},
	})
}

func (e *Emitter) Citations(textCitations, imageCitations []string) {
	if textCitations == nil {
		textCitations = []string{}
	}
	if imageCitations == nil {
		imageCitations = []string{}
	}
	e.stream.Send(EventCitation, citationPayload{
		RequestID:      e.requestID,
		MessageID:      e.requestID,
		TextCitations:  textCitations,
		ImageCitations: imageCitations,
	})
}

func (e *Emitter) Error(message string) {
	e.stream.Send(EventError, errorPayload{
		RequestID: e.requestID,
		MessageID: uuid.NewString(),
		Message:   message,
	})
}

// End emits the terminal event. The payload is an empty object.
func (e *Emitter) End() {
	e.stream.Send(EventEnd, struct{}{})
}
