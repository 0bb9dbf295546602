package utils

import (
	"github.com/cloudwego/eino/schema"

	"litigator/internal/model"
)

// MessageList2ChatHistory converts stored messages to eino chat history.
func MessageList2ChatHistory(mess []*model.Message) (history []*schema.Message) {
	for _, m := range mess {
		history = append(history, &schema.Message{
			Role:    schema.RoleType(m.Role),
			Content: m.Content,
		})
	}
	return
}
