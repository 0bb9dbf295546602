package model

// Conversation is a chat session. Timestamps are unix seconds.
type Conversation struct {
	ConvID     string `gorm:"primaryKey;type:char(36)" json:"conv_id"`
	UserID     uint   `gorm:"index" json:"user_id"`
	Title      string `json:"title"`
	IsArchived bool   `gorm:"default:false" json:"is_archived"`
	IsPinned   bool   `gorm:"default:false" json:"is_pinned"`
	CreatedAt  int64  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  int64  `gorm:"autoUpdateTime" json:"updated_at"`
}

// Message is one turn of a conversation. OrderSeq preserves append order;
// rows are never updated after creation.
type Message struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	MsgID     string `gorm:"uniqueIndex;type:char(36)" json:"msg_id"`
	ConvID    string `gorm:"index" json:"conv_id"`
	Role      string `gorm:"not null" json:"role"`
	Content   string `gorm:"type:text" json:"content"`
	OrderSeq  int64  `gorm:"index" json:"order_seq"`
	CreatedAt int64  `gorm:"autoCreateTime" json:"created_at"`
}

type CreateConvRequest struct {
	Title string `json:"title"`
}
