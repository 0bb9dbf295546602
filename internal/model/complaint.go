package model

import "time"

// ComplaintSection is one named section of the draft complaint.
type ComplaintSection struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Section   string    `gorm:"uniqueIndex;not null" json:"section"`
	Content   string    `gorm:"type:text" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type CreateComplaintSectionRequest struct {
	Section string `json:"section" binding:"required"`
	Content string `json:"content"`
}
