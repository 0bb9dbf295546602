package model

import "time"

// Fact is a single alleged fact of the case. Tags is a JSON-encoded string
// list linking the fact to claims.
type Fact struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Date      string    `json:"date"`
	Para      string    `json:"para"` // complaint paragraph reference
	Source    string    `json:"source"`
	Tags      string    `gorm:"type:json" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// FactCauseLink associates a fact with a cause of action.
type FactCauseLink struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	FactID  uint `gorm:"index:idx_fact_cause,unique" json:"fact_id"`
	CauseID uint `gorm:"index:idx_fact_cause,unique" json:"cause_id"`
}

// FactResponse is Fact with tags decoded.
type FactResponse struct {
	ID        uint      `json:"id"`
	Text      string    `json:"text"`
	Date      string    `json:"date"`
	Para      string    `json:"para"`
	Source    string    `json:"source"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateFactRequest struct {
	Text   string   `json:"text" binding:"required"`
	Date   string   `json:"date"`
	Para   string   `json:"para"`
	Source string   `json:"source"`
	Tags   []string `json:"tags"`
}

type UpdateFactRequest struct {
	Text   string   `json:"text"`
	Date   string   `json:"date"`
	Para   string   `json:"para"`
	Source string   `json:"source"`
	Tags   []string `json:"tags"`
}

type LinkCausesRequest struct {
	CauseIDs []uint `json:"cause_ids" binding:"required"`
}

type LinkCausesResponse struct {
	Status   string `json:"status"`
	FactID   uint   `json:"fact_id"`
	CauseIDs []uint `json:"cause_ids"`
}
