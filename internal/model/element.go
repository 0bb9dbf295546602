package model

import "time"

// CauseOfAction is a legal claim asserted in the complaint.
type CauseOfAction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// LegalElement is one element that must be proven for its cause of action.
type LegalElement struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CauseID     uint      `gorm:"index" json:"cause_id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// FactElementLink maps a fact onto a legal element it supports.
type FactElementLink struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	FactID     uint    `gorm:"index" json:"fact_id"`
	ElementID  uint    `gorm:"index" json:"element_id"`
	Note       string  `json:"note"`
	Confidence float64 `json:"confidence"`
}

type CreateElementRequest struct {
	Cause       string `json:"cause" binding:"required"` // cause name, created on first use
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type CompareFactsRequest struct {
	Facts []string `json:"facts" binding:"required"`
}

// ElementMatch pairs a fact with a cause/element it plausibly supports.
type ElementMatch struct {
	Fact    string `json:"fact"`
	Cause   string `json:"cause"`
	Element string `json:"element"`
}

// Matrix report types: cause -> elements -> supporting facts.
type MatrixFact struct {
	FactID     uint     `json:"fact_id"`
	Text       string   `json:"text"`
	Date       string   `json:"date"`
	Source     string   `json:"source"`
	Tags       []string `json:"tags"`
	Exhibits   []string `json:"exhibits"`
	Note       string   `json:"note"`
	Confidence float64  `json:"confidence"`
}

type MatrixElement struct {
	Element   string       `json:"element"`
	ElementID uint         `json:"element_id"`
	Facts     []MatrixFact `json:"facts"`
}

type MatrixEntry struct {
	Cause    string          `json:"cause"`
	CauseID  uint            `json:"cause_id"`
	Elements []MatrixElement `json:"elements"`
}

type MatrixResponse struct {
	Claims []MatrixEntry `json:"claims"`
}
