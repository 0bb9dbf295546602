package model

import "time"

// Exhibit processing status
const (
	ExhibitStatusPending    = 0
	ExhibitStatusProcessing = 1
	ExhibitStatusIndexed    = 2
	ExhibitStatusFailed     = 3
)

// Exhibit is an uploaded evidence document. The raw file lives in the
// storage driver; extracted text is chunked and indexed in Milvus.
type Exhibit struct {
	ID         string    `gorm:"primaryKey;type:char(36)" json:"id"` // UUID
	FactID     *uint     `gorm:"index" json:"fact_id,omitempty"`
	Filename   string    `gorm:"not null" json:"filename"`
	MIMEType   string    `json:"mime_type"`
	StorageKey string    `gorm:"not null" json:"-"`
	SizeBytes  int64     `json:"size_bytes"`
	Status     int       `json:"status"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Chunk is the unit stored in Milvus.
type Chunk struct {
	ID          string    `json:"id"`
	Content     string    `json:"content"`
	ExhibitID   string    `json:"exhibit_id"`
	ExhibitName string    `json:"exhibit_name"`
	ContentType string    `json:"content_type"` // text/image
	Index       int       `json:"index"`
	Embeddings  []float32 `json:"embeddings"`
	Score       float32   `json:"score"`
}
