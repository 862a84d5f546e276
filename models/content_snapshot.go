package models

import "time"

// ContentSnapshot is the last successfully fetched payload of a content
// query, persisted so a restarted server can serve it while revalidating.
type ContentSnapshot struct {
	Key       string    `gorm:"primaryKey;size:64" json:"key"`
	Payload   []byte    `gorm:"not null" json:"payload"`
	FetchedAt time.Time `gorm:"not null;index" json:"fetched_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for ContentSnapshot
func (ContentSnapshot) TableName() string {
	return "content_snapshots"
}
