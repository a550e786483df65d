package model

import "time"

const (
	PostEventCreated = "post.created"
	PostEventDeleted = "post.deleted"
)

// PostEvent is an audit record of a write against a post. Events are published
// to the broker on create/delete and persisted asynchronously by the worker.
type PostEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Action    string    `gorm:"size:32;not null;index" json:"action"`
	PostID    uint      `gorm:"not null;index" json:"post_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
