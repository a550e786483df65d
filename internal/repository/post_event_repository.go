package repository

import (
	"fmt"

	"gorm.io/gorm"

	"postly/internal/model"
)

type PostEventRepository struct {
	db *gorm.DB
}

func NewPostEventRepository(db *gorm.DB) *PostEventRepository {
	return &PostEventRepository{db: db}
}

func (r *PostEventRepository) Create(event *model.PostEvent) error {
	if err := r.db.Create(event).Error; err != nil {
		return fmt.Errorf("create post event failed: %w", err)
	}
	return nil
}

func (r *PostEventRepository) ListByPostID(postID uint) ([]model.PostEvent, error) {
	var events []model.PostEvent
	if err := r.db.Where("post_id = ?", postID).Order("created_at ASC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list post events failed: %w", err)
	}
	return events, nil
}
