package app

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"postly/internal/model"
)

var (
	ErrTextEmpty    = errors.New("post text is empty")
	ErrPostNotFound = errors.New("post not found")
	ErrForbidden    = errors.New("not authorized to delete this post")
)

// PostStore is the persistence surface PostService needs. GetByID returns
// (nil, nil) when no row matches.
type PostStore interface {
	Create(post *model.Post) error
	GetByID(id uint) (*model.Post, error)
	ListByUserID(userID uint) ([]model.Post, error)
	DeleteByID(id uint) error
}

// PostListCache holds per-user listings. Absence is a normal outcome, never
// an error.
type PostListCache interface {
	Get(userID uint) ([]model.Post, bool)
	Set(userID uint, posts []model.Post)
	Invalidate(userID uint)
}

type PostEventPublisher interface {
	Publish(ctx context.Context, event model.PostEvent) error
}

type PostService struct {
	postRepo  PostStore
	listCache PostListCache
	publisher PostEventPublisher
}

type CreatePostInput struct {
	UserID uint
	Text   string
}

func NewPostService(postRepo PostStore, listCache PostListCache, publisher PostEventPublisher) *PostService {
	return &PostService{
		postRepo:  postRepo,
		listCache: listCache,
		publisher: publisher,
	}
}

func (s *PostService) Create(input CreatePostInput) (*model.Post, error) {
	if input.UserID == 0 {
		return nil, ErrInvalidInput
	}

	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, ErrTextEmpty
	}

	post := &model.Post{
		Text:   text,
		UserID: input.UserID,
	}
	if err := s.postRepo.Create(post); err != nil {
		return nil, err
	}

	// Invalidate, don't update: the next listing repopulates from the store.
	if s.listCache != nil {
		s.listCache.Invalidate(input.UserID)
	}
	s.publishEvent(model.PostEventCreated, post.ID, input.UserID)

	return post, nil
}

func (s *PostService) List(userID uint) ([]model.Post, error) {
	if userID == 0 {
		return nil, ErrInvalidInput
	}

	if s.listCache != nil {
		if cached, ok := s.listCache.Get(userID); ok {
			return cached, nil
		}
	}

	posts, err := s.postRepo.ListByUserID(userID)
	if err != nil {
		return nil, err
	}
	if s.listCache != nil {
		s.listCache.Set(userID, posts)
	}
	return posts, nil
}

func (s *PostService) Delete(userID, postID uint) error {
	if userID == 0 || postID == 0 {
		return ErrInvalidInput
	}

	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.UserID != userID {
		return ErrForbidden
	}

	if err := s.postRepo.DeleteByID(postID); err != nil {
		return err
	}
	if s.listCache != nil {
		s.listCache.Invalidate(userID)
	}
	s.publishEvent(model.PostEventDeleted, postID, userID)

	return nil
}

// publishEvent is best-effort: a broker failure must not fail the request.
func (s *PostService) publishEvent(action string, postID, userID uint) {
	if s.publisher == nil {
		return
	}
	event := model.PostEvent{
		Action:    action,
		PostID:    postID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	if err := s.publisher.Publish(context.Background(), event); err != nil {
		log.Printf("publish post event failed: %v", err)
	}
}
