package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"postly/internal/cache"
	"postly/internal/model"
)

type fakePostStore struct {
	nextID    uint
	posts     map[uint]*model.Post
	listCalls int
}

func newFakePostStore() *fakePostStore {
	return &fakePostStore{
		nextID: 1,
		posts:  make(map[uint]*model.Post),
	}
}

func (f *fakePostStore) Create(post *model.Post) error {
	post.ID = f.nextID
	f.nextID++
	post.CreatedAt = time.Now()
	stored := *post
	f.posts[post.ID] = &stored
	return nil
}

func (f *fakePostStore) GetByID(id uint) (*model.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, nil
	}
	copied := *post
	return &copied, nil
}

func (f *fakePostStore) ListByUserID(userID uint) ([]model.Post, error) {
	f.listCalls++
	var out []model.Post
	for _, post := range f.posts {
		if post.UserID == userID {
			out = append(out, *post)
		}
	}
	return out, nil
}

func (f *fakePostStore) DeleteByID(id uint) error {
	delete(f.posts, id)
	return nil
}

type fakeEventPublisher struct {
	events  []model.PostEvent
	failing bool
}

func (f *fakeEventPublisher) Publish(_ context.Context, event model.PostEvent) error {
	if f.failing {
		return errors.New("broker down")
	}
	f.events = append(f.events, event)
	return nil
}

func newTestPostService() (*PostService, *fakePostStore, *fakeEventPublisher) {
	store := newFakePostStore()
	publisher := &fakeEventPublisher{}
	listCache := cache.NewPostListCache(cache.NewStore(time.Minute), time.Minute)
	return NewPostService(store, listCache, publisher), store, publisher
}

func TestPostService_Create_Success(t *testing.T) {
	svc, _, publisher := newTestPostService()

	post, err := svc.Create(CreatePostInput{UserID: 1, Text: "hello world"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if post.ID == 0 {
		t.Fatal("expected post ID to be set")
	}
	if post.UserID != 1 {
		t.Fatalf("expected owner 1, got %d", post.UserID)
	}

	if len(publisher.events) != 1 || publisher.events[0].Action != model.PostEventCreated {
		t.Fatalf("expected one %s event, got %+v", model.PostEventCreated, publisher.events)
	}
}

func TestPostService_Create_EmptyText(t *testing.T) {
	svc, _, _ := newTestPostService()

	for _, text := range []string{"", "   ", "\t\n"} {
		if _, err := svc.Create(CreatePostInput{UserID: 1, Text: text}); !errors.Is(err, ErrTextEmpty) {
			t.Fatalf("expected ErrTextEmpty for %q, got %v", text, err)
		}
	}
}

func TestPostService_List_UsesCache(t *testing.T) {
	svc, store, _ := newTestPostService()

	if _, err := svc.Create(CreatePostInput{UserID: 1, Text: "cached"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	first, err := svc.List(1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(first) != 1 {
		t.Fatalf("expected 1 post, got %d", len(first))
	}
	if store.listCalls != 1 {
		t.Fatalf("expected 1 store read, got %d", store.listCalls)
	}

	second, err := svc.List(1)
	if err != nil {
		t.Fatalf("second List: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("expected 1 post on cached read, got %d", len(second))
	}
	if store.listCalls != 1 {
		t.Fatalf("expected cached read to skip the store, got %d reads", store.listCalls)
	}
}

func TestPostService_Create_InvalidatesListing(t *testing.T) {
	svc, store, _ := newTestPostService()

	if _, err := svc.Create(CreatePostInput{UserID: 1, Text: "first"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.List(1); err != nil {
		t.Fatalf("List: %v", err)
	}

	if _, err := svc.Create(CreatePostInput{UserID: 1, Text: "second"}); err != nil {
		t.Fatalf("second Create: %v", err)
	}

	posts, err := svc.List(1)
	if err != nil {
		t.Fatalf("List after create: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("expected 2 posts after invalidation, got %d", len(posts))
	}
	if store.listCalls != 2 {
		t.Fatalf("expected a fresh store read after invalidation, got %d reads", store.listCalls)
	}
}

func TestPostService_Delete_Success(t *testing.T) {
	svc, store, publisher := newTestPostService()

	post, err := svc.Create(CreatePostInput{UserID: 1, Text: "to delete"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.List(1); err != nil {
		t.Fatalf("List: %v", err)
	}

	if err := svc.Delete(1, post.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	posts, err := svc.List(1)
	if err != nil {
		t.Fatalf("List after delete: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("expected no posts after delete, got %d", len(posts))
	}
	if store.listCalls != 2 {
		t.Fatalf("expected delete to invalidate the cached listing, got %d reads", store.listCalls)
	}

	last := publisher.events[len(publisher.events)-1]
	if last.Action != model.PostEventDeleted || last.PostID != post.ID {
		t.Fatalf("expected %s event for post %d, got %+v", model.PostEventDeleted, post.ID, last)
	}
}

func TestPostService_Delete_NotFound(t *testing.T) {
	svc, _, _ := newTestPostService()

	if err := svc.Delete(1, 999); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostService_Delete_Forbidden(t *testing.T) {
	svc, store, _ := newTestPostService()

	post, err := svc.Create(CreatePostInput{UserID: 1, Text: "owned by 1"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(2, post.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, ok := store.posts[post.ID]; !ok {
		t.Fatal("post must survive a forbidden delete")
	}
}

func TestPostService_PublisherFailureDoesNotFailRequest(t *testing.T) {
	store := newFakePostStore()
	publisher := &fakeEventPublisher{failing: true}
	listCache := cache.NewPostListCache(cache.NewStore(time.Minute), time.Minute)
	svc := NewPostService(store, listCache, publisher)

	post, err := svc.Create(CreatePostInput{UserID: 1, Text: "still works"})
	if err != nil {
		t.Fatalf("Create with failing publisher: %v", err)
	}
	if err := svc.Delete(1, post.ID); err != nil {
		t.Fatalf("Delete with failing publisher: %v", err)
	}
}

func TestPostService_NilCacheAndPublisher(t *testing.T) {
	svc := NewPostService(newFakePostStore(), nil, nil)

	post, err := svc.Create(CreatePostInput{UserID: 1, Text: "no cache"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	posts, err := svc.List(1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(posts) != 1 {
		t.Fatalf("expected 1 post, got %d", len(posts))
	}
	if err := svc.Delete(1, post.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
}
