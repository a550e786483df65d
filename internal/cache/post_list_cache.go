package cache

import (
	"fmt"
	"time"

	"postly/internal/model"
)

// PostListCache caches per-user post listings on top of a Store. Writes to a
// user's posts must invalidate that user's entry; the next listing repopulates
// from the database.
type PostListCache struct {
	store *Store
	ttl   time.Duration
}

func NewPostListCache(store *Store, ttl time.Duration) *PostListCache {
	return &PostListCache{store: store, ttl: ttl}
}

func (c *PostListCache) Get(userID uint) ([]model.Post, bool) {
	raw, ok := c.store.Get(c.key(userID))
	if !ok {
		return nil, false
	}
	posts, ok := raw.([]model.Post)
	return posts, ok
}

func (c *PostListCache) Set(userID uint, posts []model.Post) {
	c.store.Set(c.key(userID), posts, c.ttl)
}

func (c *PostListCache) Invalidate(userID uint) {
	c.store.Delete(c.key(userID))
}

func (c *PostListCache) key(userID uint) string {
	return fmt.Sprintf("posts:user:%d", userID)
}
