package repository

import (
	"context"
	"strconv"
	"time"

	"hireboard/internal/models"

	gocache "github.com/patrickmn/go-cache"
)

type userLookup interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// CachedUsers memoizes user lookups made while fanning out notifications and
// emails. Callers that change a user must Invalidate it.
type CachedUsers struct {
	repo  userLookup
	cache *gocache.Cache
}

func NewCachedUsers(repo userLookup, ttl time.Duration) *CachedUsers {
	return &CachedUsers{repo: repo, cache: gocache.New(ttl, 2*ttl)}
}

func (c *CachedUsers) GetByID(ctx context.Context, id uint) (*models.User, error) {
	key := strconv.FormatUint(uint64(id), 10)
	if value, found := c.cache.Get(key); found {
		u := value.(models.User)
		return &u, nil
	}

	u, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, *u, gocache.DefaultExpiration)
	return u, nil
}

func (c *CachedUsers) Invalidate(id uint) {
	c.cache.Delete(strconv.FormatUint(uint64(id), 10))
}
