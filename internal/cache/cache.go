package cache

import (
	"context"

	"github.com/fsobarzo/resto-orders/internal/domain"

	lru "github.com/hashicorp/golang-lru/v2"
)

type repo interface {
	RecentDishes(ctx context.Context, limit int) ([]domain.Dish, error)
}

// Cache is an LRU over dishes keyed by id. Dishes are immutable reference
// data, so entries never go stale and no invalidation is needed.
type Cache struct {
	size int
	lru  *lru.Cache[int64, domain.Dish]
}

func New(size int) (*Cache, error) {
	c, err := lru.New[int64, domain.Dish](size)
	if err != nil {
		return nil, err
	}
	return &Cache{
		size: size,
		lru:  c,
	}, nil
}

// Warm preloads the most recent dishes. Errors are ignored: warming is an
// optimization, the cache fills on demand either way.
func (c *Cache) Warm(ctx context.Context, repo repo) {
	if dishes, err := repo.RecentDishes(ctx, c.size); err == nil {
		for _, d := range dishes {
			c.Set(d)
		}
	}
}

func (c *Cache) Get(id int64) (domain.Dish, bool) {
	return c.lru.Get(id)
}

func (c *Cache) Set(dish domain.Dish) {
	c.lru.Add(dish.ID, dish)
}
