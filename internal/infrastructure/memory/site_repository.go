package memory

import (
	"context"
	"sync"

	"github.com/waveshop/waveshop/internal/domain/site"
)

type SiteRepository struct {
	mu    sync.RWMutex
	infos []*site.Info
}

func NewSiteRepository() *SiteRepository {
	return &SiteRepository{}
}

func (r *SiteRepository) Insert(ctx context.Context, info *site.Info) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *info
	r.infos = append(r.infos, &clone)
	return nil
}

func (r *SiteRepository) Get(ctx context.Context) (*site.Info, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.infos) == 0 {
		return nil, site.ErrNotFound
	}
	clone := *r.infos[0]
	return &clone, nil
}

func (r *SiteRepository) Update(ctx context.Context, id string, info *site.Info) (*site.Info, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, stored := range r.infos {
		if stored.ID == id {
			clone := *info
			clone.ID = id
			r.infos[i] = &clone
			out := clone
			return &out, nil
		}
	}
	return nil, site.ErrNotFound
}
