// Package cachedrepo decora os repositórios de espaços e itens com cache-aside
// no Redis. Só as leituras por ID passam pelo cache; escritas invalidam a chave.
package cachedrepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"easyinventory/internal/domain"
	"easyinventory/internal/pkg/cache"
	"easyinventory/internal/pkg/logger"
)

// SpaceKey e ItemKey montam as chaves usadas no Redis.
func SpaceKey(id string) string { return "space:" + id }
func ItemKey(id string) string  { return "item:" + id }

type base struct {
	cache  cache.Client
	ttl    time.Duration
	logger logger.Logger
}

// load tenta ler key do cache para dst. Qualquer falha vira miss.
func (b base) load(ctx context.Context, key string, dst interface{}) bool {
	raw, err := b.cache.Get(ctx, key)
	if errors.Is(err, cache.ErrCacheMiss) {
		b.logger.Debug("Cache miss.", map[string]interface{}{"key": key})
		return false
	}
	if err != nil {
		b.logger.Warn("Falha ao ler do cache.", map[string]interface{}{"key": key, "error": err.Error()})
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		b.logger.Warn("Valor inválido no cache, ignorando.", map[string]interface{}{"key": key, "error": err.Error()})
		return false
	}
	b.logger.Debug("Cache hit.", map[string]interface{}{"key": key})
	return true
}

func (b base) store(ctx context.Context, key string, value interface{}) {
	raw, err := json.Marshal(value)
	if err != nil {
		b.logger.Warn("Falha ao serializar valor para o cache.", map[string]interface{}{"key": key, "error": err.Error()})
		return
	}
	if err := b.cache.Set(ctx, key, string(raw), b.ttl); err != nil {
		b.logger.Warn("Falha ao gravar no cache.", map[string]interface{}{"key": key, "error": err.Error()})
	}
}

func (b base) invalidate(ctx context.Context, keys ...string) {
	if err := b.cache.Delete(ctx, keys...); err != nil {
		b.logger.Warn("Falha ao invalidar cache.", map[string]interface{}{"keys": keys, "error": err.Error()})
	}
}

// SpaceRepository aplica cache-aside sobre um domain.SpaceRepository.
type SpaceRepository struct {
	base
	next domain.SpaceRepository
}

// NewSpaceRepository envolve next com o cache informado.
func NewSpaceRepository(next domain.SpaceRepository, client cache.Client, ttl time.Duration, logger logger.Logger) *SpaceRepository {
	return &SpaceRepository{base: base{cache: client, ttl: ttl, logger: logger}, next: next}
}

func (r *SpaceRepository) CreateSpace(ctx context.Context, space domain.Space) (domain.Space, error) {
	return r.next.CreateSpace(ctx, space)
}

func (r *SpaceRepository) GetSpaceByID(ctx context.Context, id string) (domain.Space, error) {
	var cached domain.Space
	if r.load(ctx, SpaceKey(id), &cached) {
		return cached, nil
	}

	space, err := r.next.GetSpaceByID(ctx, id)
	if err != nil {
		return domain.Space{}, err
	}
	r.store(ctx, SpaceKey(id), space)
	return space, nil
}

func (r *SpaceRepository) GetAllSpaces(ctx context.Context) ([]domain.Space, error) {
	return r.next.GetAllSpaces(ctx)
}

func (r *SpaceRepository) UpdateSpace(ctx context.Context, space domain.Space) (domain.Space, error) {
	updated, err := r.next.UpdateSpace(ctx, space)
	r.invalidate(ctx, SpaceKey(space.ID))
	return updated, err
}

func (r *SpaceRepository) DeleteSpace(ctx context.Context, id string) error {
	err := r.next.DeleteSpace(ctx, id)
	r.invalidate(ctx, SpaceKey(id))
	return err
}

// ItemRepository aplica cache-aside sobre um domain.ItemRepository.
type ItemRepository struct {
	base
	next domain.ItemRepository
}

// NewItemRepository envolve next com o cache informado.
func NewItemRepository(next domain.ItemRepository, client cache.Client, ttl time.Duration, logger logger.Logger) *ItemRepository {
	return &ItemRepository{base: base{cache: client, ttl: ttl, logger: logger}, next: next}
}

func (r *ItemRepository) CreateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	return r.next.CreateItem(ctx, item)
}

func (r *ItemRepository) GetItemByID(ctx context.Context, id string) (domain.Item, error) {
	var cached domain.Item
	if r.load(ctx, ItemKey(id), &cached) {
		return cached, nil
	}

	item, err := r.next.GetItemByID(ctx, id)
	if err != nil {
		return domain.Item{}, err
	}
	r.store(ctx, ItemKey(id), item)
	return item, nil
}

func (r *ItemRepository) GetItemsBySpace(ctx context.Context, spaceID string) ([]domain.Item, error) {
	return r.next.GetItemsBySpace(ctx, spaceID)
}

func (r *ItemRepository) UpdateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	updated, err := r.next.UpdateItem(ctx, item)
	r.invalidate(ctx, ItemKey(item.ID))
	return updated, err
}

func (r *ItemRepository) UpdateItemQuantity(ctx context.Context, id string, quantity int) (domain.Item, error) {
	updated, err := r.next.UpdateItemQuantity(ctx, id, quantity)
	r.invalidate(ctx, ItemKey(id))
	return updated, err
}

func (r *ItemRepository) DeleteItem(ctx context.Context, id string) error {
	err := r.next.DeleteItem(ctx, id)
	r.invalidate(ctx, ItemKey(id))
	return err
}

// DeleteItemsBySpace lista os itens antes de removê-los para invalidar cada chave.
func (r *ItemRepository) DeleteItemsBySpace(ctx context.Context, spaceID string) (int64, error) {
	items, err := r.next.GetItemsBySpace(ctx, spaceID)
	if err != nil {
		return 0, err
	}

	removed, err := r.next.DeleteItemsBySpace(ctx, spaceID)
	if len(items) > 0 {
		keys := make([]string, 0, len(items))
		for _, item := range items {
			keys = append(keys, ItemKey(item.ID))
		}
		r.invalidate(ctx, keys...)
	}
	return removed, err
}
