// Package memrepo guarda espaços e itens em memória (STORAGE_DRIVER=memory).
// Usado em desenvolvimento local e nos testes ponta a ponta.
package memrepo

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"easyinventory/internal/domain"
	"easyinventory/internal/errors"
	"easyinventory/internal/pkg/logger"
)

type spaceRecord struct {
	seq   uint64
	space domain.Space
}

type itemRecord struct {
	seq  uint64
	item domain.Item
}

// Store implementa domain.SpaceRepository, domain.ItemRepository e domain.Pinger.
type Store struct {
	mu     sync.RWMutex
	seq    uint64
	spaces map[string]spaceRecord
	items  map[string]itemRecord
	now    func() time.Time
	logger logger.Logger
}

// NewStore cria um Store vazio.
func NewStore(logger logger.Logger) *Store {
	return &Store{
		spaces: make(map[string]spaceRecord),
		items:  make(map[string]itemRecord),
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger,
	}
}

func (s *Store) nextSeq() uint64 {
	s.seq++
	return s.seq
}

// Ping sempre responde: o armazenamento está no próprio processo.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// --- Espaços ---

func (s *Store) CreateSpace(ctx context.Context, space domain.Space) (domain.Space, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	space.ID = uuid.New().String()
	space.CreatedAt = s.now()
	space.UpdatedAt = space.CreatedAt
	s.spaces[space.ID] = spaceRecord{seq: s.nextSeq(), space: space}

	s.logger.Info("Espaço criado com sucesso.", map[string]interface{}{"id": space.ID, "name": space.Name, "driver": "memory"})
	return space, nil
}

func (s *Store) GetSpaceByID(ctx context.Context, id string) (domain.Space, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.spaces[id]
	if !ok {
		return domain.Space{}, errors.NewNotFoundError(fmt.Sprintf("Espaço com ID %s não encontrado.", id))
	}
	return rec.space, nil
}

func (s *Store) GetAllSpaces(ctx context.Context) ([]domain.Space, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]spaceRecord, 0, len(s.spaces))
	for _, rec := range s.spaces {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].seq > records[j].seq })

	spaces := make([]domain.Space, 0, len(records))
	for _, rec := range records {
		spaces = append(spaces, rec.space)
	}
	return spaces, nil
}

func (s *Store) UpdateSpace(ctx context.Context, space domain.Space) (domain.Space, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.spaces[space.ID]
	if !ok {
		return domain.Space{}, errors.NewNotFoundError(fmt.Sprintf("Espaço com ID %s não encontrado para atualização.", space.ID))
	}
	space.CreatedAt = rec.space.CreatedAt
	space.UpdatedAt = s.now()
	rec.space = space
	s.spaces[space.ID] = rec
	return space, nil
}

func (s *Store) DeleteSpace(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.spaces[id]; !ok {
		return errors.NewNotFoundError(fmt.Sprintf("Espaço com ID %s não encontrado para exclusão.", id))
	}
	delete(s.spaces, id)
	return nil
}

// --- Itens ---

func (s *Store) CreateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item.ID = uuid.New().String()
	item.CreatedAt = s.now()
	item.UpdatedAt = item.CreatedAt
	s.items[item.ID] = itemRecord{seq: s.nextSeq(), item: item}

	s.logger.Info("Item criado com sucesso.", map[string]interface{}{"id": item.ID, "name": item.Name, "driver": "memory"})
	return item, nil
}

func (s *Store) GetItemByID(ctx context.Context, id string) (domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.items[id]
	if !ok {
		return domain.Item{}, errors.NewNotFoundError(fmt.Sprintf("Item com ID %s não encontrado.", id))
	}
	return rec.item, nil
}

func (s *Store) GetItemsBySpace(ctx context.Context, spaceID string) ([]domain.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]itemRecord, 0)
	for _, rec := range s.items {
		if rec.item.SpaceID == spaceID {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].seq > records[j].seq })

	items := make([]domain.Item, 0, len(records))
	for _, rec := range records {
		items = append(items, rec.item)
	}
	return items, nil
}

func (s *Store) UpdateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.items[item.ID]
	if !ok {
		return domain.Item{}, errors.NewNotFoundError(fmt.Sprintf("Item com ID %s não encontrado para atualização.", item.ID))
	}
	item.CreatedAt = rec.item.CreatedAt
	item.UpdatedAt = s.now()
	rec.item = item
	s.items[item.ID] = rec
	return item, nil
}

func (s *Store) UpdateItemQuantity(ctx context.Context, id string, quantity int) (domain.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.items[id]
	if !ok {
		return domain.Item{}, errors.NewNotFoundError(fmt.Sprintf("Item com ID %s não encontrado para atualização.", id))
	}
	rec.item.Quantity = quantity
	rec.item.UpdatedAt = s.now()
	s.items[id] = rec
	return rec.item, nil
}

func (s *Store) DeleteItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return errors.NewNotFoundError(fmt.Sprintf("Item com ID %s não encontrado para exclusão.", id))
	}
	delete(s.items, id)
	return nil
}

func (s *Store) DeleteItemsBySpace(ctx context.Context, spaceID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for id, rec := range s.items {
		if rec.item.SpaceID == spaceID {
			delete(s.items, id)
			removed++
		}
	}
	return removed, nil
}
