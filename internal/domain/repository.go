package domain

import "context"

// --- Contratos de Persistência ---
// Implementados por spacerepo/itemrepo (PostgreSQL), dynamorepo (DynamoDB),
// memrepo (memória) e decorados por cachedrepo (Redis).

// SpaceRepository define o que a camada de Serviço pode pedir à persistência de espaços.
// O repositório é o único responsável por gerar IDs e timestamps.
type SpaceRepository interface {
	CreateSpace(ctx context.Context, space Space) (Space, error)
	GetSpaceByID(ctx context.Context, id string) (Space, error)
	GetAllSpaces(ctx context.Context) ([]Space, error) // mais recentes primeiro
	UpdateSpace(ctx context.Context, space Space) (Space, error)
	DeleteSpace(ctx context.Context, id string) error
}

// ItemRepository define o que a camada de Serviço pode pedir à persistência de itens.
type ItemRepository interface {
	CreateItem(ctx context.Context, item Item) (Item, error)
	GetItemByID(ctx context.Context, id string) (Item, error)
	GetItemsBySpace(ctx context.Context, spaceID string) ([]Item, error) // mais recentes primeiro
	UpdateItem(ctx context.Context, item Item) (Item, error)
	UpdateItemQuantity(ctx context.Context, id string, quantity int) (Item, error)
	DeleteItem(ctx context.Context, id string) error
	DeleteItemsBySpace(ctx context.Context, spaceID string) (int64, error)
}

// Pinger verifica a conectividade com o armazenamento (health check).
type Pinger interface {
	Ping(ctx context.Context) error
}
