package bootstrap

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"

	"easyinventory/config"
	"easyinventory/internal/domain"
	"easyinventory/internal/pkg/awsclient"
	"easyinventory/internal/pkg/cache"
	"easyinventory/internal/pkg/database"
	"easyinventory/internal/pkg/logger"
	"easyinventory/internal/repository/cachedrepo"
	"easyinventory/internal/repository/dynamorepo"
	"easyinventory/internal/repository/itemrepo"
	"easyinventory/internal/repository/memrepo"
	"easyinventory/internal/repository/spacerepo"
	"easyinventory/migrations"
)

// startupTimeout limita conexão, migrações e criação de tabelas na inicialização.
const startupTimeout = 30 * time.Second

// Storage agrupa os repositórios do driver de persistência escolhido.
type Storage struct {
	Spaces domain.SpaceRepository
	Items  domain.ItemRepository
	Pinger domain.Pinger
}

// Cache carrega o cliente Redis. Client é nil quando REDIS_ADDR está vazio.
type Cache struct {
	Client cache.Client
}

// NewStorage abre o driver configurado em STORAGE_DRIVER e registra o
// fechamento dos recursos no ciclo de vida da aplicação.
func NewStorage(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) (Storage, error) {
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	switch cfg.StorageDriver {
	case config.DriverPostgres:
		return newPostgresStorage(ctx, lc, cfg, log)
	case config.DriverDynamoDB:
		return newDynamoStorage(ctx, cfg, log)
	case config.DriverMemory:
		log.Warn("Usando persistência em memória: os dados se perdem ao encerrar.", nil)
		store := memrepo.NewStore(log)
		return Storage{Spaces: store, Items: store, Pinger: store}, nil
	default:
		return Storage{}, fmt.Errorf("driver de persistência desconhecido: %q", cfg.StorageDriver)
	}
}

func newPostgresStorage(ctx context.Context, lc fx.Lifecycle, cfg *config.Config, log logger.Logger) (Storage, error) {
	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL, database.DefaultPoolConfig, log)
	if err != nil {
		return Storage{}, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			log.Info("Fechando conexão PostgreSQL.", nil)
			return db.Close()
		},
	})

	if cfg.AutoMigrate {
		if err := database.Migrate(db, migrations.FS, log, "up"); err != nil {
			db.Close()
			return Storage{}, fmt.Errorf("falha ao aplicar migrações: %w", err)
		}
	}

	return Storage{
		Spaces: spacerepo.NewSpaceRepository(db, cfg.DBTimeout, log),
		Items:  itemrepo.NewItemRepository(db, cfg.DBTimeout, log),
		Pinger: database.NewPinger(db, cfg.DBTimeout),
	}, nil
}

func newDynamoStorage(ctx context.Context, cfg *config.Config, log logger.Logger) (Storage, error) {
	awsCfg, err := awsclient.LoadAWSConfig(ctx, cfg.AWSRegion)
	if err != nil {
		return Storage{}, err
	}
	client := awsclient.NewDynamoDBClient(awsCfg, cfg.AWSEndpoint)
	store := dynamorepo.NewStore(client, cfg.DynamoSpacesTable, cfg.DynamoItemsTable, cfg.DBTimeout, log)

	if cfg.AutoMigrate {
		if err := store.EnsureTables(ctx); err != nil {
			return Storage{}, fmt.Errorf("falha ao preparar tabelas DynamoDB: %w", err)
		}
	}

	log.Info("Cliente DynamoDB inicializado.", map[string]interface{}{
		"region":   cfg.AWSRegion,
		"endpoint": cfg.AWSEndpoint,
	})
	return Storage{Spaces: store, Items: store, Pinger: store}, nil
}

// NewCache conecta ao Redis quando configurado.
func NewCache(lc fx.Lifecycle, cfg *config.Config, log logger.Logger) Cache {
	if !cfg.CacheEnabled() {
		log.Info("Cache Redis desativado (REDIS_ADDR vazio).", nil)
		return Cache{}
	}

	client := cache.NewRedisClient(context.Background(), cfg.RedisAddr, log)
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			log.Info("Fechando conexão Redis.", nil)
			return client.Close()
		},
	})
	return Cache{Client: client}
}

// NewRepositories entrega os repositórios aos serviços, decorados pelo
// cache-aside quando o Redis está ativo.
func NewRepositories(storage Storage, c Cache, cfg *config.Config, log logger.Logger) (domain.SpaceRepository, domain.ItemRepository, domain.Pinger) {
	if c.Client == nil {
		return storage.Spaces, storage.Items, storage.Pinger
	}
	return cachedrepo.NewSpaceRepository(storage.Spaces, c.Client, cfg.CacheTTL, log),
		cachedrepo.NewItemRepository(storage.Items, c.Client, cfg.CacheTTL, log),
		storage.Pinger
}
