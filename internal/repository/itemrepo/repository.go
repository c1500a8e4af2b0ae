package itemrepo

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"easyinventory/internal/domain"
	"easyinventory/internal/errors"
	"easyinventory/internal/pkg/logger"
)

const itemColumns = `id, name, category, quantity, min_stock, price, supplier, description, space_id, created_at, updated_at`

// ItemRepository implementa domain.ItemRepository sobre PostgreSQL.
type ItemRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewItemRepository cria e retorna uma nova instância do Repositório de Itens.
func NewItemRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *ItemRepository {
	return &ItemRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row scanner) (domain.Item, error) {
	var item domain.Item
	err := row.Scan(
		&item.ID, &item.Name, &item.Category, &item.Quantity, &item.MinStock, &item.Price,
		&item.Supplier, &item.Description, &item.SpaceID, &item.CreatedAt, &item.UpdatedAt,
	)
	return item, err
}

// CreateItem insere um novo item no banco de dados.
func (r *ItemRepository) CreateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	r.logger.Debug("Iniciando CreateItem no repositório.", map[string]interface{}{"name": item.Name, "space_id": item.SpaceID})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	item.ID = uuid.New().String()
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	query := `
        INSERT INTO items (id, name, category, quantity, min_stock, price, supplier, description, space_id, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING ` + itemColumns

	created, err := scanItem(r.DB.QueryRowContext(ctxTimeout, query,
		item.ID, item.Name, item.Category, item.Quantity, item.MinStock, item.Price,
		item.Supplier, item.Description, item.SpaceID, item.CreatedAt, item.UpdatedAt,
	))
	if err != nil {
		r.logger.Error("Falha ao inserir item no DB.", err)
		return domain.Item{}, errors.NewDBError("Falha ao criar item", err)
	}

	r.logger.Info("Item criado com sucesso.", map[string]interface{}{"id": created.ID, "name": created.Name})
	return created, nil
}

// GetItemByID busca um item pelo ID.
func (r *ItemRepository) GetItemByID(ctx context.Context, id string) (domain.Item, error) {
	r.logger.Debug("Iniciando GetItemByID no repositório.", map[string]interface{}{"id": id})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	item, err := scanItem(r.DB.QueryRowContext(ctxTimeout, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id))
	if stderrors.Is(err, sql.ErrNoRows) {
		r.logger.Info("Item não encontrado.", map[string]interface{}{"id": id})
		return domain.Item{}, errors.NewNotFoundError(fmt.Sprintf("Item com ID %s não encontrado.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar item no DB.", err)
		return domain.Item{}, errors.NewDBError("Falha ao buscar item", err)
	}

	return item, nil
}

// GetItemsBySpace lista os itens de um espaço, mais recentes primeiro.
func (r *ItemRepository) GetItemsBySpace(ctx context.Context, spaceID string) ([]domain.Item, error) {
	r.logger.Debug("Iniciando GetItemsBySpace no repositório.", map[string]interface{}{"space_id": spaceID})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + itemColumns + ` FROM items WHERE space_id = $1 ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctxTimeout, query, spaceID)
	if err != nil {
		r.logger.Error("Falha ao executar GetItemsBySpace query.", err)
		return nil, errors.NewDBError("Falha ao buscar itens do espaço", err)
	}
	defer rows.Close()

	items := make([]domain.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			r.logger.Error("Falha ao mapear item na iteração de GetItemsBySpace.", err)
			return nil, errors.NewDBError("Falha ao mapear itens do DB", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Erro após iteração das linhas de itens.", err)
		return nil, errors.NewDBError("Erro após iteração de itens", err)
	}

	r.logger.Info("GetItemsBySpace concluído com sucesso.", map[string]interface{}{"space_id": spaceID, "total_items": len(items)})
	return items, nil
}

// UpdateItem grava todos os campos editáveis de um item existente.
func (r *ItemRepository) UpdateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	r.logger.Debug("Iniciando UpdateItem no repositório.", map[string]interface{}{"id": item.ID})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE items
        SET name = $1, category = $2, quantity = $3, min_stock = $4, price = $5,
            supplier = $6, description = $7, space_id = $8, updated_at = $9
        WHERE id = $10
        RETURNING ` + itemColumns

	updated, err := scanItem(r.DB.QueryRowContext(ctxTimeout, query,
		item.Name, item.Category, item.Quantity, item.MinStock, item.Price,
		item.Supplier, item.Description, item.SpaceID, time.Now().UTC(), item.ID,
	))
	if stderrors.Is(err, sql.ErrNoRows) {
		r.logger.Info("Item não encontrado para atualização.", map[string]interface{}{"id": item.ID})
		return domain.Item{}, errors.NewNotFoundError(fmt.Sprintf("Item com ID %s não encontrado para atualização.", item.ID))
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar item no DB.", err)
		return domain.Item{}, errors.NewDBError("Falha ao atualizar item", err)
	}

	r.logger.Info("Item atualizado com sucesso.", map[string]interface{}{"id": updated.ID, "name": updated.Name})
	return updated, nil
}

// UpdateItemQuantity altera somente a coluna quantity.
func (r *ItemRepository) UpdateItemQuantity(ctx context.Context, id string, quantity int) (domain.Item, error) {
	r.logger.Debug("Iniciando UpdateItemQuantity no repositório.", map[string]interface{}{"id": id, "quantity": quantity})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE items
        SET quantity = $1, updated_at = $2
        WHERE id = $3
        RETURNING ` + itemColumns

	updated, err := scanItem(r.DB.QueryRowContext(ctxTimeout, query, quantity, time.Now().UTC(), id))
	if stderrors.Is(err, sql.ErrNoRows) {
		r.logger.Info("Item não encontrado para atualização de quantidade.", map[string]interface{}{"id": id})
		return domain.Item{}, errors.NewNotFoundError(fmt.Sprintf("Item com ID %s não encontrado para atualização.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar quantidade do item no DB.", err)
		return domain.Item{}, errors.NewDBError("Falha ao atualizar quantidade", err)
	}

	r.logger.Info("Quantidade do item atualizada.", map[string]interface{}{"id": id, "quantity": updated.Quantity})
	return updated, nil
}

// DeleteItem remove um item pelo ID.
func (r *ItemRepository) DeleteItem(ctx context.Context, id string) error {
	r.logger.Debug("Iniciando DeleteItem no repositório.", map[string]interface{}{"id": id})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM items WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao deletar item do DB.", err)
		return errors.NewDBError("Falha ao deletar item", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.logger.Error("Falha ao verificar linhas afetadas após DeleteItem.", err)
		return errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}

	if rowsAffected == 0 {
		r.logger.Info("Item não encontrado para exclusão.", map[string]interface{}{"id": id})
		return errors.NewNotFoundError(fmt.Sprintf("Item com ID %s não encontrado para exclusão.", id))
	}

	r.logger.Info("Item deletado com sucesso.", map[string]interface{}{"id": id})
	return nil
}

// DeleteItemsBySpace remove todos os itens de um espaço e devolve quantos foram removidos.
func (r *ItemRepository) DeleteItemsBySpace(ctx context.Context, spaceID string) (int64, error) {
	r.logger.Debug("Iniciando DeleteItemsBySpace no repositório.", map[string]interface{}{"space_id": spaceID})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM items WHERE space_id = $1`, spaceID)
	if err != nil {
		r.logger.Error("Falha ao deletar itens do espaço.", err)
		return 0, errors.NewDBError("Falha ao deletar itens do espaço", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		r.logger.Error("Falha ao verificar linhas afetadas após DeleteItemsBySpace.", err)
		return 0, errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}

	r.logger.Info("Itens do espaço removidos.", map[string]interface{}{"space_id": spaceID, "removed": removed})
	return removed, nil
}
