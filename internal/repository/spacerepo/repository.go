package spacerepo

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

const spaceColumns = `id, name, description, type, location, created_at, updated_at`

// SpaceRepository implementa domain.SpaceRepository sobre PostgreSQL.
type SpaceRepository struct {
	DB        *sql.DB
	DBTimeout time.Duration
	logger    logger.Logger
}

// NewSpaceRepository cria e retorna uma nova instância do Repositório de Espaços.
func NewSpaceRepository(db *sql.DB, dbTimeout time.Duration, logger logger.Logger) *SpaceRepository {
	return &SpaceRepository{
		DB:        db,
		DBTimeout: dbTimeout,
		logger:    logger,
	}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSpace(row scanner) (domain.Space, error) {
	var space domain.Space
	err := row.Scan(
		&space.ID, &space.Name, &space.Description, &space.Type, &space.Location,
		&space.CreatedAt, &space.UpdatedAt,
	)
	return space, err
}

// CreateSpace insere um novo espaço no banco de dados.
func (r *SpaceRepository) CreateSpace(ctx context.Context, space domain.Space) (domain.Space, error) {
	r.logger.Debug("Iniciando CreateSpace no repositório.", map[string]interface{}{"name": space.Name})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	space.ID = uuid.New().String()
	now := time.Now().UTC()
	space.CreatedAt = now
	space.UpdatedAt = now

	query := `
        INSERT INTO spaces (id, name, description, type, location, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + spaceColumns

	created, err := scanSpace(r.DB.QueryRowContext(ctxTimeout, query,
		space.ID, space.Name, space.Description, space.Type, space.Location, space.CreatedAt, space.UpdatedAt,
	))
	if err != nil {
		r.logger.Error("Falha ao inserir espaço no DB.", err)
		return domain.Space{}, errors.NewDBError("Falha ao criar espaço", err)
	}

	r.logger.Info("Espaço criado com sucesso.", map[string]interface{}{"id": created.ID, "name": created.Name})
	return created, nil
}

// GetSpaceByID busca um espaço pelo ID.
func (r *SpaceRepository) GetSpaceByID(ctx context.Context, id string) (domain.Space, error) {
	r.logger.Debug("Iniciando GetSpaceByID no repositório.", map[string]interface{}{"id": id})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + spaceColumns + ` FROM spaces WHERE id = $1`

	space, err := scanSpace(r.DB.QueryRowContext(ctxTimeout, query, id))
	if stderrors.Is(err, sql.ErrNoRows) {
		r.logger.Info("Espaço não encontrado.", map[string]interface{}{"id": id})
		return domain.Space{}, errors.NewNotFoundError(fmt.Sprintf("Espaço com ID %s não encontrado.", id))
	}
	if err != nil {
		r.logger.Error("Falha ao buscar espaço no DB.", err)
		return domain.Space{}, errors.NewDBError("Falha ao buscar espaço", err)
	}

	return space, nil
}

// GetAllSpaces busca todos os espaços, mais recentes primeiro.
func (r *SpaceRepository) GetAllSpaces(ctx context.Context) ([]domain.Space, error) {
	r.logger.Debug("Iniciando GetAllSpaces no repositório.", nil)

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `SELECT ` + spaceColumns + ` FROM spaces ORDER BY created_at DESC`

	rows, err := r.DB.QueryContext(ctxTimeout, query)
	if err != nil {
		r.logger.Error("Falha ao executar GetAllSpaces query.", err)
		return nil, errors.NewDBError("Falha ao buscar todos os espaços", err)
	}
	defer rows.Close()

	spaces := make([]domain.Space, 0)
	for rows.Next() {
		space, err := scanSpace(rows)
		if err != nil {
			r.logger.Error("Falha ao mapear espaço na iteração de GetAllSpaces.", err)
			return nil, errors.NewDBError("Falha ao mapear espaços do DB", err)
		}
		spaces = append(spaces, space)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Erro após iteração das linhas de espaços.", err)
		return nil, errors.NewDBError("Erro após iteração de espaços", err)
	}

	r.logger.Info("GetAllSpaces concluído com sucesso.", map[string]interface{}{"total_spaces": len(spaces)})
	return spaces, nil
}

// UpdateSpace grava todos os campos editáveis de um espaço existente.
func (r *SpaceRepository) UpdateSpace(ctx context.Context, space domain.Space) (domain.Space, error) {
	r.logger.Debug("Iniciando UpdateSpace no repositório.", map[string]interface{}{"id": space.ID})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	query := `
        UPDATE spaces
        SET name = $1, description = $2, type = $3, location = $4, updated_at = $5
        WHERE id = $6
        RETURNING ` + spaceColumns

	updated, err := scanSpace(r.DB.QueryRowContext(ctxTimeout, query,
		space.Name, space.Description, space.Type, space.Location, time.Now().UTC(), space.ID,
	))
	if stderrors.Is(err, sql.ErrNoRows) {
		r.logger.Info("Espaço não encontrado para atualização.", map[string]interface{}{"id": space.ID})
		return domain.Space{}, errors.NewNotFoundError(fmt.Sprintf("Espaço com ID %s não encontrado para atualização.", space.ID))
	}
	if err != nil {
		r.logger.Error("Falha ao atualizar espaço no DB.", err)
		return domain.Space{}, errors.NewDBError("Falha ao atualizar espaço", err)
	}

	r.logger.Info("Espaço atualizado com sucesso.", map[string]interface{}{"id": updated.ID, "name": updated.Name})
	return updated, nil
}

// DeleteSpace remove um espaço pelo ID. Os itens são removidos pelo ON DELETE CASCADE.
func (r *SpaceRepository) DeleteSpace(ctx context.Context, id string) error {
	r.logger.Debug("Iniciando DeleteSpace no repositório.", map[string]interface{}{"id": id})

	ctxTimeout, cancel := context.WithTimeout(ctx, r.DBTimeout)
	defer cancel()

	result, err := r.DB.ExecContext(ctxTimeout, `DELETE FROM spaces WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Falha ao deletar espaço do DB.", err)
		return errors.NewDBError("Falha ao deletar espaço", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.logger.Error("Falha ao verificar linhas afetadas após DeleteSpace.", err)
		return errors.NewDBError("Falha ao verificar linhas afetadas", err)
	}

	if rowsAffected == 0 {
		r.logger.Info("Espaço não encontrado para exclusão.", map[string]interface{}{"id": id})
		return errors.NewNotFoundError(fmt.Sprintf("Espaço com ID %s não encontrado para exclusão.", id))
	}

	r.logger.Info("Espaço deletado com sucesso.", map[string]interface{}{"id": id})
	return nil
}
