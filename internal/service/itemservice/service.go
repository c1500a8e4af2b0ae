package itemservice

import (
	"context"
	"fmt"

	"easyinventory/internal/domain"
	apperror "easyinventory/internal/errors"
	"easyinventory/internal/pkg/logger"
	"easyinventory/internal/validation"
)

// Service implementa as regras de negócio de itens.
type Service struct {
	items  domain.ItemRepository
	spaces domain.SpaceRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Itens.
func NewService(items domain.ItemRepository, spaces domain.SpaceRepository, logger logger.Logger) *Service {
	return &Service{items: items, spaces: spaces, logger: logger}
}

// ensureSpace garante que spaceId referencia um espaço existente.
func (s *Service) ensureSpace(ctx context.Context, spaceID string) error {
	_, err := s.spaces.GetSpaceByID(ctx, spaceID)
	if apperror.IsNotFound(err) {
		return apperror.NewFieldValidationError(
			fmt.Sprintf("o espaço %s não existe.", spaceID),
			[]domain.FieldError{{Field: "spaceId", Tag: "exists"}},
		)
	}
	return err
}

// CreateItem normaliza, valida e grava um novo item no espaço informado.
func (s *Service) CreateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	s.logger.Debug("Iniciando criação de item no serviço.", map[string]interface{}{"name": item.Name, "space_id": item.SpaceID})

	item.Normalize()
	if err := validation.ValidateItem(item); err != nil {
		s.logger.Warn("Falha na validação do item.", map[string]interface{}{"name": item.Name, "error": err.Error()})
		return domain.Item{}, err
	}
	if err := s.ensureSpace(ctx, item.SpaceID); err != nil {
		s.logger.Warn("Espaço do item inválido.", map[string]interface{}{"space_id": item.SpaceID, "error": err.Error()})
		return domain.Item{}, err
	}

	created, err := s.items.CreateItem(ctx, item)
	if err != nil {
		s.logger.Error("Falha ao criar item no repositório.", err)
		return domain.Item{}, err
	}

	s.logger.Info("Item criado com sucesso.", map[string]interface{}{"id": created.ID, "name": created.Name})
	return created, nil
}

// GetItemByID busca um item pelo ID após validar o formato.
func (s *Service) GetItemByID(ctx context.Context, id string) (domain.Item, error) {
	if err := validation.ValidateID(id, "item"); err != nil {
		s.logger.Warn("ID de item inválido fornecido.", map[string]interface{}{"id": id})
		return domain.Item{}, err
	}
	return s.items.GetItemByID(ctx, id)
}

// ListItemsBySpace devolve os itens do espaço, mais recentes primeiro.
func (s *Service) ListItemsBySpace(ctx context.Context, spaceID string) ([]domain.Item, error) {
	s.logger.Debug("Iniciando listagem de itens do espaço.", map[string]interface{}{"space_id": spaceID})

	if err := validation.ValidateID(spaceID, "espaço"); err != nil {
		s.logger.Warn("ID de espaço inválido fornecido.", map[string]interface{}{"space_id": spaceID})
		return nil, err
	}

	items, err := s.items.GetItemsBySpace(ctx, spaceID)
	if err != nil {
		s.logger.Error("Falha ao listar itens no repositório.", err)
		return nil, err
	}
	return items, nil
}

// UpdateItem aplica o patch sobre o item atual e valida o resultado inteiro.
func (s *Service) UpdateItem(ctx context.Context, id string, patch domain.ItemPatch) (domain.Item, error) {
	s.logger.Debug("Iniciando atualização de item no serviço.", map[string]interface{}{"id": id})

	current, err := s.GetItemByID(ctx, id)
	if err != nil {
		return domain.Item{}, err
	}

	merged := patch.Apply(current)
	if err := validation.ValidateItem(merged); err != nil {
		s.logger.Warn("Falha na validação do item para atualização.", map[string]interface{}{"id": id, "error": err.Error()})
		return domain.Item{}, err
	}
	if merged.SpaceID != current.SpaceID {
		if err := s.ensureSpace(ctx, merged.SpaceID); err != nil {
			return domain.Item{}, err
		}
	}

	updated, err := s.items.UpdateItem(ctx, merged)
	if err != nil {
		s.logger.Error("Falha ao atualizar item no repositório.", err)
		return domain.Item{}, err
	}

	s.logger.Info("Item atualizado com sucesso.", map[string]interface{}{"id": updated.ID})
	return updated, nil
}

// UpdateQuantity altera apenas a quantidade do item.
func (s *Service) UpdateQuantity(ctx context.Context, id string, update domain.QuantityUpdate) (domain.Item, error) {
	if err := validation.ValidateID(id, "item"); err != nil {
		return domain.Item{}, err
	}
	if err := validation.ValidateQuantityUpdate(update); err != nil {
		s.logger.Warn("Quantidade inválida.", map[string]interface{}{"id": id, "error": err.Error()})
		return domain.Item{}, err
	}

	updated, err := s.items.UpdateItemQuantity(ctx, id, *update.Quantity)
	if err != nil {
		return domain.Item{}, err
	}

	s.logger.Info("Quantidade atualizada.", map[string]interface{}{"id": id, "quantity": updated.Quantity})
	return updated, nil
}

// DeleteItem remove um item.
func (s *Service) DeleteItem(ctx context.Context, id string) error {
	if err := validation.ValidateID(id, "item"); err != nil {
		return err
	}

	if err := s.items.DeleteItem(ctx, id); err != nil {
		s.logger.Error("Falha ao deletar item no repositório.", err)
		return err
	}

	s.logger.Info("Item deletado com sucesso.", map[string]interface{}{"id": id})
	return nil
}
