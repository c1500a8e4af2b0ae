package spaceservice

import (
	"context"

	"easyinventory/internal/domain"
	"easyinventory/internal/inventory"
	"easyinventory/internal/pkg/logger"
	"easyinventory/internal/validation"
)

// SpaceSummary é o payload de GET /api/spaces/{id}/summary.
type SpaceSummary struct {
	Space  domain.Space `json:"space"`
	Search string       `json:"search"`
	inventory.Summary
}

// Service implementa as regras de negócio de espaços.
type Service struct {
	spaces domain.SpaceRepository
	items  domain.ItemRepository
	logger logger.Logger
}

// NewService cria e retorna uma nova instância do Serviço de Espaços.
// O repositório de itens é usado na exclusão em cascata e no resumo.
func NewService(spaces domain.SpaceRepository, items domain.ItemRepository, logger logger.Logger) *Service {
	return &Service{spaces: spaces, items: items, logger: logger}
}

// CreateSpace normaliza, valida e grava um novo espaço.
func (s *Service) CreateSpace(ctx context.Context, space domain.Space) (domain.Space, error) {
	s.logger.Debug("Iniciando criação de espaço no serviço.", map[string]interface{}{"name": space.Name})

	space.Normalize()
	if err := validation.ValidateSpace(space); err != nil {
		s.logger.Warn("Falha na validação do espaço.", map[string]interface{}{"name": space.Name, "error": err.Error()})
		return domain.Space{}, err
	}

	created, err := s.spaces.CreateSpace(ctx, space)
	if err != nil {
		s.logger.Error("Falha ao criar espaço no repositório.", err)
		return domain.Space{}, err
	}

	s.logger.Info("Espaço criado com sucesso.", map[string]interface{}{"id": created.ID, "name": created.Name})
	return created, nil
}

// GetSpaceByID busca um espaço pelo ID após validar o formato.
func (s *Service) GetSpaceByID(ctx context.Context, id string) (domain.Space, error) {
	s.logger.Debug("Iniciando busca de espaço por ID no serviço.", map[string]interface{}{"id": id})

	if err := validation.ValidateID(id, "espaço"); err != nil {
		s.logger.Warn("ID de espaço inválido fornecido.", map[string]interface{}{"id": id})
		return domain.Space{}, err
	}

	space, err := s.spaces.GetSpaceByID(ctx, id)
	if err != nil {
		return domain.Space{}, err // Erros do repositório já são NotFoundError ou DBError
	}
	return space, nil
}

// ListSpaces devolve todos os espaços, mais recentes primeiro.
func (s *Service) ListSpaces(ctx context.Context) ([]domain.Space, error) {
	s.logger.Debug("Iniciando listagem de espaços no serviço.", nil)

	spaces, err := s.spaces.GetAllSpaces(ctx)
	if err != nil {
		s.logger.Error("Falha ao listar espaços no repositório.", err)
		return nil, err
	}

	s.logger.Info("Espaços listados com sucesso.", map[string]interface{}{"count": len(spaces)})
	return spaces, nil
}

// UpdateSpace aplica o patch sobre o documento atual e valida o resultado inteiro.
func (s *Service) UpdateSpace(ctx context.Context, id string, patch domain.SpacePatch) (domain.Space, error) {
	s.logger.Debug("Iniciando atualização de espaço no serviço.", map[string]interface{}{"id": id})

	current, err := s.GetSpaceByID(ctx, id)
	if err != nil {
		return domain.Space{}, err
	}

	merged := patch.Apply(current)
	if err := validation.ValidateSpace(merged); err != nil {
		s.logger.Warn("Falha na validação do espaço para atualização.", map[string]interface{}{"id": id, "error": err.Error()})
		return domain.Space{}, err
	}

	updated, err := s.spaces.UpdateSpace(ctx, merged)
	if err != nil {
		s.logger.Error("Falha ao atualizar espaço no repositório.", err)
		return domain.Space{}, err
	}

	s.logger.Info("Espaço atualizado com sucesso.", map[string]interface{}{"id": updated.ID, "name": updated.Name})
	return updated, nil
}

// DeleteSpace remove o espaço e, em cascata, os seus itens.
func (s *Service) DeleteSpace(ctx context.Context, id string) error {
	s.logger.Debug("Iniciando exclusão de espaço no serviço.", map[string]interface{}{"id": id})

	if _, err := s.GetSpaceByID(ctx, id); err != nil {
		return err
	}

	removed, err := s.items.DeleteItemsBySpace(ctx, id)
	if err != nil {
		s.logger.Error("Falha ao remover itens do espaço.", err)
		return err
	}

	if err := s.spaces.DeleteSpace(ctx, id); err != nil {
		s.logger.Error("Falha ao deletar espaço no repositório.", err)
		return err
	}

	s.logger.Info("Espaço deletado com sucesso.", map[string]interface{}{"id": id, "items_removed": removed})
	return nil
}

// Summary calcula as métricas do espaço sobre os itens que casam com search.
func (s *Service) Summary(ctx context.Context, id, search string) (SpaceSummary, error) {
	space, err := s.GetSpaceByID(ctx, id)
	if err != nil {
		return SpaceSummary{}, err
	}

	items, err := s.items.GetItemsBySpace(ctx, id)
	if err != nil {
		s.logger.Error("Falha ao buscar itens para o resumo.", err)
		return SpaceSummary{}, err
	}

	return SpaceSummary{
		Space:   space,
		Search:  search,
		Summary: inventory.Summarize(inventory.Filter(items, search)),
	}, nil
}
