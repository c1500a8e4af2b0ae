package item

import (
	"context"
	"net/http"

	"easyinventory/internal/api/response"
	"easyinventory/internal/domain"
	"easyinventory/internal/pkg/logger"
)

// ItemService define o contrato que o Handler espera da camada de Serviço.
type ItemService interface {
	CreateItem(ctx context.Context, item domain.Item) (domain.Item, error)
	GetItemByID(ctx context.Context, id string) (domain.Item, error)
	ListItemsBySpace(ctx context.Context, spaceID string) ([]domain.Item, error)
	UpdateItem(ctx context.Context, id string, patch domain.ItemPatch) (domain.Item, error)
	UpdateQuantity(ctx context.Context, id string, update domain.QuantityUpdate) (domain.Item, error)
	DeleteItem(ctx context.Context, id string) error
}

// Handler agrupa todos os métodos de Handler de itens.
type Handler struct {
	Service ItemService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler de itens.
func NewHandler(svc ItemService, log logger.Logger) *Handler {
	return &Handler{Service: svc, Logger: log}
}

// CreateItemHandler lida com a requisição POST /api/items.
// @Summary Cria um novo item
// @Tags items
// @Accept json
// @Produce json
// @Param item body domain.Item true "Dados do item (spaceId obrigatório)"
// @Success 201 {object} domain.Item "Item criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido ou espaço inexistente"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /items [post]
func (h *Handler) CreateItemHandler(w http.ResponseWriter, r *http.Request) {
	var item domain.Item
	if err := response.Decode(w, r, &item); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	created, err := h.Service.CreateItem(r.Context(), item)
	response.Handle(w, r, h.Logger, created, err, http.StatusCreated)
}

// GetItemByIDHandler lida com a requisição GET /api/items/{id}.
// @Summary Obtém um item por ID
// @Tags items
// @Produce json
// @Param id path string true "ID do Item"
// @Success 200 {object} domain.Item "Item encontrado"
// @Failure 404 {object} domain.ErrorResponse "Item não encontrado"
// @Router /items/{id} [get]
func (h *Handler) GetItemByIDHandler(w http.ResponseWriter, r *http.Request) {
	item, err := h.Service.GetItemByID(r.Context(), r.PathValue("id"))
	response.Handle(w, r, h.Logger, item, err, http.StatusOK)
}

// ListBySpaceHandler lida com a requisição GET /api/items/space/{spaceId}.
// @Summary Lista os itens de um espaço
// @Description Retorna os itens do espaço, mais recentes primeiro.
// @Tags items
// @Produce json
// @Param spaceId path string true "ID do Espaço"
// @Success 200 {array} domain.Item "Lista de itens"
// @Failure 400 {object} domain.ErrorResponse "ID inválido"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /items/space/{spaceId} [get]
func (h *Handler) ListBySpaceHandler(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ListItemsBySpace(r.Context(), r.PathValue("spaceId"))
	if items == nil {
		items = []domain.Item{}
	}
	response.Handle(w, r, h.Logger, items, err, http.StatusOK)
}

// UpdateItemHandler lida com a requisição PUT /api/items/{id}.
// @Summary Atualiza um item
// @Description Campos enviados sobrescrevem os atuais; campos ausentes são mantidos.
// @Tags items
// @Accept json
// @Produce json
// @Param id path string true "ID do Item"
// @Param item body domain.ItemPatch true "Campos a atualizar"
// @Success 200 {object} domain.Item "Item atualizado"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Item não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /items/{id} [put]
func (h *Handler) UpdateItemHandler(w http.ResponseWriter, r *http.Request) {
	var patch domain.ItemPatch
	if err := response.Decode(w, r, &patch); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	updated, err := h.Service.UpdateItem(r.Context(), r.PathValue("id"), patch)
	response.Handle(w, r, h.Logger, updated, err, http.StatusOK)
}

// UpdateQuantityHandler lida com a requisição PATCH /api/items/{id}/quantity.
// @Summary Atualiza a quantidade de um item
// @Tags items
// @Accept json
// @Produce json
// @Param id path string true "ID do Item"
// @Param body body domain.QuantityUpdate true "Nova quantidade"
// @Success 200 {object} domain.Item "Item atualizado"
// @Failure 400 {object} domain.ErrorResponse "Quantidade inválida"
// @Failure 404 {object} domain.ErrorResponse "Item não encontrado"
// @Router /items/{id}/quantity [patch]
func (h *Handler) UpdateQuantityHandler(w http.ResponseWriter, r *http.Request) {
	var update domain.QuantityUpdate
	if err := response.Decode(w, r, &update); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	updated, err := h.Service.UpdateQuantity(r.Context(), r.PathValue("id"), update)
	response.Handle(w, r, h.Logger, updated, err, http.StatusOK)
}

// DeleteItemHandler lida com a requisição DELETE /api/items/{id}.
// @Summary Deleta um item
// @Tags items
// @Produce json
// @Param id path string true "ID do Item"
// @Success 200 {object} domain.MessageResponse "Item removido"
// @Failure 404 {object} domain.ErrorResponse "Item não encontrado"
// @Router /items/{id} [delete]
func (h *Handler) DeleteItemHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.DeleteItem(r.Context(), r.PathValue("id"))
	response.Handle(w, r, h.Logger, domain.MessageResponse{Message: "Item deleted successfully"}, err, http.StatusOK)
}
