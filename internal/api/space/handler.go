package space

import (
	"context"
	"net/http"

	"easyinventory/internal/api/response"
	"easyinventory/internal/domain"
	"easyinventory/internal/pkg/logger"
	"easyinventory/internal/service/spaceservice"
)

// SpaceService define o contrato que o Handler espera da camada de Serviço.
type SpaceService interface {
	CreateSpace(ctx context.Context, space domain.Space) (domain.Space, error)
	GetSpaceByID(ctx context.Context, id string) (domain.Space, error)
	ListSpaces(ctx context.Context) ([]domain.Space, error)
	UpdateSpace(ctx context.Context, id string, patch domain.SpacePatch) (domain.Space, error)
	DeleteSpace(ctx context.Context, id string) error
	Summary(ctx context.Context, id, search string) (spaceservice.SpaceSummary, error)
}

// Handler agrupa todos os métodos de Handler de espaços.
type Handler struct {
	Service SpaceService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc SpaceService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// CreateSpaceHandler lida com a requisição POST /api/spaces.
// @Summary Cria um novo espaço
// @Description Cria um novo espaço de inventário. O tipo padrão é warehouse.
// @Tags spaces
// @Accept json
// @Produce json
// @Param space body domain.Space true "Dados do espaço para criação"
// @Success 201 {object} domain.Space "Espaço criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /spaces [post]
func (h *Handler) CreateSpaceHandler(w http.ResponseWriter, r *http.Request) {
	var space domain.Space
	if err := response.Decode(w, r, &space); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	created, err := h.Service.CreateSpace(r.Context(), space)
	response.Handle(w, r, h.Logger, created, err, http.StatusCreated)
}

// GetSpaceByIDHandler lida com a requisição GET /api/spaces/{id}.
// @Summary Obtém um espaço por ID
// @Tags spaces
// @Produce json
// @Param id path string true "ID do Espaço"
// @Success 200 {object} domain.Space "Espaço encontrado"
// @Failure 400 {object} domain.ErrorResponse "ID inválido"
// @Failure 404 {object} domain.ErrorResponse "Espaço não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /spaces/{id} [get]
func (h *Handler) GetSpaceByIDHandler(w http.ResponseWriter, r *http.Request) {
	space, err := h.Service.GetSpaceByID(r.Context(), r.PathValue("id"))
	response.Handle(w, r, h.Logger, space, err, http.StatusOK)
}

// ListSpacesHandler lida com a requisição GET /api/spaces.
// @Summary Lista todos os espaços
// @Description Retorna os espaços cadastrados, mais recentes primeiro.
// @Tags spaces
// @Produce json
// @Success 200 {array} domain.Space "Lista de espaços"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /spaces [get]
func (h *Handler) ListSpacesHandler(w http.ResponseWriter, r *http.Request) {
	spaces, err := h.Service.ListSpaces(r.Context())
	if spaces == nil {
		spaces = []domain.Space{}
	}
	response.Handle(w, r, h.Logger, spaces, err, http.StatusOK)
}

// UpdateSpaceHandler lida com a requisição PUT /api/spaces/{id}.
// @Summary Atualiza um espaço
// @Description Campos enviados sobrescrevem os atuais; campos ausentes são mantidos.
// @Tags spaces
// @Accept json
// @Produce json
// @Param id path string true "ID do Espaço"
// @Param space body domain.SpacePatch true "Campos a atualizar"
// @Success 200 {object} domain.Space "Espaço atualizado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Payload inválido"
// @Failure 404 {object} domain.ErrorResponse "Espaço não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /spaces/{id} [put]
func (h *Handler) UpdateSpaceHandler(w http.ResponseWriter, r *http.Request) {
	var patch domain.SpacePatch
	if err := response.Decode(w, r, &patch); err != nil {
		response.Error(w, r, h.Logger, err)
		return
	}

	updated, err := h.Service.UpdateSpace(r.Context(), r.PathValue("id"), patch)
	response.Handle(w, r, h.Logger, updated, err, http.StatusOK)
}

// DeleteSpaceHandler lida com a requisição DELETE /api/spaces/{id}.
// @Summary Deleta um espaço
// @Description Remove o espaço e todos os itens que ele contém.
// @Tags spaces
// @Produce json
// @Param id path string true "ID do Espaço"
// @Success 200 {object} domain.MessageResponse "Espaço removido"
// @Failure 404 {object} domain.ErrorResponse "Espaço não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /spaces/{id} [delete]
func (h *Handler) DeleteSpaceHandler(w http.ResponseWriter, r *http.Request) {
	err := h.Service.DeleteSpace(r.Context(), r.PathValue("id"))
	response.Handle(w, r, h.Logger, domain.MessageResponse{Message: "Space deleted successfully"}, err, http.StatusOK)
}

// SummaryHandler lida com a requisição GET /api/spaces/{id}/summary.
// @Summary Resumo do inventário do espaço
// @Description Total de itens, estoque baixo, valor total e principais categorias, filtrados por search.
// @Tags spaces
// @Produce json
// @Param id path string true "ID do Espaço"
// @Param search query string false "Filtro por nome ou categoria"
// @Success 200 {object} spaceservice.SpaceSummary "Resumo"
// @Failure 404 {object} domain.ErrorResponse "Espaço não encontrado"
// @Failure 500 {object} domain.ErrorResponse "Erro interno do servidor"
// @Router /spaces/{id}/summary [get]
func (h *Handler) SummaryHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.Summary(r.Context(), r.PathValue("id"), r.URL.Query().Get("search"))
	response.Handle(w, r, h.Logger, summary, err, http.StatusOK)
}
