// Package controller guarda o estado do front-end de terminal e orquestra as
// chamadas à API. Toda falha vira uma mensagem fixa em State.Error.
package controller

import (
	"context"
	stderrors "errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"easyinventory/internal/domain"
	"easyinventory/internal/inventory"
)

// Mensagens exibidas ao usuário quando uma chamada falha.
const (
	MsgLoadSpaces     = "Failed to load spaces"
	MsgLoadItems      = "Failed to load items"
	MsgCreateSpace    = "Failed to create space"
	MsgAddItem        = "Failed to add item"
	MsgDeleteSpace    = "Failed to delete space"
	MsgDeleteItem     = "Failed to delete item"
	MsgUpdateQuantity = "Failed to update quantity"
)

// API é o subconjunto do cliente HTTP usado pelo controller.
type API interface {
	ListSpaces(ctx context.Context) ([]domain.Space, error)
	CreateSpace(ctx context.Context, space domain.Space) (domain.Space, error)
	DeleteSpace(ctx context.Context, id string) error
	ListItems(ctx context.Context, spaceID string) ([]domain.Item, error)
	CreateItem(ctx context.Context, item domain.Item) (domain.Item, error)
	DeleteItem(ctx context.Context, id string) error
	UpdateQuantity(ctx context.Context, id string, quantity int) (domain.Item, error)
}

// View identifica a tela a ser desenhada.
type View int

const (
	ViewLoading View = iota
	ViewError
	ViewSpaces
	ViewSpaceDetail
)

func (v View) String() string {
	switch v {
	case ViewLoading:
		return "loading"
	case ViewError:
		return "error"
	case ViewSpaces:
		return "spaces"
	case ViewSpaceDetail:
		return "space-detail"
	}
	return "unknown"
}

// SpaceForm é o buffer do modal de criação de espaço.
type SpaceForm struct {
	Name        string
	Description string
	Type        string
	Location    string
}

func emptySpaceForm() SpaceForm {
	return SpaceForm{Type: string(domain.SpaceTypeWarehouse)}
}

// ItemForm é o buffer do modal de novo item. Campos numéricos ficam como
// texto digitado e são convertidos no envio (valor inválido vira 0).
type ItemForm struct {
	Name        string
	Category    string
	Quantity    string
	MinStock    string
	Price       string
	Supplier    string
	Description string
}

func emptyItemForm() ItemForm {
	return ItemForm{Quantity: "0", MinStock: "0", Price: "0"}
}

// State é tudo o que as views precisam para desenhar uma tela.
type State struct {
	Spaces          []domain.Space
	Current         *domain.Space
	Items           []domain.Item
	Loading         bool
	Error           string
	Search          string
	SpaceForm       SpaceForm
	ItemForm        ItemForm
	ShowCreateSpace bool
	ShowAddItem     bool
}

// Controller aplica as intenções do usuário sobre o State.
type Controller struct {
	api   API
	state State
}

// New cria o controller no estado inicial (carregando).
func New(api API) *Controller {
	return &Controller{
		api: api,
		state: State{
			Loading:   true,
			SpaceForm: emptySpaceForm(),
			ItemForm:  emptyItemForm(),
		},
	}
}

// State devolve uma cópia do estado atual.
func (c *Controller) State() State {
	return c.state
}

// View decide a tela: carregando, erro, lista de espaços ou detalhe.
func (c *Controller) View() View {
	switch {
	case c.state.Loading:
		return ViewLoading
	case c.state.Error != "":
		return ViewError
	case c.state.Current != nil:
		return ViewSpaceDetail
	default:
		return ViewSpaces
	}
}

// Mount carrega todos os espaços.
func (c *Controller) Mount(ctx context.Context) {
	c.loadSpaces(ctx)
}

func (c *Controller) loadSpaces(ctx context.Context) {
	c.state.Loading = true
	defer func() { c.state.Loading = false }()

	spaces, err := c.api.ListSpaces(ctx)
	if err != nil {
		c.state.Error = MsgLoadSpaces
		return
	}
	c.state.Spaces = spaces
}

func (c *Controller) loadItems(ctx context.Context, spaceID string) {
	items, err := c.api.ListItems(ctx, spaceID)
	if err != nil {
		c.state.Error = MsgLoadItems
		return
	}
	c.state.Items = items
}

// Retry limpa o erro e recarrega os espaços.
func (c *Controller) Retry(ctx context.Context) {
	c.state.Error = ""
	c.loadSpaces(ctx)
}

// SelectSpace abre o detalhe do espaço, limpa a busca e carrega os itens.
func (c *Controller) SelectSpace(ctx context.Context, space domain.Space) {
	c.state.Current = &space
	c.state.Search = ""
	c.state.Items = nil
	c.loadItems(ctx, space.ID)
}

// Back volta para a lista de espaços.
func (c *Controller) Back() {
	c.state.Current = nil
	c.state.Items = nil
	c.state.Search = ""
}

// SetSearch altera o termo de busca do detalhe.
func (c *Controller) SetSearch(term string) {
	c.state.Search = term
}

// OpenCreateSpace abre o modal de criação de espaço.
func (c *Controller) OpenCreateSpace() { c.state.ShowCreateSpace = true }

// CloseCreateSpace fecha o modal de criação de espaço sem descartar o buffer.
func (c *Controller) CloseCreateSpace() { c.state.ShowCreateSpace = false }

// OpenAddItem abre o modal de novo item.
func (c *Controller) OpenAddItem() { c.state.ShowAddItem = true }

// CloseAddItem fecha o modal de novo item sem descartar o buffer.
func (c *Controller) CloseAddItem() { c.state.ShowAddItem = false }

// SetSpaceField altera um campo do formulário de espaço.
func (c *Controller) SetSpaceField(field, value string) error {
	f := &c.state.SpaceForm
	switch strings.ToLower(field) {
	case "name":
		f.Name = value
	case "description":
		f.Description = value
	case "type":
		f.Type = value
	case "location":
		f.Location = value
	default:
		return fmt.Errorf("campo desconhecido: %s", field)
	}
	return nil
}

// SetItemField altera um campo do formulário de item.
func (c *Controller) SetItemField(field, value string) error {
	f := &c.state.ItemForm
	switch strings.ToLower(field) {
	case "name":
		f.Name = value
	case "category":
		f.Category = value
	case "quantity":
		f.Quantity = value
	case "minstock":
		f.MinStock = value
	case "price":
		f.Price = value
	case "supplier":
		f.Supplier = value
	case "description":
		f.Description = value
	default:
		return fmt.Errorf("campo desconhecido: %s", field)
	}
	return nil
}

// CreateSpace envia o formulário de espaço. Sem nome ou local, nada acontece.
func (c *Controller) CreateSpace(ctx context.Context) {
	f := c.state.SpaceForm
	if f.Name == "" || f.Location == "" {
		return
	}

	created, err := c.api.CreateSpace(ctx, domain.Space{
		Name:        f.Name,
		Description: f.Description,
		Type:        domain.SpaceType(f.Type),
		Location:    f.Location,
	})
	if err != nil {
		c.state.Error = MsgCreateSpace
		return
	}

	c.state.Spaces = append([]domain.Space{created}, c.state.Spaces...)
	c.state.SpaceForm = emptySpaceForm()
	c.state.ShowCreateSpace = false
}

// AddItem envia o formulário de item para o espaço aberto. Sem nome ou
// categoria, nada acontece.
func (c *Controller) AddItem(ctx context.Context) {
	f := c.state.ItemForm
	if f.Name == "" || f.Category == "" || c.state.Current == nil {
		return
	}

	created, err := c.api.CreateItem(ctx, domain.Item{
		Name:        f.Name,
		Category:    f.Category,
		Quantity:    atoiOrZero(f.Quantity),
		MinStock:    atoiOrZero(f.MinStock),
		Price:       atofOrZero(f.Price),
		Supplier:    f.Supplier,
		Description: f.Description,
		SpaceID:     c.state.Current.ID,
	})
	if err != nil {
		c.state.Error = MsgAddItem
		return
	}

	c.state.Items = append([]domain.Item{created}, c.state.Items...)
	c.state.ItemForm = emptyItemForm()
	c.state.ShowAddItem = false
}

// DeleteSpace remove o espaço da lista. Se for o espaço aberto, volta para a lista.
func (c *Controller) DeleteSpace(ctx context.Context, id string) {
	if err := c.api.DeleteSpace(ctx, id); err != nil {
		c.state.Error = MsgDeleteSpace
		return
	}

	kept := make([]domain.Space, 0, len(c.state.Spaces))
	for _, s := range c.state.Spaces {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	c.state.Spaces = kept

	if c.state.Current != nil && c.state.Current.ID == id {
		c.state.Current = nil
		c.state.Items = nil
	}
}

// DeleteItem remove o item da lista local.
func (c *Controller) DeleteItem(ctx context.Context, id string) {
	if err := c.api.DeleteItem(ctx, id); err != nil {
		c.state.Error = MsgDeleteItem
		return
	}

	kept := make([]domain.Item, 0, len(c.state.Items))
	for _, it := range c.state.Items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	c.state.Items = kept
}

// UpdateQuantity troca o item pela versão devolvida pela API.
func (c *Controller) UpdateQuantity(ctx context.Context, id string, quantity int) {
	updated, err := c.api.UpdateQuantity(ctx, id, quantity)
	if err != nil {
		c.state.Error = MsgUpdateQuantity
		return
	}

	items := make([]domain.Item, len(c.state.Items))
	for i, it := range c.state.Items {
		if it.ID == id {
			it = updated
		}
		items[i] = it
	}
	c.state.Items = items
}

// Summary recalcula as métricas sobre todos os itens do espaço aberto.
func (c *Controller) Summary() inventory.Summary {
	return inventory.Summarize(c.state.Items)
}

// FilteredItems aplica o termo de busca aos itens do espaço aberto.
func (c *Controller) FilteredItems() []domain.Item {
	return inventory.Filter(c.state.Items, c.state.Search)
}

var (
	leadingInt   = regexp.MustCompile(`^[+-]?\d+`)
	leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)
)

// atoiOrZero lê o prefixo numérico do texto ("12abc" vira 12, "2.7" vira 2).
// Sem dígitos no início, devolve 0. Valores fora de int ficam saturados e são
// recusados pela API.
func atoiOrZero(s string) int {
	prefix := leadingInt.FindString(strings.TrimSpace(s))
	if prefix == "" {
		return 0
	}
	n, err := strconv.ParseInt(prefix, 10, 0)
	if err != nil && !stderrors.Is(err, strconv.ErrRange) {
		return 0
	}
	return int(n)
}

// atofOrZero faz o mesmo para decimais ("1.5kg" vira 1.5).
func atofOrZero(s string) float64 {
	prefix := leadingFloat.FindString(strings.TrimSpace(s))
	if prefix == "" {
		return 0
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil && !stderrors.Is(err, strconv.ErrRange) {
		return 0
	}
	return f
}
