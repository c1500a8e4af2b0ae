package controller_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"easyinventory/internal/controller"
	"easyinventory/internal/domain"
)

// MockAPI é uma implementação mock de controller.API.
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) ListSpaces(ctx context.Context) ([]domain.Space, error) {
	args := m.Called(ctx)
	spaces, _ := args.Get(0).([]domain.Space)
	return spaces, args.Error(1)
}

func (m *MockAPI) CreateSpace(ctx context.Context, space domain.Space) (domain.Space, error) {
	args := m.Called(ctx, space)
	return args.Get(0).(domain.Space), args.Error(1)
}

func (m *MockAPI) DeleteSpace(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAPI) ListItems(ctx context.Context, spaceID string) ([]domain.Item, error) {
	args := m.Called(ctx, spaceID)
	items, _ := args.Get(0).([]domain.Item)
	return items, args.Error(1)
}

func (m *MockAPI) CreateItem(ctx context.Context, item domain.Item) (domain.Item, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(domain.Item), args.Error(1)
}

func (m *MockAPI) DeleteItem(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAPI) UpdateQuantity(ctx context.Context, id string, quantity int) (domain.Item, error) {
	args := m.Called(ctx, id, quantity)
	return args.Get(0).(domain.Item), args.Error(1)
}

var (
	ctx     = context.Background()
	errDown = errors.New("connection refused")
	hq      = domain.Space{ID: "s1", Name: "Main", Type: domain.SpaceTypeWarehouse, Location: "A"}
	annex   = domain.Space{ID: "s2", Name: "Annex", Type: domain.SpaceTypeRetail, Location: "B"}
)

func mounted(t *testing.T, spaces ...domain.Space) (*controller.Controller, *MockAPI) {
	t.Helper()
	api := new(MockAPI)
	api.On("ListSpaces", mock.Anything).Return(spaces, nil).Once()
	c := controller.New(api)
	c.Mount(ctx)
	return c, api
}

func TestController_StartsLoadingThenShowsSpaces(t *testing.T) {
	api := new(MockAPI)
	c := controller.New(api)
	assert.Equal(t, controller.ViewLoading, c.View())

	api.On("ListSpaces", mock.Anything).Return([]domain.Space{hq}, nil)
	c.Mount(ctx)

	assert.Equal(t, controller.ViewSpaces, c.View())
	assert.False(t, c.State().Loading)
	assert.Equal(t, []domain.Space{hq}, c.State().Spaces)
}

func TestController_LoadFailureThenRetry(t *testing.T) {
	api := new(MockAPI)
	api.On("ListSpaces", mock.Anything).Return(nil, errDown).Once()
	c := controller.New(api)
	c.Mount(ctx)

	assert.Equal(t, controller.ViewError, c.View())
	assert.Equal(t, controller.MsgLoadSpaces, c.State().Error)

	api.On("ListSpaces", mock.Anything).Return([]domain.Space{hq}, nil).Once()
	c.Retry(ctx)

	assert.Equal(t, controller.ViewSpaces, c.View())
	assert.Empty(t, c.State().Error)
}

func TestController_SelectSpaceAndBack(t *testing.T) {
	c, api := mounted(t, hq)
	items := []domain.Item{{ID: "i1", Name: "Widget", Category: "Hardware", SpaceID: "s1"}}
	api.On("ListItems", mock.Anything, "s1").Return(items, nil)

	c.SetSearch("old")
	c.SelectSpace(ctx, hq)

	assert.Equal(t, controller.ViewSpaceDetail, c.View())
	assert.Empty(t, c.State().Search)
	assert.Equal(t, items, c.State().Items)

	c.SetSearch("wid")
	c.Back()

	assert.Equal(t, controller.ViewSpaces, c.View())
	assert.Nil(t, c.State().Current)
	assert.Empty(t, c.State().Items)
	assert.Empty(t, c.State().Search)
}

func TestController_SelectSpaceItemFailure(t *testing.T) {
	c, api := mounted(t, hq)
	api.On("ListItems", mock.Anything, "s1").Return(nil, errDown)

	c.SelectSpace(ctx, hq)

	assert.Equal(t, controller.MsgLoadItems, c.State().Error)
	assert.Equal(t, controller.ViewError, c.View())
}

func TestController_CreateSpace(t *testing.T) {
	c, api := mounted(t, hq)
	c.OpenCreateSpace()

	// Sem local: nenhuma chamada.
	require.NoError(t, c.SetSpaceField("name", "Annex"))
	c.CreateSpace(ctx)
	api.AssertNotCalled(t, "CreateSpace", mock.Anything, mock.Anything)
	assert.True(t, c.State().ShowCreateSpace)

	require.NoError(t, c.SetSpaceField("location", "B"))
	require.NoError(t, c.SetSpaceField("type", "retail"))
	api.On("CreateSpace", mock.Anything, domain.Space{Name: "Annex", Type: domain.SpaceTypeRetail, Location: "B"}).Return(annex, nil)
	c.CreateSpace(ctx)

	st := c.State()
	assert.Equal(t, []domain.Space{annex, hq}, st.Spaces, "o novo espaço entra no topo")
	assert.False(t, st.ShowCreateSpace)
	assert.Equal(t, controller.SpaceForm{Type: "warehouse"}, st.SpaceForm)

	assert.Error(t, c.SetSpaceField("color", "red"))
}

func TestController_CreateSpaceFailure(t *testing.T) {
	c, api := mounted(t)
	api.On("CreateSpace", mock.Anything, mock.Anything).Return(domain.Space{}, errDown)
	_ = c.SetSpaceField("name", "X")
	_ = c.SetSpaceField("location", "Y")

	c.CreateSpace(ctx)

	assert.Equal(t, controller.MsgCreateSpace, c.State().Error)
	assert.Equal(t, "X", c.State().SpaceForm.Name, "o formulário é mantido")
}

func TestController_AddItemParsesForm(t *testing.T) {
	c, api := mounted(t, hq)
	existing := domain.Item{ID: "i0", Name: "Old", Category: "Misc", SpaceID: "s1"}
	api.On("ListItems", mock.Anything, "s1").Return([]domain.Item{existing}, nil)
	c.SelectSpace(ctx, hq)
	c.OpenAddItem()

	for field, value := range map[string]string{
		"name": "Widget", "category": "Hardware", "quantity": "2", "minStock": "5", "price": "1.5", "supplier": "ACME",
	} {
		require.NoError(t, c.SetItemField(field, value))
	}

	want := domain.Item{Name: "Widget", Category: "Hardware", Quantity: 2, MinStock: 5, Price: 1.5, Supplier: "ACME", SpaceID: "s1"}
	created := want
	created.ID = "i1"
	api.On("CreateItem", mock.Anything, want).Return(created, nil)

	c.AddItem(ctx)

	st := c.State()
	assert.Equal(t, []domain.Item{created, existing}, st.Items)
	assert.False(t, st.ShowAddItem)
	assert.Equal(t, "0", st.ItemForm.Quantity)
}

func TestController_AddItemInvalidNumbersBecomeZero(t *testing.T) {
	c, api := mounted(t, hq)
	api.On("ListItems", mock.Anything, "s1").Return(nil, nil)
	c.SelectSpace(ctx, hq)
	_ = c.SetItemField("name", "Bolt")
	_ = c.SetItemField("category", "Hardware")
	_ = c.SetItemField("quantity", "abc")
	_ = c.SetItemField("price", "")

	api.On("CreateItem", mock.Anything, mock.MatchedBy(func(i domain.Item) bool {
		return i.Quantity == 0 && i.Price == 0
	})).Return(domain.Item{ID: "i1"}, nil)

	c.AddItem(ctx)
	api.AssertExpectations(t)
}

func TestController_AddItemKeepsNumericPrefix(t *testing.T) {
	tests := []struct {
		quantity, minStock, price string
		want                      domain.Item
	}{
		{"2.7", "12abc", "1.5kg", domain.Item{Quantity: 2, MinStock: 12, Price: 1.5}},
		{" 7 ", "x3", ".5", domain.Item{Quantity: 7, MinStock: 0, Price: 0.5}},
		{"-4", "+6", "2e2 each", domain.Item{Quantity: -4, MinStock: 6, Price: 200}},
	}

	for _, tt := range tests {
		t.Run(tt.quantity+"/"+tt.minStock+"/"+tt.price, func(t *testing.T) {
			c, api := mounted(t, hq)
			api.On("ListItems", mock.Anything, "s1").Return(nil, nil)
			c.SelectSpace(ctx, hq)
			_ = c.SetItemField("name", "Bolt")
			_ = c.SetItemField("category", "Hardware")
			_ = c.SetItemField("quantity", tt.quantity)
			_ = c.SetItemField("minStock", tt.minStock)
			_ = c.SetItemField("price", tt.price)

			want := tt.want
			want.Name, want.Category, want.SpaceID = "Bolt", "Hardware", "s1"
			api.On("CreateItem", mock.Anything, want).Return(want, nil)

			c.AddItem(ctx)
			api.AssertExpectations(t)
		})
	}
}

func TestController_AddItemRequiresNameAndCategory(t *testing.T) {
	c, api := mounted(t, hq)
	api.On("ListItems", mock.Anything, "s1").Return(nil, nil)
	c.SelectSpace(ctx, hq)
	_ = c.SetItemField("name", "Bolt")

	c.AddItem(ctx)

	api.AssertNotCalled(t, "CreateItem", mock.Anything, mock.Anything)
}

func TestController_DeleteSpaceClearsSelection(t *testing.T) {
	c, api := mounted(t, hq, annex)
	api.On("ListItems", mock.Anything, "s1").Return([]domain.Item{{ID: "i1"}}, nil)
	api.On("DeleteSpace", mock.Anything, "s1").Return(nil)
	c.SelectSpace(ctx, hq)

	c.DeleteSpace(ctx, "s1")

	st := c.State()
	assert.Equal(t, []domain.Space{annex}, st.Spaces)
	assert.Nil(t, st.Current)
	assert.Empty(t, st.Items)
}

func TestController_DeleteAndUpdateItems(t *testing.T) {
	c, api := mounted(t, hq)
	a := domain.Item{ID: "a", Name: "A", Category: "X", Quantity: 1}
	b := domain.Item{ID: "b", Name: "B", Category: "Y", Quantity: 2}
	api.On("ListItems", mock.Anything, "s1").Return([]domain.Item{a, b}, nil)
	c.SelectSpace(ctx, hq)

	updated := b
	updated.Quantity = 7
	api.On("UpdateQuantity", mock.Anything, "b", 7).Return(updated, nil)
	c.UpdateQuantity(ctx, "b", 7)
	assert.Equal(t, []domain.Item{a, updated}, c.State().Items)

	api.On("DeleteItem", mock.Anything, "a").Return(nil)
	c.DeleteItem(ctx, "a")
	assert.Equal(t, []domain.Item{updated}, c.State().Items)
}

func TestController_FailureMessages(t *testing.T) {
	tests := []struct {
		name string
		act  func(*controller.Controller, *MockAPI)
		want string
	}{
		{"excluir espaço", func(c *controller.Controller, api *MockAPI) {
			api.On("DeleteSpace", mock.Anything, "s1").Return(errDown)
			c.DeleteSpace(ctx, "s1")
		}, controller.MsgDeleteSpace},
		{"excluir item", func(c *controller.Controller, api *MockAPI) {
			api.On("DeleteItem", mock.Anything, "i1").Return(errDown)
			c.DeleteItem(ctx, "i1")
		}, controller.MsgDeleteItem},
		{"atualizar quantidade", func(c *controller.Controller, api *MockAPI) {
			api.On("UpdateQuantity", mock.Anything, "i1", 3).Return(domain.Item{}, errDown)
			c.UpdateQuantity(ctx, "i1", 3)
		}, controller.MsgUpdateQuantity},
		{"adicionar item", func(c *controller.Controller, api *MockAPI) {
			api.On("ListItems", mock.Anything, "s1").Return(nil, nil)
			api.On("CreateItem", mock.Anything, mock.Anything).Return(domain.Item{}, errDown)
			c.SelectSpace(ctx, hq)
			_ = c.SetItemField("name", "n")
			_ = c.SetItemField("category", "c")
			c.AddItem(ctx)
		}, controller.MsgAddItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, api := mounted(t, hq)
			tt.act(c, api)
			assert.Equal(t, tt.want, c.State().Error)
		})
	}
}

func TestController_DerivedStateFollowsItems(t *testing.T) {
	c, api := mounted(t, hq)
	api.On("ListItems", mock.Anything, "s1").Return([]domain.Item{
		{ID: "w", Name: "Widget", Category: "Hardware", Quantity: 2, MinStock: 5, Price: 1.5},
		{ID: "p", Name: "Paper", Category: "Office", Quantity: 10, MinStock: 1, Price: 0.1},
	}, nil)
	c.SelectSpace(ctx, hq)

	assert.Equal(t, 2, c.Summary().ItemCount)
	assert.InDelta(t, 4.0, c.Summary().TotalValue, 1e-9)
	assert.Len(t, c.FilteredItems(), 2)

	c.SetSearch("OFF")
	require.Len(t, c.FilteredItems(), 1)
	assert.Equal(t, "Paper", c.FilteredItems()[0].Name)
	assert.Equal(t, 2, c.Summary().ItemCount, "métricas consideram todos os itens do espaço")
}
