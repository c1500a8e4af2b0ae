package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"easyinventory/internal/domain"
	"easyinventory/internal/inventory"
)

func item(name, category string, qty, minStock int, price float64) domain.Item {
	return domain.Item{Name: name, Category: category, Quantity: qty, MinStock: minStock, Price: price}
}

func TestLowStock(t *testing.T) {
	items := []domain.Item{
		item("a", "x", 10, 5, 1),
		item("b", "x", 5, 5, 1), // limite: igual entra
		item("c", "x", 0, 0, 1),
		item("d", "x", 6, 5, 1),
		item("e", "x", 1, 3, 1),
	}

	low := inventory.LowStock(items)

	names := make([]string, 0, len(low))
	for _, it := range low {
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{"b", "c", "e"}, names)
	assert.Empty(t, inventory.LowStock(nil))
}

func TestTotalValue(t *testing.T) {
	assert.Equal(t, 0.0, inventory.TotalValue(nil))
	assert.Equal(t, 0.0, inventory.TotalValue([]domain.Item{}))

	items := []domain.Item{
		item("Widget", "Hardware", 2, 5, 1.50),
		item("Bolt", "Hardware", 3, 0, 0.10),
		item("Free", "Misc", 100, 0, 0),
	}
	assert.Equal(t, 3.30, inventory.TotalValue(items))
}

func TestTopCategories_SortsDescendingAndKeepsFirstSeenOnTies(t *testing.T) {
	items := []domain.Item{
		item("1", "A", 3, 0, 0),
		item("2", "B", 5, 0, 0),
		item("3", "A", 2, 0, 0),
	}

	top := inventory.TopCategories(items)

	// A e B somam 5; A apareceu primeiro.
	assert.Equal(t, []inventory.CategoryTotal{
		{Category: "A", Quantity: 5},
		{Category: "B", Quantity: 5},
	}, top)
}

func TestTopCategories_OrderAndLimit(t *testing.T) {
	items := []domain.Item{
		item("1", "low", 1, 0, 0),
		item("2", "high", 50, 0, 0),
		item("3", "mid", 10, 0, 0),
		item("4", "c4", 4, 0, 0),
		item("5", "c5", 5, 0, 0),
		item("6", "c6", 6, 0, 0),
		item("7", "low", 1, 0, 0),
	}

	top := inventory.TopCategories(items)

	require.Len(t, top, inventory.MaxTopCategories)
	assert.Equal(t, inventory.CategoryTotal{Category: "high", Quantity: 50}, top[0])
	assert.Equal(t, inventory.CategoryTotal{Category: "mid", Quantity: 10}, top[1])
	assert.Equal(t, inventory.CategoryTotal{Category: "c6", Quantity: 6}, top[2])
	assert.Equal(t, inventory.CategoryTotal{Category: "c5", Quantity: 5}, top[3])
	assert.Equal(t, inventory.CategoryTotal{Category: "c4", Quantity: 4}, top[4])

	assert.Empty(t, inventory.TopCategories(nil))
}

func TestFilter(t *testing.T) {
	items := []domain.Item{
		item("Widget", "Hardware", 1, 0, 0),
		item("Paper", "Office", 1, 0, 0),
		item("Hammer", "Tools", 1, 0, 0),
	}

	assert.Equal(t, items, inventory.Filter(items, ""), "termo vazio devolve a lista inteira")

	byName := inventory.Filter(items, "wIdG")
	require.Len(t, byName, 1)
	assert.Equal(t, "Widget", byName[0].Name)

	byCategory := inventory.Filter(items, "OFFICE")
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Paper", byCategory[0].Name)

	// "ha" casa com "Hardware" (categoria) e "Hammer" (nome).
	both := inventory.Filter(items, "ha")
	assert.Len(t, both, 2)

	assert.Empty(t, inventory.Filter(items, "zzz"))
}

func TestSummarize(t *testing.T) {
	items := []domain.Item{item("Widget", "Hardware", 2, 5, 1.50)}

	summary := inventory.Summarize(items)

	assert.Equal(t, 1, summary.ItemCount)
	require.Len(t, summary.LowStock, 1)
	assert.Equal(t, "Widget", summary.LowStock[0].Name)
	assert.Equal(t, 3.0, summary.TotalValue)
	assert.Equal(t, []inventory.CategoryTotal{{Category: "Hardware", Quantity: 2}}, summary.TopCategories)
}
