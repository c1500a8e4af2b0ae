// Package inventory calcula as métricas derivadas da lista de itens de um espaço.
// Todas as funções são puras: não fazem I/O e nunca falham.
package inventory

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"easyinventory/internal/domain"
)

// MaxTopCategories é o tamanho máximo do ranking de categorias.
const MaxTopCategories = 5

// CategoryTotal é a quantidade somada de uma categoria.
type CategoryTotal struct {
	Category string `json:"category" example:"Hardware"`
	Quantity int    `json:"quantity" example:"12"`
}

// Summary agrupa as métricas exibidas no detalhe de um espaço.
type Summary struct {
	ItemCount     int             `json:"itemCount"`
	LowStock      []domain.Item   `json:"lowStock"`
	TotalValue    float64         `json:"totalValue"`
	TopCategories []CategoryTotal `json:"topCategories"`
}

// LowStock devolve os itens com quantity <= minStock, na ordem de entrada.
func LowStock(items []domain.Item) []domain.Item {
	low := make([]domain.Item, 0)
	for _, item := range items {
		if item.IsLowStock() {
			low = append(low, item)
		}
	}
	return low
}

// TotalValue soma quantity * price de todos os itens. Lista vazia vale 0.
func TotalValue(items []domain.Item) float64 {
	total := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		total = total.Add(line)
	}
	value, _ := total.Float64()
	return value
}

// TopCategories agrupa por categoria somando quantity e devolve no máximo
// MaxTopCategories grupos em ordem decrescente. Empates mantêm a ordem em que
// a categoria apareceu pela primeira vez.
func TopCategories(items []domain.Item) []CategoryTotal {
	index := make(map[string]int)
	totals := make([]CategoryTotal, 0)
	for _, item := range items {
		pos, ok := index[item.Category]
		if !ok {
			pos = len(totals)
			index[item.Category] = pos
			totals = append(totals, CategoryTotal{Category: item.Category})
		}
		totals[pos].Quantity += item.Quantity
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Quantity > totals[j].Quantity
	})

	if len(totals) > MaxTopCategories {
		totals = totals[:MaxTopCategories]
	}
	return totals
}

// Filter mantém os itens cujo nome ou categoria contém term, sem diferenciar
// maiúsculas. Termo vazio devolve a lista recebida.
func Filter(items []domain.Item, term string) []domain.Item {
	if term == "" {
		return items
	}
	needle := strings.ToLower(term)

	filtered := make([]domain.Item, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Name), needle) ||
			strings.Contains(strings.ToLower(item.Category), needle) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// Summarize calcula todas as métricas de uma vez.
func Summarize(items []domain.Item) Summary {
	return Summary{
		ItemCount:     len(items),
		LowStock:      LowStock(items),
		TotalValue:    TotalValue(items),
		TopCategories: TopCategories(items),
	}
}
