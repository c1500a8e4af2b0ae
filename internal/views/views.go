// Package views desenha as telas do front-end de terminal.
package views

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"

	"easyinventory/internal/controller"
	"easyinventory/internal/domain"
	"easyinventory/internal/inventory"
)

// Source é o que as views leem do controller.
type Source interface {
	View() controller.View
	State() controller.State
	Summary() inventory.Summary
	FilteredItems() []domain.Item
}

// Renderer escreve as telas em w.
type Renderer struct {
	w io.Writer

	title   *color.Color
	muted   *color.Color
	danger  *color.Color
	success *color.Color
	accent  *color.Color
	info    *color.Color
}

// NewRenderer cria um Renderer. Com colored=false a saída é texto puro.
func NewRenderer(w io.Writer, colored bool) *Renderer {
	r := &Renderer{
		w:       w,
		title:   color.New(color.FgHiWhite, color.Bold),
		muted:   color.New(color.FgHiBlack),
		danger:  color.New(color.FgRed, color.Bold),
		success: color.New(color.FgGreen),
		accent:  color.New(color.FgMagenta),
		info:    color.New(color.FgBlue, color.Bold),
	}
	if !colored {
		for _, c := range []*color.Color{r.title, r.muted, r.danger, r.success, r.accent, r.info} {
			c.DisableColor()
		}
	}
	return r
}

// Render desenha a tela corrente e, por cima, os modais abertos.
func (r *Renderer) Render(src Source) {
	st := src.State()

	switch src.View() {
	case controller.ViewLoading:
		r.Loading()
		return
	case controller.ViewError:
		r.Error(st.Error)
		return
	case controller.ViewSpaceDetail:
		r.SpaceDetail(*st.Current, src.Summary(), src.FilteredItems(), st.Search)
	default:
		r.Spaces(st.Spaces)
	}

	if st.ShowCreateSpace {
		r.CreateSpaceModal(st.SpaceForm)
	}
	if st.ShowAddItem {
		r.AddItemModal(st.ItemForm)
	}
}

// Loading é a tela exibida enquanto os espaços são carregados.
func (r *Renderer) Loading() {
	r.muted.Fprintln(r.w, "Loading...")
}

// Error mostra a mensagem de falha e como tentar de novo.
func (r *Renderer) Error(msg string) {
	r.danger.Fprintln(r.w, msg)
	r.muted.Fprintln(r.w, "Type 'retry' to try again.")
}

// Spaces lista os espaços com o número usado por 'open' e 'rm-space'.
func (r *Renderer) Spaces(spaces []domain.Space) {
	r.title.Fprintln(r.w, "Inventory Spaces")
	r.muted.Fprintln(r.w, "Manage your inventory across different locations")
	fmt.Fprintln(r.w)

	if len(spaces) == 0 {
		r.muted.Fprintln(r.w, "No spaces yet. Type 'new-space' to create your first space.")
		return
	}

	for i, s := range spaces {
		r.info.Fprintf(r.w, "[%d] ", i+1)
		r.title.Fprintf(r.w, "%s", s.Name)
		fmt.Fprintf(r.w, "  %s • %s\n", capitalize(string(s.Type)), s.Location)
		if s.Description != "" {
			r.muted.Fprintf(r.w, "    %s\n", s.Description)
		}
	}
}

// SpaceDetail mostra o cabeçalho, os cartões de métricas, o painel de
// reposição, a tabela de itens filtrada e as principais categorias.
func (r *Renderer) SpaceDetail(space domain.Space, summary inventory.Summary, filtered []domain.Item, search string) {
	r.title.Fprintln(r.w, space.Name)
	if space.Description != "" {
		r.muted.Fprintln(r.w, space.Description)
	}
	fmt.Fprintf(r.w, "%s • %s\n\n", capitalize(string(space.Type)), space.Location)

	r.info.Fprintf(r.w, "Total Items: %d", summary.ItemCount)
	fmt.Fprint(r.w, "   ")
	r.danger.Fprintf(r.w, "Low Stock: %d", len(summary.LowStock))
	fmt.Fprint(r.w, "   ")
	r.success.Fprintf(r.w, "Total Value: $%.2f", summary.TotalValue)
	fmt.Fprint(r.w, "   ")
	r.accent.Fprintf(r.w, "Categories: %d\n\n", len(summary.TopCategories))

	if len(summary.LowStock) > 0 {
		r.danger.Fprintln(r.w, "Low Stock Alert")
		for _, it := range summary.LowStock {
			r.danger.Fprintf(r.w, "  ! %s  Current: %d | Min: %d\n", it.Name, it.Quantity, it.MinStock)
		}
		fmt.Fprintln(r.w)
	}

	if search != "" {
		r.muted.Fprintf(r.w, "Search: %q\n", search)
	}
	r.itemsTable(filtered)

	if len(summary.TopCategories) > 0 {
		fmt.Fprintln(r.w)
		r.title.Fprintln(r.w, "Top Categories")
		for _, c := range summary.TopCategories {
			r.accent.Fprintf(r.w, "  %s: %d\n", c.Category, c.Quantity)
		}
	}
}

func (r *Renderer) itemsTable(items []domain.Item) {
	if len(items) == 0 {
		r.muted.Fprintln(r.w, "No items found. Type 'add-item' to add one.")
		return
	}

	header := []string{"#", "Item", "Category", "Quantity", "Min Stock", "Price", "Supplier"}
	rows := make([][]string, 0, len(items))
	for i, it := range items {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			it.Name,
			it.Category,
			fmt.Sprintf("%d", it.Quantity),
			fmt.Sprintf("%d", it.MinStock),
			fmt.Sprintf("$%.2f", it.Price),
			it.Supplier,
		})
	}

	widths := columnWidths(header, rows)
	r.title.Fprintln(r.w, formatRow(header, widths))
	for i, row := range rows {
		line := formatRow(row, widths)
		if items[i].IsLowStock() {
			r.danger.Fprintln(r.w, line)
			continue
		}
		fmt.Fprintln(r.w, line)
	}
}

// CreateSpaceModal mostra o buffer do formulário de espaço.
func (r *Renderer) CreateSpaceModal(form controller.SpaceForm) {
	fmt.Fprintln(r.w)
	r.title.Fprintln(r.w, "Create New Space")
	r.field("name", form.Name, true)
	r.field("description", form.Description, false)
	r.field("type", form.Type, false)
	r.muted.Fprintf(r.w, "    (%s)\n", joinTypes())
	r.field("location", form.Location, true)
	r.muted.Fprintln(r.w, "Use 'set <field> <value>', then 'save' or 'cancel'.")
}

// AddItemModal mostra o buffer do formulário de item.
func (r *Renderer) AddItemModal(form controller.ItemForm) {
	fmt.Fprintln(r.w)
	r.title.Fprintln(r.w, "Add New Item")
	r.field("name", form.Name, true)
	r.field("category", form.Category, true)
	r.field("quantity", form.Quantity, false)
	r.field("minStock", form.MinStock, false)
	r.field("price", form.Price, false)
	r.field("supplier", form.Supplier, false)
	r.field("description", form.Description, false)
	r.muted.Fprintln(r.w, "Use 'set <field> <value>', then 'save' or 'cancel'.")
}

func (r *Renderer) field(name, value string, required bool) {
	label := name
	if required {
		label += " *"
	}
	fmt.Fprintf(r.w, "  %-14s %s\n", label+":", value)
}

func columnWidths(header []string, rows [][]string) []int {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}
	return widths
}

func formatRow(cells []string, widths []int) string {
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(cell)
		if i < len(cells)-1 {
			b.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)))
		}
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func joinTypes() string {
	names := make([]string, len(domain.SpaceTypes))
	for i, t := range domain.SpaceTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
