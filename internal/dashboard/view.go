package dashboard

import "github.com/rafabene/usermanager/internal/domain/entities"

// View é um retrato somente leitura do estado do painel
type View struct {
	Page       Page
	Window     []int
	SearchTerm string
	Criteria   Criteria
	Selected   []string
	Canonical  int // total de registros carregados
}

// Facets são as escolhas dos filtros, derivadas do canônico
type Facets struct {
	Roles     []string `json:"roles"`
	Companies []string `json:"companies"`
	Cities    []string `json:"cities"`
}

// FacetsOf calcula as escolhas de filtro de records
func FacetsOf(records []*entities.User) Facets {
	return Facets{
		Roles:     UniqueValues(records, FieldRole),
		Companies: UniqueValues(records, FieldCompany),
		Cities:    UniqueValues(records, FieldCity),
	}
}

// View retorna o estado atual para renderização
func (c *Controller) View() View {
	page := c.currentPage()
	return View{
		Page:       page,
		Window:     PageWindow(page.Number, page.TotalPages),
		SearchTerm: c.searchTerm,
		Criteria:   c.criteria,
		Selected:   c.selection.IDs(),
		Canonical:  len(c.canonical),
	}
}

// Visible retorna uma cópia do conjunto visível (entrada de exportação)
func (c *Controller) Visible() []*entities.User {
	return append([]*entities.User(nil), c.visible...)
}

// Canonical retorna uma cópia do canônico (entrada de analytics)
func (c *Controller) Canonical() []*entities.User {
	return append([]*entities.User(nil), c.canonical...)
}

// Facets retorna as escolhas de filtro sobre o canônico
func (c *Controller) Facets() Facets {
	return FacetsOf(c.canonical)
}

// IsSelected indica se o id está marcado
func (c *Controller) IsSelected(id string) bool {
	return c.selection.Contains(id)
}
