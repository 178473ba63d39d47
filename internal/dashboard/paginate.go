package dashboard

import "github.com/rafabene/usermanager/internal/domain/entities"

// DefaultPageSize é o tamanho de página do painel
const DefaultPageSize = 10

const windowSize = 5

// Page é uma fatia do conjunto visível com os metadados de exibição
type Page struct {
	Items      []*entities.User
	Number     int
	TotalPages int
	Total      int
	// RangeStart e RangeEnd são os limites 1-based inclusivos exibidos
	// ("Showing 11-20 of 23"); ambos 0 quando o conjunto está vazio
	RangeStart int
	RangeEnd   int
}

// TotalPages retorna max(1, ceil(n/pageSize))
func TotalPages(n, pageSize int) int {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if n <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}

// ClampPage restringe page a [1, totalPages]
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	switch {
	case page < 1:
		return 1
	case page > totalPages:
		return totalPages
	default:
		return page
	}
}

// Paginate recorta a página pedida (após clamp) de records
func Paginate(records []*entities.User, pageSize, page int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := len(records)
	totalPages := TotalPages(total, pageSize)
	page = ClampPage(page, totalPages)

	lo := (page - 1) * pageSize
	hi := min(lo+pageSize, total)

	p := Page{
		Items:      records[lo:hi:hi],
		Number:     page,
		TotalPages: totalPages,
		Total:      total,
	}
	if hi > lo {
		p.RangeStart = lo + 1
		p.RangeEnd = hi
	}
	return p
}

// PageWindow retorna até cinco números de página para os controles de navegação
func PageWindow(page, totalPages int) []int {
	if totalPages < 1 {
		totalPages = 1
	}
	page = ClampPage(page, totalPages)

	var first int
	switch {
	case totalPages <= windowSize:
		first = 1
	case page <= 3:
		first = 1
	case page >= totalPages-2:
		first = totalPages - windowSize + 1
	default:
		first = page - 2
	}

	last := min(first+windowSize-1, totalPages)
	window := make([]int, 0, last-first+1)
	for n := first; n <= last; n++ {
		window = append(window, n)
	}
	return window
}
