package dashboard

import "sort"

// Selection é o conjunto de ids marcados. Persiste entre mudanças de página
// e de filtro; o Controller só alimenta ids presentes no canônico.
type Selection struct {
	ids map[string]struct{}
}

// NewSelection cria uma seleção vazia
func NewSelection() *Selection {
	return &Selection{ids: make(map[string]struct{})}
}

// SelectAll substitui a seleção por exatamente ids
func (s *Selection) SelectAll(ids []string) {
	s.ids = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
}

// Clear esvazia a seleção
func (s *Selection) Clear() {
	s.ids = make(map[string]struct{})
}

// Toggle inclui ou remove um id
func (s *Selection) Toggle(id string, included bool) {
	if included {
		s.ids[id] = struct{}{}
		return
	}
	delete(s.ids, id)
}

// ReconcileAfterDelete remove da seleção os ids deletados
func (s *Selection) ReconcileAfterDelete(ids ...string) {
	for _, id := range ids {
		delete(s.ids, id)
	}
}

// Retain mantém apenas os ids para os quais keep retorna true
func (s *Selection) Retain(keep func(id string) bool) {
	for id := range s.ids {
		if !keep(id) {
			delete(s.ids, id)
		}
	}
}

func (s *Selection) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Selection) Len() int {
	return len(s.ids)
}

// IDs retorna os ids selecionados em ordem crescente
func (s *Selection) IDs() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
