package dashboard

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rafabene/usermanager/internal/domain/entities"
)

// DateRange restringe registros pela data de criação relativa a "agora"
type DateRange string

const (
	DateRangeAny   DateRange = ""
	DateRangeToday DateRange = "today"
	DateRangeWeek  DateRange = "week"
	DateRangeMonth DateRange = "month"
	DateRangeYear  DateRange = "year"
)

// ParseDateRange aceita os valores de wire; string vazia significa sem filtro
func ParseDateRange(s string) (DateRange, error) {
	switch d := DateRange(strings.ToLower(strings.TrimSpace(s))); d {
	case DateRangeAny, DateRangeToday, DateRangeWeek, DateRangeMonth, DateRangeYear:
		return d, nil
	default:
		return DateRangeAny, fmt.Errorf("unknown date range %q", s)
	}
}

// Contains indica se t cai no intervalo de calendário que contém now.
// A comparação é feita no fuso de now; a semana começa no domingo.
func (d DateRange) Contains(t, now time.Time) bool {
	t = t.In(now.Location())
	switch d {
	case DateRangeAny:
		return true
	case DateRangeToday:
		ty, tm, td := t.Date()
		ny, nm, nd := now.Date()
		return ty == ny && tm == nm && td == nd
	case DateRangeWeek:
		y, m, day := now.Date()
		start := time.Date(y, m, day-int(now.Weekday()), 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 0, 7)
		return !t.Before(start) && t.Before(end)
	case DateRangeMonth:
		return t.Year() == now.Year() && t.Month() == now.Month()
	case DateRangeYear:
		return t.Year() == now.Year()
	default:
		return false
	}
}

// Criteria é o conjunto estruturado de filtros; campos vazios não restringem
type Criteria struct {
	Role      entities.Role
	Company   string
	City      string
	DateRange DateRange
}

// IsZero indica que nenhum filtro está ativo
func (c Criteria) IsZero() bool {
	return c == Criteria{}
}

// Apply retorna os registros que casam com o termo de busca e os critérios,
// preservando a ordem de entrada. O slice retornado é sempre novo.
func Apply(records []*entities.User, searchTerm string, c Criteria, now time.Time) []*entities.User {
	term := strings.ToLower(searchTerm)

	out := make([]*entities.User, 0, len(records))
	for _, u := range records {
		if term != "" && !strings.Contains(searchText(u), term) {
			continue
		}
		if c.Role != "" && u.Role != c.Role {
			continue
		}
		if c.Company != "" && u.Company != c.Company {
			continue
		}
		if c.City != "" && u.Address.City != c.City {
			continue
		}
		if !c.DateRange.Contains(u.CreatedAt, now) {
			continue
		}
		out = append(out, u)
	}
	return out
}

func searchText(u *entities.User) string {
	return strings.ToLower(strings.Join([]string{
		u.Name, u.Email.String(), u.Company, u.Address.City,
	}, " "))
}

// Field identifica um campo com lista de escolhas no filtro
type Field int

const (
	FieldRole Field = iota
	FieldCompany
	FieldCity
)

func (f Field) value(u *entities.User) string {
	switch f {
	case FieldRole:
		return string(u.Role)
	case FieldCompany:
		return u.Company
	case FieldCity:
		return u.Address.City
	default:
		return ""
	}
}

// UniqueValues retorna os valores distintos e não vazios do campo, em ordem
// crescente de bytes
func UniqueValues(records []*entities.User, field Field) []string {
	seen := make(map[string]struct{})
	values := []string{}
	for _, u := range records {
		v := field.value(u)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
