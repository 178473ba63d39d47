// Package analytics agrega a lista de usuários nos números exibidos pelo
// painel de analytics.
package analytics

import (
	"sort"
	"time"
	"unicode/utf8"

	"github.com/rafabene/usermanager/internal/domain/entities"
)

const (
	TopCompanies = 6
	TopCities    = 8
	TrendDays    = 30

	UnknownCity = "Unknown"

	maxLabelLen = 15
	trendLayout = "Jan 02"
)

// Bucket é uma categoria com sua contagem
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TrendPoint é a contagem de cadastros de um dia
type TrendPoint struct {
	Date  time.Time `json:"date"`
	Label string    `json:"label"`
	Count int       `json:"count"`
}

// Totals são os indicadores principais
type Totals struct {
	Users     int `json:"total_users"`
	Active    int `json:"active_users"`
	Companies int `json:"companies"`
	Cities    int `json:"cities"`
}

// Report é o resultado completo da agregação
type Report struct {
	Totals       Totals       `json:"totals"`
	Roles        []Bucket     `json:"roles"`
	TopCompanies []Bucket     `json:"top_companies"`
	TopCities    []Bucket     `json:"top_cities"`
	Trend        []TrendPoint `json:"trend"`
}

// Compute agrega users relativo a now. Buckets são ordenados por contagem
// decrescente e, no empate, por rótulo crescente.
func Compute(users []*entities.User, now time.Time) Report {
	roles := map[string]int{}
	companies := map[string]int{}
	cities := map[string]int{}
	distinctCities := map[string]struct{}{}

	var active int
	for _, u := range users {
		roles[string(u.Role)]++
		companies[u.Company]++

		city := u.Address.City
		if city == "" {
			city = UnknownCity
		} else {
			distinctCities[city] = struct{}{}
		}
		cities[city]++

		if u.Role.IsValid() {
			active++
		}
	}

	topCompanies := top(companies, TopCompanies)
	for i := range topCompanies {
		topCompanies[i].Label = truncate(topCompanies[i].Label)
	}

	return Report{
		Totals: Totals{
			Users:     len(users),
			Active:    active,
			Companies: len(companies),
			Cities:    len(distinctCities),
		},
		Roles:        top(roles, 0),
		TopCompanies: topCompanies,
		TopCities:    top(cities, TopCities),
		Trend:        trend(users, now),
	}
}

// top ordena as contagens e mantém as n primeiras (n <= 0 mantém todas)
func top(counts map[string]int, n int) []Bucket {
	buckets := make([]Bucket, 0, len(counts))
	for label, count := range counts {
		buckets = append(buckets, Bucket{Label: label, Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Label < buckets[j].Label
	})
	if n > 0 && len(buckets) > n {
		buckets = buckets[:n]
	}
	return buckets
}

// trend conta cadastros por dia de calendário nos últimos TrendDays dias,
// terminando hoje, no fuso de now
func trend(users []*entities.User, now time.Time) []TrendPoint {
	loc := now.Location()
	y, m, d := now.Date()
	first := time.Date(y, m, d-(TrendDays-1), 0, 0, 0, 0, loc)

	points := make([]TrendPoint, TrendDays)
	index := make(map[string]int, TrendDays)
	for i := range points {
		day := first.AddDate(0, 0, i)
		points[i] = TrendPoint{Date: day, Label: day.Format(trendLayout)}
		index[day.Format(time.DateOnly)] = i
	}

	for _, u := range users {
		if i, ok := index[u.CreatedAt.In(loc).Format(time.DateOnly)]; ok {
			points[i].Count++
		}
	}
	return points
}

func truncate(label string) string {
	if utf8.RuneCountInString(label) <= maxLabelLen {
		return label
	}
	return string([]rune(label)[:maxLabelLen]) + "..."
}
