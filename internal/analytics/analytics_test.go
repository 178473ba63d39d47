package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafabene/usermanager/internal/domain/entities"
)

func user(role, company, city string, created time.Time) *entities.User {
	return &entities.User{
		Role:      entities.Role(role),
		Company:   company,
		Address:   entities.Address{City: city},
		CreatedAt: created,
	}
}

func TestCompute(t *testing.T) {
	now := time.Date(2024, 3, 13, 18, 0, 0, 0, time.UTC)

	t.Run("totais e distribuição de roles", func(t *testing.T) {
		users := []*entities.User{
			user("Admin", "Acme", "NYC", now),
			user("User", "Acme", "", now),
			user("User", "Globex", "LA", now),
			user("Inactive", "Globex", "LA", now),
		}

		r := Compute(users, now)

		assert.Equal(t, Totals{Users: 4, Active: 3, Companies: 2, Cities: 2}, r.Totals)
		assert.Equal(t, []Bucket{{"User", 2}, {"Admin", 1}, {"Inactive", 1}}, r.Roles)
		assert.Equal(t, []Bucket{{"LA", 2}, {"NYC", 1}, {UnknownCity, 1}}, r.TopCities)
	})

	t.Run("top 6 empresas com rótulo truncado", func(t *testing.T) {
		var users []*entities.User
		names := []string{"A", "B", "C", "D", "E", "F", "G", "International Business Machines"}
		for i, name := range names {
			for n := 0; n <= i; n++ {
				users = append(users, user("User", name, "NYC", now))
			}
		}

		r := Compute(users, now)

		require.Len(t, r.TopCompanies, TopCompanies)
		assert.Equal(t, "International B...", r.TopCompanies[0].Label)
		assert.Equal(t, 8, r.TopCompanies[0].Count)
		assert.Equal(t, "C", r.TopCompanies[5].Label)
		assert.Equal(t, 8, r.Totals.Companies)
	})

	t.Run("top 8 cidades", func(t *testing.T) {
		var users []*entities.User
		for i := 0; i < 10; i++ {
			users = append(users, user("User", "Acme", string(rune('A'+i)), now))
		}
		r := Compute(users, now)
		require.Len(t, r.TopCities, TopCities)
		assert.Equal(t, "A", r.TopCities[0].Label)
		assert.Equal(t, "H", r.TopCities[7].Label)
	})

	t.Run("tendência de 30 dias terminando hoje", func(t *testing.T) {
		users := []*entities.User{
			user("User", "Acme", "NYC", time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC)),
			user("User", "Acme", "NYC", time.Date(2024, 3, 13, 23, 59, 0, 0, time.UTC)),
			user("User", "Acme", "NYC", time.Date(2024, 2, 13, 9, 0, 0, 0, time.UTC)),
			user("User", "Acme", "NYC", time.Date(2024, 2, 12, 9, 0, 0, 0, time.UTC)),
		}

		r := Compute(users, now)

		require.Len(t, r.Trend, TrendDays)
		assert.Equal(t, "Feb 13", r.Trend[0].Label)
		assert.Equal(t, 1, r.Trend[0].Count)
		assert.Equal(t, "Mar 13", r.Trend[TrendDays-1].Label)
		assert.Equal(t, 2, r.Trend[TrendDays-1].Count)

		total := 0
		for _, p := range r.Trend {
			total += p.Count
		}
		assert.Equal(t, 3, total)
	})

	t.Run("lista vazia", func(t *testing.T) {
		r := Compute(nil, now)
		assert.Zero(t, r.Totals.Users)
		assert.Empty(t, r.Roles)
		assert.Len(t, r.Trend, TrendDays)
	})
}
