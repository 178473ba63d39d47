package dashboard_test

import (
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/usermanager/internal/dashboard"
	"github.com/rafabene/usermanager/internal/domain/entities"
)

var (
	roles     = []string{"Admin", "Manager", "User"}
	companies = []string{"Acme", "Globex", "Initech", "acme"}
	cities    = []string{"NYC", "LA", "Lisbon", ""}
	terms     = []string{"", "a", "ACME", "user 1", "example.com", "lis", "zzz"}
)

func randomRecords(r *rand.Rand, n int, now time.Time) []*entities.User {
	out := make([]*entities.User, n)
	for i := range out {
		created := now.Add(-time.Duration(r.Intn(400*24)) * time.Hour)
		out[i] = newUser(
			string(rune('a'+i%26))+string(rune('a'+i/26)),
			roles[r.Intn(len(roles))],
			companies[r.Intn(len(companies))],
			cities[r.Intn(len(cities))],
			created,
		)
	}
	return out
}

func randomCriteria(r *rand.Rand) dashboard.Criteria {
	var c dashboard.Criteria
	if r.Intn(2) == 0 {
		c.Role = entities.Role(roles[r.Intn(len(roles))])
	}
	if r.Intn(2) == 0 {
		c.Company = companies[r.Intn(len(companies))]
	}
	if r.Intn(3) == 0 {
		c.City = cities[r.Intn(len(cities)-1)]
	}
	ranges := []dashboard.DateRange{"", "today", "week", "month", "year"}
	c.DateRange = ranges[r.Intn(len(ranges))]
	return c
}

func isSubsequence(sub, of []*entities.User) bool {
	j := 0
	for _, u := range of {
		if j < len(sub) && sub[j] == u {
			j++
		}
	}
	return j == len(sub)
}

var _ = Describe("FilterEngine", func() {
	now := time.Date(2024, 3, 13, 15, 0, 0, 0, time.UTC)

	Describe("Apply", func() {
		It("casa por igualdade exata em role e company", func() {
			records := []*entities.User{
				newUser("1", "Admin", "Acme", "NYC", now),
				newUser("2", "User", "Acme", "LA", now),
			}

			Expect(idsOf(dashboard.Apply(records, "", dashboard.Criteria{Company: "Acme"}, now))).
				To(Equal([]string{"1", "2"}))
			Expect(idsOf(dashboard.Apply(records, "", dashboard.Criteria{Role: entities.RoleAdmin}, now))).
				To(Equal([]string{"1"}))
		})

		It("busca sem diferenciar caixa em nome, email, company e cidade", func() {
			records := []*entities.User{
				newUser("1", "Admin", "Acme", "New York", now),
				newUser("2", "User", "Globex", "Lisbon", now),
			}

			Expect(idsOf(dashboard.Apply(records, "LISBON", dashboard.Criteria{}, now))).To(Equal([]string{"2"}))
			Expect(idsOf(dashboard.Apply(records, "acme", dashboard.Criteria{}, now))).To(Equal([]string{"1"}))
			Expect(idsOf(dashboard.Apply(records, "1@EXAMPLE", dashboard.Criteria{}, now))).To(Equal([]string{"1"}))
			Expect(dashboard.Apply(records, "nowhere", dashboard.Criteria{}, now)).To(BeEmpty())
		})

		It("a busca atravessa a fronteira entre campos", func() {
			records := []*entities.User{newUser("1", "Admin", "Acme", "NYC", now)}
			Expect(dashboard.Apply(records, "acme nyc", dashboard.Criteria{}, now)).To(HaveLen(1))
		})

		It("filtra pela cidade do endereço", func() {
			records := []*entities.User{
				newUser("1", "Admin", "Acme", "NYC", now),
				newUser("2", "Admin", "Acme", "", now),
			}
			Expect(idsOf(dashboard.Apply(records, "", dashboard.Criteria{City: "NYC"}, now))).To(Equal([]string{"1"}))
		})

		It("retorna um slice novo mesmo sem filtros", func() {
			records := []*entities.User{newUser("1", "Admin", "Acme", "NYC", now)}
			out := dashboard.Apply(records, "", dashboard.Criteria{}, now)
			Expect(out).To(Equal(records))
			out[0] = nil
			Expect(records[0]).NotTo(BeNil())
		})

		Context("propriedades", func() {
			r := rand.New(rand.NewSource(7))
			records := randomRecords(r, 60, now)

			It("é idempotente e preserva a ordem", func() {
				for i := 0; i < 200; i++ {
					term := terms[r.Intn(len(terms))]
					c := randomCriteria(r)

					once := dashboard.Apply(records, term, c, now)
					twice := dashboard.Apply(once, term, c, now)

					Expect(twice).To(Equal(once))
					Expect(isSubsequence(once, records)).To(BeTrue())
				}
			})

			It("combinar critérios gera subconjunto de cada um isolado", func() {
				for i := 0; i < 200; i++ {
					a, b := randomCriteria(r), randomCriteria(r)
					both := dashboard.Criteria{Role: a.Role, Company: b.Company, City: a.City, DateRange: b.DateRange}

					combined := dashboard.Apply(records, "", both, now)
					onlyA := dashboard.Apply(records, "", dashboard.Criteria{Role: a.Role, City: a.City}, now)
					onlyB := dashboard.Apply(records, "", dashboard.Criteria{Company: b.Company, DateRange: b.DateRange}, now)

					Expect(isSubsequence(combined, onlyA)).To(BeTrue())
					Expect(isSubsequence(combined, onlyB)).To(BeTrue())
				}
			})
		})
	})

	Describe("DateRange", func() {
		loc := time.FixedZone("BRT", -3*3600)
		midnight := time.Date(2024, 3, 13, 0, 0, 0, 0, loc)

		DescribeTable("today compara dias de calendário, não horas decorridas",
			func(now time.Time, created time.Time, want bool) {
				Expect(dashboard.DateRangeToday.Contains(created, now)).To(Equal(want))
			},
			Entry("criado à meia-noite, agora à meia-noite", midnight, midnight, true),
			Entry("criado à meia-noite, agora ao meio-dia", midnight.Add(12*time.Hour), midnight, true),
			Entry("criado à meia-noite, agora no último segundo", midnight.Add(24*time.Hour-time.Second), midnight, true),
			Entry("criado um segundo antes da meia-noite", midnight.Add(time.Hour), midnight.Add(-time.Second), false),
			Entry("mesmo instante expresso em UTC", midnight.Add(time.Hour), midnight.UTC(), true),
		)

		DescribeTable("week vai de domingo a sábado",
			func(created time.Time, want bool) {
				wednesday := time.Date(2024, 3, 13, 15, 0, 0, 0, loc)
				Expect(dashboard.DateRangeWeek.Contains(created, wednesday)).To(Equal(want))
			},
			Entry("domingo 00:00", time.Date(2024, 3, 10, 0, 0, 0, 0, loc), true),
			Entry("sábado 23:59", time.Date(2024, 3, 16, 23, 59, 59, 0, loc), true),
			Entry("sábado anterior", time.Date(2024, 3, 9, 23, 59, 59, 0, loc), false),
			Entry("domingo seguinte", time.Date(2024, 3, 17, 0, 0, 0, 0, loc), false),
		)

		It("semana que atravessa o ano", func() {
			now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC) // quarta-feira
			Expect(dashboard.DateRangeWeek.Contains(time.Date(2024, 12, 29, 0, 0, 0, 0, time.UTC), now)).To(BeTrue())
			Expect(dashboard.DateRangeYear.Contains(time.Date(2024, 12, 29, 0, 0, 0, 0, time.UTC), now)).To(BeFalse())
		})

		It("month e year comparam o calendário", func() {
			now := time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC)
			Expect(dashboard.DateRangeMonth.Contains(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), now)).To(BeTrue())
			Expect(dashboard.DateRangeMonth.Contains(time.Date(2023, 3, 20, 0, 0, 0, 0, time.UTC), now)).To(BeFalse())
			Expect(dashboard.DateRangeYear.Contains(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), now)).To(BeTrue())
		})

		It("ParseDateRange aceita apenas valores conhecidos", func() {
			d, err := dashboard.ParseDateRange(" Week ")
			Expect(err).NotTo(HaveOccurred())
			Expect(d).To(Equal(dashboard.DateRangeWeek))

			d, err = dashboard.ParseDateRange("")
			Expect(err).NotTo(HaveOccurred())
			Expect(d).To(Equal(dashboard.DateRangeAny))

			_, err = dashboard.ParseDateRange("decade")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("UniqueValues", func() {
		It("descarta vazios, remove duplicatas e ordena por bytes", func() {
			records := []*entities.User{
				newUser("1", "User", "acme", "NYC", now),
				newUser("2", "Admin", "Acme", "", now),
				newUser("3", "User", "Globex", "LA", now),
				newUser("4", "User", "Acme", "NYC", now),
			}

			Expect(dashboard.UniqueValues(records, dashboard.FieldCompany)).To(Equal([]string{"Acme", "Globex", "acme"}))
			Expect(dashboard.UniqueValues(records, dashboard.FieldCity)).To(Equal([]string{"LA", "NYC"}))
			Expect(dashboard.UniqueValues(records, dashboard.FieldRole)).To(Equal([]string{"Admin", "User"}))
			Expect(dashboard.UniqueValues(nil, dashboard.FieldRole)).To(BeEmpty())
		})
	})
})
