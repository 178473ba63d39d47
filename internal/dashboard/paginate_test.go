package dashboard_test

import (
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/usermanager/internal/dashboard"
	"github.com/rafabene/usermanager/internal/domain/entities"
)

func nRecords(n int) []*entities.User {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]*entities.User, n)
	for i := range out {
		out[i] = newUser(fmt.Sprintf("u%02d", i+1), "User", "Acme", "NYC", now.Add(time.Duration(i)*time.Minute))
	}
	return out
}

var _ = Describe("Paginator", func() {
	It("23 registros em páginas de 10", func() {
		records := nRecords(23)

		first := dashboard.Paginate(records, 10, 1)
		Expect(first.TotalPages).To(Equal(3))
		Expect(first.Items).To(HaveLen(10))
		Expect(first.RangeStart).To(Equal(1))
		Expect(first.RangeEnd).To(Equal(10))

		last := dashboard.Paginate(records, 10, 3)
		Expect(last.Items).To(HaveLen(3))
		Expect(last.RangeStart).To(Equal(21))
		Expect(last.RangeEnd).To(Equal(23))

		clamped := dashboard.Paginate(records, 10, 4)
		Expect(clamped.Number).To(Equal(3))
		Expect(clamped.Items).To(Equal(last.Items))
	})

	It("conjunto vazio tem uma página vazia", func() {
		p := dashboard.Paginate(nil, 10, 5)
		Expect(p.Number).To(Equal(1))
		Expect(p.TotalPages).To(Equal(1))
		Expect(p.Items).To(BeEmpty())
		Expect(p.RangeStart).To(BeZero())
		Expect(p.RangeEnd).To(BeZero())
	})

	It("página menor que 1 vira 1 e tamanho inválido usa o padrão", func() {
		p := dashboard.Paginate(nRecords(15), 0, -2)
		Expect(p.Number).To(Equal(1))
		Expect(p.Items).To(HaveLen(dashboard.DefaultPageSize))
	})

	It("concatenar todas as páginas reproduz a entrada", func() {
		for n := 0; n <= 31; n++ {
			records := nRecords(n)
			for _, size := range []int{1, 3, 10, 50} {
				var all []*entities.User
				total := dashboard.TotalPages(n, size)
				for page := 1; page <= total; page++ {
					all = append(all, dashboard.Paginate(records, size, page).Items...)
				}
				Expect(all).To(HaveLen(n), "n=%d size=%d", n, size)
				for i := range all {
					Expect(all[i]).To(BeIdenticalTo(records[i]))
				}
			}
		}
	})

	It("a página não permite crescer sobre o próximo item", func() {
		records := nRecords(12)
		p := dashboard.Paginate(records, 10, 1)
		Expect(cap(p.Items)).To(Equal(10))
	})

	DescribeTable("PageWindow",
		func(page, total int, want []int) {
			Expect(dashboard.PageWindow(page, total)).To(Equal(want))
		},
		Entry("uma página", 1, 1, []int{1}),
		Entry("até cinco mostra todas", 4, 5, []int{1, 2, 3, 4, 5}),
		Entry("início", 2, 10, []int{1, 2, 3, 4, 5}),
		Entry("página 3", 3, 10, []int{1, 2, 3, 4, 5}),
		Entry("meio", 6, 10, []int{4, 5, 6, 7, 8}),
		Entry("antepenúltima", 8, 10, []int{6, 7, 8, 9, 10}),
		Entry("última", 10, 10, []int{6, 7, 8, 9, 10}),
		Entry("página acima do total é ajustada", 42, 7, []int{3, 4, 5, 6, 7}),
		Entry("seis páginas, página 4", 4, 6, []int{2, 3, 4, 5, 6}),
	)
})

var _ = Describe("SelectionTracker", func() {
	It("selectAll substitui a seleção", func() {
		s := dashboard.NewSelection()
		s.Toggle("x", true)
		s.SelectAll([]string{"b", "a"})
		Expect(s.IDs()).To(Equal([]string{"a", "b"}))
	})

	It("toggle inclui e remove", func() {
		s := dashboard.NewSelection()
		s.Toggle("a", true)
		s.Toggle("a", true)
		Expect(s.Len()).To(Equal(1))
		s.Toggle("a", false)
		Expect(s.Contains("a")).To(BeFalse())
	})

	It("reconcileAfterDelete remove apenas os ids deletados", func() {
		s := dashboard.NewSelection()
		s.SelectAll([]string{"a", "b", "c"})
		s.ReconcileAfterDelete("b", "zzz")
		Expect(s.IDs()).To(Equal([]string{"a", "c"}))
	})

	It("clear esvazia", func() {
		s := dashboard.NewSelection()
		s.SelectAll([]string{"a"})
		s.Clear()
		Expect(s.Len()).To(BeZero())
		Expect(s.IDs()).To(BeEmpty())
	})

	It("permanece subconjunto do canônico após qualquer sequência", func() {
		canonical := map[string]bool{}
		var live []string
		for i := 0; i < 20; i++ {
			id := fmt.Sprintf("id%d", i)
			canonical[id] = true
			live = append(live, id)
		}

		s := dashboard.NewSelection()
		for step := 0; step < 200; step++ {
			switch step % 4 {
			case 0:
				s.SelectAll(live)
			case 1:
				if len(live) > 0 {
					s.Toggle(live[step%len(live)], step%3 == 0)
				}
			case 2:
				if len(live) > 0 {
					gone := live[0]
					live = live[1:]
					delete(canonical, gone)
					s.ReconcileAfterDelete(gone)
				}
			case 3:
				if len(live) > 0 {
					s.Toggle(live[len(live)/2], true)
				}
			}
			for _, id := range s.IDs() {
				Expect(canonical).To(HaveKey(id))
			}
		}
	})
})
