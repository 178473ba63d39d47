package dashboard_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/usermanager/internal/dashboard"
	"github.com/rafabene/usermanager/internal/domain/entities"
	domainerrors "github.com/rafabene/usermanager/internal/domain/errors"
	"github.com/rafabene/usermanager/internal/domain/ports"
)

var _ = Describe("Controller", func() {
	var (
		ctx       context.Context
		now       time.Time
		store     *fakeStore
		notifier  *notes
		confirmed bool
		prompts   []string
		ctrl      *dashboard.Controller
	)

	BeforeEach(func() {
		ctx = context.Background()
		now = time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC)
		var users []*entities.User
		for i := 1; i <= 23; i++ {
			company := "Acme"
			if i%2 == 0 {
				company = "Globex"
			}
			users = append(users, newUser(fmt.Sprintf("u%02d", i), "User", company, "NYC", now.AddDate(0, 0, -i)))
		}
		store = newFakeStore(users...)
		notifier = &notes{}
		confirmed = true
		prompts = nil
		ctrl = dashboard.NewController(store,
			dashboard.WithNotifier(notifier),
			dashboard.WithClock(func() time.Time { return now }),
			dashboard.WithConfirmer(dashboard.ConfirmFunc(func(p string) bool {
				prompts = append(prompts, p)
				return confirmed
			})),
		)
		Expect(ctrl.Load(ctx)).To(Succeed())
	})

	It("carrega tudo e mostra a primeira página", func() {
		v := ctrl.View()
		Expect(v.Canonical).To(Equal(23))
		Expect(v.Page.Number).To(Equal(1))
		Expect(v.Page.TotalPages).To(Equal(3))
		Expect(v.Page.Items).To(HaveLen(10))
		Expect(v.Window).To(Equal([]int{1, 2, 3}))
	})

	It("falha no carregamento preserva o estado e notifica", func() {
		store.listErr = domainerrors.NewTransportError("list failed", errors.New("dial tcp: refused"))

		err := ctrl.Load(ctx)
		Expect(domainerrors.IsTransport(err)).To(BeTrue())
		Expect(ctrl.View().Canonical).To(Equal(23))
		Expect(notifier.last().Level).To(Equal(ports.NotificationError))
	})

	It("sem opções usa logger e notifier nulos", func() {
		bare := dashboard.NewController(store)
		store.listErr = errors.New("boom")

		Expect(bare.Load(ctx)).NotTo(Succeed())
		Expect(bare.View().Canonical).To(Equal(0))

		var logger ports.Logger = ports.NopLogger{}
		Expect(logger.With("k", "v")).To(Equal(logger))
	})

	It("mudar a página faz clamp", func() {
		Expect(ctrl.OnPageChange(4)).To(Equal(3))
		Expect(ctrl.View().Page.Items).To(HaveLen(3))
		Expect(ctrl.OnPageChange(0)).To(Equal(1))
	})

	It("busca e filtro voltam para a página 1", func() {
		ctrl.OnPageChange(3)
		ctrl.OnFilterChange(dashboard.Criteria{Company: "Acme"})

		v := ctrl.View()
		Expect(v.Page.Number).To(Equal(1))
		Expect(v.Page.Total).To(Equal(12))

		ctrl.OnPageChange(2)
		ctrl.OnSearch("u0")
		Expect(ctrl.View().Page.Number).To(Equal(1))
		Expect(ctrl.View().Page.Total).To(Equal(5))

		ctrl.OnClearFilters()
		Expect(ctrl.View().Page.Total).To(Equal(23))
	})

	It("filtro por data usa o relógio injetado", func() {
		ctrl.OnFilterChange(dashboard.Criteria{DateRange: dashboard.DateRangeWeek})
		// 2024-03-13 é quarta; a semana começa no domingo 10
		Expect(idsOf(ctrl.Visible())).To(Equal([]string{"u01", "u02", "u03"}))
	})

	It("seleção persiste entre filtros e páginas", func() {
		ctrl.OnToggleSelect("u01", true)
		ctrl.OnFilterChange(dashboard.Criteria{Company: "Globex"})
		ctrl.OnPageChange(2)
		Expect(ctrl.IsSelected("u01")).To(BeTrue())
	})

	It("ignora toggle de id fora do canônico", func() {
		Expect(ctrl.OnToggleSelect("ghost", true)).To(BeFalse())
		Expect(ctrl.View().Selected).To(BeEmpty())
	})

	It("selectAll cobre o visível e selectPage a página", func() {
		ctrl.OnFilterChange(dashboard.Criteria{Company: "Acme"})
		ctrl.OnSelectAll()
		Expect(ctrl.View().Selected).To(HaveLen(12))

		ctrl.OnSelectPage()
		Expect(ctrl.View().Selected).To(HaveLen(10))

		ctrl.OnClearSelection()
		Expect(ctrl.View().Selected).To(BeEmpty())
	})

	Describe("delete", func() {
		It("remove do canônico e da seleção; selectAll não reintroduz o id", func() {
			ctrl.OnToggleSelect("u05", true)
			ctrl.OnToggleSelect("u06", true)

			Expect(ctrl.OnDelete(ctx, "u05")).To(Succeed())

			Expect(ctrl.View().Canonical).To(Equal(22))
			Expect(ctrl.View().Selected).To(Equal([]string{"u06"}))

			ctrl.OnSelectAll()
			Expect(ctrl.View().Selected).To(HaveLen(22))
			Expect(ctrl.IsSelected("u05")).To(BeFalse())
		})

		It("recusa na confirmação não dispara chamada", func() {
			confirmed = false
			err := ctrl.OnDelete(ctx, "u05")
			Expect(err).To(MatchError(dashboard.ErrNotConfirmed))
			Expect(store.callCount()).To(BeZero())
			Expect(prompts).To(HaveLen(1))
		})

		It("falha deixa o estado intacto", func() {
			ctrl.OnToggleSelect("u05", true)
			ctrl.OnPageChange(2)
			store.failOn["u05"] = domainerrors.ErrUserNotFound

			err := ctrl.OnDelete(ctx, "u05")
			Expect(domainerrors.IsNotFound(err)).To(BeTrue())

			v := ctrl.View()
			Expect(v.Canonical).To(Equal(23))
			Expect(v.Page.Number).To(Equal(2))
			Expect(v.Selected).To(Equal([]string{"u05"}))
			Expect(notifier.last().Level).To(Equal(ports.NotificationError))
		})
	})

	Describe("bulk update", func() {
		It("sucesso aplica o patch, preserva campos e limpa a seleção", func() {
			ctrl.OnToggleSelect("u01", true)
			ctrl.OnToggleSelect("u02", true)

			_, err := ctrl.OnBulkUpdate(ctx, dashboard.BulkPatch{Role: entities.RoleManager})
			Expect(err).NotTo(HaveOccurred())

			byID := map[string]*entities.User{}
			for _, u := range ctrl.Canonical() {
				byID[u.ID] = u
			}
			Expect(byID["u01"].Role).To(Equal(entities.RoleManager))
			Expect(byID["u02"].Company).To(Equal("Globex"))
			Expect(byID["u03"].Role).To(Equal(entities.RoleUser))
			Expect(ctrl.View().Selected).To(BeEmpty())
		})

		It("falha parcial reflete só o que completou e mantém a seleção", func() {
			ctrl.OnToggleSelect("u01", true)
			ctrl.OnToggleSelect("u02", true)
			store.failOn["u02"] = domainerrors.NewTransportError("update failed", errors.New("timeout"))

			res, err := ctrl.OnBulkUpdate(ctx, dashboard.BulkPatch{Role: entities.RoleManager})
			Expect(err).To(HaveOccurred())
			Expect(res.Succeeded).To(Equal([]string{"u01"}))

			byID := map[string]*entities.User{}
			for _, u := range ctrl.Canonical() {
				byID[u.ID] = u
			}
			Expect(byID["u01"].Role).To(Equal(entities.RoleManager))
			Expect(byID["u02"].Role).To(Equal(entities.RoleUser))
			Expect(ctrl.View().Selected).To(Equal([]string{"u01", "u02"}))
		})

		It("patch vazio não chama o store", func() {
			ctrl.OnToggleSelect("u01", true)
			_, err := ctrl.OnBulkUpdate(ctx, dashboard.BulkPatch{})
			Expect(err).To(MatchError(dashboard.ErrEmptyPatch))
			Expect(store.callCount()).To(BeZero())
		})
	})

	Describe("bulk delete", func() {
		It("exige confirmação", func() {
			ctrl.OnToggleSelect("u01", true)
			confirmed = false

			_, err := ctrl.OnBulkDelete(ctx)
			Expect(err).To(MatchError(dashboard.ErrNotConfirmed))
			Expect(store.callCount()).To(BeZero())
			Expect(prompts[0]).To(ContainSubstring("1 users"))
		})

		It("sem seleção não pergunta nada", func() {
			_, err := ctrl.OnBulkDelete(ctx)
			Expect(err).To(MatchError(dashboard.ErrNoSelection))
			Expect(prompts).To(BeEmpty())
		})

		It("sucesso remove tudo e limpa a seleção", func() {
			ctrl.OnFilterChange(dashboard.Criteria{Company: "Acme"})
			ctrl.OnSelectAll()

			res, err := ctrl.OnBulkDelete(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Succeeded).To(HaveLen(12))

			v := ctrl.View()
			Expect(v.Canonical).To(Equal(11))
			Expect(v.Page.Total).To(BeZero())
			Expect(v.Selected).To(BeEmpty())
		})

		It("falha parcial remove os deletados e mantém o restante selecionado", func() {
			ctrl.OnToggleSelect("u01", true)
			ctrl.OnToggleSelect("u02", true)
			ctrl.OnToggleSelect("u03", true)
			store.failOn["u02"] = domainerrors.ErrUserNotFound

			_, err := ctrl.OnBulkDelete(ctx)
			Expect(domainerrors.IsNotFound(err)).To(BeTrue())
			Expect(ctrl.View().Canonical).To(Equal(21))
			Expect(ctrl.View().Selected).To(Equal([]string{"u02"}))
		})
	})

	Describe("create e update", func() {
		It("create acrescenta ao canônico após confirmação do store", func() {
			user, err := ctrl.OnCreate(ctx, entities.UserDraft{
				Name: "Grace Hopper", Email: "grace@navy.mil", Phone: "+15550100001", Company: "Navy", Role: entities.RoleAdmin,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(ctrl.View().Canonical).To(Equal(24))
			Expect(ctrl.Facets().Companies).To(ContainElement("Navy"))
			Expect(user.ID).NotTo(BeEmpty())
		})

		It("create inválido não altera o canônico", func() {
			_, err := ctrl.OnCreate(ctx, entities.UserDraft{Name: "X", Email: "bad"})
			Expect(domainerrors.IsValidation(err)).To(BeTrue())
			Expect(ctrl.View().Canonical).To(Equal(23))
			Expect(notifier.last().Message).To(ContainSubstring("email"))
		})

		It("update substitui o registro preservando a ordem", func() {
			city := "Lisbon"
			_, err := ctrl.OnUpdate(ctx, "u02", entities.UserPatch{City: &city})
			Expect(err).NotTo(HaveOccurred())

			canonical := ctrl.Canonical()
			Expect(canonical[1].ID).To(Equal("u02"))
			Expect(canonical[1].Address.City).To(Equal("Lisbon"))
			Expect(ctrl.Facets().Cities).To(Equal([]string{"Lisbon", "NYC"}))
		})

		It("open busca no store e notifica quando o id não existe", func() {
			u, err := ctrl.OnOpen(ctx, "u03")
			Expect(err).NotTo(HaveOccurred())
			Expect(u.ID).To(Equal("u03"))

			_, err = ctrl.OnOpen(ctx, "missing")
			Expect(domainerrors.IsNotFound(err)).To(BeTrue())
			Expect(notifier.last().Title).To(Equal("Failed to fetch user"))
		})
	})
})
