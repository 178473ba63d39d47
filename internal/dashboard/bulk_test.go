package dashboard_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rafabene/usermanager/internal/dashboard"
	"github.com/rafabene/usermanager/internal/domain/entities"
	domainerrors "github.com/rafabene/usermanager/internal/domain/errors"
	"github.com/rafabene/usermanager/internal/domain/ports"
)

type notes struct {
	got []ports.Notification
}

func (n *notes) Notify(note ports.Notification) { n.got = append(n.got, note) }

func (n *notes) last() ports.Notification {
	Expect(n.got).NotTo(BeEmpty())
	return n.got[len(n.got)-1]
}

var _ = Describe("BulkMutator", func() {
	var (
		ctx      context.Context
		store    *fakeStore
		notifier *notes
		mutator  *dashboard.BulkMutator
	)

	BeforeEach(func() {
		ctx = context.Background()
		now := time.Now()
		store = newFakeStore(
			newUser("u1", "User", "Acme", "NYC", now),
			newUser("u2", "User", "Acme", "LA", now),
			newUser("u3", "User", "Globex", "LA", now),
		)
		notifier = &notes{}
		mutator = dashboard.NewBulkMutator(store, notifier, 0)
	})

	It("rejeita patch vazio antes de qualquer chamada", func() {
		_, err := mutator.BulkUpdate(ctx, []string{"u1"}, dashboard.BulkPatch{Company: "   "})
		Expect(err).To(MatchError(dashboard.ErrEmptyPatch))
		Expect(store.callCount()).To(BeZero())
		Expect(notifier.got).To(BeEmpty())
	})

	It("rejeita lote sem ids", func() {
		_, err := mutator.BulkDelete(ctx, nil)
		Expect(err).To(MatchError(dashboard.ErrNoSelection))
	})

	It("atualiza apenas os campos do patch", func() {
		res, err := mutator.BulkUpdate(ctx, []string{"u1", "u3"}, dashboard.BulkPatch{Role: entities.RoleManager})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Succeeded).To(Equal([]string{"u1", "u3"}))
		Expect(res.Updated).To(HaveLen(2))
		for _, u := range res.Updated {
			Expect(u.Role).To(Equal(entities.RoleManager))
		}
		Expect(res.Updated[1].Company).To(Equal("Globex"))
		Expect(notifier.last().Level).To(Equal(ports.NotificationSuccess))
	})

	It("dispara as chamadas em paralelo", func() {
		store.delay = 20 * time.Millisecond
		_, err := mutator.BulkDelete(ctx, []string{"u1", "u2", "u3"})
		Expect(err).NotTo(HaveOccurred())
		Expect(store.peakConcurrency()).To(BeNumerically(">", 1))
	})

	It("respeita o limite de concorrência", func() {
		store.delay = 5 * time.Millisecond
		limited := dashboard.NewBulkMutator(store, notifier, 1)
		_, err := limited.BulkDelete(ctx, []string{"u1", "u2", "u3"})
		Expect(err).NotTo(HaveOccurred())
		Expect(store.peakConcurrency()).To(Equal(1))
	})

	It("uma falha não cancela as demais e não há rollback", func() {
		store.failOn["u2"] = domainerrors.NewTransportError("delete failed", errors.New("connection reset"))

		res, err := mutator.BulkDelete(ctx, []string{"u1", "u2", "u3"})
		Expect(err).To(HaveOccurred())
		Expect(domainerrors.IsTransport(err)).To(BeTrue())
		Expect(res.Succeeded).To(Equal([]string{"u1", "u3"}))
		Expect(res.Failures).To(HaveLen(1))
		Expect(res.Failures[0].ID).To(Equal("u2"))
		Expect(store.callCount()).To(Equal(3))
		Expect(idsOf(store.users)).To(Equal([]string{"u2"}))
		Expect(notifier.last().Level).To(Equal(ports.NotificationError))
	})

	It("ids duplicados geram uma chamada por id", func() {
		_, err := mutator.BulkDelete(ctx, []string{"u1", "u1", ""})
		Expect(err).NotTo(HaveOccurred())
		Expect(store.callCount()).To(Equal(1))
	})
})
