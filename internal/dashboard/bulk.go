package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/rafabene/usermanager/internal/domain/entities"
	"github.com/rafabene/usermanager/internal/domain/ports"
)

var (
	// ErrEmptyPatch indica um bulk update sem role nem company
	ErrEmptyPatch = errors.New("bulk update requires a role or a company")
	// ErrNoSelection indica uma operação em lote sem ids
	ErrNoSelection = errors.New("no records selected")
)

// BulkPatch são os campos alteráveis em lote; valores vazios ficam intocados
type BulkPatch struct {
	Role    entities.Role
	Company string
}

func (p BulkPatch) IsEmpty() bool {
	return p.Role == "" && strings.TrimSpace(p.Company) == ""
}

// UserPatch converte para o patch enviado a cada registro
func (p BulkPatch) UserPatch() entities.UserPatch {
	var patch entities.UserPatch
	if p.Role != "" {
		role := p.Role
		patch.Role = &role
	}
	if company := strings.TrimSpace(p.Company); company != "" {
		patch.Company = &company
	}
	return patch
}

// Failure é a falha de uma chamada individual do lote
type Failure struct {
	ID  string
	Err error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.ID, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Result descreve o desfecho de cada id, na ordem em que os ids foram pedidos
type Result struct {
	Succeeded []string
	Updated   []*entities.User // registros devolvidos pelo store em BulkUpdate
	Failures  []Failure
}

// Failed indica que pelo menos uma chamada falhou
func (r Result) Failed() bool {
	return len(r.Failures) > 0
}

// Err agrega as falhas; nil quando todas as chamadas tiveram sucesso
func (r Result) Err() error {
	if !r.Failed() {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}

// BulkMutator aplica uma operação a cada id selecionado com uma chamada ao
// RecordStore por id, todas em paralelo. Nenhuma chamada é cancelada quando
// outra falha e não há rollback das que tiveram sucesso.
type BulkMutator struct {
	store    RecordStore
	notifier ports.Notifier
	limit    int
}

// NewBulkMutator cria um BulkMutator. limit <= 0 dispara todas as chamadas
// de uma vez.
func NewBulkMutator(store RecordStore, notifier ports.Notifier, limit int) *BulkMutator {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	return &BulkMutator{store: store, notifier: notifier, limit: limit}
}

type outcome struct {
	user *entities.User
	err  error
}

// BulkDelete remove cada id. O erro retornado é não nil se qualquer
// chamada falhou; Result informa quais tiveram sucesso.
func (m *BulkMutator) BulkDelete(ctx context.Context, ids []string) (Result, error) {
	ids = dedupe(ids)
	if len(ids) == 0 {
		return Result{}, ErrNoSelection
	}

	res := m.fanOut(ids, func(id string) (*entities.User, error) {
		return nil, m.store.Delete(ctx, id)
	})

	m.report(res, "delete", "deleted", len(ids))
	return res, res.Err()
}

// BulkUpdate aplica patch a cada id. Um patch vazio é rejeitado antes de
// qualquer chamada.
func (m *BulkMutator) BulkUpdate(ctx context.Context, ids []string, patch BulkPatch) (Result, error) {
	if patch.IsEmpty() {
		return Result{}, ErrEmptyPatch
	}
	ids = dedupe(ids)
	if len(ids) == 0 {
		return Result{}, ErrNoSelection
	}

	userPatch := patch.UserPatch()
	res := m.fanOut(ids, func(id string) (*entities.User, error) {
		return m.store.Update(ctx, id, userPatch)
	})

	m.report(res, "update", "updated", len(ids))
	return res, res.Err()
}

func (m *BulkMutator) fanOut(ids []string, call func(id string) (*entities.User, error)) Result {
	outcomes := make([]outcome, len(ids))

	var g errgroup.Group
	if m.limit > 0 {
		g.SetLimit(m.limit)
	}
	for i, id := range ids {
		g.Go(func() error {
			user, err := call(id)
			outcomes[i] = outcome{user: user, err: err}
			// Falhas ficam no Result; retornar nil mantém as demais chamadas vivas
			return nil
		})
	}
	_ = g.Wait()

	var res Result
	for i, o := range outcomes {
		if o.err != nil {
			res.Failures = append(res.Failures, Failure{ID: ids[i], Err: o.err})
			continue
		}
		res.Succeeded = append(res.Succeeded, ids[i])
		if o.user != nil {
			res.Updated = append(res.Updated, o.user)
		}
	}
	return res
}

func (m *BulkMutator) report(res Result, verb, past string, total int) {
	if !res.Failed() {
		m.notifier.Notify(ports.Notification{
			Level:   ports.NotificationSuccess,
			Title:   "Bulk " + verb,
			Message: fmt.Sprintf("%d users %s", total, past),
		})
		return
	}
	m.notifier.Notify(ports.Notification{
		Level:   ports.NotificationError,
		Title:   "Bulk " + verb + " failed",
		Message: fmt.Sprintf("%d of %d calls failed; %d users %s", len(res.Failures), total, len(res.Succeeded), past),
	})
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok || id == "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
