package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rafabene/usermanager/internal/domain/entities"
	domainerrors "github.com/rafabene/usermanager/internal/domain/errors"
	"github.com/rafabene/usermanager/internal/domain/ports"
)

// ErrNotConfirmed indica que o operador recusou uma operação destrutiva
var ErrNotConfirmed = errors.New("operation not confirmed")

// Controller orquestra o painel. Ele é o único dono do canônico; toda
// mutação segue a ordem: canônico, visível, página, seleção.
// Não é seguro para uso concorrente: deve ser dirigido por uma única goroutine.
type Controller struct {
	store     RecordStore
	bulk      *BulkMutator
	notifier  ports.Notifier
	confirmer Confirmer
	logger    ports.Logger
	now       func() time.Time
	pageSize  int
	bulkLimit int

	canonical  []*entities.User
	visible    []*entities.User
	searchTerm string
	criteria   Criteria
	page       int
	selection  *Selection
}

// Option configura um Controller
type Option func(*Controller)

func WithPageSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

func WithNotifier(n ports.Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

func WithConfirmer(cf Confirmer) Option {
	return func(c *Controller) { c.confirmer = cf }
}

func WithLogger(l ports.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithClock substitui o relógio usado pelos filtros de data
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithBulkConcurrency limita quantas chamadas de um lote rodam ao mesmo tempo
func WithBulkConcurrency(n int) Option {
	return func(c *Controller) { c.bulkLimit = n }
}

// NewController cria um Controller vazio; chame Load para popular o canônico
func NewController(store RecordStore, opts ...Option) *Controller {
	c := &Controller{
		store:     store,
		notifier:  ports.NopNotifier{},
		confirmer: AlwaysConfirm,
		logger:    ports.NopLogger{},
		now:       time.Now,
		pageSize:  DefaultPageSize,
		page:      1,
		selection: NewSelection(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.bulk = NewBulkMutator(store, c.notifier, c.bulkLimit)
	return c
}

// Load busca todos os registros e recomputa o estado derivado. Em caso de
// falha o estado anterior é mantido.
func (c *Controller) Load(ctx context.Context) error {
	users, err := c.store.ListAll(ctx)
	if err != nil {
		c.fail("Failed to fetch users", err)
		return err
	}

	c.canonical = users
	c.refresh()
	c.logger.Debug("dashboard loaded", "records", len(users))
	return nil
}

// OnSearch troca o termo de busca
func (c *Controller) OnSearch(term string) {
	c.searchTerm = term
	c.refresh()
}

// OnFilterChange substitui os critérios estruturados
func (c *Controller) OnFilterChange(criteria Criteria) {
	c.criteria = criteria
	c.refresh()
}

// OnClearFilters remove busca e critérios
func (c *Controller) OnClearFilters() {
	c.searchTerm = ""
	c.criteria = Criteria{}
	c.refresh()
}

// OnPageChange muda de página (com clamp) e retorna a página efetiva
func (c *Controller) OnPageChange(page int) int {
	c.page = ClampPage(page, TotalPages(len(c.visible), c.pageSize))
	return c.page
}

// OnSelectAll seleciona exatamente os ids do conjunto visível
func (c *Controller) OnSelectAll() {
	c.selection.SelectAll(idsOf(c.visible))
}

// OnSelectPage seleciona exatamente os ids da página atual
func (c *Controller) OnSelectPage() {
	c.selection.SelectAll(idsOf(c.currentPage().Items))
}

// OnToggleSelect marca ou desmarca um id. Ids fora do canônico são ignorados.
func (c *Controller) OnToggleSelect(id string, included bool) bool {
	if included && c.find(id) < 0 {
		return false
	}
	c.selection.Toggle(id, included)
	return true
}

// OnClearSelection esvazia a seleção
func (c *Controller) OnClearSelection() {
	c.selection.Clear()
}

// OnOpen busca um registro diretamente no store, sem alterar o estado
func (c *Controller) OnOpen(ctx context.Context, id string) (*entities.User, error) {
	user, err := c.store.Get(ctx, id)
	if err != nil {
		c.fail("Failed to fetch user", err)
		return nil, err
	}
	return user, nil
}

// OnCreate cria um registro e o acrescenta ao canônico após a confirmação do store
func (c *Controller) OnCreate(ctx context.Context, draft entities.UserDraft) (*entities.User, error) {
	user, err := c.store.Create(ctx, draft)
	if err != nil {
		c.fail("Failed to create user", err)
		return nil, err
	}

	c.canonical = append(c.canonical, user)
	c.refresh()
	c.notify(ports.NotificationSuccess, "User created", user.Name+" was added")
	return user, nil
}

// OnUpdate aplica patch a um registro e substitui sua cópia no canônico
func (c *Controller) OnUpdate(ctx context.Context, id string, patch entities.UserPatch) (*entities.User, error) {
	if patch.IsEmpty() {
		return nil, domainerrors.NewValidationError("no fields to update")
	}

	user, err := c.store.Update(ctx, id, patch)
	if err != nil {
		c.fail("Failed to update user", err)
		return nil, err
	}

	c.replace(user)
	c.refresh()
	c.notify(ports.NotificationSuccess, "User updated", user.Name+" was updated")
	return user, nil
}

// OnDelete remove um registro após confirmação. Em caso de falha nenhum
// estado é alterado.
func (c *Controller) OnDelete(ctx context.Context, id string) error {
	if !c.confirmer.Confirm("Delete this user?") {
		return ErrNotConfirmed
	}

	if err := c.store.Delete(ctx, id); err != nil {
		c.fail("Failed to delete user", err)
		return err
	}

	c.remove(id)
	c.refresh()
	c.selection.ReconcileAfterDelete(id)
	c.notify(ports.NotificationSuccess, "User deleted", "")
	return nil
}

// OnBulkDelete remove todos os ids selecionados após confirmação.
// Em falha parcial os ids removidos saem do canônico e da seleção; os
// demais permanecem selecionados.
func (c *Controller) OnBulkDelete(ctx context.Context) (Result, error) {
	ids := c.selection.IDs()
	if len(ids) == 0 {
		return Result{}, ErrNoSelection
	}

	prompt := fmt.Sprintf("Are you sure you want to delete %d users? This action cannot be undone.", len(ids))
	if !c.confirmer.Confirm(prompt) {
		return Result{}, ErrNotConfirmed
	}

	res, err := c.bulk.BulkDelete(ctx, ids)

	c.remove(res.Succeeded...)
	c.refresh()
	if err != nil {
		c.selection.ReconcileAfterDelete(res.Succeeded...)
		c.logger.Warn("bulk delete partially failed", "succeeded", len(res.Succeeded), "failed", len(res.Failures))
		return res, err
	}
	c.selection.Clear()
	return res, nil
}

// OnBulkUpdate aplica patch a todos os ids selecionados. Em falha parcial o
// canônico reflete as chamadas que tiveram sucesso e a seleção é mantida.
func (c *Controller) OnBulkUpdate(ctx context.Context, patch BulkPatch) (Result, error) {
	if patch.IsEmpty() {
		return Result{}, ErrEmptyPatch
	}
	ids := c.selection.IDs()
	if len(ids) == 0 {
		return Result{}, ErrNoSelection
	}

	res, err := c.bulk.BulkUpdate(ctx, ids, patch)

	for _, user := range res.Updated {
		c.replace(user)
	}
	c.refresh()
	if err != nil {
		c.logger.Warn("bulk update partially failed", "succeeded", len(res.Succeeded), "failed", len(res.Failures))
		return res, err
	}
	c.selection.Clear()
	return res, nil
}

// refresh recomputa o visível a partir do canônico, volta para a página 1
// e descarta da seleção ids que não estão mais no canônico
func (c *Controller) refresh() {
	c.visible = Apply(c.canonical, c.searchTerm, c.criteria, c.now())
	c.page = 1

	live := make(map[string]struct{}, len(c.canonical))
	for _, u := range c.canonical {
		live[u.ID] = struct{}{}
	}
	c.selection.Retain(func(id string) bool {
		_, ok := live[id]
		return ok
	})
}

func (c *Controller) currentPage() Page {
	return Paginate(c.visible, c.pageSize, c.page)
}

func (c *Controller) find(id string) int {
	for i, u := range c.canonical {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func (c *Controller) replace(user *entities.User) {
	if i := c.find(user.ID); i >= 0 {
		next := make([]*entities.User, len(c.canonical))
		copy(next, c.canonical)
		next[i] = user
		c.canonical = next
	}
}

func (c *Controller) remove(ids ...string) {
	if len(ids) == 0 {
		return
	}
	gone := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		gone[id] = struct{}{}
	}
	next := make([]*entities.User, 0, len(c.canonical))
	for _, u := range c.canonical {
		if _, ok := gone[u.ID]; !ok {
			next = append(next, u)
		}
	}
	c.canonical = next
}

func (c *Controller) notify(level ports.NotificationLevel, title, msg string) {
	c.notifier.Notify(ports.Notification{Level: level, Title: title, Message: msg})
}

func (c *Controller) fail(title string, err error) {
	c.logger.Warn(title, "error", err)
	c.notify(ports.NotificationError, title, describe(err))
}

// describe traduz a taxonomia de erros em texto para o operador
func describe(err error) string {
	switch {
	case domainerrors.IsNotFound(err):
		return "the user no longer exists"
	case domainerrors.IsValidation(err):
		msg := "invalid data"
		for _, f := range domainerrors.FieldsOf(err) {
			msg += "; " + f.Field + ": " + f.Message
		}
		return msg
	case domainerrors.IsTransport(err):
		return "the server could not be reached"
	default:
		return err.Error()
	}
}

func idsOf(users []*entities.User) []string {
	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return ids
}
