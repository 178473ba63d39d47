// Package dashboard contém o núcleo do painel de usuários: filtro, paginação,
// seleção, mutações em lote e o controller que os orquestra sobre um RecordStore.
package dashboard

import (
	"context"

	"github.com/rafabene/usermanager/internal/domain/entities"
)

// RecordStore é a coleção remota de usuários endereçada por id.
//
// Erros seguem a taxonomia de internal/domain/errors: Get, Update e Delete
// falham com NotFound para ids ausentes; Create e Update falham com
// ValidationError para campos inválidos ou email duplicado; qualquer chamada
// que não completa falha com TransportFailure.
type RecordStore interface {
	ListAll(ctx context.Context) ([]*entities.User, error)
	Get(ctx context.Context, id string) (*entities.User, error)
	Create(ctx context.Context, draft entities.UserDraft) (*entities.User, error)
	Update(ctx context.Context, id string, patch entities.UserPatch) (*entities.User, error)
	Delete(ctx context.Context, id string) error
}

// Confirmer é o ponto de decisão sim/não que precede operações destrutivas
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapta uma função comum a Confirmer
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// AlwaysConfirm aprova toda confirmação (flags --yes da CLI, testes)
var AlwaysConfirm Confirmer = ConfirmFunc(func(string) bool { return true })
