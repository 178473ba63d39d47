package ports

import "context"

// UnitOfWork define a interface para gerenciamento de transações
type UnitOfWork interface {
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
}
