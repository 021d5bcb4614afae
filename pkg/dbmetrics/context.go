package dbmetrics

import "context"

type ctxKey struct{}

// WithExecutor кладет транзакционный исполнитель в контекст.
// Используется transaction manager-ами: репозитории достают исполнитель
// через GetExecutor и автоматически работают в рамках открытой транзакции.
func WithExecutor(ctx context.Context, executor TxExecutor) context.Context {
	return context.WithValue(ctx, ctxKey{}, executor)
}

// GetExecutor возвращает исполнитель из контекста, либо fallback,
// если активной транзакции нет
func GetExecutor(ctx context.Context, fallback DBExecutor) DBExecutor {
	if executor, ok := ctx.Value(ctxKey{}).(TxExecutor); ok {
		return executor
	}
	return fallback
}

// IsInTransaction сообщает, выполняется ли запрос внутри транзакции
func IsInTransaction(ctx context.Context) bool {
	_, ok := ctx.Value(ctxKey{}).(TxExecutor)
	return ok
}
