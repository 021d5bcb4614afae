package payment

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платёж не найден
	ErrPaymentNotFound = errors.New("payment.repository: payment not found")

	// ErrDuplicateTransactionID возвращается при коллизии transaction id.
	// Вызывающий код генерирует новый id и повторяет попытку.
	ErrDuplicateTransactionID = errors.New("payment.repository: duplicate transaction id")

	// ErrNotProcessable возвращается, когда платёж уже в финальном статусе
	ErrNotProcessable = errors.New("payment.repository: payment is not processable")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("payment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("payment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("payment.repository: failed to scan row")
)
