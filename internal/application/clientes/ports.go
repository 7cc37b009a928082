package clientes

import (
	"context"

	"github.com/jmolina/avicola-api/internal/domain/repository"
)

// TxRunner ejecuta operaciones de cuenta corriente (pago o ajuste de deuda)
// dentro de una transacción: el saldo del cliente y el asiento del libro se
// escriben juntos o no se escribe ninguno.
type TxRunner interface {
	RunCuenta(ctx context.Context, fn func(
		clienteRepo repository.ClienteRepository,
		pagoRepo repository.PagoRepository,
	) error) error
}
