package service

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by all services. Handlers map these to HTTP statuses;
// anything else surfaces as a 500.
var (
	// ErrValidacion covers malformed input that survived request binding
	// (bad dates, negative quantities, unknown references).
	ErrValidacion = errors.New("datos inválidos")

	// ErrNoEncontrado is returned when a referenced record does not exist.
	ErrNoEncontrado = errors.New("registro no encontrado")

	// ErrRegistroAutomatico rejects any manual edit or delete of a ledger row
	// generated by a fuel sale. Automatic rows only change through cascades.
	ErrRegistroAutomatico = errors.New("un movimiento automático no puede modificarse manualmente")

	// ErrTransaccion wraps failures inside a multi-write transaction after
	// the rollback completed.
	ErrTransaccion = errors.New("la transacción no pudo completarse")

	// ErrStockInsuficiente rejects a product sale line exceeding available stock.
	ErrStockInsuficiente = errors.New("stock insuficiente")

	// ErrCredenciales is returned on a failed login without revealing whether
	// the username exists.
	ErrCredenciales = errors.New("usuario o contraseña incorrectos")
)

// wrapTx reports a failed transaction. A sentinel raised inside the
// transaction body keeps its identity so handlers still map it to the right
// status; any other failure surfaces as ErrTransaccion.
func wrapTx(err error) error {
	if err == nil {
		return nil
	}
	for _, sentinela := range []error{ErrValidacion, ErrNoEncontrado, ErrRegistroAutomatico, ErrStockInsuficiente} {
		if errors.Is(err, sentinela) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", ErrTransaccion, err)
}
