package repository

import "github.com/jmolina/avicola-api/internal/domain/entity"

// ClienteRepository puerto de persistencia para clientes.
type ClienteRepository interface {
	Create(c *entity.Cliente) error
	GetByID(id string) (*entity.Cliente, error)
	// GetForUpdate bloquea la fila del cliente para actualizar su deuda de
	// forma serializada frente a ventas y pagos concurrentes.
	GetForUpdate(id string) (*entity.Cliente, error)
	Update(c *entity.Cliente) error
	List(limit, offset int) ([]*entity.Cliente, error)
}

// PagoRepository puerto de los asientos de cuenta corriente (solo inserción).
type PagoRepository interface {
	Create(p *entity.Pago) error
	ListByCliente(clienteID string, limit, offset int) ([]*entity.Pago, error)
}
