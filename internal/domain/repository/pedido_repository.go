package repository

import "github.com/jmolina/avicola-api/internal/domain/entity"

// PedidoRepository puerto de persistencia para pedidos.
type PedidoRepository interface {
	Create(p *entity.Pedido) error
	CreateDetalle(d *entity.DetallePedido) error
	GetByID(id string) (*entity.Pedido, error)
	Update(p *entity.Pedido) error
	ListDetalles(pedidoID string) ([]*entity.DetallePedido, error)
	List(estado string, limit, offset int) ([]*entity.Pedido, error)
}
