package clientes

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmolina/avicola-api/internal/application/dto"
	"github.com/jmolina/avicola-api/internal/domain"
	"github.com/jmolina/avicola-api/internal/domain/entity"
	"github.com/jmolina/avicola-api/internal/domain/repository"
	"github.com/jmolina/avicola-api/pkg/reloj"
)

// ClienteUseCase administra clientes y su cuenta corriente. La deuda solo se
// toca bajo fila bloqueada y cada cambio deja un asiento en el libro de la
// cuenta, así la deuda siempre es reconstruible desde los asientos.
type ClienteUseCase struct {
	txRunner    TxRunner
	clienteRepo repository.ClienteRepository
	pagoRepo    repository.PagoRepository
	clock       reloj.Clock
}

// NewClienteUseCase construye el caso de uso.
func NewClienteUseCase(
	txRunner TxRunner,
	clienteRepo repository.ClienteRepository,
	pagoRepo repository.PagoRepository,
	clock reloj.Clock,
) *ClienteUseCase {
	return &ClienteUseCase{
		txRunner:    txRunner,
		clienteRepo: clienteRepo,
		pagoRepo:    pagoRepo,
		clock:       clock,
	}
}

// Create da de alta un cliente sin deuda ni compras.
func (uc *ClienteUseCase) Create(ctx context.Context, in dto.CreateClienteRequest) (*dto.ClienteResponse, error) {
	if strings.TrimSpace(in.Nombre) == "" {
		return nil, domain.ErrInvalidInput
	}
	ahora := uc.clock.Now()
	c := &entity.Cliente{
		ID:                 uuid.New().String(),
		Nombre:             strings.TrimSpace(in.Nombre),
		DNI:                strings.TrimSpace(in.DNI),
		Telefono:           in.Telefono,
		Direccion:          in.Direccion,
		MetodoPagoHabitual: in.MetodoPagoHabitual,
		Estado:             entity.ClienteActivo,
		CreatedAt:          ahora,
		UpdatedAt:          ahora,
	}
	if err := uc.clienteRepo.Create(c); err != nil {
		return nil, err
	}
	return clienteAResponse(c), nil
}

// GetByID devuelve un cliente por su ID.
func (uc *ClienteUseCase) GetByID(ctx context.Context, id string) (*dto.ClienteResponse, error) {
	c, err := uc.clienteRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return clienteAResponse(c), nil
}

// List devuelve clientes paginados.
func (uc *ClienteUseCase) List(ctx context.Context, limit, offset int) ([]dto.ClienteResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	clientes, err := uc.clienteRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteResponse, 0, len(clientes))
	for _, c := range clientes {
		out = append(out, *clienteAResponse(c))
	}
	return out, nil
}

// Update modifica datos de contacto o estado de un cliente. La deuda nunca
// se edita por acá: para eso están RegistrarPago y AjustarDeuda.
func (uc *ClienteUseCase) Update(ctx context.Context, id string, in dto.UpdateClienteRequest) (*dto.ClienteResponse, error) {
	c, err := uc.clienteRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.Nombre != nil {
		if strings.TrimSpace(*in.Nombre) == "" {
			return nil, domain.ErrInvalidInput
		}
		c.Nombre = strings.TrimSpace(*in.Nombre)
	}
	if in.Telefono != nil {
		c.Telefono = *in.Telefono
	}
	if in.Direccion != nil {
		c.Direccion = *in.Direccion
	}
	if in.MetodoPagoHabitual != nil {
		c.MetodoPagoHabitual = *in.MetodoPagoHabitual
	}
	if in.Estado != nil {
		switch *in.Estado {
		case entity.ClienteActivo, entity.ClienteMoroso, entity.ClienteInactivo:
			c.Estado = *in.Estado
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	c.UpdatedAt = uc.clock.Now()
	if err := uc.clienteRepo.Update(c); err != nil {
		return nil, err
	}
	return clienteAResponse(c), nil
}

// RegistrarPago asienta un pago del cliente y baja su deuda. Se admite pagar
// de más: la deuda queda negativa y funciona como saldo a favor para la
// próxima venta a cuenta.
func (uc *ClienteUseCase) RegistrarPago(ctx context.Context, clienteID, usuarioID string, in dto.RegistrarPagoRequest) (*dto.ClienteResponse, error) {
	if !in.Monto.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if in.MetodoPago != entity.PagoEfectivo && in.MetodoPago != entity.PagoTransferencia {
		return nil, domain.ErrInvalidInput
	}
	ahora := uc.clock.Now()

	var actualizado *entity.Cliente
	err := uc.txRunner.RunCuenta(ctx, func(
		clienteRepo repository.ClienteRepository,
		pagoRepo repository.PagoRepository,
	) error {
		c, err := clienteRepo.GetForUpdate(clienteID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		c.Deuda = c.Deuda.Sub(in.Monto)
		// Saldada la deuda, el vencimiento deja de correr y el cliente
		// vuelve a activo si estaba moroso.
		if !c.Deuda.IsPositive() {
			c.VencimientoDeuda = nil
			if c.Estado == entity.ClienteMoroso {
				c.Estado = entity.ClienteActivo
			}
		}
		c.UpdatedAt = ahora
		if err := clienteRepo.Update(c); err != nil {
			return err
		}
		asiento := &entity.Pago{
			ID:         uuid.New().String(),
			ClienteID:  c.ID,
			Tipo:       entity.AsientoPago,
			Monto:      in.Monto,
			MetodoPago: in.MetodoPago,
			Motivo:     in.Nota,
			UsuarioID:  usuarioID,
			Fecha:      ahora,
			CreatedAt:  ahora,
		}
		if err := pagoRepo.Create(asiento); err != nil {
			return err
		}
		actualizado = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return clienteAResponse(actualizado), nil
}

// AjustarDeuda corrige la deuda a mano, para arriba o para abajo. El motivo
// es obligatorio: un ajuste sin explicación no se puede auditar.
func (uc *ClienteUseCase) AjustarDeuda(ctx context.Context, clienteID, usuarioID string, in dto.AjusteDeudaRequest) (*dto.ClienteResponse, error) {
	if !in.Monto.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if strings.TrimSpace(in.Motivo) == "" {
		return nil, domain.ErrInvalidInput
	}
	ahora := uc.clock.Now()

	var actualizado *entity.Cliente
	err := uc.txRunner.RunCuenta(ctx, func(
		clienteRepo repository.ClienteRepository,
		pagoRepo repository.PagoRepository,
	) error {
		c, err := clienteRepo.GetForUpdate(clienteID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrNotFound
		}
		tipo := entity.AsientoAjusteBaja
		if in.Aumenta {
			tipo = entity.AsientoAjusteAumento
			c.Deuda = c.Deuda.Add(in.Monto)
		} else {
			c.Deuda = c.Deuda.Sub(in.Monto)
		}
		if !c.Deuda.IsPositive() {
			c.VencimientoDeuda = nil
			if c.Estado == entity.ClienteMoroso {
				c.Estado = entity.ClienteActivo
			}
		} else if c.Moroso(ahora) {
			c.Estado = entity.ClienteMoroso
		}
		c.UpdatedAt = ahora
		if err := clienteRepo.Update(c); err != nil {
			return err
		}
		asiento := &entity.Pago{
			ID:        uuid.New().String(),
			ClienteID: c.ID,
			Tipo:      tipo,
			Monto:     in.Monto,
			Motivo:    strings.TrimSpace(in.Motivo),
			UsuarioID: usuarioID,
			Fecha:     ahora,
			CreatedAt: ahora,
		}
		if err := pagoRepo.Create(asiento); err != nil {
			return err
		}
		actualizado = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return clienteAResponse(actualizado), nil
}

// ListPagos devuelve el libro de la cuenta corriente de un cliente.
func (uc *ClienteUseCase) ListPagos(ctx context.Context, clienteID string, limit, offset int) ([]dto.PagoResponse, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	c, err := uc.clienteRepo.GetByID(clienteID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	pagos, err := uc.pagoRepo.ListByCliente(clienteID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PagoResponse, 0, len(pagos))
	for _, p := range pagos {
		out = append(out, dto.PagoResponse{
			ID:         p.ID,
			ClienteID:  p.ClienteID,
			Tipo:       p.Tipo,
			Monto:      p.Monto,
			MetodoPago: p.MetodoPago,
			Motivo:     p.Motivo,
			Referencia: p.Referencia,
			Fecha:      p.Fecha,
		})
	}
	return out, nil
}

// Morosos lista los clientes con deuda vencida al momento de la consulta.
func (uc *ClienteUseCase) Morosos(ctx context.Context) ([]dto.ClienteResponse, error) {
	ahora := uc.clock.Now()
	clientes, err := uc.clienteRepo.List(500, 0)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClienteResponse, 0)
	for _, c := range clientes {
		if c.Moroso(ahora) || c.Estado == entity.ClienteMoroso {
			out = append(out, *clienteAResponse(c))
		}
	}
	return out, nil
}

func clienteAResponse(c *entity.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:                 c.ID,
		Nombre:             c.Nombre,
		DNI:                c.DNI,
		Telefono:           c.Telefono,
		Direccion:          c.Direccion,
		MetodoPagoHabitual: c.MetodoPagoHabitual,
		Deuda:              c.Deuda,
		TotalCompras:       c.TotalCompras,
		FechaUltimaCompra:  c.FechaUltimaCompra,
		VencimientoDeuda:   c.VencimientoDeuda,
		Estado:             c.Estado,
	}
}
