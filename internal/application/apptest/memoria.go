// Package apptest provee repositorios en memoria y un TxRunner con
// rollback por snapshot para probar los casos de uso sin base de datos.
// Los fakes no simulan locks: los tests son secuenciales.
package apptest

import (
	"context"
	"sort"
	"time"

	"github.com/jmolina/avicola-api/internal/application/clientes"
	"github.com/jmolina/avicola-api/internal/application/granja"
	"github.com/jmolina/avicola-api/internal/application/inventario"
	"github.com/jmolina/avicola-api/internal/application/ventas"
	"github.com/jmolina/avicola-api/internal/domain"
	"github.com/jmolina/avicola-api/internal/domain/entity"
	"github.com/jmolina/avicola-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ── Productos ─────────────────────────────────────────────────────────────────

// ProductoMem fake en memoria de ProductoRepository.
type ProductoMem struct {
	Items map[string]*entity.Producto
}

var _ repository.ProductoRepository = (*ProductoMem)(nil)

func NewProductoMem() *ProductoMem {
	return &ProductoMem{Items: make(map[string]*entity.Producto)}
}

func (m *ProductoMem) Create(p *entity.Producto) error {
	cp := *p
	m.Items[p.ID] = &cp
	return nil
}

func (m *ProductoMem) GetByID(id string) (*entity.Producto, error) {
	p, ok := m.Items[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *ProductoMem) Update(p *entity.Producto) error {
	if _, ok := m.Items[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	m.Items[p.ID] = &cp
	return nil
}

func (m *ProductoMem) UpdateCosto(productoID string, costo decimal.Decimal) error {
	p, ok := m.Items[productoID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *p
	cp.Costo = costo
	m.Items[productoID] = &cp
	return nil
}

func (m *ProductoMem) List(limit, offset int) ([]*entity.Producto, error) {
	out := make([]*entity.Producto, 0, len(m.Items))
	for _, p := range m.Items {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (m *ProductoMem) ListBajoMinimo() ([]*entity.Producto, error) {
	return nil, nil
}

func (m *ProductoMem) Delete(id string) error {
	if _, ok := m.Items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.Items, id)
	return nil
}

// ── Stock y movimientos ───────────────────────────────────────────────────────

type stockKey struct {
	UbicacionTipo string
	UbicacionID   string
	ProductoID    string
}

// StockMem fake en memoria de StockRepository.
type StockMem struct {
	Items map[stockKey]*entity.Stock
}

var _ repository.StockRepository = (*StockMem)(nil)

func NewStockMem() *StockMem {
	return &StockMem{Items: make(map[stockKey]*entity.Stock)}
}

// Set deja una cantidad de stock, para armar escenarios.
func (m *StockMem) Set(ubicacionTipo, ubicacionID, productoID string, cantidad decimal.Decimal) {
	k := stockKey{ubicacionTipo, ubicacionID, productoID}
	m.Items[k] = &entity.Stock{
		UbicacionTipo: ubicacionTipo,
		UbicacionID:   ubicacionID,
		ProductoID:    productoID,
		Cantidad:      cantidad,
	}
}

// Cantidad devuelve la cantidad actual (cero si no hay fila).
func (m *StockMem) Cantidad(ubicacionTipo, ubicacionID, productoID string) decimal.Decimal {
	if s, ok := m.Items[stockKey{ubicacionTipo, ubicacionID, productoID}]; ok {
		return s.Cantidad
	}
	return decimal.Zero
}

func (m *StockMem) Get(ubicacionTipo, ubicacionID, productoID string) (*entity.Stock, error) {
	return m.GetForUpdate(ubicacionTipo, ubicacionID, productoID)
}

func (m *StockMem) GetForUpdate(ubicacionTipo, ubicacionID, productoID string) (*entity.Stock, error) {
	if s, ok := m.Items[stockKey{ubicacionTipo, ubicacionID, productoID}]; ok {
		cp := *s
		return &cp, nil
	}
	return &entity.Stock{
		UbicacionTipo: ubicacionTipo,
		UbicacionID:   ubicacionID,
		ProductoID:    productoID,
		Cantidad:      decimal.Zero,
	}, nil
}

func (m *StockMem) Upsert(s *entity.Stock) error {
	cp := *s
	m.Items[stockKey{s.UbicacionTipo, s.UbicacionID, s.ProductoID}] = &cp
	return nil
}

func (m *StockMem) ListPorUbicacion(ubicacionTipo, ubicacionID string) ([]*entity.Stock, error) {
	var out []*entity.Stock
	for _, s := range m.Items {
		if s.UbicacionTipo == ubicacionTipo && s.UbicacionID == ubicacionID && !s.Cantidad.IsZero() {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductoID < out[j].ProductoID })
	return out, nil
}

// MovimientoMem fake en memoria de MovimientoRepository.
type MovimientoMem struct {
	Items []*entity.MovimientoStock
}

var _ repository.MovimientoRepository = (*MovimientoMem)(nil)

func NewMovimientoMem() *MovimientoMem {
	return &MovimientoMem{}
}

func (m *MovimientoMem) Create(mov *entity.MovimientoStock) error {
	cp := *mov
	m.Items = append(m.Items, &cp)
	return nil
}

func (m *MovimientoMem) List(f repository.MovimientoFiltro) ([]*entity.MovimientoStock, error) {
	var out []*entity.MovimientoStock
	for _, mov := range m.Items {
		if f.UbicacionTipo != "" && mov.UbicacionTipo != f.UbicacionTipo {
			continue
		}
		if f.ProductoID != "" && mov.ProductoID != f.ProductoID {
			continue
		}
		if f.Tipo != "" && mov.Tipo != f.Tipo {
			continue
		}
		cp := *mov
		out = append(out, &cp)
	}
	return out, nil
}

// ── Clientes y pagos ──────────────────────────────────────────────────────────

// ClienteMem fake en memoria de ClienteRepository.
type ClienteMem struct {
	Items map[string]*entity.Cliente
}

var _ repository.ClienteRepository = (*ClienteMem)(nil)

func NewClienteMem() *ClienteMem {
	return &ClienteMem{Items: make(map[string]*entity.Cliente)}
}

func (m *ClienteMem) Create(c *entity.Cliente) error {
	cp := *c
	m.Items[c.ID] = &cp
	return nil
}

func (m *ClienteMem) GetByID(id string) (*entity.Cliente, error) {
	c, ok := m.Items[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *ClienteMem) GetForUpdate(id string) (*entity.Cliente, error) {
	return m.GetByID(id)
}

func (m *ClienteMem) Update(c *entity.Cliente) error {
	if _, ok := m.Items[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	m.Items[c.ID] = &cp
	return nil
}

func (m *ClienteMem) List(limit, offset int) ([]*entity.Cliente, error) {
	out := make([]*entity.Cliente, 0, len(m.Items))
	for _, c := range m.Items {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

// PagoMem fake en memoria de PagoRepository.
type PagoMem struct {
	Items []*entity.Pago
}

var _ repository.PagoRepository = (*PagoMem)(nil)

func NewPagoMem() *PagoMem {
	return &PagoMem{}
}

func (m *PagoMem) Create(p *entity.Pago) error {
	cp := *p
	m.Items = append(m.Items, &cp)
	return nil
}

func (m *PagoMem) ListByCliente(clienteID string, limit, offset int) ([]*entity.Pago, error) {
	var out []*entity.Pago
	for _, p := range m.Items {
		if p.ClienteID == clienteID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ── Vehículos ─────────────────────────────────────────────────────────────────

// VehiculoMem fake en memoria de VehiculoRepository.
type VehiculoMem struct {
	Items map[string]*entity.Vehiculo
}

var _ repository.VehiculoRepository = (*VehiculoMem)(nil)

func NewVehiculoMem() *VehiculoMem {
	return &VehiculoMem{Items: make(map[string]*entity.Vehiculo)}
}

func (m *VehiculoMem) Create(v *entity.Vehiculo) error {
	cp := *v
	m.Items[v.ID] = &cp
	return nil
}

func (m *VehiculoMem) GetByID(id string) (*entity.Vehiculo, error) {
	v, ok := m.Items[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (m *VehiculoMem) GetByPatente(patente string) (*entity.Vehiculo, error) {
	for _, v := range m.Items {
		if v.Patente == patente {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *VehiculoMem) Update(v *entity.Vehiculo) error {
	if _, ok := m.Items[v.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *v
	m.Items[v.ID] = &cp
	return nil
}

func (m *VehiculoMem) List(limit, offset int) ([]*entity.Vehiculo, error) {
	out := make([]*entity.Vehiculo, 0, len(m.Items))
	for _, v := range m.Items {
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Patente < out[j].Patente })
	return out, nil
}

func (m *VehiculoMem) Delete(id string) error {
	if _, ok := m.Items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.Items, id)
	return nil
}

// ── Ventas ────────────────────────────────────────────────────────────────────

// VentaMem fake en memoria de VentaRepository.
type VentaMem struct {
	Ventas   map[string]*entity.Venta
	Detalles []*entity.DetalleVenta
}

var _ repository.VentaRepository = (*VentaMem)(nil)

func NewVentaMem() *VentaMem {
	return &VentaMem{Ventas: make(map[string]*entity.Venta)}
}

func (m *VentaMem) Create(v *entity.Venta) error {
	cp := *v
	m.Ventas[v.ID] = &cp
	return nil
}

func (m *VentaMem) CreateDetalle(d *entity.DetalleVenta) error {
	cp := *d
	m.Detalles = append(m.Detalles, &cp)
	return nil
}

func (m *VentaMem) GetByID(id string) (*entity.Venta, error) {
	v, ok := m.Ventas[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (m *VentaMem) ListDetalles(ventaID string) ([]*entity.DetalleVenta, error) {
	var out []*entity.DetalleVenta
	for _, d := range m.Detalles {
		if d.VentaID == ventaID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *VentaMem) List(desde, hasta time.Time, limit, offset int) ([]*entity.Venta, error) {
	var out []*entity.Venta
	for _, v := range m.Ventas {
		if !v.Fecha.Before(desde) && v.Fecha.Before(hasta) {
			cp := *v
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fecha.After(out[j].Fecha) })
	return out, nil
}

// ── Granja ────────────────────────────────────────────────────────────────────

type contenidoKey struct {
	SiloID   string
	Material string
}

// SiloMem fake en memoria de SiloRepository.
type SiloMem struct {
	Silos      map[string]*entity.Silo
	Contenidos map[contenidoKey]*entity.ContenidoSilo
}

var _ repository.SiloRepository = (*SiloMem)(nil)

func NewSiloMem() *SiloMem {
	return &SiloMem{
		Silos:      make(map[string]*entity.Silo),
		Contenidos: make(map[contenidoKey]*entity.ContenidoSilo),
	}
}

func (m *SiloMem) Create(s *entity.Silo) error {
	cp := *s
	m.Silos[s.ID] = &cp
	return nil
}

func (m *SiloMem) GetByID(id string) (*entity.Silo, error) {
	s, ok := m.Silos[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (m *SiloMem) GetForUpdate(id string) (*entity.Silo, error) {
	return m.GetByID(id)
}

func (m *SiloMem) Update(s *entity.Silo) error {
	if _, ok := m.Silos[s.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *s
	m.Silos[s.ID] = &cp
	return nil
}

func (m *SiloMem) List() ([]*entity.Silo, error) {
	out := make([]*entity.Silo, 0, len(m.Silos))
	for _, s := range m.Silos {
		cp := *s
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (m *SiloMem) GetContenidoForUpdate(siloID, material string) (*entity.ContenidoSilo, error) {
	c, ok := m.Contenidos[contenidoKey{siloID, material}]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (m *SiloMem) UpsertContenido(c *entity.ContenidoSilo) error {
	cp := *c
	m.Contenidos[contenidoKey{c.SiloID, c.Material}] = &cp
	return nil
}

func (m *SiloMem) ListContenido(siloID string) ([]*entity.ContenidoSilo, error) {
	var out []*entity.ContenidoSilo
	for _, c := range m.Contenidos {
		if c.SiloID == siloID && !c.CantidadKg.IsZero() {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Material < out[j].Material })
	return out, nil
}

// GalponMem fake en memoria de GalponRepository.
type GalponMem struct {
	Items map[string]*entity.Galpon
}

var _ repository.GalponRepository = (*GalponMem)(nil)

func NewGalponMem() *GalponMem {
	return &GalponMem{Items: make(map[string]*entity.Galpon)}
}

func (m *GalponMem) Create(g *entity.Galpon) error {
	cp := *g
	m.Items[g.ID] = &cp
	return nil
}

func (m *GalponMem) GetByID(id string) (*entity.Galpon, error) {
	g, ok := m.Items[id]
	if !ok {
		return nil, nil
	}
	cp := *g
	return &cp, nil
}

func (m *GalponMem) GetForUpdate(id string) (*entity.Galpon, error) {
	return m.GetByID(id)
}

func (m *GalponMem) Update(g *entity.Galpon) error {
	if _, ok := m.Items[g.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *g
	m.Items[g.ID] = &cp
	return nil
}

func (m *GalponMem) List() ([]*entity.Galpon, error) {
	out := make([]*entity.Galpon, 0, len(m.Items))
	for _, g := range m.Items {
		cp := *g
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

// LoteMem fake en memoria de LoteRepository.
type LoteMem struct {
	Items      map[string]*entity.LoteAve
	Mortalidad []*entity.EventoMortalidad
}

var _ repository.LoteRepository = (*LoteMem)(nil)

func NewLoteMem() *LoteMem {
	return &LoteMem{Items: make(map[string]*entity.LoteAve)}
}

func (m *LoteMem) Create(l *entity.LoteAve) error {
	cp := *l
	m.Items[l.ID] = &cp
	return nil
}

func (m *LoteMem) GetByID(id string) (*entity.LoteAve, error) {
	l, ok := m.Items[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (m *LoteMem) GetForUpdate(id string) (*entity.LoteAve, error) {
	return m.GetByID(id)
}

func (m *LoteMem) GetActivoPorGalpon(galponID string) (*entity.LoteAve, error) {
	for _, l := range m.Items {
		if l.GalponID == galponID && l.Estado == entity.LoteActivo {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *LoteMem) Update(l *entity.LoteAve) error {
	if _, ok := m.Items[l.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *l
	m.Items[l.ID] = &cp
	return nil
}

func (m *LoteMem) ListByGalpon(galponID string) ([]*entity.LoteAve, error) {
	var out []*entity.LoteAve
	for _, l := range m.Items {
		if l.GalponID == galponID {
			cp := *l
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaIngreso.After(out[j].FechaIngreso) })
	return out, nil
}

func (m *LoteMem) CreateMortalidad(e *entity.EventoMortalidad) error {
	cp := *e
	m.Mortalidad = append(m.Mortalidad, &cp)
	return nil
}

func (m *LoteMem) ListMortalidad(loteID string) ([]*entity.EventoMortalidad, error) {
	var out []*entity.EventoMortalidad
	for _, e := range m.Mortalidad {
		if e.LoteID == loteID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ── Usuarios y asistencias ────────────────────────────────────────────────────

// UsuarioMem fake en memoria de UsuarioRepository.
type UsuarioMem struct {
	Items map[string]*entity.Usuario
}

var _ repository.UsuarioRepository = (*UsuarioMem)(nil)

func NewUsuarioMem() *UsuarioMem {
	return &UsuarioMem{Items: make(map[string]*entity.Usuario)}
}

func (m *UsuarioMem) Create(u *entity.Usuario) error {
	cp := *u
	m.Items[u.ID] = &cp
	return nil
}

func (m *UsuarioMem) GetByID(id string) (*entity.Usuario, error) {
	u, ok := m.Items[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *UsuarioMem) FindByEmail(email string) (*entity.Usuario, error) {
	for _, u := range m.Items {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *UsuarioMem) Update(u *entity.Usuario) error {
	if _, ok := m.Items[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *u
	m.Items[u.ID] = &cp
	return nil
}

func (m *UsuarioMem) List(limit, offset int) ([]*entity.Usuario, error) {
	all := make([]*entity.Usuario, 0, len(m.Items))
	for _, u := range m.Items {
		cp := *u
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Nombre < all[j].Nombre })
	return all, nil
}

func (m *UsuarioMem) ListActivos() ([]*entity.Usuario, error) {
	var out []*entity.Usuario
	for _, u := range m.Items {
		if u.Activo {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out, nil
}

func (m *UsuarioMem) CountAdminsActivos() (int, error) {
	n := 0
	for _, u := range m.Items {
		if u.Rol == entity.RolAdmin && u.Activo {
			n++
		}
	}
	return n, nil
}

func (m *UsuarioMem) Delete(id string) error {
	if _, ok := m.Items[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(m.Items, id)
	return nil
}

// AsistenciaMem fake en memoria de AsistenciaRepository.
type AsistenciaMem struct {
	Items []*entity.Asistencia
}

var _ repository.AsistenciaRepository = (*AsistenciaMem)(nil)

func NewAsistenciaMem() *AsistenciaMem {
	return &AsistenciaMem{}
}

func (m *AsistenciaMem) Create(a *entity.Asistencia) error {
	cp := *a
	m.Items = append(m.Items, &cp)
	return nil
}

func (m *AsistenciaMem) GetPorUsuarioYFecha(usuarioID string, fecha time.Time) (*entity.Asistencia, error) {
	for _, a := range m.Items {
		if a.UsuarioID == usuarioID && a.Fecha.Equal(fecha) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *AsistenciaMem) ListPorFecha(fecha time.Time) ([]*entity.Asistencia, error) {
	var out []*entity.Asistencia
	for _, a := range m.Items {
		if a.Fecha.Equal(fecha) {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *AsistenciaMem) ListPorUsuarioYMes(usuarioID string, anio int, mes time.Month) ([]*entity.Asistencia, error) {
	var out []*entity.Asistencia
	for _, a := range m.Items {
		if a.UsuarioID == usuarioID && a.Fecha.Year() == anio && a.Fecha.Month() == mes {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ── Pedidos y viajes ──────────────────────────────────────────────────────────

// PedidoMem fake en memoria de PedidoRepository.
type PedidoMem struct {
	Items    map[string]*entity.Pedido
	Detalles []*entity.DetallePedido
}

var _ repository.PedidoRepository = (*PedidoMem)(nil)

func NewPedidoMem() *PedidoMem {
	return &PedidoMem{Items: make(map[string]*entity.Pedido)}
}

func (m *PedidoMem) Create(p *entity.Pedido) error {
	cp := *p
	m.Items[p.ID] = &cp
	return nil
}

func (m *PedidoMem) CreateDetalle(d *entity.DetallePedido) error {
	cp := *d
	m.Detalles = append(m.Detalles, &cp)
	return nil
}

func (m *PedidoMem) GetByID(id string) (*entity.Pedido, error) {
	p, ok := m.Items[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *PedidoMem) Update(p *entity.Pedido) error {
	if _, ok := m.Items[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	m.Items[p.ID] = &cp
	return nil
}

func (m *PedidoMem) ListDetalles(pedidoID string) ([]*entity.DetallePedido, error) {
	var out []*entity.DetallePedido
	for _, d := range m.Detalles {
		if d.PedidoID == pedidoID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *PedidoMem) List(estado string, limit, offset int) ([]*entity.Pedido, error) {
	var all []*entity.Pedido
	for _, p := range m.Items {
		if estado != "" && p.Estado != estado {
			continue
		}
		cp := *p
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].FechaPedido.After(all[j].FechaPedido) })
	return all, nil
}

// ViajeMem fake en memoria de ViajeRepository.
type ViajeMem struct {
	Items map[string]*entity.Viaje
}

var _ repository.ViajeRepository = (*ViajeMem)(nil)

func NewViajeMem() *ViajeMem {
	return &ViajeMem{Items: make(map[string]*entity.Viaje)}
}

func (m *ViajeMem) Create(v *entity.Viaje) error {
	cp := *v
	m.Items[v.ID] = &cp
	return nil
}

func (m *ViajeMem) GetByID(id string) (*entity.Viaje, error) {
	v, ok := m.Items[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (m *ViajeMem) GetEnCursoPorVehiculo(vehiculoID string) (*entity.Viaje, error) {
	for _, v := range m.Items {
		if v.VehiculoID == vehiculoID && v.Estado == entity.ViajeEnCurso {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *ViajeMem) Update(v *entity.Viaje) error {
	if _, ok := m.Items[v.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *v
	m.Items[v.ID] = &cp
	return nil
}

func (m *ViajeMem) List(limit, offset int) ([]*entity.Viaje, error) {
	all := make([]*entity.Viaje, 0, len(m.Items))
	for _, v := range m.Items {
		cp := *v
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].FechaSalida.After(all[j].FechaSalida) })
	return all, nil
}

// ── TxRunner con rollback por snapshot ────────────────────────────────────────

// TxMem implementa los puertos TxRunner de los casos de uso sobre los fakes
// en memoria. Antes de cada fn toma una foto de los stores y la restaura si
// fn falla, imitando el rollback de una transacción real. Funciona porque
// los fakes reemplazan entradas con copias y nunca mutan en el lugar.
type TxMem struct {
	Movimientos *MovimientoMem
	Stock       *StockMem
	Productos   *ProductoMem
	Clientes    *ClienteMem
	Pagos       *PagoMem
	Ventas      *VentaMem
	Galpones    *GalponMem
	Lotes       *LoteMem
	Silos       *SiloMem
}

var (
	_ inventario.TxRunner = (*TxMem)(nil)
	_ ventas.TxRunner     = (*TxMem)(nil)
	_ clientes.TxRunner   = (*TxMem)(nil)
	_ granja.TxRunner     = (*TxMem)(nil)
)

func copiarMapa[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

type foto struct {
	movimientos []*entity.MovimientoStock
	stock       map[stockKey]*entity.Stock
	productos   map[string]*entity.Producto
	clientes    map[string]*entity.Cliente
	pagos       []*entity.Pago
	ventas      map[string]*entity.Venta
	detalles    []*entity.DetalleVenta
	galpones    map[string]*entity.Galpon
	lotes       map[string]*entity.LoteAve
	mortalidad  []*entity.EventoMortalidad
	silos       map[string]*entity.Silo
	contenidos  map[contenidoKey]*entity.ContenidoSilo
}

func (t *TxMem) tomarFoto() foto {
	f := foto{}
	if t.Movimientos != nil {
		f.movimientos = append([]*entity.MovimientoStock(nil), t.Movimientos.Items...)
	}
	if t.Stock != nil {
		f.stock = copiarMapa(t.Stock.Items)
	}
	if t.Productos != nil {
		f.productos = copiarMapa(t.Productos.Items)
	}
	if t.Clientes != nil {
		f.clientes = copiarMapa(t.Clientes.Items)
	}
	if t.Pagos != nil {
		f.pagos = append([]*entity.Pago(nil), t.Pagos.Items...)
	}
	if t.Ventas != nil {
		f.ventas = copiarMapa(t.Ventas.Ventas)
		f.detalles = append([]*entity.DetalleVenta(nil), t.Ventas.Detalles...)
	}
	if t.Galpones != nil {
		f.galpones = copiarMapa(t.Galpones.Items)
	}
	if t.Lotes != nil {
		f.lotes = copiarMapa(t.Lotes.Items)
		f.mortalidad = append([]*entity.EventoMortalidad(nil), t.Lotes.Mortalidad...)
	}
	if t.Silos != nil {
		f.silos = copiarMapa(t.Silos.Silos)
		f.contenidos = copiarMapa(t.Silos.Contenidos)
	}
	return f
}

func (t *TxMem) restaurar(f foto) {
	if t.Movimientos != nil {
		t.Movimientos.Items = f.movimientos
	}
	if t.Stock != nil {
		t.Stock.Items = f.stock
	}
	if t.Productos != nil {
		t.Productos.Items = f.productos
	}
	if t.Clientes != nil {
		t.Clientes.Items = f.clientes
	}
	if t.Pagos != nil {
		t.Pagos.Items = f.pagos
	}
	if t.Ventas != nil {
		t.Ventas.Ventas = f.ventas
		t.Ventas.Detalles = f.detalles
	}
	if t.Galpones != nil {
		t.Galpones.Items = f.galpones
	}
	if t.Lotes != nil {
		t.Lotes.Items = f.lotes
		t.Lotes.Mortalidad = f.mortalidad
	}
	if t.Silos != nil {
		t.Silos.Silos = f.silos
		t.Silos.Contenidos = f.contenidos
	}
}

func (t *TxMem) enTx(fn func() error) error {
	f := t.tomarFoto()
	if err := fn(); err != nil {
		t.restaurar(f)
		return err
	}
	return nil
}

func (t *TxMem) Run(ctx context.Context, fn func(
	movRepo repository.MovimientoRepository,
	stockRepo repository.StockRepository,
	productoRepo repository.ProductoRepository,
) error) error {
	return t.enTx(func() error { return fn(t.Movimientos, t.Stock, t.Productos) })
}

func (t *TxMem) RunVenta(ctx context.Context, fn func(
	movRepo repository.MovimientoRepository,
	stockRepo repository.StockRepository,
	clienteRepo repository.ClienteRepository,
	ventaRepo repository.VentaRepository,
	pagoRepo repository.PagoRepository,
) error) error {
	return t.enTx(func() error { return fn(t.Movimientos, t.Stock, t.Clientes, t.Ventas, t.Pagos) })
}

func (t *TxMem) RunCuenta(ctx context.Context, fn func(
	clienteRepo repository.ClienteRepository,
	pagoRepo repository.PagoRepository,
) error) error {
	return t.enTx(func() error { return fn(t.Clientes, t.Pagos) })
}

func (t *TxMem) RunGranja(ctx context.Context, fn func(
	galponRepo repository.GalponRepository,
	loteRepo repository.LoteRepository,
	siloRepo repository.SiloRepository,
	movRepo repository.MovimientoRepository,
) error) error {
	return t.enTx(func() error { return fn(t.Galpones, t.Lotes, t.Silos, t.Movimientos) })
}
