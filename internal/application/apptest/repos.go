package apptest

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/libreria-pos/internal/domain"
	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
	"github.com/tu-usuario/libreria-pos/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

// ProductoRepo fake en memoria.
type ProductoRepo struct{ Store *Store }

var _ repository.ProductoRepository = (*ProductoRepo)(nil)

func (r *ProductoRepo) GetByID(id string) (*entity.Producto, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	if p, ok := r.Store.Productos[id]; ok {
		return copiaProducto(p), nil
	}
	return nil, nil
}

func (r *ProductoRepo) GetForUpdate(id string) (*entity.Producto, error) {
	return r.GetByID(id)
}

func (r *ProductoRepo) UpdateStock(id string, stock int) error {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	p, ok := r.Store.Productos[id]
	if !ok {
		return domain.ErrProductoNoEncontrado
	}
	c := copiaProducto(p)
	c.Stock = stock
	c.FechaUpdate = time.Now()
	r.Store.Productos[id] = c
	return nil
}

func (r *ProductoRepo) Create(p *entity.Producto) error {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	r.Store.Productos[p.ID] = copiaProducto(p)
	return nil
}

func (r *ProductoRepo) List(limit, offset int) ([]*entity.Producto, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	out := make([]*entity.Producto, 0, len(r.Store.Productos))
	for _, p := range r.Store.Productos {
		out = append(out, copiaProducto(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return paginar(out, limit, offset), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Kardex
// ──────────────────────────────────────────────────────────────────────────────

// KardexRepo fake en memoria (append-only).
type KardexRepo struct{ Store *Store }

var _ repository.KardexRepository = (*KardexRepo)(nil)

func (r *KardexRepo) Create(k *entity.Kardex) error {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	r.Store.Kardex = append(r.Store.Kardex, copiaKardex(k))
	return nil
}

func (r *KardexRepo) ListByProducto(productoID string, limit, offset int) ([]*entity.Kardex, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	var out []*entity.Kardex
	// Orden de inserción inverso (el más reciente primero), como el repo real.
	for i := len(r.Store.Kardex) - 1; i >= 0; i-- {
		if r.Store.Kardex[i].ProductoID == productoID {
			out = append(out, copiaKardex(r.Store.Kardex[i]))
		}
	}
	return paginar(out, limit, offset), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Correlativos
// ──────────────────────────────────────────────────────────────────────────────

// CorrelativoRepo fake en memoria. NextNumber es atómico bajo el mutex del
// Store, igual que el upsert con bloqueo de fila del repo real.
type CorrelativoRepo struct{ Store *Store }

var _ repository.CorrelativoRepository = (*CorrelativoRepo)(nil)

func (r *CorrelativoRepo) NextNumber(codigo, serie string) (int, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	clave := codigo + "|" + serie
	c, ok := r.Store.Correlativos[clave]
	if !ok {
		c = &entity.Correlativo{Codigo: codigo, Serie: serie}
	}
	nuevo := &entity.Correlativo{Codigo: codigo, Serie: serie, UltimoNumero: c.UltimoNumero + 1}
	r.Store.Correlativos[clave] = nuevo
	return nuevo.UltimoNumero, nil
}

func (r *CorrelativoRepo) Get(codigo, serie string) (*entity.Correlativo, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	if c, ok := r.Store.Correlativos[codigo+"|"+serie]; ok {
		copia := *c
		return &copia, nil
	}
	return nil, nil
}

func (r *CorrelativoRepo) SetUltimoNumero(codigo, serie string, ultimo int) error {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	r.Store.Correlativos[codigo+"|"+serie] = &entity.Correlativo{Codigo: codigo, Serie: serie, UltimoNumero: ultimo}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas
// ──────────────────────────────────────────────────────────────────────────────

// VentaRepo fake en memoria.
type VentaRepo struct{ Store *Store }

var _ repository.VentaRepository = (*VentaRepo)(nil)

func (r *VentaRepo) Create(v *entity.Venta) error {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	for _, otra := range r.Store.Ventas {
		if otra.TipoComprobante == v.TipoComprobante && otra.Serie == v.Serie && otra.Numero == v.Numero {
			return domain.ErrDuplicate
		}
	}
	r.Store.Ventas[v.ID] = copiaVenta(v)
	return nil
}

func (r *VentaRepo) GetByID(id string) (*entity.Venta, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	if v, ok := r.Store.Ventas[id]; ok {
		return copiaVenta(v), nil
	}
	return nil, nil
}

func (r *VentaRepo) Update(v *entity.Venta) error {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	if _, ok := r.Store.Ventas[v.ID]; !ok {
		return domain.ErrNotFound
	}
	r.Store.Ventas[v.ID] = copiaVenta(v)
	return nil
}

func (r *VentaRepo) ListByPeriodo(desde, hasta time.Time) ([]*entity.Venta, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	var out []*entity.Venta
	for _, v := range r.Store.Ventas {
		if !v.FechaEmision.Before(desde) && !v.FechaEmision.After(hasta) {
			out = append(out, copiaVenta(v))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaEmision.Before(out[j].FechaEmision) })
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Notas de crédito
// ──────────────────────────────────────────────────────────────────────────────

// NotaCreditoRepo fake en memoria.
type NotaCreditoRepo struct{ Store *Store }

var _ repository.NotaCreditoRepository = (*NotaCreditoRepo)(nil)

func (r *NotaCreditoRepo) Create(nc *entity.NotaCredito) error {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	r.Store.Notas[nc.ID] = copiaNota(nc)
	return nil
}

func (r *NotaCreditoRepo) GetByID(id string) (*entity.NotaCredito, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	if nc, ok := r.Store.Notas[id]; ok {
		return copiaNota(nc), nil
	}
	return nil, nil
}

func (r *NotaCreditoRepo) ListByVenta(ventaID string) ([]*entity.NotaCredito, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	var out []*entity.NotaCredito
	for _, nc := range r.Store.Notas {
		if nc.VentaOriginalID == ventaID {
			out = append(out, copiaNota(nc))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Numero < out[j].Numero })
	return out, nil
}

func (r *NotaCreditoRepo) Update(nc *entity.NotaCredito) error {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	if _, ok := r.Store.Notas[nc.ID]; !ok {
		return domain.ErrNotFound
	}
	r.Store.Notas[nc.ID] = copiaNota(nc)
	return nil
}

func (r *NotaCreditoRepo) ListByPeriodo(desde, hasta time.Time) ([]*entity.NotaCredito, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	var out []*entity.NotaCredito
	for _, nc := range r.Store.Notas {
		if !nc.FechaEmision.Before(desde) && !nc.FechaEmision.After(hasta) {
			out = append(out, copiaNota(nc))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Numero < out[j].Numero })
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Clientes
// ──────────────────────────────────────────────────────────────────────────────

// ClienteRepo fake en memoria.
type ClienteRepo struct{ Store *Store }

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

func (r *ClienteRepo) GetByID(id string) (*entity.Cliente, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	if c, ok := r.Store.Clientes[id]; ok {
		return copiaCliente(c), nil
	}
	return nil, nil
}

func (r *ClienteRepo) GetByNumeroDocumento(numero string) (*entity.Cliente, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	for _, c := range r.Store.Clientes {
		if c.NumeroDocumento == numero {
			return copiaCliente(c), nil
		}
	}
	return nil, nil
}

func (r *ClienteRepo) Create(c *entity.Cliente) error {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	for _, otro := range r.Store.Clientes {
		if otro.NumeroDocumento == c.NumeroDocumento {
			return domain.ErrDuplicate
		}
	}
	r.Store.Clientes[c.ID] = copiaCliente(c)
	return nil
}

func (r *ClienteRepo) Update(c *entity.Cliente) error {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	if _, ok := r.Store.Clientes[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.Store.Clientes[c.ID] = copiaCliente(c)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios
// ──────────────────────────────────────────────────────────────────────────────

// UsuarioRepo fake en memoria.
type UsuarioRepo struct{ Store *Store }

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

func (r *UsuarioRepo) FindByUsername(username string) (*entity.Usuario, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	for _, u := range r.Store.Usuarios {
		if u.Username == username {
			return copiaUsuario(u), nil
		}
	}
	return nil, nil
}

func (r *UsuarioRepo) GetByID(id string) (*entity.Usuario, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	if u, ok := r.Store.Usuarios[id]; ok {
		return copiaUsuario(u), nil
	}
	return nil, nil
}

func (r *UsuarioRepo) Create(u *entity.Usuario) error {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	for _, otro := range r.Store.Usuarios {
		if otro.Username == u.Username {
			return domain.ErrDuplicate
		}
	}
	r.Store.Usuarios[u.ID] = copiaUsuario(u)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Caja
// ──────────────────────────────────────────────────────────────────────────────

// SesionCajaRepo fake en memoria.
type SesionCajaRepo struct{ Store *Store }

var _ repository.SesionCajaRepository = (*SesionCajaRepo)(nil)

func (r *SesionCajaRepo) GetAbiertaByUsuario(usuarioID string) (*entity.SesionCaja, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	for _, s := range r.Store.Sesiones {
		if s.UsuarioID == usuarioID && s.Estado == entity.SesionAbierta {
			return copiaSesion(s), nil
		}
	}
	return nil, nil
}

func (r *SesionCajaRepo) Create(s *entity.SesionCaja) error {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	r.Store.Sesiones[s.ID] = copiaSesion(s)
	return nil
}

func (r *SesionCajaRepo) Update(s *entity.SesionCaja) error {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	if _, ok := r.Store.Sesiones[s.ID]; !ok {
		return domain.ErrNotFound
	}
	r.Store.Sesiones[s.ID] = copiaSesion(s)
	return nil
}

// MovimientoCajaRepo fake en memoria.
type MovimientoCajaRepo struct{ Store *Store }

var _ repository.MovimientoCajaRepository = (*MovimientoCajaRepo)(nil)

func (r *MovimientoCajaRepo) Create(m *entity.MovimientoCaja) error {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	if r.Store.FailMovimientoCaja != nil {
		return r.Store.FailMovimientoCaja
	}
	r.Store.MovimientosCaja = append(r.Store.MovimientosCaja, copiaMovimiento(m))
	return nil
}

func (r *MovimientoCajaRepo) ListBySesion(sesionID string) ([]*entity.MovimientoCaja, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	var out []*entity.MovimientoCaja
	for _, m := range r.Store.MovimientosCaja {
		if m.SesionID == sesionID {
			out = append(out, copiaMovimiento(m))
		}
	}
	return out, nil
}

func (r *MovimientoCajaRepo) SumBySesionYTipo(sesionID, tipo string) (decimal.Decimal, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	total := decimal.Zero
	for _, m := range r.Store.MovimientosCaja {
		if m.SesionID == sesionID && m.Tipo == tipo {
			total = total.Add(m.Monto)
		}
	}
	return total, nil
}

func (r *MovimientoCajaRepo) ListDesde(desde time.Time) ([]*entity.MovimientoCaja, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	var out []*entity.MovimientoCaja
	for _, m := range r.Store.MovimientosCaja {
		if !m.Fecha.Before(desde) {
			out = append(out, copiaMovimiento(m))
		}
	}
	return out, nil
}

func (r *MovimientoCajaRepo) SumPorTipoEntre(desde, hasta time.Time, tipo string) (decimal.Decimal, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	total := decimal.Zero
	for _, m := range r.Store.MovimientosCaja {
		if m.Tipo == tipo && !m.Fecha.Before(desde) && !m.Fecha.After(hasta) {
			total = total.Add(m.Monto)
		}
	}
	return total, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Amortizaciones
// ──────────────────────────────────────────────────────────────────────────────

// AmortizacionRepo fake en memoria.
type AmortizacionRepo struct{ Store *Store }

var _ repository.AmortizacionRepository = (*AmortizacionRepo)(nil)

func (r *AmortizacionRepo) Create(a *entity.Amortizacion) error {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	r.Store.Amortizaciones = append(r.Store.Amortizaciones, copiaAmortizacion(a))
	return nil
}

func (r *AmortizacionRepo) ListByVenta(ventaID string) ([]*entity.Amortizacion, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	var out []*entity.Amortizacion
	for _, a := range r.Store.Amortizaciones {
		if a.VentaID == ventaID {
			out = append(out, copiaAmortizacion(a))
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Compras
// ──────────────────────────────────────────────────────────────────────────────

// CompraRepo fake en memoria.
type CompraRepo struct{ Store *Store }

var _ repository.CompraRepository = (*CompraRepo)(nil)

func (r *CompraRepo) Create(c *entity.Compra) error {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	r.Store.Compras[c.ID] = copiaCompra(c)
	return nil
}

func (r *CompraRepo) GetByID(id string) (*entity.Compra, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	if c, ok := r.Store.Compras[id]; ok {
		return copiaCompra(c), nil
	}
	return nil, nil
}

func (r *CompraRepo) Update(c *entity.Compra) error {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	if _, ok := r.Store.Compras[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.Store.Compras[c.ID] = copiaCompra(c)
	return nil
}

func (r *CompraRepo) List(limit, offset int) ([]*entity.Compra, error) {
	r.Store.mu.Lock()
	defer r.Store.mu.Unlock()
	out := make([]*entity.Compra, 0, len(r.Store.Compras))
	for _, c := range r.Store.Compras {
		out = append(out, copiaCompra(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FechaCreacion.Before(out[j].FechaCreacion) })
	return paginar(out, limit, offset), nil
}

func paginar[T any](in []T, limit, offset int) []T {
	if offset >= len(in) {
		return nil
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
