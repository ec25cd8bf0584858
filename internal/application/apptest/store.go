// Package apptest provee dobles en memoria de los repositorios y del TxRunner
// para probar los casos de uso sin PostgreSQL. Run simula el rollback
// restaurando un snapshot del estado cuando fn retorna error.
package apptest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/libreria-pos/internal/application/ports"
	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
)

// Store es el estado compartido de todos los repositorios fake.
// Los repos copian al leer y al escribir, igual que una BD real:
// mutar un puntero devuelto por GetByID no cambia lo persistido.
type Store struct {
	mu sync.Mutex

	Productos       map[string]*entity.Producto
	Kardex          []*entity.Kardex
	Ventas          map[string]*entity.Venta
	Notas           map[string]*entity.NotaCredito
	Correlativos    map[string]*entity.Correlativo // clave "codigo|serie"
	Clientes        map[string]*entity.Cliente
	Usuarios        map[string]*entity.Usuario
	Sesiones        map[string]*entity.SesionCaja
	MovimientosCaja []*entity.MovimientoCaja
	Amortizaciones  []*entity.Amortizacion
	Compras         map[string]*entity.Compra

	// FailMovimientoCaja fuerza un error en MovimientoCajaRepository.Create
	// para probar la degradación del efecto de caja.
	FailMovimientoCaja error
}

// NewStore construye un estado vacío.
func NewStore() *Store {
	return &Store{
		Productos:    map[string]*entity.Producto{},
		Ventas:       map[string]*entity.Venta{},
		Notas:        map[string]*entity.NotaCredito{},
		Correlativos: map[string]*entity.Correlativo{},
		Clientes:     map[string]*entity.Cliente{},
		Usuarios:     map[string]*entity.Usuario{},
		Sesiones:     map[string]*entity.SesionCaja{},
		Compras:      map[string]*entity.Compra{},
	}
}

// SeedProducto registra un producto con stock inicial y devuelve su ID.
func (s *Store) SeedProducto(nombre string, precio decimal.Decimal, stock int) string {
	p := &entity.Producto{
		ID:            uuid.NewString(),
		Nombre:        nombre,
		UnidadMedida:  "NIU",
		PrecioVenta:   precio,
		Stock:         stock,
		AfectacionIGV: entity.AfectacionGravado,
		FechaCreacion: time.Now(),
	}
	s.mu.Lock()
	s.Productos[p.ID] = p
	s.mu.Unlock()
	return p.ID
}

// SeedServicio registra un producto de tipo servicio (no descuenta stock).
func (s *Store) SeedServicio(nombre string, precio decimal.Decimal) string {
	p := &entity.Producto{
		ID:            uuid.NewString(),
		Nombre:        nombre,
		UnidadMedida:  "ZZ",
		PrecioVenta:   precio,
		AfectacionIGV: entity.AfectacionGravado,
		EsServicio:    true,
		FechaCreacion: time.Now(),
	}
	s.mu.Lock()
	s.Productos[p.ID] = p
	s.mu.Unlock()
	return p.ID
}

// StockDe devuelve el stock persistido de un producto.
func (s *Store) StockDe(productoID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.Productos[productoID]; ok {
		return p.Stock
	}
	return 0
}

// VentaGuardada devuelve la copia persistida de una venta.
func (s *Store) VentaGuardada(id string) *entity.Venta {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.Ventas[id]; ok {
		return copiaVenta(v)
	}
	return nil
}

// NotaGuardada devuelve la copia persistida de una nota de crédito.
func (s *Store) NotaGuardada(id string) *entity.NotaCredito {
	s.mu.Lock()
	defer s.mu.Unlock()
	if nc, ok := s.Notas[id]; ok {
		return copiaNota(nc)
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Copias profundas (simulan el round-trip por la BD)
// ──────────────────────────────────────────────────────────────────────────────

func copiaProducto(p *entity.Producto) *entity.Producto {
	c := *p
	return &c
}

func copiaVenta(v *entity.Venta) *entity.Venta {
	c := *v
	if v.Sunat.FechaEnvio != nil {
		f := *v.Sunat.FechaEnvio
		c.Sunat.FechaEnvio = &f
	}
	c.Items = make([]*entity.DetalleVenta, len(v.Items))
	for i, d := range v.Items {
		dc := *d
		c.Items[i] = &dc
	}
	return &c
}

func copiaNota(nc *entity.NotaCredito) *entity.NotaCredito {
	c := *nc
	if nc.Sunat.FechaEnvio != nil {
		f := *nc.Sunat.FechaEnvio
		c.Sunat.FechaEnvio = &f
	}
	c.Detalles = make([]*entity.DetalleNotaCredito, len(nc.Detalles))
	for i, d := range nc.Detalles {
		dc := *d
		c.Detalles[i] = &dc
	}
	return &c
}

func copiaSesion(s *entity.SesionCaja) *entity.SesionCaja {
	c := *s
	if s.FechaFin != nil {
		f := *s.FechaFin
		c.FechaFin = &f
	}
	return &c
}

func copiaCompra(co *entity.Compra) *entity.Compra {
	c := *co
	c.Detalles = make([]*entity.DetalleCompra, len(co.Detalles))
	for i, d := range co.Detalles {
		dc := *d
		c.Detalles[i] = &dc
	}
	return &c
}

func copiaCliente(cl *entity.Cliente) *entity.Cliente {
	c := *cl
	return &c
}

func copiaUsuario(u *entity.Usuario) *entity.Usuario {
	c := *u
	return &c
}

func copiaKardex(k *entity.Kardex) *entity.Kardex {
	c := *k
	return &c
}

func copiaMovimiento(m *entity.MovimientoCaja) *entity.MovimientoCaja {
	c := *m
	return &c
}

func copiaAmortizacion(a *entity.Amortizacion) *entity.Amortizacion {
	c := *a
	return &c
}

// snapshot captura el estado para restaurarlo en un rollback simulado.
// Las entradas de los mapas nunca se mutan en sitio (los repos escriben
// copias nuevas), así que basta con copiar los mapas y slices.
type snapshot struct {
	productos      map[string]*entity.Producto
	kardex         []*entity.Kardex
	ventas         map[string]*entity.Venta
	notas          map[string]*entity.NotaCredito
	correlativos   map[string]*entity.Correlativo
	clientes       map[string]*entity.Cliente
	amortizaciones []*entity.Amortizacion
	compras        map[string]*entity.Compra
}

func (s *Store) tomarSnapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot{
		productos:      copiaMapa(s.Productos),
		kardex:         append([]*entity.Kardex(nil), s.Kardex...),
		ventas:         copiaMapa(s.Ventas),
		notas:          copiaMapa(s.Notas),
		correlativos:   copiaMapa(s.Correlativos),
		clientes:       copiaMapa(s.Clientes),
		amortizaciones: append([]*entity.Amortizacion(nil), s.Amortizaciones...),
		compras:        copiaMapa(s.Compras),
	}
}

func (s *Store) restaurar(sn snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Productos = sn.productos
	s.Kardex = sn.kardex
	s.Ventas = sn.ventas
	s.Notas = sn.notas
	s.Correlativos = sn.correlativos
	s.Clientes = sn.clientes
	s.Amortizaciones = sn.amortizaciones
	s.Compras = sn.compras
}

func copiaMapa[V any](m map[string]V) map[string]V {
	c := make(map[string]V, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// ──────────────────────────────────────────────────────────────────────────────
// TxRunner fake
// ──────────────────────────────────────────────────────────────────────────────

// TxRunner ejecuta fn sobre el Store y restaura el snapshot si fn falla,
// imitando el commit/rollback del TxRunner real.
type TxRunner struct {
	Store *Store
}

// NewTxRunner construye el runner fake sobre un Store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{Store: store}
}

var _ ports.TxRunner = (*TxRunner)(nil)

// Run implementa ports.TxRunner.
func (t *TxRunner) Run(ctx context.Context, fn func(r ports.TxRepos) error) error {
	sn := t.Store.tomarSnapshot()
	err := fn(Repos(t.Store))
	if err != nil {
		t.Store.restaurar(sn)
	}
	return err
}

// Repos construye el juego completo de repositorios fake de un Store.
func Repos(store *Store) ports.TxRepos {
	return ports.TxRepos{
		Ventas:         &VentaRepo{Store: store},
		NotasCredito:   &NotaCreditoRepo{Store: store},
		Productos:      &ProductoRepo{Store: store},
		Kardex:         &KardexRepo{Store: store},
		Correlativos:   &CorrelativoRepo{Store: store},
		Clientes:       &ClienteRepo{Store: store},
		Amortizaciones: &AmortizacionRepo{Store: store},
		Compras:        &CompraRepo{Store: store},
	}
}
