package cash

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/libreria-pos/internal/domain"
	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
	"github.com/tu-usuario/libreria-pos/internal/domain/repository"
	"github.com/tu-usuario/libreria-pos/pkg/logger"
)

// CajaUseCase maneja sesiones de caja y el libro de movimientos de efectivo.
// El libro es append-only: cerrar una sesión no borra ni edita movimientos.
type CajaUseCase struct {
	sesiones    repository.SesionCajaRepository
	movimientos repository.MovimientoCajaRepository

	// requiereCajaAbierta: si es false, Record acepta movimientos sin sesión
	// (negocios que no manejan turnos de caja).
	requiereCajaAbierta bool

	log *logger.Logger
}

// NewCajaUseCase construye el caso de uso.
func NewCajaUseCase(
	sesiones repository.SesionCajaRepository,
	movimientos repository.MovimientoCajaRepository,
	requiereCajaAbierta bool,
	log *logger.Logger,
) *CajaUseCase {
	return &CajaUseCase{
		sesiones:            sesiones,
		movimientos:         movimientos,
		requiereCajaAbierta: requiereCajaAbierta,
		log:                 log,
	}
}

// Open abre una sesión de caja para el usuario con un monto inicial contado.
// Un usuario solo puede tener una sesión abierta a la vez.
func (uc *CajaUseCase) Open(ctx context.Context, usuarioID string, montoInicial decimal.Decimal) (*entity.SesionCaja, error) {
	if usuarioID == "" || montoInicial.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	abierta, err := uc.sesiones.GetAbiertaByUsuario(usuarioID)
	if err != nil {
		return nil, err
	}
	if abierta != nil {
		return nil, domain.ErrCajaYaAbierta
	}

	s := &entity.SesionCaja{
		ID:           uuid.New().String(),
		UsuarioID:    usuarioID,
		MontoInicial: montoInicial,
		Estado:       entity.SesionAbierta,
		FechaInicio:  time.Now(),
	}
	if err := uc.sesiones.Create(s); err != nil {
		return nil, err
	}
	uc.log.Info().Str("sesion_id", s.ID).Str("usuario_id", usuarioID).Msg("caja abierta")
	return s, nil
}

// Close cierra la sesión abierta del usuario: calcula el saldo teórico
// (inicial + ingresos - egresos), lo compara con el conteo físico y guarda
// la diferencia (negativa = faltante).
func (uc *CajaUseCase) Close(ctx context.Context, usuarioID string, montoReal decimal.Decimal) (*entity.SesionCaja, error) {
	if montoReal.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	s, err := uc.sesiones.GetAbiertaByUsuario(usuarioID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrCajaCerrada
	}

	balance, err := uc.balanceDe(s)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s.MontoFinalCalculado = balance.Saldo
	s.MontoFinalReal = montoReal
	s.Diferencia = montoReal.Sub(balance.Saldo)
	s.Estado = entity.SesionCerrada
	s.FechaFin = &now

	if err := uc.sesiones.Update(s); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("sesion_id", s.ID).
		Str("calculado", balance.Saldo.StringFixed(2)).
		Str("real", montoReal.StringFixed(2)).
		Str("diferencia", s.Diferencia.StringFixed(2)).
		Msg("caja cerrada")
	return s, nil
}

// Record registra un INGRESO o EGRESO de efectivo. ReferenciaID apunta al
// documento origen (venta, nota de crédito) cuando aplica.
// Sin sesión abierta: retorna ErrCajaCerrada, salvo que la política permita
// movimientos sin sesión (quedan con SesionID vacío).
func (uc *CajaUseCase) Record(ctx context.Context, usuarioID, tipo, concepto string, monto decimal.Decimal, referenciaID string) (*entity.MovimientoCaja, error) {
	if tipo != entity.MovimientoIngreso && tipo != entity.MovimientoEgreso {
		return nil, domain.ErrInvalidInput
	}
	if !monto.IsPositive() || concepto == "" || usuarioID == "" {
		return nil, domain.ErrInvalidInput
	}

	s, err := uc.sesiones.GetAbiertaByUsuario(usuarioID)
	if err != nil {
		return nil, err
	}
	sesionID := ""
	if s != nil {
		sesionID = s.ID
	} else if uc.requiereCajaAbierta {
		return nil, domain.ErrCajaCerrada
	}

	m := &entity.MovimientoCaja{
		ID:           uuid.New().String(),
		SesionID:     sesionID,
		Tipo:         tipo,
		Concepto:     concepto,
		Monto:        monto,
		ReferenciaID: referenciaID,
		UsuarioID:    usuarioID,
		Fecha:        time.Now(),
	}
	if err := uc.movimientos.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}

// SesionAbierta devuelve la sesión abierta del usuario, o nil si no tiene.
func (uc *CajaUseCase) SesionAbierta(ctx context.Context, usuarioID string) (*entity.SesionCaja, error) {
	return uc.sesiones.GetAbiertaByUsuario(usuarioID)
}

// Balance devuelve el resumen de la sesión abierta del usuario.
func (uc *CajaUseCase) Balance(ctx context.Context, usuarioID string) (*entity.BalanceCaja, error) {
	s, err := uc.sesiones.GetAbiertaByUsuario(usuarioID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrCajaCerrada
	}
	return uc.balanceDe(s)
}

// Movimientos lista los movimientos de la sesión abierta del usuario.
func (uc *CajaUseCase) Movimientos(ctx context.Context, usuarioID string) ([]*entity.MovimientoCaja, error) {
	s, err := uc.sesiones.GetAbiertaByUsuario(usuarioID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrCajaCerrada
	}
	return uc.movimientos.ListBySesion(s.ID)
}

// MovimientosDelDia lista los movimientos de todas las sesiones desde la
// medianoche local. Sirve para el arqueo del día aun con la caja ya cerrada.
func (uc *CajaUseCase) MovimientosDelDia(ctx context.Context) ([]*entity.MovimientoCaja, error) {
	ahora := time.Now()
	inicio := time.Date(ahora.Year(), ahora.Month(), ahora.Day(), 0, 0, 0, 0, ahora.Location())
	return uc.movimientos.ListDesde(inicio)
}

func (uc *CajaUseCase) balanceDe(s *entity.SesionCaja) (*entity.BalanceCaja, error) {
	ingresos, err := uc.movimientos.SumBySesionYTipo(s.ID, entity.MovimientoIngreso)
	if err != nil {
		return nil, err
	}
	egresos, err := uc.movimientos.SumBySesionYTipo(s.ID, entity.MovimientoEgreso)
	if err != nil {
		return nil, err
	}
	return &entity.BalanceCaja{
		Inicial:  s.MontoInicial,
		Ingresos: ingresos,
		Egresos:  egresos,
		Saldo:    s.MontoInicial.Add(ingresos).Sub(egresos),
	}, nil
}
