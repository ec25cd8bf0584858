package repository

import "github.com/tu-usuario/libreria-pos/internal/domain/entity"

// CorrelativoRepository asignación de numeración por (código, serie).
type CorrelativoRepository interface {
	// NextNumber incrementa y devuelve el siguiente número de la serie en una sola
	// operación atómica por clave: dos llamadas concurrentes sobre la misma serie
	// nunca reciben el mismo número y no se saltan números. Si el contador no
	// existe, se crea partiendo de 0 (el primer número asignado es 1).
	NextNumber(codigo, serie string) (int, error)
	Get(codigo, serie string) (*entity.Correlativo, error)
	// SetUltimoNumero fija el contador (sincronización con el PSE o reset administrativo).
	SetUltimoNumero(codigo, serie string, ultimo int) error
}
