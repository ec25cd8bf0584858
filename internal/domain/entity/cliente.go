package entity

import "time"

// Tipos de documento de identidad SUNAT.
const (
	DocDNI = "1"
	DocRUC = "6"

	LargoDNI = 8
	LargoRUC = 11
)

// Cliente (persona o empresa). El tipo de documento se infiere del largo del número.
type Cliente struct {
	ID                string
	TipoDocumento     string // "1" DNI, "6" RUC
	NumeroDocumento   string
	NombreRazonSocial string
	Direccion         string
	Telefono          string

	FechaCreacion time.Time
}

// TipoDocumentoPorLargo infiere DNI o RUC según la longitud del número.
func TipoDocumentoPorLargo(numero string) string {
	if len(numero) == LargoRUC {
		return DocRUC
	}
	return DocDNI
}
