package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/libreria-pos/internal/domain"
	"github.com/tu-usuario/libreria-pos/internal/domain/entity"
	"github.com/tu-usuario/libreria-pos/internal/domain/repository"
)

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementación de ClienteRepository sobre PostgreSQL.
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

const clienteColumns = `id, tipo_documento, numero_documento, nombre_razon_social, direccion, telefono, fecha_creacion`

// Create persiste un cliente nuevo. numero_documento tiene constraint único.
func (r *ClienteRepo) Create(c *entity.Cliente) error {
	query := `
		INSERT INTO clientes (` + clienteColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.TipoDocumento, c.NumeroDocumento, c.NombreRazonSocial,
		nullIfEmpty(c.Direccion), nullIfEmpty(c.Telefono), c.FechaCreacion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClienteRepo) GetByID(id string) (*entity.Cliente, error) {
	return r.get(`SELECT `+clienteColumns+` FROM clientes WHERE id = $1`, id)
}

// GetByNumeroDocumento obtiene un cliente por número de documento.
func (r *ClienteRepo) GetByNumeroDocumento(numero string) (*entity.Cliente, error) {
	return r.get(`SELECT `+clienteColumns+` FROM clientes WHERE numero_documento = $1`, numero)
}

func (r *ClienteRepo) get(query string, arg any) (*entity.Cliente, error) {
	var c entity.Cliente
	var direccion, telefono *string
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.TipoDocumento, &c.NumeroDocumento, &c.NombreRazonSocial,
		&direccion, &telefono, &c.FechaCreacion,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	c.Direccion = deref(direccion)
	c.Telefono = deref(telefono)
	return &c, nil
}

// Update actualiza los datos de contacto del cliente.
func (r *ClienteRepo) Update(c *entity.Cliente) error {
	query := `
		UPDATE clientes SET nombre_razon_social = $2, direccion = $3, telefono = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.NombreRazonSocial, nullIfEmpty(c.Direccion), nullIfEmpty(c.Telefono),
	)
	if err != nil {
		return fmt.Errorf("update cliente: %w", err)
	}
	return nil
}
