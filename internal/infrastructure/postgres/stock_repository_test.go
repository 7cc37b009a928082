package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// filaStock responde a un Scan con una fila de stock o con el error guionado.
type filaStock struct {
	err           error
	ubicacionTipo string
	ubicacionID   string
	productoID    string
	cantidad      decimal.Decimal
}

func (f filaStock) Scan(dest ...any) error {
	if f.err != nil {
		return f.err
	}
	*dest[0].(*string) = f.ubicacionTipo
	*dest[1].(*string) = f.ubicacionID
	*dest[2].(*string) = f.productoID
	*dest[3].(*decimal.Decimal) = f.cantidad
	*dest[4].(*time.Time) = time.Now()
	return nil
}

// querierGuionado sirve las filas en orden y registra el SQL de cada Exec.
type querierGuionado struct {
	filas []filaStock
	execs []string
}

func (q *querierGuionado) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	q.execs = append(q.execs, sql)
	return pgconn.CommandTag{}, nil
}

func (q *querierGuionado) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("Query no se usa en estos tests")
}

func (q *querierGuionado) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	f := q.filas[0]
	q.filas = q.filas[1:]
	if f.err == nil {
		f.ubicacionTipo = args[0].(string)
		f.ubicacionID = args[1].(string)
		f.productoID = args[2].(string)
	}
	return f
}

func TestStockGetForUpdate_FilaNuevaSeCreaYRelee(t *testing.T) {
	// La primera lectura no encuentra fila; la relectura devuelve lo que
	// dejó otra transacción que ganó el insert y ya hizo commit.
	q := &querierGuionado{filas: []filaStock{
		{err: pgx.ErrNoRows},
		{cantidad: decimal.NewFromInt(100)},
	}}
	repo := NewStockRepository(q)

	s, err := repo.GetForUpdate("deposito", "", "prod-huevo")
	require.NoError(t, err)

	// La cantidad viene de la relectura bajo lock, nunca de una fila
	// sintética en cero que taparía el stock ya comprometido.
	assert.True(t, s.Cantidad.Equal(decimal.NewFromInt(100)), "cantidad: %s", s.Cantidad)
	assert.Equal(t, "prod-huevo", s.ProductoID)

	require.Len(t, q.execs, 1)
	assert.Contains(t, q.execs[0], "INSERT INTO stock")
	assert.Contains(t, q.execs[0], "DO NOTHING")
	assert.Empty(t, q.filas, "la relectura tiene que haberse ejecutado")
}

func TestStockGetForUpdate_FilaExistenteNoInserta(t *testing.T) {
	q := &querierGuionado{filas: []filaStock{
		{cantidad: decimal.NewFromInt(40)},
	}}
	repo := NewStockRepository(q)

	s, err := repo.GetForUpdate("vehiculo", "veh-1", "prod-huevo")
	require.NoError(t, err)
	assert.True(t, s.Cantidad.Equal(decimal.NewFromInt(40)))
	assert.Empty(t, q.execs)
}
