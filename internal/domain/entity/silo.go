package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Silo almacena materia prima para alimento balanceado. CantidadActual es la
// suma derivada de sus ContenidoSilo y se mantiene en la misma transacción
// que los modifica; la lista de contenidos es la representación canónica.
type Silo struct {
	ID             string
	Nombre         string
	CapacidadKg    decimal.Decimal
	CantidadActual decimal.Decimal // kg, suma de contenidos
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ContenidoSilo es una materia prima dentro de un silo, con su costo
// promedio de compra por kg.
type ContenidoSilo struct {
	ID         string
	SiloID     string
	Material   string // maíz, soja, núcleo vitamínico, etc.
	CantidadKg decimal.Decimal
	CostoPorKg decimal.Decimal // promedio ponderado de compras
	UpdatedAt  time.Time
}
