// Package reloj expone el reloj como dependencia explícita de los casos de
// uso, en lugar de un singleton global de zona horaria. En producción se
// inyecta Sistema(); en tests, Fijo(t) permite fijar "ahora" de forma
// determinista para probar cortes de fecha (cierres diarios, vencimientos).
package reloj

import "time"

// Clock devuelve el instante actual.
type Clock interface {
	Now() time.Time
}

type sistema struct{}

func (sistema) Now() time.Time { return time.Now() }

// Sistema devuelve el reloj del sistema operativo.
func Sistema() Clock { return sistema{} }

// Fijo devuelve un reloj congelado en t.
func Fijo(t time.Time) Clock { return fijo{t} }

type fijo struct{ t time.Time }

func (f fijo) Now() time.Time { return f.t }
