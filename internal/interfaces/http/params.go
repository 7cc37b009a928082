package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// parseFecha acepta fechas en RFC3339 o como día simple (2006-01-02).
func parseFecha(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// rangoFechas lee los query params desde/hasta. Si faltan, el rango por
// defecto son los últimos 30 días.
func rangoFechas(c *fiber.Ctx) (time.Time, time.Time, error) {
	hasta := time.Now()
	desde := hasta.AddDate(0, 0, -30)
	if s := c.Query("desde"); s != "" {
		t, err := parseFecha(s)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		desde = t
	}
	if s := c.Query("hasta"); s != "" {
		t, err := parseFecha(s)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		hasta = t
	}
	return desde, hasta, nil
}
