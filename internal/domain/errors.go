package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrFilaInvalida       = errors.New("fila con esquema inválido")
	ErrFechaInvalida      = errors.New("fecha no reconocida")
	ErrPeriodoInvalido    = errors.New("filtro de período inválido")
	ErrFuenteNoDisponible = errors.New("fuente de datos no disponible")
	ErrFormatoReporte     = errors.New("formato de reporte no soportado")
)
