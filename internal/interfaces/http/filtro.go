package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/repuestosgt/dashboard-fel/internal/domain/entity"
)

// filtroDesdeQuery arma el FiltroPeriodo desde los query params crudos
// (tipo=dia|mes|anio, dia, mes, anio). Mes y año vacíos usan la fecha actual.
func filtroDesdeQuery(c *fiber.Ctx) (entity.FiltroPeriodo, error) {
	return entity.NewFiltroPeriodo(
		c.Query("tipo"),
		c.Query("dia"),
		c.Query("mes"),
		c.Query("anio"),
		time.Now(),
	)
}
