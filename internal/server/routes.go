package server

import (
	"github.com/gofiber/fiber/v2"
)

func (s *Server) registerRoutes(app *fiber.App) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "skitrip-forecast",
			"builtAt": s.Latest().BuiltAt,
		})
	})

	app.Get("/", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
		return c.Send(s.Latest().HTML)
	})

	v1 := app.Group("/api/v1")

	v1.Get("/days", func(c *fiber.Ctx) error {
		build := s.Latest()
		return c.JSON(fiber.Map{
			"builtAt": build.BuiltAt,
			"outlook": build.Outlook,
			"banner":  build.Banner,
			"days":    build.Days,
		})
	})

	v1.Get("/days/:date", func(c *fiber.Ctx) error {
		date := c.Params("date")
		for _, d := range s.Latest().Days {
			if d.Date == date {
				return c.JSON(d)
			}
		}
		return fiber.NewError(fiber.StatusNotFound, "no forecast for date")
	})

	v1.Get("/observation", func(c *fiber.Ctx) error {
		obs := s.Latest().Observation
		if obs == nil {
			return fiber.NewError(fiber.StatusNotFound, "no observation available")
		}
		return c.JSON(obs)
	})
}
