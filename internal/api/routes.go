package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	dogs := api.Group("/dogs")
	dogs.Get("", handler.ListDogs)
	dogs.Post("", handler.CreateDog)
	dogs.Get("/:id", handler.GetDog)
	dogs.Post("/:id/heats", handler.RecordHeat)
	dogs.Post("/:id/hormone-tests", handler.RecordHormoneReading)
	dogs.Post("/:id/vaccinations", handler.RecordVaccination)
	dogs.Get("/:id/heat-outlook", handler.GetHeatOutlook)
	dogs.Get("/:id/mating-window", handler.GetMatingWindow)
	dogs.Get("/:id/reminders", handler.GetDogReminders)

	breedings := api.Group("/breedings")
	breedings.Post("", handler.RecordBreeding)
	breedings.Get("/:id/pregnancy", handler.GetPregnancyStatus)

	api.Get("/reminders", handler.GetKennelReminders)

	estimate := api.Group("/estimate")
	estimate.Post("/heat-interval", handler.EstimateHeatInterval)
	estimate.Post("/mating-window", handler.EstimateMatingWindow)
	estimate.Get("/pregnancy", handler.EstimatePregnancy)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
