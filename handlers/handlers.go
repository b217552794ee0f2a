package handlers

import (
	"archive-keeper/models"
	"archive-keeper/registry"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const (
	corsAllowOrigins = "*"
	corsAllowHeaders = "Content-Type,Authorization"
	corsAllowMethods = "GET,PUT,POST,DELETE"
)

// listQuery is the filter and sort input of the HTML list endpoints.
type listQuery struct {
	Query  string `query:"query"`
	SortBy string `query:"sort_by"`
}

// ErrorHandler turns handler errors into status codes with a JSON body.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var notFound *models.NotFoundError
	var invalid *models.ValidationError
	var fe *fiber.Error
	switch {
	case errors.As(err, &notFound):
		code = fiber.StatusNotFound
	case errors.As(err, &invalid):
		code = fiber.StatusBadRequest
	case errors.As(err, &fe):
		code = fe.Code
	default:
		log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	}

	setCORSHeaders(c)
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func setCORSHeaders(c *fiber.Ctx) {
	c.Set(fiber.HeaderAccessControlAllowOrigin, corsAllowOrigins)
	c.Set(fiber.HeaderAccessControlAllowHeaders, corsAllowHeaders)
	c.Set(fiber.HeaderAccessControlAllowMethods, corsAllowMethods)
}

// CORS adds the allow headers to every response and answers preflight
// requests.
func CORS() []fiber.Handler {
	return []fiber.Handler{
		func(c *fiber.Ctx) error {
			setCORSHeaders(c)
			return c.Next()
		},
		cors.New(cors.Config{
			AllowOrigins: corsAllowOrigins,
			AllowHeaders: corsAllowHeaders,
			AllowMethods: corsAllowMethods,
		}),
	}
}

// SetupRoutes configures the rule and page routes for the application.
func SetupRoutes(app *fiber.App, reg *registry.Registry) {
	for _, h := range CORS() {
		app.Use(h)
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/rules", fiber.StatusSeeOther)
	})

	rules := &RuleHandler{reg: reg}
	app.Get("/rules", rules.List)
	app.Get("/rules.json", rules.ListJSON)
	app.Post("/rules", rules.Create)
	app.Get("/rule/:id", rules.Get)
	app.Patch("/rule/:id", rules.Update)

	pages := &PageHandler{reg: reg}
	app.Get("/pages", pages.List)
	app.Get("/pages.json", pages.ListJSON)
	app.Post("/pages", pages.Create)
	app.Get("/page/:id", pages.Get)
	app.Patch("/page/:id", pages.Update)
}

// parseBody decodes a form or JSON body into out. An empty body leaves out
// untouched so that optional fields fall back to their defaults.
func parseBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Cannot parse request body")
	}
	return nil
}
