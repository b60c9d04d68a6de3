package catalog

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/goliatone/go-errors"
)

// Controllers groups the HTTP controllers for route registration
type Controllers struct {
	Auth     *AuthController
	Products *ProductController
	PDF      *PDFController
}

// RouteGuards holds the two auth resolver flavors. Both run the same token
// resolution; Protected rejects on failure, Optional proceeds anonymous.
type RouteGuards struct {
	Protected fiber.Handler
	Optional  fiber.Handler
}

// RegisterRoutes mounts the API surface. CORS runs first; the API is
// consumed by a browser frontend on another origin.
func RegisterRoutes(app *fiber.App, ctrl Controllers, guards RouteGuards) {
	app.Use(cors.New())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"success": true,
			"message": "product catalog API is running",
			"version": "1.0.0",
		})
	})

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", ctrl.Auth.Register)
	auth.Post("/login", ctrl.Auth.Login)
	auth.Get("/me", guards.Protected, ctrl.Auth.Me)

	products := api.Group("/products")
	products.Get("/", guards.Optional, ctrl.Products.List)
	products.Get("/:id", guards.Optional, ctrl.Products.Get)
	products.Post("/", guards.Protected, ctrl.Products.Create)
	products.Put("/:id", guards.Protected, ctrl.Products.Update)
	products.Delete("/:id", guards.Protected, ctrl.Products.Delete)

	pdf := api.Group("/pdf")
	pdf.Get("/check-auth/:productId", guards.Optional, ctrl.PDF.CheckAccess)
	pdf.Post("/store-email", ctrl.PDF.StoreEmail)
	pdf.Get("/download/:productId", guards.Optional, ctrl.PDF.Download)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "route not found: " + c.OriginalURL(),
		})
	})
}

// NewErrorHandler maps the error taxonomy onto HTTP statuses. Validation
// errors report 400, auth errors 401 with a uniform message, missing ids
// 404; anything else is a 500 whose detail is surfaced only outside
// production.
func NewErrorHandler(logger Logger, production bool) fiber.ErrorHandler {
	if logger == nil {
		logger = defLogger{}
	}

	return func(c *fiber.Ctx, err error) error {
		var vErrs validation.Errors
		if errors.As(err, &vErrs) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": vErrs.Error(),
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"success": false,
				"message": fiberErr.Message,
			})
		}

		var richErr *errors.Error
		if !errors.As(err, &richErr) {
			richErr = errors.Wrap(err, errors.CategoryInternal, "an unexpected server error occurred").
				WithCode(errors.CodeInternal)
		}

		status := httpStatus(richErr)
		message := richErr.Message

		if status >= fiber.StatusInternalServerError {
			logger.Error("request failed",
				"path", c.OriginalURL(),
				"category", richErr.Category,
				"error", err,
			)
			if production {
				message = "internal server error"
			}
		}

		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": message,
		})
	}
}

func httpStatus(err *errors.Error) int {
	if code := int(err.Code); code >= fiber.StatusBadRequest {
		return code
	}

	switch err.Category {
	case errors.CategoryValidation, errors.CategoryBadInput:
		return fiber.StatusBadRequest
	case errors.CategoryAuth, errors.CategoryAuthz:
		return fiber.StatusUnauthorized
	case errors.CategoryNotFound:
		return fiber.StatusNotFound
	case errors.CategoryConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
