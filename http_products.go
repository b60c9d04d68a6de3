package catalog

import (
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// ProductController serves catalog CRUD. Reads run behind the optional
// guard, mutations behind the mandatory one.
type ProductController struct {
	catalog *Catalog
	logger  Logger
}

// NewProductController creates the product controller
func NewProductController(svc *Catalog) *ProductController {
	return &ProductController{
		catalog: svc,
		logger:  defLogger{},
	}
}

func (ctrl *ProductController) WithLogger(logger Logger) *ProductController {
	if logger != nil {
		ctrl.logger = logger
	}
	return ctrl
}

// List handles GET /api/products
func (ctrl *ProductController) List(c *fiber.Ctx) error {
	auth := AuthFromContext(c)

	views, err := ctrl.catalog.List(c.UserContext(), auth)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":         true,
		"count":           len(views),
		"data":            views,
		"isAuthenticated": auth.Authenticated,
	})
}

// Get handles GET /api/products/:id
func (ctrl *ProductController) Get(c *fiber.Ctx) error {
	auth := AuthFromContext(c)

	view, err := ctrl.catalog.Get(c.UserContext(), auth, c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":         true,
		"data":            view,
		"isAuthenticated": auth.Authenticated,
	})
}

// Create handles POST /api/products
func (ctrl *ProductController) Create(c *fiber.Ctx) error {
	var input ProductInput
	if err := c.BodyParser(&input); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid request body").
			WithCode(errors.CodeBadRequest)
	}

	view, err := ctrl.catalog.Create(c.UserContext(), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "product created successfully",
		"data":    view,
	})
}

// Update handles PUT /api/products/:id
func (ctrl *ProductController) Update(c *fiber.Ctx) error {
	var input ProductInput
	if err := c.BodyParser(&input); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid request body").
			WithCode(errors.CodeBadRequest)
	}

	view, err := ctrl.catalog.Update(c.UserContext(), c.Params("id"), input)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "product updated successfully",
		"data":    view,
	})
}

// Delete handles DELETE /api/products/:id
func (ctrl *ProductController) Delete(c *fiber.Ctx) error {
	if err := ctrl.catalog.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "product deleted successfully",
	})
}
