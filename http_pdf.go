package catalog

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// LeadEmailPayload is the store-email request body
type LeadEmailPayload struct {
	Email     string `json:"email"`
	ProductID string `json:"productId"`
}

func (p LeadEmailPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.ProductID, validation.Required),
	)
}

// PDFController serves the spec sheet download flow: the access check, lead
// email capture, and the PDF itself.
type PDFController struct {
	products Products
	leads    Leads
	sheet    *SpecSheet
	logger   Logger
}

// NewPDFController creates the PDF controller
func NewPDFController(products Products, leads Leads, sheet *SpecSheet) *PDFController {
	return &PDFController{
		products: products,
		leads:    leads,
		sheet:    sheet,
		logger:   defLogger{},
	}
}

func (ctrl *PDFController) WithLogger(logger Logger) *PDFController {
	if logger != nil {
		ctrl.logger = logger
	}
	return ctrl
}

// CheckAccess handles GET /api/pdf/check-auth/:productId. Anonymous callers
// must leave an email before downloading; authenticated callers may not.
func (ctrl *PDFController) CheckAccess(c *fiber.Ctx) error {
	auth := AuthFromContext(c)

	return c.JSON(fiber.Map{
		"success":         true,
		"requiresEmail":   !auth.Authenticated,
		"isAuthenticated": auth.Authenticated,
	})
}

// StoreEmail handles POST /api/pdf/store-email. The record is write-once
// marketing data captured regardless of auth state.
func (ctrl *PDFController) StoreEmail(c *fiber.Ctx) error {
	var payload LeadEmailPayload
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid request body").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	product, err := ctrl.products.GetByID(c.UserContext(), payload.ProductID)
	if err != nil {
		return err
	}

	_, err = ctrl.leads.Create(c.UserContext(), &LeadEmail{
		Email:     payload.Email,
		ProductID: product.ID,
		IPAddress: c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "email stored successfully",
	})
}

// Download handles GET /api/pdf/download/:productId
func (ctrl *PDFController) Download(c *fiber.Ctx) error {
	product, err := ctrl.products.GetByID(c.UserContext(), c.Params("productId"))
	if err != nil {
		return err
	}

	data, err := ctrl.sheet.Render(product, AuthFromContext(c))
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=spec_sheet_%s.pdf", product.ID))

	return c.Send(data)
}
