package catalog

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// RegisterPayload is the registration request body
type RegisterPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (p RegisterPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Username, validation.Required, validation.Length(3, 50)),
		validation.Field(&p.Email, validation.Required, is.Email),
		validation.Field(&p.Password, validation.Required, validation.Length(6, 72)),
	)
}

// LoginPayload is the login request body
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (p LoginPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Email, validation.Required),
		validation.Field(&p.Password, validation.Required),
	)
}

// AuthController serves registration, login, and the current-user endpoint
type AuthController struct {
	auther *Auther
	logger Logger
}

// NewAuthController creates the auth controller
func NewAuthController(auther *Auther) *AuthController {
	return &AuthController{
		auther: auther,
		logger: defLogger{},
	}
}

func (ctrl *AuthController) WithLogger(logger Logger) *AuthController {
	if logger != nil {
		ctrl.logger = logger
	}
	return ctrl
}

// Register handles POST /api/auth/register
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var payload RegisterPayload
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid request body").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	user, token, err := ctrl.auther.Register(c.UserContext(), payload.Username, payload.Email, payload.Password)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "user registered successfully",
		"token":   token,
		"user":    user,
	})
}

// Login handles POST /api/auth/login
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var payload LoginPayload
	if err := c.BodyParser(&payload); err != nil {
		return errors.Wrap(err, errors.CategoryBadInput, "invalid request body").
			WithCode(errors.CodeBadRequest)
	}

	if err := payload.Validate(); err != nil {
		return err
	}

	user, token, err := ctrl.auther.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "login successful",
		"token":   token,
		"user":    user,
	})
}

// Me handles GET /api/auth/me behind the mandatory guard
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	principal := AuthFromContext(c).Principal()
	if principal == nil {
		return ErrNotAuthorized
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    principal,
	})
}
