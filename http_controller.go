package accounts

import (
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
)

// AuthControllerRoutes holds the paths the controller mounts.
type AuthControllerRoutes struct {
	Signup string
	Login  string
	Me     string
}

// AuthController exposes the account operations over JSON.
type AuthController struct {
	Accounts *AccountService
	Logger   Logger
	Routes   *AuthControllerRoutes
}

type AuthControllerOption func(*AuthController) *AuthController

func NewAuthController(accounts *AccountService, opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Accounts: accounts,
		Logger:   defLogger{},
		Routes: &AuthControllerRoutes{
			Signup: "/auth/signup",
			Login:  "/auth/login",
			Me:     "/auth/me",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Accounts == nil {
		panic("Missing AccountService in auth controller...")
	}

	return c
}

func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Logger = logger
		return c
	}
}

// RegisterAuthRoutes mounts the controller: signup and login are public,
// the current-user route sits behind the identity middleware.
func RegisterAuthRoutes(app fiber.Router, controller *AuthController, tokens TokenVerifier, cfg Config) {
	app.Post(controller.Routes.Signup, controller.SignupPost)
	app.Post(controller.Routes.Login, controller.LoginPost)
	app.Get(controller.Routes.Me,
		RequireIdentity(controller.Accounts, tokens, cfg),
		controller.CurrentUser(cfg),
	)
}

// SignupRequest payload
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r SignupRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Email, validation.Required, validation.Length(6, 100), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
	)
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

func (a *AuthController) SignupPost(c *fiber.Ctx) error {
	payload := new(SignupRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("signup parse payload: %s", err)
		return renderError(c, badPayload(err))
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("signup validate payload: %s", err)
		return renderError(c, badPayload(err))
	}

	identity, err := a.Accounts.Signup(c.UserContext(), payload.Username, payload.Email, payload.Password)
	if err != nil {
		return renderError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(identity)
}

func (a *AuthController) LoginPost(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("login parse payload: %s", err)
		return renderError(c, badPayload(err))
	}

	if err := payload.Validate(); err != nil {
		a.Logger.Error("login validate payload: %s", err)
		return renderError(c, badPayload(err))
	}

	token, err := a.Accounts.Login(c.UserContext(), payload.Email, payload.Password)
	if err != nil {
		return renderError(c, err)
	}

	return c.JSON(fiber.Map{"token": token})
}

// CurrentUser returns the protected handler echoing the verified identity.
func (a *AuthController) CurrentUser(cfg Config) fiber.Handler {
	contextKey := ""
	if cfg != nil {
		contextKey = cfg.GetContextKey()
	}

	return func(c *fiber.Ctx) error {
		identity, err := IdentityFromContext(c, contextKey)
		if err != nil {
			return renderError(c, err)
		}
		return c.JSON(identity)
	}
}

func badPayload(err error) error {
	return errors.Wrap(err, errors.CategoryValidation, "invalid request payload").
		WithTextCode(TextCodeValidation).
		WithCode(errors.CodeBadRequest)
}
