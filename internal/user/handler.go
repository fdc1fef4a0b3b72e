package user

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/h-wallet/h_wallet/internal/api"
	"github.com/h-wallet/h_wallet/internal/apierr"
	"github.com/h-wallet/h_wallet/internal/middleware"
)

// Handler exposes user HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a user HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type registerRequest struct {
	Username        string `json:"username" validate:"required,min=6,max=10"`
	PhoneNumber     string `json:"phone_number" validate:"required,min=6,max=20,numeric"`
	Password        string `json:"password" validate:"required,min=6,max=50"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

// Register creates a new user account.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return apierr.BadRequest("invalid request payload")
	}
	if err := api.ValidateStruct(req); err != nil {
		return err
	}
	phone, err := h.service.Register(c.UserContext(), Registration{
		Username:        req.Username,
		PhoneNumber:     req.PhoneNumber,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return err
	}
	return api.Respond(c, http.StatusCreated, "user created successfully", phone)
}

type loginRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,min=6,max=50"`
	Password    string `json:"password" validate:"required,min=6,max=50"`
}

// Login validates credentials and returns a signed token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return apierr.BadRequest("invalid request payload")
	}
	if err := api.ValidateStruct(req); err != nil {
		return err
	}
	token, err := h.service.Authenticate(c.UserContext(), Login{PhoneNumber: req.PhoneNumber, Password: req.Password})
	if err != nil {
		return err
	}
	return api.Respond(c, http.StatusOK, "user logged in successfully", token)
}

// Me returns the authenticated caller's account details.
func (h *Handler) Me(c *fiber.Ctx) error {
	phone, _ := middleware.AuthenticatedPhone(c)
	caller, err := h.service.AuthenticatedUser(c.UserContext(), phone)
	if err != nil {
		return err
	}
	profile, err := h.service.Details(c.UserContext(), caller.PhoneNumber)
	if err != nil {
		return err
	}
	return api.Respond(c, http.StatusOK, "retrieved user details successfully", profile)
}
