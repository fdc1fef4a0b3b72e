package wallet

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/h-wallet/h_wallet/internal/api"
	"github.com/h-wallet/h_wallet/internal/apierr"
	"github.com/h-wallet/h_wallet/internal/middleware"
	"github.com/h-wallet/h_wallet/internal/scheme"
	"github.com/h-wallet/h_wallet/internal/user"
)

// Handler exposes wallet HTTP endpoints. Every operation first resolves the
// authenticated caller through the user service.
type Handler struct {
	service *Service
	users   *user.Service
}

// NewHandler builds a wallet HTTP handler.
func NewHandler(service *Service, users *user.Service) *Handler {
	return &Handler{service: service, users: users}
}

func (h *Handler) caller(c *fiber.Ctx) (user.User, error) {
	phone, _ := middleware.AuthenticatedPhone(c)
	return h.users.AuthenticatedUser(c.UserContext(), phone)
}

type createRequest struct {
	Name   string `json:"name" validate:"required,min=1,max=50"`
	Scheme string `json:"scheme" validate:"required"`
	PAN    string `json:"pan" validate:"required,min=6,max=50"`
}

// Create registers a new wallet for the authenticated caller.
func (h *Handler) Create(c *fiber.Ctx) error {
	owner, err := h.caller(c)
	if err != nil {
		return err
	}

	var req createRequest
	if err := c.BodyParser(&req); err != nil {
		return apierr.BadRequest("invalid request payload")
	}
	if err := api.ValidateStruct(req); err != nil {
		return err
	}
	walletScheme, err := scheme.Parse(req.Scheme)
	if err != nil {
		return apierr.BadRequest("unknown wallet scheme: %s", req.Scheme)
	}

	id, err := h.service.Create(c.UserContext(), owner, Registration{
		Name:   req.Name,
		Scheme: walletScheme,
		PAN:    req.PAN,
	})
	if err != nil {
		return err
	}
	return api.Respond(c, http.StatusCreated, "wallet created successfully", id)
}

// Get returns a single wallet owned by the caller.
func (h *Handler) Get(c *fiber.Ctx) error {
	owner, err := h.caller(c)
	if err != nil {
		return err
	}
	projection, err := h.service.Get(c.UserContext(), owner, c.Params("id"))
	if err != nil {
		return err
	}
	return api.Respond(c, http.StatusOK, "retrieved user wallet successfully", projection)
}

// List returns every wallet owned by the caller.
func (h *Handler) List(c *fiber.Ctx) error {
	owner, err := h.caller(c)
	if err != nil {
		return err
	}
	projections, err := h.service.List(c.UserContext(), owner)
	if err != nil {
		return err
	}
	return api.Respond(c, http.StatusOK, "retrieved all user wallets successfully", projections)
}

// Delete removes a wallet owned by the caller.
func (h *Handler) Delete(c *fiber.Ctx) error {
	owner, err := h.caller(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), owner, c.Params("id")); err != nil {
		return err
	}
	return api.Respond(c, http.StatusAccepted, "wallet deleted successfully", nil)
}
