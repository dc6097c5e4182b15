package handlers

import (
	"agrofeira/internal/middleware"
	"agrofeira/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProducerHandler handles HTTP requests for producer accounts.
type ProducerHandler struct {
	service  *services.ProducerService
	validate *validator.Validate
}

// NewProducerHandler creates a new ProducerHandler.
func NewProducerHandler(service *services.ProducerService, validate *validator.Validate) *ProducerHandler {
	return &ProducerHandler{
		service:  service,
		validate: validate,
	}
}

// RegisterRoutes registers the producer routes. Registration is public; every
// other route goes through auth.
func (h *ProducerHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	producerRoutes := router.Group("/producers")
	producerRoutes.Post("/", h.HandleRegister)
	producerRoutes.Get("/:id", auth, h.HandleGetProducer)
	producerRoutes.Put("/:id", auth, h.HandleUpdateProfile)
	producerRoutes.Put("/:id/password", auth, h.HandleChangePassword)
	producerRoutes.Delete("/:id", auth, h.HandleDeleteProducer)
}

// HandleRegister creates a producer account.
func (h *ProducerHandler) HandleRegister(c *fiber.Ctx) error {
	var req services.RegisterInput
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := validateStruct(h.validate, req); err != nil {
		return err
	}

	producer, err := h.service.Register(req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "producer registered successfully",
		"producer": producer,
	})
}

// HandleGetProducer retrieves a single producer by its ID.
func (h *ProducerHandler) HandleGetProducer(c *fiber.Ctx) error {
	producer, err := h.service.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(producer)
}

// HandleUpdateProfile updates the caller's own profile.
func (h *ProducerHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req services.ProfileUpdate
	if err := parseBody(c, &req); err != nil {
		return err
	}

	producer, err := h.service.UpdateProfile(middleware.ProducerID(c), c.Params("id"), req)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":  "profile updated successfully",
		"producer": producer,
	})
}

// HandleChangePassword replaces the caller's password.
func (h *ProducerHandler) HandleChangePassword(c *fiber.Ctx) error {
	var req services.PasswordChange
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if err := h.service.ChangePassword(middleware.ProducerID(c), c.Params("id"), req); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "password changed successfully",
	})
}

// DeleteProducerRequest is the step-up confirmation for account deletion.
type DeleteProducerRequest struct {
	CurrentPassword string `json:"currentPassword"`
}

// HandleDeleteProducer deletes the caller's account and products.
func (h *ProducerHandler) HandleDeleteProducer(c *fiber.Ctx) error {
	var req DeleteProducerRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return err
		}
	}

	if err := h.service.Delete(middleware.ProducerID(c), c.Params("id"), req.CurrentPassword); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
