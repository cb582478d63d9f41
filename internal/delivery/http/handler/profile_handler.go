package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"recruitai/internal/delivery/http/dto"
	"recruitai/internal/delivery/http/middleware"
	"recruitai/internal/domain/user"
	"recruitai/internal/pkg/response"
	"recruitai/internal/usecase"
	ucuser "recruitai/internal/usecase/user"
)

type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/profile", h.Get)
	r.Post("/profile", h.Ensure)
	r.Put("/profile", h.Update)
}

func (h *ProfileHandler) Get(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	p, err := h.uc.GetProfile(c.Context(), userID)
	if err != nil {
		return mapProfileError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(p))
}

// Ensure creates the caller's profile from the account's sign-up details
// if it does not exist yet and returns the stored profile.
func (h *ProfileHandler) Ensure(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	p, err := h.uc.EnsureProfile(c.Context(), userID)
	if err != nil {
		return mapProfileError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(p))
}

func (h *ProfileHandler) Update(c fiber.Ctx) error {
	userID, ok := middleware.UserID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.UpdateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	p, err := h.uc.UpdateProfile(c.Context(), userID, ucuser.UpdateProfileInput{FullName: req.FullName, Company: req.Company})
	if err != nil {
		return mapProfileError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewProfileResponse(p))
}

func mapProfileError(err error) error {
	switch {
	case errors.Is(err, ucuser.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	case errors.Is(err, ucuser.ErrNotFound), errors.Is(err, user.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Profile not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
