package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"recruitai/internal/delivery/http/dto"
	"recruitai/internal/delivery/http/middleware"
	"recruitai/internal/pkg/response"
	"recruitai/internal/usecase"
	ucauth "recruitai/internal/usecase/auth"
)

type AuthHandler struct {
	uc usecase.AuthUsecase
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/signup", h.SignUp)
	r.Post("/signin", h.SignIn)
	r.Post("/signout", h.SignOut)
	r.Post("/refresh", h.Refresh)
}

func (h *AuthHandler) SignUp(c fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	usr, err := h.uc.SignUp(c.Context(), ucauth.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Company:  req.Company,
	})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Account created", dto.SignUpResponse{
		User:       dto.NewUserResponse(usr),
		RedirectTo: usecase.RedirectAfterSignUp,
	})
}

func (h *AuthHandler) SignIn(c fiber.Ctx) error {
	var req dto.SignInRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	s, err := h.uc.SignIn(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapAuthUsecaseError(err)
	}

	res := dto.SessionResponse{
		User:         dto.NewUserResponse(s.User),
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		RedirectTo:   s.RedirectTo,
	}
	if s.Profile != nil {
		p := dto.NewProfileResponse(*s.Profile)
		res.Profile = &p
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

// SignOut revokes the bearer access token and the refresh token from the
// body, when present. Signing out without tokens still succeeds.
func (h *AuthHandler) SignOut(c fiber.Ctx) error {
	var req dto.TokenRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
	}
	access, _ := middleware.BearerToken(c.Get("Authorization"))

	redirect, err := h.uc.SignOut(c.Context(), access, req.RefreshToken)
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, "Signed out", dto.RedirectResponse{RedirectTo: redirect})
}

// Refresh takes the refresh token from the body or, as before, from the
// Authorization header.
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	var req dto.TokenRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
		}
	}
	tok := req.RefreshToken
	if tok == "" {
		tok, _ = middleware.BearerToken(c.Get("Authorization"))
	}
	if tok == "" {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	access, refresh, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrRefreshTokenExpired):
			return middleware.NewAppError(fiber.StatusUnauthorized, "Refresh token expired", nil, err)
		case errors.Is(err, usecase.ErrInvalidRefreshToken):
			return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid refresh token", nil, err)
		case errors.Is(err, usecase.ErrUnauthorized):
			return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.TokenPairResponse{AccessToken: access, RefreshToken: refresh})
}

func mapAuthUsecaseError(err error) error {
	switch {
	case errors.Is(err, ucauth.ErrEmailAlreadyRegistered):
		return middleware.NewAppError(fiber.StatusConflict, "Email already registered", nil, err)
	case errors.Is(err, ucauth.ErrInvalidCredentials):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Invalid email or password", nil, err)
	case errors.Is(err, ucauth.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
