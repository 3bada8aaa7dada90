package v1

import (
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/repgenie/repgenie/server/auth"
	apperr "github.com/repgenie/repgenie/internal/errors"
	"github.com/repgenie/repgenie/store"
)

type signUpRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	CaptchaToken  string `json:"captcha_token"`
	CaptchaAnswer string `json:"captcha_answer"`
}

type signInRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	CaptchaToken  string `json:"captcha_token"`
	CaptchaAnswer string `json:"captcha_answer"`
}

type userResponse struct {
	ID        int32  `json:"id"`
	Email     string `json:"email"`
	CreatedTs int64  `json:"created_ts"`
}

// GET /auth/captcha
func (s *APIV1Service) GetCaptcha(c echo.Context) error {
	challenge, err := s.Captcha.NewChallenge()
	if err != nil {
		s.logger.Error("failed to issue captcha", slog.String("error", err.Error()))
		return replyError(c, errors.New("captcha generation failed"))
	}
	return c.JSON(http.StatusOK, challenge)
}

// POST /auth/signup
func (s *APIV1Service) SignUp(c echo.Context) error {
	if !s.authLimiter.Allow(c.RealIP()) {
		return replyError(c, apperr.RateLimitExceeded())
	}

	var req signUpRequest
	if err := c.Bind(&req); err != nil {
		return replyError(c, apperr.InvalidArgument("malformed request body"))
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	if _, err := mail.ParseAddress(email); err != nil {
		return replyError(c, apperr.InvalidArgument("invalid email address"))
	}
	if err := auth.ValidatePasswordPolicy(req.Password); err != nil {
		return replyError(c, err)
	}
	if err := s.Captcha.Verify(req.CaptchaToken, req.CaptchaAnswer); err != nil {
		return replyError(c, err)
	}

	salt, err := auth.GenerateSalt()
	if err != nil {
		return replyError(c, err)
	}

	now := time.Now().Unix()
	user, err := s.Store.CreateUser(c.Request().Context(), &store.User{
		Email:        email,
		PasswordHash: auth.HashPassword(req.Password, salt),
		Salt:         salt,
		CreatedTs:    now,
		UpdatedTs:    now,
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return replyError(c, apperr.DuplicateEmail())
		}
		s.logger.Error("failed to create user", slog.String("error", err.Error()))
		return replyError(c, apperr.StorageUnavailable(err))
	}

	s.logger.Info("user signed up", slog.String("email", email))
	return c.JSON(http.StatusOK, &userResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedTs: user.CreatedTs,
	})
}

// POST /auth/login
func (s *APIV1Service) SignIn(c echo.Context) error {
	if !s.authLimiter.Allow(c.RealIP()) {
		return replyError(c, apperr.RateLimitExceeded())
	}

	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return replyError(c, apperr.InvalidArgument("malformed request body"))
	}
	if err := s.Captcha.Verify(req.CaptchaToken, req.CaptchaAnswer); err != nil {
		return replyError(c, err)
	}

	email := strings.TrimSpace(strings.ToLower(req.Email))
	user, err := s.Store.GetUser(c.Request().Context(), &store.FindUser{Email: &email})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Same response as a wrong password so emails never leak.
			return replyError(c, apperr.InvalidCredentials())
		}
		return replyError(c, apperr.StorageUnavailable(err))
	}

	if !auth.VerifyPassword(req.Password, user.Salt, user.PasswordHash) {
		return replyError(c, apperr.InvalidCredentials())
	}

	return c.JSON(http.StatusOK, &userResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedTs: user.CreatedTs,
	})
}
