package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shoe_shop/pkg/httperr"
	jwthelp "github.com/Skotchmaster/shoe_shop/pkg/jwt"
	"github.com/Skotchmaster/shoe_shop/pkg/logging"
	middleware "github.com/Skotchmaster/shoe_shop/pkg/middleware/auth"
	"github.com/Skotchmaster/shoe_shop/services/auth/internal/service"
	"github.com/Skotchmaster/shoe_shop/services/auth/internal/transport"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func fail(l *slog.Logger, event string, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		l.Warn(event, "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, httperr.Message(err, service.ErrValidation))
	case errors.Is(err, service.ErrConflict):
		l.Warn(event, "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, httperr.Message(err, service.ErrConflict))
	case errors.Is(err, service.ErrUnauthorized):
		l.Warn(event, "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, httperr.Message(err, service.ErrUnauthorized))
	case errors.Is(err, service.ErrNotFound):
		l.Warn(event, "status", 404, "error", err)
		return echo.NewHTTPError(http.StatusNotFound, httperr.Message(err, service.ErrNotFound))
	default:
		l.Error(event, "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}

func bindValid(c echo.Context, l *slog.Logger, event string, req any) error {
	if err := c.Bind(req); err != nil {
		l.Warn(event, "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	if err := c.Validate(req); err != nil {
		l.Warn(event, "status", 400, "reason", "validation", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func setSession(c echo.Context, s *service.Session) {
	c.SetCookie(jwthelp.CreateCookie(jwthelp.AccessCookie, s.AccessToken, "/", s.AccessExp))
	c.SetCookie(jwthelp.CreateCookie(jwthelp.RefreshCookie, s.RefreshToken, "/", s.RefreshExp))
}

func clearSession(c echo.Context) {
	c.SetCookie(jwthelp.DeleteCookie(jwthelp.AccessCookie, "/"))
	c.SetCookie(jwthelp.DeleteCookie(jwthelp.RefreshCookie, "/"))
}

func (h *AuthHTTP) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signup")

	var req transport.SignupRequest
	if err := bindValid(c, l, "signup_error", &req); err != nil {
		return err
	}

	sess, err := h.Svc.Signup(ctx, req)
	if err != nil {
		return fail(l, "signup_error", err)
	}
	setSession(c, sess)
	l.Info("signup_success", "user_id", sess.User.ID)
	return c.JSON(http.StatusCreated, transport.UserResponse{Message: "user created successfully", User: sess.User})
}

func (h *AuthHTTP) VerifyEmail(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.verify_email")

	var req transport.VerifyEmailRequest
	if err := bindValid(c, l, "verify_email_error", &req); err != nil {
		return err
	}

	u, err := h.Svc.VerifyEmail(ctx, req.Code)
	if err != nil {
		return fail(l, "verify_email_error", err)
	}
	l.Info("verify_email_success", "user_id", u.ID)
	return c.JSON(http.StatusOK, transport.UserResponse{Message: "email verified successfully", User: u})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := bindValid(c, l, "login_error", &req); err != nil {
		return err
	}

	sess, err := h.Svc.Login(ctx, req)
	if err != nil {
		return fail(l, "login_error", err)
	}
	setSession(c, sess)
	l.Info("login_success", "user_id", sess.User.ID)
	return c.JSON(http.StatusOK, sess.Response())
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	var refresh string
	if ck, err := c.Cookie(jwthelp.RefreshCookie); err == nil {
		refresh = ck.Value
	}
	if err := h.Svc.Logout(ctx, refresh); err != nil {
		return fail(l, "logout_error", err)
	}
	clearSession(c)
	l.Info("logout_success")
	return c.JSON(http.StatusOK, echo.Map{"message": "logged out successfully"})
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.refresh")

	ck, err := c.Cookie(jwthelp.RefreshCookie)
	if err != nil || ck.Value == "" {
		l.Warn("refresh_error", "status", 401, "reason", "missing refresh cookie")
		return echo.NewHTTPError(http.StatusUnauthorized, "refresh token missing")
	}

	sess, err := h.Svc.Refresh(ctx, ck.Value)
	if err != nil {
		clearSession(c)
		return fail(l, "refresh_error", err)
	}
	setSession(c, sess)
	return c.JSON(http.StatusOK, sess.Response())
}

func (h *AuthHTTP) ForgotPassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.forgot_password")

	var req transport.ForgotPasswordRequest
	if err := bindValid(c, l, "forgot_password_error", &req); err != nil {
		return err
	}
	if err := h.Svc.ForgotPassword(ctx, req.Email); err != nil {
		return fail(l, "forgot_password_error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password reset link sent to your email"})
}

func (h *AuthHTTP) ResetPassword(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.reset_password")

	var req transport.ResetPasswordRequest
	if err := bindValid(c, l, "reset_password_error", &req); err != nil {
		return err
	}
	if err := h.Svc.ResetPassword(ctx, c.Param("token"), req.Password); err != nil {
		return fail(l, "reset_password_error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password reset successful"})
}

func (h *AuthHTTP) CheckAuth(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.check_auth")

	u, err := h.Svc.CheckAuth(ctx, middleware.UserID(c))
	if err != nil {
		return fail(l, "check_auth_error", err)
	}
	return c.JSON(http.StatusOK, transport.UserResponse{User: u})
}

func (h *AuthHTTP) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.update_profile")

	var req transport.ProfileRequest
	if err := bindValid(c, l, "update_profile_error", &req); err != nil {
		return err
	}

	u, err := h.Svc.UpdateProfile(ctx, middleware.UserID(c), req)
	if err != nil {
		return fail(l, "update_profile_error", err)
	}
	return c.JSON(http.StatusOK, transport.UserResponse{Message: "profile updated successfully", User: u})
}

func (h *AuthHTTP) DeleteAccount(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.delete_account")

	userID := middleware.UserID(c)
	if err := h.Svc.DeleteAccount(ctx, userID); err != nil {
		return fail(l, "delete_account_error", err)
	}
	clearSession(c)
	l.Info("delete_account_success", "user_id", userID)
	return c.JSON(http.StatusOK, echo.Map{"message": "account deleted successfully"})
}
