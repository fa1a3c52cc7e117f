// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"passport/internal/delivery/http/middleware"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for account-related handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

// userView is the public projection of an account. The password hash never
// appears in any response body.
type userView struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

// registerResponse flattens the account view and adds the session token.
type registerResponse struct {
	userView
	Token string `json:"token"`
}

// loginResponse carries the account view alongside the session token.
type loginResponse struct {
	User  userView `json:"user"`
	Token string   `json:"token"`
}

func toUserView(user *entity.User) userView {
	return userView{
		ID:     user.ID.Hex(),
		Name:   user.Name,
		Email:  user.Email,
		Avatar: user.Avatar,
	}
}

// Register handles account creation.
func (h *UserHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusCreated, registerResponse{
		userView: toUserView(output.User),
		Token:    output.Token,
	})
}

// Login handles credential verification and token issuance.
func (h *UserHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, loginResponse{
		User:  toUserView(output.User),
		Token: output.Token,
	})
}

// List returns every account.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]userView, 0, len(users))
	for _, user := range users {
		views = append(views, toUserView(user))
	}

	return c.JSON(http.StatusOK, views)
}

// GetByID returns a single account. A well-formed id with no match is an
// empty 204, not an error.
func (h *UserHandler) GetByID(c echo.Context) error {
	user, err := h.uc.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}
	if user == nil {
		return c.NoContent(http.StatusNoContent)
	}

	return c.JSON(http.StatusOK, toUserView(user))
}

// Update applies a partial patch to the caller's own account.
func (h *UserHandler) Update(c echo.Context) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return domainerrors.ErrUnauthorized.WrapMessage("missing caller identity")
	}

	var patch usecase.UpdateInput
	if err := c.Bind(&patch); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.uc.Update(c.Request().Context(), callerID, c.Param("id"), &patch)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusAccepted, toUserView(user))
}

// Delete removes the caller's own account.
func (h *UserHandler) Delete(c echo.Context) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return domainerrors.ErrUnauthorized.WrapMessage("missing caller identity")
	}

	if err := h.uc.Delete(c.Request().Context(), callerID, c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// UploadAvatar stores an uploaded avatar on the caller's account. The file
// rides in the multipart field "avatar".
func (h *UserHandler) UploadAvatar(c echo.Context) error {
	callerID, ok := middleware.CallerID(c)
	if !ok {
		return domainerrors.ErrUnauthorized.WrapMessage("missing caller identity")
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return domainerrors.ErrMissingAvatar.WrapMessage("avatar upload rejected")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded avatar")
	}
	defer file.Close()

	if err := h.uc.AttachAvatar(c.Request().Context(), callerID, fileHeader.Filename, file); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusAccepted)
}

// RecoverPassword triggers password-recovery dispatch for the given email.
// The status reflects only whether the account exists.
func (h *UserHandler) RecoverPassword(c echo.Context) error {
	if err := h.uc.RequestPasswordRecovery(c.Request().Context(), c.Param("email")); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusOK)
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
