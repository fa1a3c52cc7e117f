package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"passport/internal/delivery/http/middleware"
	"passport/internal/delivery/http/router"
	"passport/internal/delivery/http/router/handler"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/mocks"
	"passport/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// usecaseStub implements usecase.UserUsecase with per-test function fields.
// Routes exercised without a configured field fail loudly.
type usecaseStub struct {
	register func(*usecase.RegisterInput) (*usecase.RegisterOutput, error)
	login    func(*usecase.LoginInput) (*usecase.LoginOutput, error)
	getByID  func(string) (*entity.User, error)
	list     func() ([]*entity.User, error)
	update   func(primitive.ObjectID, string, *usecase.UpdateInput) (*entity.User, error)
	delete   func(primitive.ObjectID, string) error
	attach   func(primitive.ObjectID, string, io.Reader) error
	recover  func(string) error
}

func (s *usecaseStub) Register(_ context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	return s.register(input)
}

func (s *usecaseStub) Login(_ context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	return s.login(input)
}

func (s *usecaseStub) GetByID(_ context.Context, idHex string) (*entity.User, error) {
	return s.getByID(idHex)
}

func (s *usecaseStub) List(_ context.Context) ([]*entity.User, error) {
	return s.list()
}

func (s *usecaseStub) Update(_ context.Context, callerID primitive.ObjectID, idHex string, patch *usecase.UpdateInput) (*entity.User, error) {
	return s.update(callerID, idHex, patch)
}

func (s *usecaseStub) Delete(_ context.Context, callerID primitive.ObjectID, idHex string) error {
	return s.delete(callerID, idHex)
}

func (s *usecaseStub) AttachAvatar(_ context.Context, callerID primitive.ObjectID, filename string, r io.Reader) error {
	return s.attach(callerID, filename, r)
}

func (s *usecaseStub) RequestPasswordRecovery(_ context.Context, email string) error {
	return s.recover(email)
}

func newTestServer(uc usecase.UserUsecase, tokens *mocks.MockTokenService) *echo.Echo {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.NewErrorMiddleware(logger).HandleHTTPError

	r := router.NewRouter(router.RouterParams{
		UserHandler:    handler.NewUserHandler(uc, logger),
		AuthMiddleware: middleware.NewAuthMiddleware(tokens),
	})
	r.RegisterRoutes(e)

	return e
}

type errorBody struct {
	Msg  string `json:"msg"`
	Code int    `json:"code"`
}

func doJSON(e *echo.Echo, method, target, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestRegisterRoute(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		uc := &usecaseStub{}
		userID := primitive.NewObjectID()
		uc.register = func(input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
			return &usecase.RegisterOutput{
				User:  &entity.User{ID: userID, Name: input.Name, Email: input.Email},
				Token: "token-abc",
			}, nil
		}
		e := newTestServer(uc, &mocks.MockTokenService{})

		rec := doJSON(e, http.MethodPost, "/users", `{"name":"alice","email":"alice@example.com","password":"secret-1"}`, "")
		require.Equal(t, http.StatusCreated, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "alice", body["name"])
		assert.Equal(t, userID.Hex(), body["id"])
		assert.Equal(t, "token-abc", body["token"])
		assert.NotContains(t, body, "password")
	})

	t.Run("duplicate name", func(t *testing.T) {
		uc := &usecaseStub{}
		uc.register = func(*usecase.RegisterInput) (*usecase.RegisterOutput, error) {
			return nil, domainerrors.ErrUserExists.WrapMessage("registration failed")
		}
		e := newTestServer(uc, &mocks.MockTokenService{})

		rec := doJSON(e, http.MethodPost, "/users", `{"name":"alice","email":"a@b.co","password":"secret-1"}`, "")
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var body errorBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "account name already exists", body.Msg)
		assert.Equal(t, 1001, body.Code)
	})
}

func TestLoginRoute_UnknownAccount(t *testing.T) {
	uc := &usecaseStub{}
	uc.login = func(*usecase.LoginInput) (*usecase.LoginOutput, error) {
		return nil, domainerrors.ErrAccountNotFound.WrapMessage("login failed")
	}
	e := newTestServer(uc, &mocks.MockTokenService{})

	rec := doJSON(e, http.MethodPost, "/users/login", `{"email":"ghost@example.com","password":"x"}`, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "account not found", body.Msg)
	assert.Equal(t, 2001, body.Code)
}

func TestGetByIDRoute(t *testing.T) {
	t.Run("absent gives empty 204", func(t *testing.T) {
		uc := &usecaseStub{}
		uc.getByID = func(string) (*entity.User, error) { return nil, nil }
		e := newTestServer(uc, &mocks.MockTokenService{})

		rec := doJSON(e, http.MethodGet, "/users/"+primitive.NewObjectID().Hex(), "", "")
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("malformed id", func(t *testing.T) {
		uc := &usecaseStub{}
		uc.getByID = func(string) (*entity.User, error) { return nil, domainerrors.ErrInvalidID }
		e := newTestServer(uc, &mocks.MockTokenService{})

		rec := doJSON(e, http.MethodGet, "/users/zzz", "", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var body errorBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "invalid id", body.Msg)
		assert.Equal(t, 2002, body.Code)
	})
}

func TestMutationRoutes_RequireToken(t *testing.T) {
	uc := &usecaseStub{}
	tokens := &mocks.MockTokenService{}
	e := newTestServer(uc, tokens)
	target := "/users/" + primitive.NewObjectID().Hex()

	t.Run("missing token", func(t *testing.T) {
		rec := doJSON(e, http.MethodPut, target, `{"name":"bob"}`, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		var body errorBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "unauthorized", body.Msg)
		assert.Equal(t, 2003, body.Code)
	})

	t.Run("rejected token", func(t *testing.T) {
		tokens.On("Verify", "bad-token").Return(primitive.NilObjectID, assert.AnError)

		rec := doJSON(e, http.MethodDelete, target, "", "bad-token")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bearer prefix tolerated", func(t *testing.T) {
		callerID := primitive.NewObjectID()
		tokens.On("Verify", "good-token").Return(callerID, nil)
		uc.delete = func(gotCaller primitive.ObjectID, idHex string) error {
			assert.Equal(t, callerID, gotCaller)

			return nil
		}

		rec := doJSON(e, http.MethodDelete, "/users/"+callerID.Hex(), "", "Bearer good-token")
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestDeleteRoute_Failures(t *testing.T) {
	tokens := &mocks.MockTokenService{}
	callerID := primitive.NewObjectID()
	tokens.On("Verify", "good-token").Return(callerID, nil)

	t.Run("foreign account", func(t *testing.T) {
		uc := &usecaseStub{}
		uc.delete = func(primitive.ObjectID, string) error {
			return domainerrors.ErrForbidden.WrapMessage("delete denied")
		}
		e := newTestServer(uc, tokens)

		rec := doJSON(e, http.MethodDelete, "/users/"+primitive.NewObjectID().Hex(), "", "good-token")
		require.Equal(t, http.StatusForbidden, rec.Code)

		var body errorBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 2004, body.Code)
	})

	t.Run("absent account", func(t *testing.T) {
		uc := &usecaseStub{}
		uc.delete = func(primitive.ObjectID, string) error {
			return domainerrors.ErrNotFound.WrapMessage("delete failed")
		}
		e := newTestServer(uc, tokens)

		rec := doJSON(e, http.MethodDelete, "/users/"+callerID.Hex(), "", "good-token")
		require.Equal(t, http.StatusNotFound, rec.Code)

		var body errorBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "account not found", body.Msg)
		assert.Equal(t, 2001, body.Code)
	})
}

func TestAvatarRoute_MissingFile(t *testing.T) {
	tokens := &mocks.MockTokenService{}
	tokens.On("Verify", "good-token").Return(primitive.NewObjectID(), nil)
	e := newTestServer(&usecaseStub{}, tokens)

	rec := doJSON(e, http.MethodPost, "/avatar", "", "good-token")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1009, body.Code)
}

func TestRecoveryRoute(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		uc := &usecaseStub{}
		uc.recover = func(email string) error {
			assert.Equal(t, "alice@example.com", email)

			return nil
		}
		e := newTestServer(uc, &mocks.MockTokenService{})

		rec := doJSON(e, http.MethodGet, "/password/alice@example.com", "", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown", func(t *testing.T) {
		uc := &usecaseStub{}
		uc.recover = func(string) error {
			return domainerrors.ErrNotFound.WrapMessage("recovery lookup failed")
		}
		e := newTestServer(uc, &mocks.MockTokenService{})

		rec := doJSON(e, http.MethodGet, "/password/ghost@example.com", "", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUnknownErrorCollapsesToInternal(t *testing.T) {
	uc := &usecaseStub{}
	uc.list = func() ([]*entity.User, error) { return nil, assert.AnError }
	e := newTestServer(uc, &mocks.MockTokenService{})

	rec := doJSON(e, http.MethodGet, "/users", "", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var body errorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body.Msg)
	assert.Equal(t, 2000, body.Code)
}

func TestHealthRoute(t *testing.T) {
	e := newTestServer(&usecaseStub{}, &mocks.MockTokenService{})

	rec := doJSON(e, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
