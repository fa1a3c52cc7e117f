// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"io"
	"log/slog"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"
	"passport/internal/domain/validate"
	"passport/internal/usecase"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	hasher    service.PasswordHasher
	tokens    service.TokenService
	avatars   service.AvatarStorage
	notifier  service.RecoveryNotifier
	validator *validate.Validator
	logger    *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Hasher    service.PasswordHasher
	Tokens    service.TokenService
	Avatars   service.AvatarStorage
	Notifier  service.RecoveryNotifier
	Validator *validate.Validator
	Logger    *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		hasher:    params.Hasher,
		tokens:    params.Tokens,
		avatars:   params.Avatars,
		notifier:  params.Notifier,
		validator: params.Validator,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete account registration process.
// Validation fully completes before any store access; the name uniqueness
// check strictly precedes the email check.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	if err := srv.validator.Registration(input.Name, input.Email); err != nil {
		srv.log(ctx).Warn("Registration input rejected", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.WithStack(err)
	}

	// Hash outside the transaction (bcrypt is CPU-bound).
	hashed, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	var registered *entity.User

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		if _, findErr := userRepo.FindByName(ctx, input.Name); findErr == nil {
			return domainerrors.ErrUserExists.WrapMessage("registration failed")
		} else if !errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(findErr, "failed to find account by name")
		}

		if _, findErr := userRepo.FindByEmail(ctx, input.Email); findErr == nil {
			return domainerrors.ErrEmailUsed.WrapMessage("registration failed")
		} else if !errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(findErr, "failed to find account by email")
		}

		newUser := &entity.User{
			ID:           primitive.NewObjectID(),
			Name:         input.Name,
			Email:        input.Email,
			PasswordHash: hashed,
		}

		if createErr := userRepo.Create(ctx, newUser); createErr != nil {
			// The pre-checks above are advisory; the store constraint is
			// authoritative under concurrent registration.
			return mapDuplicateErr(createErr, "failed to create account")
		}
		registered = newUser

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	token, err := srv.tokens.Issue(registered.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token after registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue token after registration")
	}
	srv.log(ctx).Debug("Registration completed", slog.Any("userID", registered.ID))

	return &usecase.RegisterOutput{User: registered, Token: token}, nil
}

// Login orchestrates the account login process.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrAccountNotFound.WrapMessage("login failed")
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrWrongPassword))

		return nil, domainerrors.ErrWrongPassword.WrapMessage("login failed")
	}

	token, err := srv.tokens.Issue(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token during login")
	}
	srv.log(ctx).Debug("Login completed", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{User: user, Token: token}, nil
}

// GetByID retrieves a single account. A well-formed id with no matching
// account is an empty result, not an error; only a malformed id is rejected.
func (srv *userService) GetByID(ctx context.Context, idHex string) (*entity.User, error) {
	id, err := srv.validator.ID(idHex)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	return user, nil
}

// List returns all non-deleted accounts.
func (srv *userService) List(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.userRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list accounts")
	}

	return users, nil
}

// Update applies a partial patch to an account. Ownership is confirmed before
// anything else, the patch is validated before any store access, and a
// password change requires the verifying old password.
func (srv *userService) Update(ctx context.Context, callerID primitive.ObjectID, idHex string, patch *usecase.UpdateInput) (*entity.User, error) {
	id, err := srv.validator.ID(idHex)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if id != callerID {
		srv.log(ctx).Warn("Update denied", slog.Any("callerID", callerID), slog.Any("targetID", id))

		return nil, domainerrors.ErrForbidden.WrapMessage("update denied")
	}

	if err := srv.validatePatch(patch); err != nil {
		return nil, errors.WithStack(err)
	}

	var newHash string
	if patch.Password != nil {
		newHash, err = srv.hasher.Hash(*patch.Password)
		if err != nil {
			return nil, errors.Wrap(err, "failed to hash new password")
		}
	}

	var updated *entity.User

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, findErr := userRepo.FindByID(ctx, id)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrUserNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("update failed")
			}

			return errors.Wrap(findErr, "failed to find account for update")
		}

		if patch.Password != nil {
			if patch.OldPassword == nil || !srv.hasher.Check(*patch.OldPassword, user.PasswordHash) {
				return domainerrors.ErrWrongOldPassword.WrapMessage("update failed")
			}
			user.PasswordHash = newHash
		}

		if patch.Name != nil {
			user.Name = *patch.Name
		}
		if patch.Email != nil {
			user.Email = *patch.Email
		}

		if updateErr := userRepo.Update(ctx, user); updateErr != nil {
			return mapDuplicateErr(updateErr, "failed to update account")
		}
		updated = user

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Update failed", slog.Any("userID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute update transaction")
	}
	srv.log(ctx).Debug("Update completed", slog.Any("userID", id))

	return updated, nil
}

// validatePatch checks only the fields supplied in the patch. Presence rules
// apply to registration, not to partial updates.
func (srv *userService) validatePatch(patch *usecase.UpdateInput) error {
	if patch.Name != nil {
		if err := srv.validator.Name(*patch.Name, false); err != nil {
			return err
		}
	}
	if patch.Email != nil {
		if err := srv.validator.Email(*patch.Email, false); err != nil {
			return err
		}
	}
	if patch.Password != nil {
		if err := srv.validator.Password(*patch.Password); err != nil {
			return err
		}
	}

	return nil
}

// Delete removes an account. The id format is checked even before existence:
// a malformed id and a well-formed-but-absent id are distinct failures.
func (srv *userService) Delete(ctx context.Context, callerID primitive.ObjectID, idHex string) error {
	id, err := srv.validator.ID(idHex)
	if err != nil {
		return errors.WithStack(err)
	}

	if id != callerID {
		srv.log(ctx).Warn("Delete denied", slog.Any("callerID", callerID), slog.Any("targetID", id))

		return domainerrors.ErrForbidden.WrapMessage("delete denied")
	}

	if err := srv.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrNotFound.WrapMessage("delete failed")
		}

		return errors.Wrap(err, "failed to delete account")
	}
	srv.log(ctx).Info("Account deleted", slog.Any("userID", id))

	return nil
}

// AttachAvatar stores the uploaded bytes and persists the reference on the
// caller's own account. Identity comes from the token, never from a parameter.
func (srv *userService) AttachAvatar(ctx context.Context, callerID primitive.ObjectID, filename string, r io.Reader) error {
	ref, err := srv.avatars.Store(ctx, callerID, filename, r)
	if err != nil {
		srv.log(ctx).Error("Failed to store avatar bytes", slog.Any("userID", callerID), slog.Any("error", err))

		return errors.Wrap(err, "failed to store avatar bytes")
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, findErr := userRepo.FindByID(ctx, callerID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrUserNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("avatar update failed")
			}

			return errors.Wrap(findErr, "failed to find account for avatar update")
		}

		user.Avatar = ref

		if updateErr := userRepo.Update(ctx, user); updateErr != nil {
			return errors.Wrap(updateErr, "failed to persist avatar reference")
		}

		return nil
	})

	if err != nil {
		return errors.Wrap(err, "failed to execute avatar update transaction")
	}
	srv.log(ctx).Debug("Avatar updated", slog.Any("userID", callerID), slog.String("avatar", ref))

	return nil
}

// RequestPasswordRecovery looks up the account and triggers recovery
// dispatch. Dispatch failures are logged, never surfaced: the visible outcome
// reflects only the lookup.
func (srv *userService) RequestPasswordRecovery(ctx context.Context, email string) error {
	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrNotFound.WrapMessage("recovery lookup failed")
		}

		return errors.Wrap(err, "failed to find account by email")
	}

	if notifyErr := srv.notifier.NotifyPasswordRecovery(ctx, user); notifyErr != nil {
		srv.log(ctx).Warn("Recovery dispatch failed", slog.Any("userID", user.ID), slog.Any("error", notifyErr))
	}

	return nil
}

// mapDuplicateErr converts store-level uniqueness violations into the
// client-visible conflict errors.
func mapDuplicateErr(err error, msg string) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateName):
		return domainerrors.ErrUserExists.WrapMessage(msg)
	case errors.Is(err, repository.ErrDuplicateEmail):
		return domainerrors.ErrEmailUsed.WrapMessage(msg)
	default:
		return errors.Wrap(err, msg)
	}
}
