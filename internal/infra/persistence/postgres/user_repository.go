// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gorm.io/gorm"
)

// userRepository implements the repository.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a repository.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// Create persists a new account row. Uniqueness violations are translated
// into the per-column duplicate sentinels so callers can report the right
// conflict even when their own pre-check raced.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if dupErr := mapUniqueViolation(err); dupErr != nil {
			return dupErr
		}

		return domainerrors.NewStoreError(err, "failed to create account")
	}

	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// FindByID retrieves a single non-deleted account by its id.
func (repo *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	var userM model.UserModel

	err := repo.db.WithContext(ctx).
		Where("id = ?", id.Hex()).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	return toUserDomain(&userM)
}

// FindByName retrieves a single non-deleted account by its display name.
func (repo *userRepository) FindByName(ctx context.Context, name string) (*entity.User, error) {
	var userM model.UserModel

	err := repo.db.WithContext(ctx).
		Where("name = ?", name).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by name")
	}

	return toUserDomain(&userM)
}

// FindByEmail retrieves a single non-deleted account by its email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel

	err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&userM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	return toUserDomain(&userM)
}

// List returns every non-deleted account ordered by creation time.
func (repo *userRepository) List(ctx context.Context) ([]*entity.User, error) {
	var models []model.UserModel

	err := repo.db.WithContext(ctx).
		Order("created_at").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list accounts")
	}

	users := make([]*entity.User, 0, len(models))
	for i := range models {
		user, mapErr := toUserDomain(&models[i])
		if mapErr != nil {
			return nil, mapErr
		}
		users = append(users, user)
	}

	return users, nil
}

// Update saves all columns of an existing account row.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", userM.ID).
		Updates(map[string]any{
			"name":          userM.Name,
			"email":         userM.Email,
			"password_hash": userM.PasswordHash,
			"avatar":        userM.Avatar,
		})
	if result.Error != nil {
		if dupErr := mapUniqueViolation(result.Error); dupErr != nil {
			return dupErr
		}

		return domainerrors.NewStoreError(result.Error, "failed to update account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// Delete soft-deletes the account row. Soft-deleted rows disappear from every
// query in this repository.
func (repo *userRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id.Hex()).
		Delete(&model.UserModel{})
	if result.Error != nil {
		return domainerrors.NewStoreError(result.Error, "failed to delete account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) (*entity.User, error) {
	if data == nil {
		return nil, nil
	}

	id, err := primitive.ObjectIDFromHex(data.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "malformed account id in store: %s", data.ID)
	}

	return &entity.User{
		ID:           id,
		Name:         data.Name,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Avatar:       data.Avatar,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}, nil
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:           data.ID.Hex(),
		Name:         data.Name,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Avatar:       data.Avatar,
	}
}
