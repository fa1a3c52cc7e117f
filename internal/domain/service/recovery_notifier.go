package service

import (
	"context"

	"passport/internal/domain/entity"
)

// RecoveryNotifier dispatches a password-recovery notification to an external
// collaborator (mail gateway, webhook). Dispatch outcome never changes the
// HTTP status of the recovery route.
type RecoveryNotifier interface {
	NotifyPasswordRecovery(ctx context.Context, user *entity.User) error
}
