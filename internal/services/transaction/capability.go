package transaction

import (
	"context"

	apperrors "paywallet/internal/errors"
	"paywallet/internal/models"
	"paywallet/internal/repositories"
)

// capability is how a role takes part in cash-in and cash-out.
type capability int

const (
	capabilityForbidden capability = iota
	// capabilitySelfService moves money on the actor's own wallet.
	capabilitySelfService
	// capabilityAgentMediated moves money between the actor and a named user.
	capabilityAgentMediated
)

func capabilityFor(user *models.User) (capability, error) {
	switch user.Role {
	case models.RoleUser:
		return capabilitySelfService, nil
	case models.RoleAgent:
		if user.IsApprovedAgent() {
			return capabilityAgentMediated, nil
		}
		return capabilityForbidden, errAgentNotApproved
	case models.RoleAdmin, models.RoleSuperAdmin:
		return capabilityForbidden, errAdminForbidden
	default:
		return capabilityForbidden, apperrors.ErrForbiddenRole
	}
}

// counterpartErrors describes the errors raised while resolving the other side
// of an agent-mediated operation.
type counterpartErrors struct {
	missing  *apperrors.DomainError
	notFound *apperrors.DomainError
}

var (
	cashInCounterpart = counterpartErrors{
		missing:  apperrors.ErrReceiverRequired,
		notFound: apperrors.ErrReceiverNotFound,
	}
	cashOutCounterpart = counterpartErrors{
		missing:  apperrors.ErrFromIDRequired,
		notFound: apperrors.ErrUserNotFound,
	}
)

// resolveCounterpart returns the customer whose wallet is on the far side of
// the operation. For self-service it is the actor.
func (s *service) resolveCounterpart(ctx context.Context, tx *repositories.Store, actor *models.User, c capability, id *uint, errs counterpartErrors) (*models.User, error) {
	if c == capabilitySelfService {
		return actor, nil
	}
	if id == nil || *id == 0 {
		return nil, errs.missing
	}
	if *id == actor.ID {
		return nil, apperrors.ErrSelfTransfer
	}
	user, err := tx.Users().GetByID(ctx, *id)
	if err != nil {
		return nil, mapUserErr(err, errs.notFound)
	}
	return user, nil
}
