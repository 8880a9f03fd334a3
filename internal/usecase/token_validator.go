package usecase

import (
	"context"

	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/pkg/jwt"
	"stayhub/internal/usecase/shared"
)

// TokenValidator authenticates a request: the bearer token must verify
// against the identity provider's shared secret AND the subject must exist
// in the mirrored users table (provisioned via the identity webhook).
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (userID string, role string, err error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
	uow        shared.UnitOfWork
}

func NewTokenValidator(jwtService *jwt.Service, uow shared.UnitOfWork) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
		uow:        uow,
	}
}

func (v *tokenValidatorImpl) ValidateToken(ctx context.Context, token string) (string, string, error) {
	claims, err := v.jwtService.ValidateToken(token)
	if err != nil {
		return "", "", err
	}

	snap, err := v.uow.CommandReads().UserByID(ctx, claims.Subject)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return "", "", errs.ErrUserNotFound
		}
		return "", "", errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	return snap.ID, snap.Role, nil
}
