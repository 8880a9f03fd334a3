package queries

import (
	"context"

	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"
)

type UserQueries interface {
	GetByID(ctx context.Context, id string) (*UserView, error)
}

type UserViewRepo interface {
	FindByID(ctx context.Context, id string) (*UserView, error)
}

type userQueriesImpl struct {
	repo UserViewRepo
}

func NewUserQueries(repo UserViewRepo) UserQueries {
	return &userQueriesImpl{repo: repo}
}

func (q *userQueriesImpl) GetByID(ctx context.Context, id string) (*UserView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}
	return view, nil
}
