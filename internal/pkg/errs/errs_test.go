//go:build unit

package errs_test

import (
	"errors"
	"testing"

	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestMark(t *testing.T) {
	t.Run("marked error answers to the sentinel via plain errors.Is", func(t *testing.T) {
		cause := errs.New("connection reset")

		err := errs.Mark(cause, errs.ErrPaymentGateway)

		assert.ErrorIs(t, err, errs.ErrPaymentGateway)
	})

	t.Run("original cause stays in the chain", func(t *testing.T) {
		cause := infra.RepositoryError{Kind: infra.KindTransient}

		err := errs.Mark(cause, errs.ErrTransientStore)

		assert.ErrorIs(t, err, errs.ErrTransientStore)
		assert.True(t, infra.IsKind(err, infra.KindTransient))
	})

	t.Run("nil cause yields the sentinel itself", func(t *testing.T) {
		err := errs.Mark(nil, errs.ErrBookingNotFound)

		assert.True(t, errors.Is(err, errs.ErrBookingNotFound))
	})
}
