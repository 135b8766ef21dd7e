package income_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/alan-vieira/controle-familiar/internal/billing"
	"github.com/alan-vieira/controle-familiar/internal/income"
	"github.com/alan-vieira/controle-familiar/internal/participant"
)

func TestService_Declare(t *testing.T) {
	ownerID := uuid.New()
	owner := &participant.Participant{ID: ownerID, Name: "Ana", ClosingDay: 10}
	march := billing.Month{Year: 2025, M: time.March}

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := income.NewMockRepository(ctrl)
		dir := income.NewMockDirectory(ctrl)

		dir.EXPECT().Get(gomock.Any(), ownerID).Return(owner, nil)
		repo.EXPECT().
			UpsertIncome(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in *income.Income) error {
				in.ID = uuid.New()
				return nil
			})

		svc := income.NewService(repo, dir)

		got, err := svc.Declare(context.Background(), income.DeclareParams{
			ParticipantID: ownerID,
			Month:         march,
			Amount:        300_000,
		})
		require.NoError(t, err)
		assert.Equal(t, march, got.Month)
		assert.Equal(t, "Ana", got.ParticipantName)
	})

	t.Run("ZeroAmountAllowed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := income.NewMockRepository(ctrl)
		dir := income.NewMockDirectory(ctrl)

		dir.EXPECT().Get(gomock.Any(), ownerID).Return(owner, nil)
		repo.EXPECT().UpsertIncome(gomock.Any(), gomock.Any()).Return(nil)

		svc := income.NewService(repo, dir)

		_, err := svc.Declare(context.Background(), income.DeclareParams{
			ParticipantID: ownerID,
			Month:         march,
			Amount:        0,
		})
		require.NoError(t, err)
	})

	t.Run("NegativeAmountRejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := income.NewService(income.NewMockRepository(ctrl), income.NewMockDirectory(ctrl))

		_, err := svc.Declare(context.Background(), income.DeclareParams{
			ParticipantID: ownerID,
			Month:         march,
			Amount:        -1,
		})
		assert.ErrorIs(t, err, income.ErrInvalidAmount)
	})

	t.Run("UnknownParticipant", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := income.NewMockRepository(ctrl)
		dir := income.NewMockDirectory(ctrl)

		dir.EXPECT().Get(gomock.Any(), ownerID).Return(nil, participant.ErrNotFound)

		svc := income.NewService(repo, dir)

		_, err := svc.Declare(context.Background(), income.DeclareParams{
			ParticipantID: ownerID,
			Month:         march,
			Amount:        100,
		})
		assert.ErrorIs(t, err, participant.ErrNotFound)
	})
}
