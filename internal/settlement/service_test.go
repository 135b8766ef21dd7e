package settlement_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/alan-vieira/controle-familiar/internal/expense"
	"github.com/alan-vieira/controle-familiar/internal/income"
	"github.com/alan-vieira/controle-familiar/internal/participant"
	"github.com/alan-vieira/controle-familiar/internal/settlement"
)

func TestService_Report(t *testing.T) {
	a := newParticipant("Ana")
	b := newParticipant("Bruno")

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := settlement.NewMockRepository(ctrl)
	repo.EXPECT().ListParticipants(gomock.Any()).Return([]*participant.Participant{a, b}, nil)
	repo.EXPECT().ListIncomes(gomock.Any(), march2025).Return([]*income.Income{
		incomeFor(a, march2025, 300_000),
		incomeFor(b, march2025, 100_000),
	}, nil)
	repo.EXPECT().ListExpenses(gomock.Any(), march2025).Return([]*expense.Expense{
		expenseBy(a, march2025, 80_000),
	}, nil)

	svc := settlement.NewService(repo)

	report, err := svc.Report(context.Background(), march2025)
	require.NoError(t, err)

	assert.Equal(t, int64(80_000), report.TotalExpenses)
	require.Len(t, report.Lines, 2)
	assert.Equal(t, int64(20_000), report.Lines[0].Balance)
}

func TestService_Report_DomainErrorsPassThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := settlement.NewMockRepository(ctrl)
	repo.EXPECT().ListParticipants(gomock.Any()).Return(nil, nil)
	repo.EXPECT().ListIncomes(gomock.Any(), march2025).Return(nil, nil)
	repo.EXPECT().ListExpenses(gomock.Any(), march2025).Return(nil, nil)

	svc := settlement.NewService(repo)

	_, err := svc.Report(context.Background(), march2025)
	assert.ErrorIs(t, err, settlement.ErrNoParticipants)
}

func TestService_Report_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := settlement.NewMockRepository(ctrl)
	repo.EXPECT().ListParticipants(gomock.Any()).Return(nil, errors.New("db down"))

	svc := settlement.NewService(repo)

	_, err := svc.Report(context.Background(), march2025)
	require.Error(t, err)
}

func TestService_Status_DefaultsToUnpaid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := settlement.NewMockRepository(ctrl)
	repo.EXPECT().GetStatus(gomock.Any(), march2025).Return(nil, nil)

	svc := settlement.NewService(repo)

	status, err := svc.Status(context.Background(), march2025)
	require.NoError(t, err)

	assert.Equal(t, march2025, status.Month)
	assert.False(t, status.Paid)
	assert.Nil(t, status.SettledAt)
}

func TestService_MarkPaid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	settledAt := time.Date(2025, time.April, 5, 0, 0, 0, 0, time.UTC)

	repo := settlement.NewMockRepository(ctrl)
	repo.EXPECT().
		UpsertStatus(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, status *settlement.Status) (*settlement.Status, error) {
			assert.True(t, status.Paid)
			assert.Equal(t, &settledAt, status.SettledAt)
			return status, nil
		})

	svc := settlement.NewService(repo)

	status, err := svc.MarkPaid(context.Background(), march2025, &settledAt)
	require.NoError(t, err)
	assert.True(t, status.Paid)
}

func TestService_MarkPaid_DefaultsDateToToday(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := settlement.NewMockRepository(ctrl)
	repo.EXPECT().
		UpsertStatus(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, status *settlement.Status) (*settlement.Status, error) {
			assert.True(t, status.Paid)
			require.NotNil(t, status.SettledAt)
			assert.WithinDuration(t, time.Now(), *status.SettledAt, 24*time.Hour)
			return status, nil
		})

	svc := settlement.NewService(repo)

	status, err := svc.MarkPaid(context.Background(), march2025, nil)
	require.NoError(t, err)
	assert.True(t, status.Paid)
	assert.NotNil(t, status.SettledAt)
}

func TestService_MarkUnpaid_ClearsSettlementDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := settlement.NewMockRepository(ctrl)
	repo.EXPECT().
		UpsertStatus(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, status *settlement.Status) (*settlement.Status, error) {
			assert.False(t, status.Paid)
			assert.Nil(t, status.SettledAt)
			return status, nil
		})

	svc := settlement.NewService(repo)

	status, err := svc.MarkUnpaid(context.Background(), march2025)
	require.NoError(t, err)
	assert.False(t, status.Paid)
}
