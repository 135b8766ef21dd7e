package expense_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/alan-vieira/controle-familiar/internal/billing"
	"github.com/alan-vieira/controle-familiar/internal/expense"
	"github.com/alan-vieira/controle-familiar/internal/participant"
)

func TestService_Create(t *testing.T) {
	ownerID := uuid.New()
	owner := &participant.Participant{ID: ownerID, Name: "Ana", ClosingDay: 10}

	type testCase struct {
		name       string
		params     expense.CreateParams
		setupMocks func(repo *expense.MockRepository, dir *expense.MockDirectory)
		wantMonth  string
		wantMethod billing.Method
		wantErr    error
	}

	tests := []testCase{
		{
			name: "DebitStampedWithPurchaseMonth",
			params: expense.CreateParams{
				PurchaseDate:  time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC),
				Description:   "feira",
				Amount:        12_050,
				MethodRaw:     "debito",
				Category:      billing.CategoryAlimentacao,
				ParticipantID: ownerID,
			},
			setupMocks: func(repo *expense.MockRepository, dir *expense.MockDirectory) {
				dir.EXPECT().Get(gomock.Any(), ownerID).Return(owner, nil)
				repo.EXPECT().
					CreateExpense(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *expense.Expense) error {
						e.ID = uuid.New()
						e.CreatedAt = time.Now()
						return nil
					})
			},
			wantMonth:  "2025-03",
			wantMethod: billing.MethodDebit,
		},
		{
			name: "CreditDeferredToStatementMonth",
			params: expense.CreateParams{
				PurchaseDate:  time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC),
				Description:   "restaurante",
				Amount:        8_900,
				MethodRaw:     "cartao de credito",
				Category:      billing.CategoryRestauranteLanche,
				ParticipantID: ownerID,
			},
			setupMocks: func(repo *expense.MockRepository, dir *expense.MockDirectory) {
				dir.EXPECT().Get(gomock.Any(), ownerID).Return(owner, nil)
				repo.EXPECT().CreateExpense(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantMonth:  "2025-04",
			wantMethod: billing.MethodCredit,
		},
		{
			name: "FreeTextMethodFallsBackToOther",
			params: expense.CreateParams{
				PurchaseDate:  time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
				Description:   "boleto condominio",
				Amount:        95_000,
				MethodRaw:     "boleto",
				Category:      billing.CategoryMoradia,
				ParticipantID: ownerID,
			},
			setupMocks: func(repo *expense.MockRepository, dir *expense.MockDirectory) {
				dir.EXPECT().Get(gomock.Any(), ownerID).Return(owner, nil)
				repo.EXPECT().CreateExpense(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantMonth:  "2025-07",
			wantMethod: billing.MethodOther,
		},
		{
			name: "ZeroAmountRejected",
			params: expense.CreateParams{
				PurchaseDate:  time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC),
				Amount:        0,
				MethodRaw:     "pix",
				Category:      billing.CategoryAlimentacao,
				ParticipantID: ownerID,
			},
			wantErr: expense.ErrInvalidAmount,
		},
		{
			name: "NegativeAmountRejected",
			params: expense.CreateParams{
				PurchaseDate:  time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC),
				Amount:        -500,
				MethodRaw:     "pix",
				Category:      billing.CategoryAlimentacao,
				ParticipantID: ownerID,
			},
			wantErr: expense.ErrInvalidAmount,
		},
		{
			name: "UnknownParticipant",
			params: expense.CreateParams{
				PurchaseDate:  time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC),
				Amount:        1_000,
				MethodRaw:     "pix",
				Category:      billing.CategoryAlimentacao,
				ParticipantID: ownerID,
			},
			setupMocks: func(repo *expense.MockRepository, dir *expense.MockDirectory) {
				dir.EXPECT().Get(gomock.Any(), ownerID).Return(nil, participant.ErrNotFound)
			},
			wantErr: participant.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := expense.NewMockRepository(ctrl)
			dir := expense.NewMockDirectory(ctrl)

			if tt.setupMocks != nil {
				tt.setupMocks(repo, dir)
			}

			svc := expense.NewService(repo, dir)

			got, err := svc.Create(context.Background(), tt.params)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantMonth, got.CompetenceMonth.String())
			assert.Equal(t, tt.wantMethod, got.Method)
			assert.Equal(t, owner.Name, got.ParticipantName)
		})
	}
}

func TestService_Create_InvalidCategory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := expense.NewService(expense.NewMockRepository(ctrl), expense.NewMockDirectory(ctrl))

	_, err := svc.Create(context.Background(), expense.CreateParams{
		PurchaseDate:  time.Now(),
		Amount:        1_000,
		MethodRaw:     "pix",
		Category:      billing.Category("cripto"),
		ParticipantID: uuid.New(),
	})
	require.Error(t, err)
}

// Editing the purchase date or method moves the expense to a different
// competence month.
func TestService_Update_Restamps(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ownerID := uuid.New()
	owner := &participant.Participant{ID: ownerID, Name: "Ana", ClosingDay: 10}

	existingID := uuid.New()
	created := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

	repo := expense.NewMockRepository(ctrl)
	dir := expense.NewMockDirectory(ctrl)

	repo.EXPECT().GetExpense(gomock.Any(), existingID).Return(&expense.Expense{
		ID:              existingID,
		PurchaseDate:    time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC),
		Amount:          5_000,
		Method:          billing.MethodDebit,
		Category:        billing.CategoryAlimentacao,
		ParticipantID:   ownerID,
		CompetenceMonth: billing.Month{Year: 2025, M: time.March},
		CreatedAt:       created,
	}, nil)
	dir.EXPECT().Get(gomock.Any(), ownerID).Return(owner, nil)
	repo.EXPECT().UpdateExpense(gomock.Any(), gomock.Any()).Return(nil)

	svc := expense.NewService(repo, dir)

	got, err := svc.Update(context.Background(), existingID, expense.CreateParams{
		PurchaseDate:  time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC),
		Description:   "farmacia",
		Amount:        5_000,
		MethodRaw:     "credito",
		Category:      billing.CategorySaude,
		ParticipantID: ownerID,
	})
	require.NoError(t, err)

	assert.Equal(t, existingID, got.ID)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, "2025-04", got.CompetenceMonth.String())
}

func TestService_ImportBatch(t *testing.T) {
	ownerID := uuid.New()
	owner := &participant.Participant{ID: ownerID, Name: "Ana", ClosingDay: 10}

	day := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)

	params := []expense.CreateParams{
		{
			PurchaseDate:   day,
			Description:    "supermercado",
			RawDescription: "COMPRA SUPERMERCADO X",
			Amount:         15_000,
			MethodRaw:      "debito",
			Category:       billing.CategoryAlimentacao,
			ParticipantID:  ownerID,
		},
		{
			PurchaseDate:   day.AddDate(0, 0, 1),
			Description:    "padaria",
			RawDescription: "PADARIA DO ZE",
			Amount:         2_500,
			MethodRaw:      "debito",
			Category:       billing.CategoryAlimentacao,
			ParticipantID:  ownerID,
		},
	}

	t.Run("AllNewRowsCommitted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := expense.NewMockRepository(ctrl)
		dir := expense.NewMockDirectory(ctrl)
		itx := expense.NewMockImportTx(ctrl)

		dir.EXPECT().Get(gomock.Any(), ownerID).Return(owner, nil).Times(2)
		repo.EXPECT().BeginImport(gomock.Any(), day, day.AddDate(0, 0, 1)).Return(itx, nil)
		itx.EXPECT().FindDuplicates(gomock.Any(), params).Return(nil, nil)
		itx.EXPECT().CreateExpenses(gomock.Any(), gomock.Any()).Return(nil)
		itx.EXPECT().Commit().Return(nil)
		itx.EXPECT().Rollback().Return(nil)

		svc := expense.NewService(repo, dir)

		result, err := svc.ImportBatch(context.Background(), params)
		require.NoError(t, err)
		require.Len(t, result.Imported, 2)
		assert.Empty(t, result.Conflicts)
		assert.Equal(t, "2025-03", result.Imported[0].CompetenceMonth.String())
	})

	t.Run("ConflictBlocksWholeBatch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := expense.NewMockRepository(ctrl)
		dir := expense.NewMockDirectory(ctrl)
		itx := expense.NewMockImportTx(ctrl)

		existing := &expense.Expense{
			ID:             uuid.New(),
			PurchaseDate:   day,
			Amount:         15_000,
			RawDescription: "COMPRA SUPERMERCADO X",
			ParticipantID:  ownerID,
		}

		dir.EXPECT().Get(gomock.Any(), ownerID).Return(owner, nil).Times(2)
		repo.EXPECT().BeginImport(gomock.Any(), gomock.Any(), gomock.Any()).Return(itx, nil)
		itx.EXPECT().FindDuplicates(gomock.Any(), params).Return([]*expense.Expense{existing}, nil)
		itx.EXPECT().Rollback().Return(nil)

		svc := expense.NewService(repo, dir)

		result, err := svc.ImportBatch(context.Background(), params)
		require.NoError(t, err)
		assert.Empty(t, result.Imported)
		require.Len(t, result.Conflicts, 1)
		assert.Equal(t, existing.ID, result.Conflicts[0].Existing.ID)
		require.Len(t, result.New, 1)
		assert.Equal(t, "padaria", result.New[0].Description)
	})

	t.Run("EmptyBatchIsNoop", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc := expense.NewService(expense.NewMockRepository(ctrl), expense.NewMockDirectory(ctrl))

		result, err := svc.ImportBatch(context.Background(), nil)
		require.NoError(t, err)
		assert.Empty(t, result.Imported)
	})

	t.Run("BeginImportError", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := expense.NewMockRepository(ctrl)
		dir := expense.NewMockDirectory(ctrl)

		dir.EXPECT().Get(gomock.Any(), ownerID).Return(owner, nil).Times(2)
		repo.EXPECT().BeginImport(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("db down"))

		svc := expense.NewService(repo, dir)

		_, err := svc.ImportBatch(context.Background(), params)
		require.Error(t, err)
	})
}
