package categorize_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/alan-vieira/controle-familiar/internal/billing"
	"github.com/alan-vieira/controle-familiar/internal/categorize"
)

func TestService_Suggest(t *testing.T) {
	testCases := []struct {
		name         string
		description  string
		setupMock    func(repo *categorize.MockRepository)
		wantCategory billing.Category
		wantFound    bool
		wantErr      bool
	}{
		{
			name:        "known pattern",
			description: "UBER *TRIP SAO PAULO",
			setupMock: func(repo *categorize.MockRepository) {
				repo.EXPECT().
					FindCategory(gomock.Any(), "UBER *TRIP SAO PAULO").
					Return("transporte", nil)
			},
			wantCategory: billing.CategoryTransporte,
			wantFound:    true,
		},
		{
			name:        "no match",
			description: "LOJA DESCONHECIDA",
			setupMock: func(repo *categorize.MockRepository) {
				repo.EXPECT().
					FindCategory(gomock.Any(), "LOJA DESCONHECIDA").
					Return("", nil)
			},
		},
		{
			name:        "stale mapping with retired category is ignored",
			description: "PADARIA",
			setupMock: func(repo *categorize.MockRepository) {
				repo.EXPECT().
					FindCategory(gomock.Any(), "PADARIA").
					Return("categoria_antiga", nil)
			},
		},
		{
			name:        "repository error",
			description: "UBER",
			setupMock: func(repo *categorize.MockRepository) {
				repo.EXPECT().
					FindCategory(gomock.Any(), "UBER").
					Return("", errors.New("db down"))
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := categorize.NewMockRepository(ctrl)
			tc.setupMock(repo)

			category, found, err := categorize.NewService(repo).
				Suggest(context.Background(), tc.description)

			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantFound, found)
			assert.Equal(t, tc.wantCategory, category)
		})
	}
}

func TestService_Learn(t *testing.T) {
	t.Run("stores trimmed pattern", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := categorize.NewMockRepository(ctrl)
		repo.EXPECT().
			CreateMapping(gomock.Any(), "uber", billing.CategoryTransporte).
			Return(nil)

		err := categorize.NewService(repo).
			Learn(context.Background(), "  uber  ", billing.CategoryTransporte)
		require.NoError(t, err)
	})

	t.Run("rejects blank pattern", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		err := categorize.NewService(categorize.NewMockRepository(ctrl)).
			Learn(context.Background(), "   ", billing.CategoryTransporte)
		assert.ErrorIs(t, err, categorize.ErrEmptyPattern)
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		err := categorize.NewService(categorize.NewMockRepository(ctrl)).
			Learn(context.Background(), "uber", billing.Category("viagens"))
		assert.ErrorIs(t, err, billing.ErrInvalidCategory)
	})
}
