package importer_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alan-vieira/controle-familiar/internal/billing"
	"github.com/alan-vieira/controle-familiar/internal/importer"
)

type suggesterFunc func(ctx context.Context, description string) (billing.Category, bool, error)

func (f suggesterFunc) Suggest(ctx context.Context, description string) (billing.Category, bool, error) {
	return f(ctx, description)
}

func TestService_Import(t *testing.T) {
	csv := `Data;Histórico;Valor
05/03/2025;SUPERMERCADO BOM PRECO;-152,30
12/03/2025;LOJA DESCONHECIDA;-48,90
`
	participantID := uuid.New()

	suggester := suggesterFunc(func(_ context.Context, description string) (billing.Category, bool, error) {
		if strings.Contains(description, "SUPERMERCADO") {
			return billing.CategoryAlimentacao, true, nil
		}

		return "", false, nil
	})

	svc := importer.NewService(suggester)
	params, err := svc.Import(context.Background(), importer.SourceExtrato, participantID, strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, "SUPERMERCADO BOM PRECO", params[0].Description)
	assert.Equal(t, "SUPERMERCADO BOM PRECO", params[0].RawDescription)
	assert.Equal(t, int64(15230), params[0].Amount)
	assert.Equal(t, "debito", params[0].MethodRaw)
	assert.Equal(t, billing.CategoryAlimentacao, params[0].Category)
	assert.Equal(t, participantID, params[0].ParticipantID)

	assert.Equal(t, billing.CategoryLazerOutros, params[1].Category)
}

func TestService_Import_SuggesterError(t *testing.T) {
	csv := `Data;Histórico;Valor
05/03/2025;SUPERMERCADO;-10,00
`
	suggester := suggesterFunc(func(context.Context, string) (billing.Category, bool, error) {
		return "", false, errors.New("db down")
	})

	_, err := importer.NewService(suggester).
		Import(context.Background(), importer.SourceExtrato, uuid.New(), strings.NewReader(csv))
	assert.Error(t, err)
}

func TestService_Import_NoSuggester(t *testing.T) {
	csv := `Data;Histórico;Valor
05/03/2025;SUPERMERCADO;-10,00
`
	params, err := importer.NewService(nil).
		Import(context.Background(), importer.SourceExtrato, uuid.New(), strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, billing.CategoryLazerOutros, params[0].Category)
}
