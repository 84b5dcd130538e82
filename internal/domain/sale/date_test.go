package sale_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestor-tienda/internal/domain/sale"
)

func TestParseDate_Formatos(t *testing.T) {
	now := time.Date(2025, time.March, 10, 23, 59, 0, 0, time.UTC)
	want := time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{"04/03/25", "04/03/2025", "4/3/25", "2025-03-04", " 04/03/2025 "} {
		got, err := sale.ParseDate(in, now)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseDate_HoyEsValido(t *testing.T) {
	now := time.Date(2025, time.March, 10, 0, 0, 1, 0, time.UTC)
	_, err := sale.ParseDate("10/03/2025", now)
	assert.NoError(t, err)
}

func TestParseDate_Invalidas(t *testing.T) {
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	for _, in := range []string{"", "10-03-2025", "32/01/2025", "29/02/2025", "01/13/2025", "aa/bb/cc", "11/03/2025", "1/1", "0/0/0"} {
		_, err := sale.ParseDate(in, now)
		assert.Error(t, err, in)
	}
}

func TestCategorySet(t *testing.T) {
	set := sale.NewCategorySet(sale.DefaultCategories...)
	assert.True(t, set.Contains("ESCOLAR"))
	assert.True(t, set.Contains("Electrónica"))
	assert.True(t, set.Contains(" electronica "))
	assert.False(t, set.Contains("alimentos"))
	assert.False(t, set.Contains(""))
}
