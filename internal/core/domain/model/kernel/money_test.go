package kernel_test

import (
	"testing"

	"foodorder/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("accepts non-negative amounts", func(t *testing.T) {
		m, err := kernel.NewMoney(250)
		require.NoError(t, err)
		assert.Equal(t, int64(250), m.Amount())

		zero, err := kernel.NewMoney(0)
		require.NoError(t, err)
		assert.Equal(t, int64(0), zero.Amount())
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(-1)
		require.Error(t, err)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	a, _ := kernel.NewMoney(100)
	b, _ := kernel.NewMoney(150)

	assert.Equal(t, int64(250), a.Add(b).Amount())
	assert.Equal(t, int64(300), a.MulQuantity(3).Amount())
	assert.True(t, b.GreaterThan(a))
	assert.False(t, a.GreaterThan(b))
}

func TestMoney_Percent(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		pct    int
		want   int64
	}{
		{"exact", 1000, 5, 50},
		{"rounds half up", 250, 5, 13},
		{"rounds down below half", 249, 5, 12},
		{"zero amount", 0, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := kernel.NewMoney(tt.amount)
			assert.Equal(t, tt.want, m.Percent(tt.pct).Amount())
		})
	}
}
