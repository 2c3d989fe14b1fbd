package bi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cosecha-api/internal/domain/bi"
	"github.com/jhoicas/cosecha-api/internal/domain/entity"
)

func TestRemainingDepotCapacity(t *testing.T) {
	cap10 := 10

	t.Run("sin límite devuelve nil", func(t *testing.T) {
		libre := bi.RemainingDepotCapacity(entity.Depot{ID: "d1"}, 5, "")
		assert.Nil(t, libre)
	})

	t.Run("descuenta lo reservado", func(t *testing.T) {
		libre := bi.RemainingDepotCapacity(entity.Depot{ID: "d1", Capacity: &cap10}, 7, "")
		require.NotNil(t, libre)
		assert.Equal(t, 3, *libre)
	})

	t.Run("la plaza propia no cuenta en contra", func(t *testing.T) {
		libre := bi.RemainingDepotCapacity(entity.Depot{ID: "d1", Capacity: &cap10}, 10, "d1")
		require.NotNil(t, libre)
		assert.Equal(t, 1, *libre)
	})
}

func TestRemainingQuantity(t *testing.T) {
	sold := bi.Sold{Quantity: dec(2000), Sold: dec(1800), Frequency: 20}

	t.Run("pedido nuevo", func(t *testing.T) {
		assert.Equal(t, "200", bi.RemainingQuantity(sold, dec(0)).String())
	})

	t.Run("al editar se devuelve el valor previo", func(t *testing.T) {
		// el ítem previo (value=5 × frecuencia 20) vuelve al total disponible
		assert.Equal(t, "300", bi.RemainingQuantity(sold, dec(5)).String())
	})
}
