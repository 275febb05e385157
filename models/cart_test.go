package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigKey(t *testing.T) {
	t.Run("OrderIndependent", func(t *testing.T) {
		a := ConfigKey(1, []string{"walnuts", "olives", "seeds"})
		b := ConfigKey(1, []string{"seeds", "walnuts", "olives"})
		assert.Equal(t, a, b)
	})

	t.Run("ProductDistinguishes", func(t *testing.T) {
		assert.NotEqual(t, ConfigKey(1, nil), ConfigKey(2, nil))
	})

	t.Run("AddOnSetDistinguishes", func(t *testing.T) {
		assert.NotEqual(t, ConfigKey(1, nil), ConfigKey(1, []string{"walnuts"}))
		assert.NotEqual(t, ConfigKey(1, []string{"walnuts"}), ConfigKey(1, []string{"olives"}))
	})

	t.Run("InputSliceIsNotReordered", func(t *testing.T) {
		addOns := []string{"walnuts", "olives"}
		ConfigKey(1, addOns)
		assert.Equal(t, []string{"walnuts", "olives"}, addOns)
	})
}

func TestSession(t *testing.T) {
	newLine := func(id string, productID, qty int, total int64, addOns ...string) *CartLine {
		return &CartLine{
			LineID:     id,
			Product:    &Product{ID: productID, Price: decimal.NewFromInt(30)},
			AddOns:     addOns,
			Quantity:   qty,
			TotalPrice: decimal.NewFromInt(total),
		}
	}

	t.Run("FindLineByKeySkipsGivenLine", func(t *testing.T) {
		session := &Session{Lines: []*CartLine{
			newLine("a", 1, 1, 30),
			newLine("b", 1, 1, 30),
		}}

		found := session.FindLineByKey(ConfigKey(1, nil), "a")
		require.NotNil(t, found)
		assert.Equal(t, "b", found.LineID)

		assert.Nil(t, session.FindLineByKey(ConfigKey(2, nil), ""))
	})

	t.Run("RemoveLinePreservesOrder", func(t *testing.T) {
		session := &Session{Lines: []*CartLine{
			newLine("a", 1, 1, 30),
			newLine("b", 2, 1, 30),
			newLine("c", 3, 1, 38),
		}}

		require.True(t, session.RemoveLine("b"))
		require.Len(t, session.Lines, 2)
		assert.Equal(t, "a", session.Lines[0].LineID)
		assert.Equal(t, "c", session.Lines[1].LineID)

		assert.False(t, session.RemoveLine("missing"))
	})

	t.Run("TotalsSumAcrossLines", func(t *testing.T) {
		session := &Session{Lines: []*CartLine{
			newLine("a", 1, 2, 60),
			newLine("b", 3, 1, 43, "walnuts"),
		}}

		assert.Equal(t, 3, session.TotalItemCount())
		assert.True(t, session.TotalPrice().Equal(decimal.NewFromInt(103)))
	})

	t.Run("EmptyCartTotalsAreZero", func(t *testing.T) {
		session := &Session{}
		assert.Equal(t, 0, session.TotalItemCount())
		assert.True(t, session.TotalPrice().IsZero())
	})
}
