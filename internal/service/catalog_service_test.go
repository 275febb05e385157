package service

import (
	"testing"

	"sabrosa/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalogService() (*CatalogService, *CartService) {
	log := newTestLogger()
	catalogRepo := repositories.NewDefaultCatalogRepository(log)
	return NewCatalogService(catalogRepo, log), NewCartService(catalogRepo, log)
}

func TestCatalogService(t *testing.T) {
	t.Run("GetCatalogListsEverything", func(t *testing.T) {
		catalogSvc, _ := newTestCatalogService()

		view, err := catalogSvc.GetCatalog()
		require.NoError(t, err)
		assert.Len(t, view.Products, 3)
		assert.Len(t, view.AddOns, 4)
		assert.True(t, view.AddOnFee.Equal(decimal.NewFromInt(5)))
	})

	t.Run("CustomizationViewTracksDraftPrice", func(t *testing.T) {
		catalogSvc, cartSvc := newTestCatalogService()
		session := newTestSession()

		_, err := cartSvc.BeginCustomization(session, 3)
		require.NoError(t, err)

		view, err := catalogSvc.GetCustomizationView(session)
		require.NoError(t, err)
		assert.True(t, view.HasDraft)
		assert.True(t, view.DraftTotal.Equal(decimal.NewFromInt(38)))

		_, err = cartSvc.ToggleAddOn(session, "walnuts")
		require.NoError(t, err)

		view, err = catalogSvc.GetCustomizationView(session)
		require.NoError(t, err)
		assert.True(t, view.DraftTotal.Equal(decimal.NewFromInt(43)))
	})

	t.Run("AddOnSharesAreDisplayOnlySplit", func(t *testing.T) {
		catalogSvc, cartSvc := newTestCatalogService()
		session := newTestSession()

		_, err := cartSvc.BeginCustomization(session, 1)
		require.NoError(t, err)

		// Nothing selected yet: every add-on advertises the full fee.
		view, err := catalogSvc.GetCustomizationView(session)
		require.NoError(t, err)
		assert.Equal(t, "5", view.AddOnShares["walnuts"])
		assert.Equal(t, "5", view.AddOnShares["olives"])

		_, err = cartSvc.ToggleAddOn(session, "walnuts")
		require.NoError(t, err)
		_, err = cartSvc.ToggleAddOn(session, "olives")
		require.NoError(t, err)

		view, err = catalogSvc.GetCustomizationView(session)
		require.NoError(t, err)
		assert.Equal(t, "2.5", view.AddOnShares["walnuts"])
		assert.Equal(t, "2.5", view.AddOnShares["olives"])
		assert.Equal(t, "0", view.AddOnShares["seeds"])

		_, err = cartSvc.ToggleAddOn(session, "seeds")
		require.NoError(t, err)

		view, err = catalogSvc.GetCustomizationView(session)
		require.NoError(t, err)
		assert.Equal(t, "1.7", view.AddOnShares["walnuts"])

		// The split never changes what the draft would be charged.
		assert.True(t, view.DraftTotal.Equal(decimal.NewFromInt(35)))
	})
}
