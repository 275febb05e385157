package service

import (
	"strings"
	"testing"

	"sabrosa/internal/repositories"
	"sabrosa/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrderService() (*OrderService, *CartService) {
	log := newTestLogger()
	catalogRepo := repositories.NewDefaultCatalogRepository(log)
	return NewOrderService(catalogRepo, log), NewCartService(catalogRepo, log)
}

func TestOrderService_BuildHandoff(t *testing.T) {
	t.Run("MessageMatchesOrderTemplate", func(t *testing.T) {
		orderSvc, cartSvc := newTestOrderService()
		session := newTestSession()

		// Two plain spelt loaves and one gluten-free with walnuts.
		_, err := cartSvc.AddToCart(session, 1, nil)
		require.NoError(t, err)
		_, err = cartSvc.AddToCart(session, 1, nil)
		require.NoError(t, err)
		_, err = cartSvc.AddToCart(session, 3, []string{"walnuts"})
		require.NoError(t, err)

		handoff := orderSvc.BuildHandoff(session)

		expected := "היי, אשמח להזמין:\n" +
			"- מחמצת כוסמין קלאסית x2: ₪60\n" +
			"- מחמצת מתערובת קמחים ללא גלוטן (תוספות: אגוזי מלך): ₪43\n" +
			"\n" +
			`סה"כ לתשלום: ₪103` + "\n" +
			"תודה!"
		assert.Equal(t, expected, handoff.Message)
	})

	t.Run("QuantitySuffixOmittedForSingleUnit", func(t *testing.T) {
		orderSvc, cartSvc := newTestOrderService()
		session := newTestSession()

		_, err := cartSvc.AddToCart(session, 2, nil)
		require.NoError(t, err)

		handoff := orderSvc.BuildHandoff(session)
		assert.Contains(t, handoff.Message, "- מחמצת חיטה מלאה: ₪30")
		assert.NotContains(t, handoff.Message, "x1")
	})

	t.Run("AddOnGroupJoinsNamesWithCommas", func(t *testing.T) {
		orderSvc, cartSvc := newTestOrderService()
		session := newTestSession()

		_, err := cartSvc.AddToCart(session, 1, []string{"walnuts", "olives"})
		require.NoError(t, err)

		handoff := orderSvc.BuildHandoff(session)
		assert.Contains(t, handoff.Message, "(תוספות: אגוזי מלך, זיתי קלמטה)")
	})

	t.Run("EmptyCartProducesSkeletonWithZeroTotal", func(t *testing.T) {
		orderSvc, _ := newTestOrderService()
		session := newTestSession()

		handoff := orderSvc.BuildHandoff(session)

		expected := "היי, אשמח להזמין:\n\n\n" + `סה"כ לתשלום: ₪0` + "\nתודה!"
		assert.Equal(t, expected, handoff.Message)
	})

	t.Run("UnknownAddOnDegradesToEmptyName", func(t *testing.T) {
		orderSvc, _ := newTestOrderService()
		session := newTestSession()

		// A line whose add-on id is not in the catalog; should never happen
		// through the service, but serialization must not fail on it.
		products := models.DefaultProducts()
		session.Lines = []*models.CartLine{{
			LineID:     "line-1",
			Product:    products[0],
			AddOns:     []string{"ghost"},
			Quantity:   1,
			TotalPrice: decimal.NewFromInt(35),
		}}

		handoff := orderSvc.BuildHandoff(session)
		assert.Contains(t, handoff.Message, "(תוספות: )")
	})

	t.Run("LinkTargetsBakeryNumberAndEncodesMessage", func(t *testing.T) {
		orderSvc, cartSvc := newTestOrderService()
		session := newTestSession()

		_, err := cartSvc.AddToCart(session, 1, nil)
		require.NoError(t, err)

		handoff := orderSvc.BuildHandoff(session)

		assert.True(t, strings.HasPrefix(handoff.Link, "https://wa.me/"+WhatsAppPhone+"?text="),
			"unexpected link: %s", handoff.Link)
		assert.NotContains(t, handoff.Link, "+", "spaces must encode as percent-20, not '+'")
		assert.Contains(t, handoff.Link, "%20")
		assert.NotContains(t, handoff.Link[len("https://wa.me/"+WhatsAppPhone+"?text="):], "\n")
	})
}
