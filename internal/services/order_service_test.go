package services

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"menulink/internal/models"
	"menulink/internal/repository"
	"menulink/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pickupRequest() models.OrderRequest {
	return models.OrderRequest{
		CustomerName:  "Ana",
		DeliveryType:  models.DeliveryPickup,
		ArrivalTime:   "19:00",
		PaymentMethod: models.PaymentCash,
		HasChange:     true,
	}
}

func TestCheckoutBuildsLinkAndClearsCart(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, false)
	h.remote.handle("GET /menu/public/la-casa", jsonReply(publicMenuJSON))

	h.carts.Add(ctx, "s1", models.Product{ID: "p1", Name: "Taco", Price: 15}, 2)

	res, err := h.checkout.Checkout(ctx, "s1", "la-casa", pickupRequest())
	require.NoError(t, err)
	h.tracker.Wait()

	assert.Equal(t, int64(30), res.Total)
	assert.False(t, res.Pushed)
	assert.Contains(t, res.Message, "• 2x Taco - $30")
	assert.Contains(t, res.Message, "Recoger en local")

	u, err := url.Parse(res.WhatsAppURL)
	require.NoError(t, err)
	assert.Equal(t, "/573001234567", u.Path)
	assert.Equal(t, res.Message, u.Query().Get("text"))

	assert.Empty(t, h.carts.Items(ctx, "s1"))
	_, persisted := h.redis.Value("cart:s1")
	assert.False(t, persisted)

	stored, err := h.orders.GetByNumber(ctx, res.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, "la-casa", stored.BusinessSlug)
	assert.Equal(t, res.Message, stored.Message)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, int64(30), stored.Items[0].Subtotal)

	assert.Contains(t, h.remote.eventTypes(), "checkout_submit")
}

func TestCheckoutIgnoresClientItems(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, false)
	h.remote.handle("GET /menu/public/la-casa", jsonReply(publicMenuJSON))
	h.carts.Add(ctx, "s1", models.Product{ID: "p1", Name: "Taco", Price: 15}, 1)

	req := pickupRequest()
	req.Items = []models.CartItem{{ID: "x", Name: "Free lunch", Price: 0, Quantity: 100}}

	res, err := h.checkout.Checkout(ctx, "s1", "la-casa", req)
	require.NoError(t, err)
	h.tracker.Wait()

	assert.Equal(t, int64(15), res.Total)
	assert.NotContains(t, res.Message, "Free lunch")
}

func TestCheckoutEmptyCart(t *testing.T) {
	h := newHarness(t, false)

	_, err := h.checkout.Checkout(context.Background(), "s1", "la-casa", pickupRequest())

	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutValidationKeepsCart(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, false)
	h.carts.Add(ctx, "s1", models.Product{ID: "p1", Name: "Taco", Price: 15}, 2)

	req := pickupRequest()
	req.HasChange = false
	req.CashAmount = 20

	_, err := h.checkout.Checkout(ctx, "s1", "la-casa", req)

	var verr validation.Errors
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr, "cashAmount")
	assert.Len(t, h.carts.Items(ctx, "s1"), 1)
}

func TestCheckoutUnknownMenu(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, false)
	h.carts.Add(ctx, "s1", models.Product{ID: "p1", Name: "Taco", Price: 15}, 1)

	_, err := h.checkout.Checkout(ctx, "s1", "missing", pickupRequest())

	assert.ErrorIs(t, err, ErrMenuNotFound)
	assert.Len(t, h.carts.Items(ctx, "s1"), 1)
}

func TestCheckoutWithoutPhone(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, false)
	h.remote.handle("GET /menu/public/la-casa", jsonReply(`{"menu":[],"business":{"name":"La Casa"}}`))
	h.carts.Add(ctx, "s1", models.Product{ID: "p1", Name: "Taco", Price: 15}, 1)

	_, err := h.checkout.Checkout(ctx, "s1", "la-casa", pickupRequest())

	assert.ErrorIs(t, err, ErrNoBusinessPhone)
}

func TestCheckoutPushesThroughGateway(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, true)
	h.remote.handle("GET /menu/public/la-casa", jsonReply(publicMenuJSON))
	h.carts.Add(ctx, "s1", models.Product{ID: "p1", Name: "Taco", Price: 15}, 1)

	res, err := h.checkout.Checkout(ctx, "s1", "la-casa", pickupRequest())
	require.NoError(t, err)
	h.tracker.Wait()

	assert.True(t, res.Pushed)
	require.Len(t, h.gateway.sent, 1)
	assert.Equal(t, res.Message, h.gateway.sent[0])
	assert.Equal(t, "+57 300 123 4567", h.gateway.phone)
}

func TestCheckoutGatewayFailureStillSucceeds(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, true)
	h.gateway.err = errors.New("device offline")
	h.remote.handle("GET /menu/public/la-casa", jsonReply(publicMenuJSON))
	h.carts.Add(ctx, "s1", models.Product{ID: "p1", Name: "Taco", Price: 15}, 1)

	res, err := h.checkout.Checkout(ctx, "s1", "la-casa", pickupRequest())
	require.NoError(t, err)
	h.tracker.Wait()

	assert.False(t, res.Pushed)
	assert.NotEmpty(t, res.WhatsAppURL)
}

func TestMerchantOrders(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, false)
	h.remote.handle("GET /menu/public/la-casa", jsonReply(publicMenuJSON))
	h.remote.handle("GET /usuarios/me", jsonReply(`{"user":{"id":"u1","slug":"la-casa"}}`))
	require.NoError(t, h.redis.Set(ctx, "token:m1", "jwt", 0).Err())

	h.carts.Add(ctx, "c1", models.Product{ID: "p1", Name: "Taco", Price: 15}, 1)
	_, err := h.checkout.Checkout(ctx, "c1", "la-casa", pickupRequest())
	require.NoError(t, err)
	h.tracker.Wait()

	orders, err := h.checkout.MerchantOrders(ctx, "m1", 10)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Ana", orders[0].CustomerName)

	_, err = h.checkout.MerchantOrders(ctx, "anonymous", 10)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestUpdateStatusChecksOwnership(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, false)
	h.remote.handle("GET /menu/public/la-casa", jsonReply(publicMenuJSON))
	h.remote.handle("GET /usuarios/me", func(w http.ResponseWriter, r *http.Request) {
		slug := "la-casa"
		if r.Header.Get("Authorization") == "Bearer other" {
			slug = "otro"
		}
		w.Write([]byte(`{"user":{"id":"u1","slug":"` + slug + `"}}`))
	})
	require.NoError(t, h.redis.Set(ctx, "token:m1", "jwt", 0).Err())
	require.NoError(t, h.redis.Set(ctx, "token:m2", "other", 0).Err())

	h.carts.Add(ctx, "c1", models.Product{ID: "p1", Name: "Taco", Price: 15}, 1)
	res, err := h.checkout.Checkout(ctx, "c1", "la-casa", pickupRequest())
	require.NoError(t, err)
	h.tracker.Wait()

	_, err = h.checkout.UpdateStatus(ctx, "m2", res.OrderNumber, models.OrderDelivered)
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)

	_, err = h.checkout.UpdateStatus(ctx, "m1", res.OrderNumber, "lost")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	updated, err := h.checkout.UpdateStatus(ctx, "m1", res.OrderNumber, models.OrderDelivered)
	require.NoError(t, err)
	assert.Equal(t, "delivered", updated.Status)

	stored, err := h.orders.GetByNumber(ctx, res.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, "delivered", stored.Status)
}

func TestCheckoutKeepsItemsAddedDuringCheckout(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, false)
	agua := models.Product{ID: "p9", Name: "Agua", Price: 5}
	h.remote.handle("GET /menu/public/la-casa", func(w http.ResponseWriter, r *http.Request) {
		h.carts.Add(ctx, "s1", agua, 1)
		h.carts.Add(ctx, "s1", models.Product{ID: "p1", Name: "Taco", Price: 15}, 1)
		w.Write([]byte(publicMenuJSON))
	})
	h.carts.Add(ctx, "s1", models.Product{ID: "p1", Name: "Taco", Price: 15}, 2)

	res, err := h.checkout.Checkout(ctx, "s1", "la-casa", pickupRequest())
	require.NoError(t, err)
	h.tracker.Wait()

	assert.NotContains(t, res.Message, "Agua")
	assert.Contains(t, res.Message, "• 2x Taco - $30")

	left := h.carts.Items(ctx, "s1")
	require.Len(t, left, 2)
	assert.Equal(t, "p1", left[0].ID)
	assert.Equal(t, 1, left[0].Quantity)
	assert.Equal(t, "p9", left[1].ID)
	assert.Equal(t, 1, left[1].Quantity)

	raw, ok := h.redis.Value("cart:s1")
	require.True(t, ok)
	assert.Contains(t, raw, `"p9"`)
}
