package services_test

import (
	"context"
	"testing"

	"github.com/DanielPopoola/course-checkout/internal/application"
	"github.com/DanielPopoola/course-checkout/internal/application/services/testhelpers"
	"github.com/DanielPopoola/course-checkout/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryService_GetOrder(t *testing.T) {
	env := newCheckoutEnv(t, testhelpers.StaticLocker{Acquired: true})
	order := env.orders.Seed(testhelpers.ProcessingOrder(testhelpers.DefaultBuyer, 7, "PP-1"))

	got, err := env.query.GetOrder(context.Background(), testhelpers.DefaultBuyer, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, got.ID)

	_, err = env.query.GetOrder(context.Background(), 99, order.ID)
	requireCode(t, err, application.ErrCodeOrderNotFound)

	_, err = env.query.GetOrder(context.Background(), testhelpers.DefaultBuyer, order.ID+1)
	requireCode(t, err, application.ErrCodeOrderNotFound)
}

func TestQueryService_ListOrders(t *testing.T) {
	env := newCheckoutEnv(t, testhelpers.StaticLocker{Acquired: true})
	first := env.orders.Seed(testhelpers.ProcessingOrder(testhelpers.DefaultBuyer, 7, "PP-1"))
	second := env.orders.Seed(testhelpers.CompletedOrder(testhelpers.DefaultBuyer, 8, "PP-2"))
	env.orders.Seed(testhelpers.ProcessingOrder(99, 7, "PP-3"))

	buyer := testhelpers.DefaultBuyer

	t.Run("newest first for the buyer", func(t *testing.T) {
		orders, err := env.query.ListOrders(context.Background(), application.OrderFilter{BuyerID: &buyer})
		require.NoError(t, err)
		require.Len(t, orders, 2)
		assert.Equal(t, second.ID, orders[0].ID)
		assert.Equal(t, first.ID, orders[1].ID)
	})

	t.Run("by status", func(t *testing.T) {
		status := domain.StatusCompleted
		orders, err := env.query.ListOrders(context.Background(), application.OrderFilter{BuyerID: &buyer, Status: &status})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, second.ID, orders[0].ID)
	})

	t.Run("by course", func(t *testing.T) {
		course := int64(7)
		orders, err := env.query.ListOrders(context.Background(), application.OrderFilter{BuyerID: &buyer, CourseID: &course})
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, first.ID, orders[0].ID)
	})

	t.Run("limit", func(t *testing.T) {
		orders, err := env.query.ListOrders(context.Background(), application.OrderFilter{BuyerID: &buyer, Limit: 1})
		require.NoError(t, err)
		assert.Len(t, orders, 1)
	})

	t.Run("unknown status", func(t *testing.T) {
		status := domain.OrderStatus("shipped")
		_, err := env.query.ListOrders(context.Background(), application.OrderFilter{Status: &status})
		requireCode(t, err, application.ErrCodeValidation)
	})
}
