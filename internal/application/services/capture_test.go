package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DanielPopoola/course-checkout/internal/application"
	"github.com/DanielPopoola/course-checkout/internal/application/services"
	"github.com/DanielPopoola/course-checkout/internal/application/services/testhelpers"
	"github.com/DanielPopoola/course-checkout/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CaptureServiceTestSuite struct {
	suite.Suite
	env *checkoutEnv
}

func TestCaptureServiceSuite(t *testing.T) {
	suite.Run(t, new(CaptureServiceTestSuite))
}

func (suite *CaptureServiceTestSuite) SetupTest() {
	suite.env = newCheckoutEnv(suite.T(), testhelpers.StaticLocker{Acquired: true})
}

func settledCapture(externalID string) *application.CaptureResult {
	return &application.CaptureResult{
		ExternalID: externalID,
		CaptureID:  "CAP-" + externalID,
		Status:     "COMPLETED",
		Payload:    domain.GatewayPayload{"id": externalID, "status": "COMPLETED"},
	}
}

func captureCommand(orderID int64, externalID string) services.CaptureCommand {
	return services.CaptureCommand{
		ExternalOrderID: externalID,
		OrderID:         orderID,
		Buyer:           testhelpers.DefaultBuyer,
	}
}

// ============================================================================
// HAPPY PATH TESTS
// ============================================================================

func (suite *CaptureServiceTestSuite) Test_Capture_CompletesAndGrants() {
	t := suite.T()
	env := suite.env
	order := env.orders.Seed(testhelpers.ProcessingOrder(testhelpers.DefaultBuyer, 7, "PP-1"))

	env.gateway.EXPECT().CaptureRemoteOrder(mock.Anything, "PP-1").Return(settledCapture("PP-1"), nil).Once()

	res, err := env.capture.Capture(context.Background(), captureCommand(order.ID, "PP-1"))
	require.NoError(t, err)
	assert.Equal(t, order.ID, res.OrderID)
	assert.Equal(t, "PP-1", res.ExternalOrderID)
	assert.False(t, res.AlreadyCompleted)

	stored := env.stored(t, order.ID)
	assert.Equal(t, domain.StatusCompleted, stored.Status)
	assert.Equal(t, "COMPLETED", stored.Payload["status"])
	assert.NotNil(t, stored.EntitlementsGrantedAt)

	assert.Equal(t, []testhelpers.Grant{{
		UserID:        testhelpers.DefaultBuyer,
		EntitlementID: "7",
		Source:        services.EntitlementSourcePurchase,
	}}, env.granter.Calls())
	assert.Equal(t, 1, env.notifier.Count())
}

func (suite *CaptureServiceTestSuite) Test_Capture_AlreadyCompletedSkipsGateway() {
	t := suite.T()
	env := suite.env
	order := env.orders.Seed(testhelpers.CompletedOrder(testhelpers.DefaultBuyer, 7, "PP-1"))

	res, err := env.capture.Capture(context.Background(), captureCommand(order.ID, "PP-1"))
	require.NoError(t, err)
	assert.True(t, res.AlreadyCompleted)
	assert.Equal(t, "PP-1", res.ExternalOrderID)

	env.gateway.AssertNotCalled(t, "CaptureRemoteOrder", mock.Anything, mock.Anything)
	assert.Empty(t, env.granter.Calls())
	assert.Zero(t, env.notifier.Count())
}

func (suite *CaptureServiceTestSuite) Test_Capture_GrantFailureStillCompletes() {
	t := suite.T()
	env := suite.env
	env.granter.Err = errors.New("entitlement store down")
	order := env.orders.Seed(testhelpers.ProcessingOrder(testhelpers.DefaultBuyer, 7, "PP-1"))

	env.gateway.EXPECT().CaptureRemoteOrder(mock.Anything, "PP-1").Return(settledCapture("PP-1"), nil).Once()

	_, err := env.capture.Capture(context.Background(), captureCommand(order.ID, "PP-1"))
	require.NoError(t, err)

	stored := env.stored(t, order.ID)
	assert.Equal(t, domain.StatusCompleted, stored.Status)
	assert.Nil(t, stored.EntitlementsGrantedAt)
	assert.Equal(t, 1, env.notifier.Count())
}

// ============================================================================
// REJECTION TESTS
// ============================================================================

func (suite *CaptureServiceTestSuite) Test_Capture_Rejections() {
	pending := testhelpers.ProcessingOrder(testhelpers.DefaultBuyer, 7, "")
	pending.Status = domain.StatusPending
	pending.ExternalID = nil
	pending.Fingerprint = "pending"

	failed := testhelpers.ProcessingOrder(testhelpers.DefaultBuyer, 7, "PP-FAILED")
	failed.Status = domain.StatusFailed
	failed.Fingerprint = "failed"

	tests := []struct {
		name     string
		seed     *domain.Order
		cmd      func(id int64) services.CaptureCommand
		wantCode string
	}{
		{
			name:     "missing external id",
			seed:     testhelpers.ProcessingOrder(testhelpers.DefaultBuyer, 7, "PP-1"),
			cmd:      func(id int64) services.CaptureCommand { return captureCommand(id, "  ") },
			wantCode: application.ErrCodeValidation,
		},
		{
			name:     "missing order id",
			seed:     testhelpers.ProcessingOrder(testhelpers.DefaultBuyer, 7, "PP-1"),
			cmd:      func(int64) services.CaptureCommand { return captureCommand(0, "PP-1") },
			wantCode: application.ErrCodeValidation,
		},
		{
			name:     "unknown order",
			seed:     testhelpers.ProcessingOrder(testhelpers.DefaultBuyer, 7, "PP-1"),
			cmd:      func(id int64) services.CaptureCommand { return captureCommand(id+100, "PP-1") },
			wantCode: application.ErrCodeOrderNotFound,
		},
		{
			name: "another buyer's order",
			seed: testhelpers.ProcessingOrder(testhelpers.DefaultBuyer, 7, "PP-1"),
			cmd: func(id int64) services.CaptureCommand {
				cmd := captureCommand(id, "PP-1")
				cmd.Buyer = 99
				return cmd
			},
			wantCode: application.ErrCodeOrderNotFound,
		},
		{
			name:     "transaction mismatch",
			seed:     testhelpers.ProcessingOrder(testhelpers.DefaultBuyer, 7, "PP-1"),
			cmd:      func(id int64) services.CaptureCommand { return captureCommand(id, "PP-OTHER") },
			wantCode: application.ErrCodeTransactionMismatch,
		},
		{
			name:     "failed order",
			seed:     failed,
			cmd:      func(id int64) services.CaptureCommand { return captureCommand(id, "PP-FAILED") },
			wantCode: application.ErrCodeOrderFailed,
		},
		{
			name:     "no remote order yet",
			seed:     pending,
			cmd:      func(id int64) services.CaptureCommand { return captureCommand(id, "PP-1") },
			wantCode: application.ErrCodeOrderNotReady,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			env := newCheckoutEnv(t, testhelpers.StaticLocker{Acquired: true})
			seeded := env.orders.Seed(tt.seed)
			before := env.stored(t, seeded.ID)

			_, err := env.capture.Capture(context.Background(), tt.cmd(seeded.ID))

			requireCode(t, err, tt.wantCode)
			env.gateway.AssertNotCalled(t, "CaptureRemoteOrder", mock.Anything, mock.Anything)
			assert.Equal(t, before.Status, env.stored(t, seeded.ID).Status)
			assert.Empty(t, env.granter.Calls())
		})
	}
}

// ============================================================================
// GATEWAY FAILURE TESTS
// ============================================================================

func (suite *CaptureServiceTestSuite) Test_Capture_GatewayFailureLeavesProcessing() {
	t := suite.T()
	env := suite.env
	order := env.orders.Seed(testhelpers.ProcessingOrder(testhelpers.DefaultBuyer, 7, "PP-1"))

	captureErr := application.NewRemoteFailureError("Order has not been approved", rejectedError{})
	captureErr.Code = "CAPTURE_NOT_COMPLETED"
	env.gateway.EXPECT().CaptureRemoteOrder(mock.Anything, "PP-1").Return(nil, captureErr).Once()

	_, err := env.capture.Capture(context.Background(), captureCommand(order.ID, "PP-1"))
	requireCode(t, err, "CAPTURE_NOT_COMPLETED")

	stored := env.stored(t, order.ID)
	assert.Equal(t, domain.StatusProcessing, stored.Status)
	assert.Empty(t, env.granter.Calls())
	assert.Zero(t, env.notifier.Count())
}

func (suite *CaptureServiceTestSuite) Test_Capture_FailureAfterConcurrentCompletionSucceeds() {
	t := suite.T()
	env := suite.env
	order := env.orders.Seed(testhelpers.ProcessingOrder(testhelpers.DefaultBuyer, 7, "PP-1"))

	env.gateway.EXPECT().
		CaptureRemoteOrder(mock.Anything, "PP-1").
		RunAndReturn(func(ctx context.Context, externalID string) (*application.CaptureResult, error) {
			// the webhook settles the order while the capture call is in flight
			_, err := env.completer.Complete(ctx, order.ID, externalID, domain.GatewayPayload{"source": "webhook"})
			require.NoError(t, err)
			return nil, application.NewRemoteFailureError("ORDER_ALREADY_CAPTURED", rejectedError{})
		}).
		Once()

	res, err := env.capture.Capture(context.Background(), captureCommand(order.ID, "PP-1"))
	require.NoError(t, err)
	assert.True(t, res.AlreadyCompleted)

	assert.Len(t, env.granter.Calls(), 1)
	assert.Equal(t, 1, env.notifier.Count())
}
