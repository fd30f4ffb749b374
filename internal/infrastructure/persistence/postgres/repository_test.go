package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/DanielPopoola/course-checkout/internal/application"
	"github.com/DanielPopoola/course-checkout/internal/application/services/testhelpers"
	"github.com/DanielPopoola/course-checkout/internal/domain"
	"github.com/DanielPopoola/course-checkout/internal/infrastructure/persistence/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RepositoryTestSuite struct {
	suite.Suite
	testDB       *testhelpers.TestDatabase
	orders       *postgres.OrderRepository
	courses      *postgres.CourseRepository
	entitlements *postgres.EntitlementRepository
}

func TestRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration tests in short mode")
	}
	suite.Run(t, new(RepositoryTestSuite))
}

func (suite *RepositoryTestSuite) SetupSuite() {
	suite.testDB = testhelpers.SetupTestDatabase(suite.T())
	suite.orders = postgres.NewOrderRepository(suite.testDB.DB)
	suite.courses = postgres.NewCourseRepository(suite.testDB.DB)
	suite.entitlements = postgres.NewEntitlementRepository(suite.testDB.DB, testhelpers.DiscardLogger())
}

func (suite *RepositoryTestSuite) TearDownSuite() {
	suite.testDB.Cleanup(suite.T())
}

func (suite *RepositoryTestSuite) TearDownTest() {
	suite.testDB.CleanTables(suite.T())
}

func (suite *RepositoryTestSuite) TestPing() {
	suite.NoError(suite.testDB.DB.Ping(context.Background()))
}

func (suite *RepositoryTestSuite) newPendingOrder(buyer domain.BuyerID) *domain.Order {
	course := testhelpers.DefaultCourse()
	fp := domain.Fingerprint(buyer, course.ID, testhelpers.DefaultGateway, time.Now())
	order, err := domain.NewOrder(fp, buyer, course.ID, testhelpers.DefaultGateway, course.Price)
	suite.Require().NoError(err)
	return order
}

func (suite *RepositoryTestSuite) insert(order *domain.Order) int64 {
	id, inserted, err := suite.orders.InsertIfAbsent(context.Background(), order)
	suite.Require().NoError(err)
	suite.Require().True(inserted)
	return id
}

// ============================================================================
// ORDERS
// ============================================================================

func (suite *RepositoryTestSuite) Test_InsertIfAbsent_RoundTrip() {
	ctx := context.Background()
	t := suite.T()

	id := suite.insert(suite.newPendingOrder(testhelpers.DefaultBuyer))

	saved, err := suite.orders.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, saved.Status)
	assert.Equal(t, testhelpers.DefaultBuyer, saved.BuyerID)
	assert.Equal(t, "49.99", saved.Amount.StringFixed(2))
	assert.Equal(t, "GBP", saved.Currency)
	assert.Nil(t, saved.ExternalID)
	assert.Nil(t, saved.Payload)
	assert.Nil(t, saved.EntitlementsGrantedAt)
}

func (suite *RepositoryTestSuite) Test_InsertIfAbsent_DuplicateFingerprintReturnsWinner() {
	ctx := context.Background()
	t := suite.T()

	first := suite.insert(suite.newPendingOrder(testhelpers.DefaultBuyer))

	id, inserted, err := suite.orders.InsertIfAbsent(ctx, suite.newPendingOrder(testhelpers.DefaultBuyer))
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.Equal(t, first, id)
}

func (suite *RepositoryTestSuite) Test_InsertIfAbsent_ConcurrentReservationsKeepOneRow() {
	ctx := context.Background()
	t := suite.T()

	const workers = 10
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ids      = make(map[int64]struct{})
		inserted int
	)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, ok, err := suite.orders.InsertIfAbsent(ctx, suite.newPendingOrder(testhelpers.DefaultBuyer))
			assert.NoError(t, err)
			mu.Lock()
			defer mu.Unlock()
			ids[id] = struct{}{}
			if ok {
				inserted++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, inserted)
	assert.Len(t, ids, 1)
}

func (suite *RepositoryTestSuite) Test_AnonymousOrderStoresNullUser() {
	ctx := context.Background()
	t := suite.T()

	id := suite.insert(suite.newPendingOrder(domain.AnonymousBuyer))

	var userID *int64
	err := suite.testDB.DB.Pool.QueryRow(ctx, `SELECT user_id FROM orders WHERE id = $1`, id).Scan(&userID)
	require.NoError(t, err)
	assert.Nil(t, userID)

	saved, err := suite.orders.FindByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, saved.BuyerID.IsAnonymous())
}

func (suite *RepositoryTestSuite) Test_CompareAndSetStatus_BindsExternalIDAndPayload() {
	ctx := context.Background()
	t := suite.T()

	id := suite.insert(suite.newPendingOrder(testhelpers.DefaultBuyer))
	ext := "5O190127TN364715T"

	ok, err := suite.orders.CompareAndSetStatus(ctx, id, domain.StatusPending, domain.StatusProcessing, &ext,
		domain.GatewayPayload{"id": ext, "status": "CREATED"})
	require.NoError(t, err)
	assert.True(t, ok)

	saved, err := suite.orders.FindByExternalID(ctx, ext)
	require.NoError(t, err)
	assert.Equal(t, id, saved.ID)
	assert.Equal(t, domain.StatusProcessing, saved.Status)
	assert.Equal(t, "CREATED", saved.Payload.String("status"))

	// nil payload keeps the stored document
	ok, err = suite.orders.CompareAndSetStatus(ctx, id, domain.StatusProcessing, domain.StatusCompleted, &ext, nil)
	require.NoError(t, err)
	assert.True(t, ok)

	saved, err = suite.orders.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, saved.Status)
	assert.Equal(t, "CREATED", saved.Payload.String("status"))
}

func (suite *RepositoryTestSuite) Test_CompareAndSetStatus_StaleExpectationLoses() {
	ctx := context.Background()
	t := suite.T()

	id := suite.insert(suite.newPendingOrder(testhelpers.DefaultBuyer))

	ok, err := suite.orders.CompareAndSetStatus(ctx, id, domain.StatusProcessing, domain.StatusCompleted, nil, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	saved, err := suite.orders.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, saved.Status)
}

func (suite *RepositoryTestSuite) Test_CompareAndSetStatus_RejectsDifferentExternalID() {
	ctx := context.Background()
	t := suite.T()

	id := suite.insert(suite.newPendingOrder(testhelpers.DefaultBuyer))
	ext := "EXT-1"
	other := "EXT-2"

	ok, err := suite.orders.CompareAndSetStatus(ctx, id, domain.StatusPending, domain.StatusProcessing, &ext, nil)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = suite.orders.CompareAndSetStatus(ctx, id, domain.StatusProcessing, domain.StatusCompleted, &other, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	saved, err := suite.orders.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, ext, *saved.ExternalID)
	assert.Equal(t, domain.StatusProcessing, saved.Status)
}

func (suite *RepositoryTestSuite) Test_CompareAndSetStatus_OnlyOneConcurrentWinner() {
	ctx := context.Background()
	t := suite.T()

	id := suite.insert(suite.newPendingOrder(testhelpers.DefaultBuyer))
	ext := "EXT-RACE"
	ok, err := suite.orders.CompareAndSetStatus(ctx, id, domain.StatusPending, domain.StatusProcessing, &ext, nil)
	require.NoError(t, err)
	require.True(t, ok)

	const workers = 10
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			won, err := suite.orders.CompareAndSetStatus(ctx, id, domain.StatusProcessing, domain.StatusCompleted, &ext, nil)
			assert.NoError(t, err)
			if won {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}

func (suite *RepositoryTestSuite) Test_FindByID_NotFound() {
	_, err := suite.orders.FindByID(context.Background(), 9999)
	suite.ErrorIs(err, domain.ErrOrderNotFound)

	_, err = suite.orders.FindByExternalID(context.Background(), "missing")
	suite.ErrorIs(err, domain.ErrOrderNotFound)
}

func (suite *RepositoryTestSuite) Test_FindUngranted_AndMarkGranted() {
	ctx := context.Background()
	t := suite.T()

	id := suite.insert(suite.newPendingOrder(testhelpers.DefaultBuyer))
	ok, err := suite.orders.CompareAndSetStatus(ctx, id, domain.StatusPending, domain.StatusCompleted, nil, nil)
	require.NoError(t, err)
	require.True(t, ok)

	// pending orders are never picked up
	suite.insert(suite.newPendingOrder(99))

	ungranted, err := suite.orders.FindUngranted(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, ungranted, 1)
	assert.Equal(t, id, ungranted[0].ID)

	require.NoError(t, suite.orders.MarkEntitlementsGranted(ctx, id))

	ungranted, err = suite.orders.FindUngranted(ctx, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, ungranted)

	err = suite.orders.MarkEntitlementsGranted(ctx, 9999)
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func (suite *RepositoryTestSuite) Test_FindUngranted_SkipsFreshCompletions() {
	ctx := context.Background()
	t := suite.T()

	fresh := suite.insert(suite.newPendingOrder(testhelpers.DefaultBuyer))
	old := suite.insert(suite.newPendingOrder(99))
	for _, id := range []int64{fresh, old} {
		ok, err := suite.orders.CompareAndSetStatus(ctx, id, domain.StatusPending, domain.StatusCompleted, nil, nil)
		require.NoError(t, err)
		require.True(t, ok)
	}
	_, err := suite.testDB.DB.Pool.Exec(ctx, `UPDATE orders SET updated_at = NOW() - interval '10 minutes' WHERE id = $1`, old)
	require.NoError(t, err)

	ungranted, err := suite.orders.FindUngranted(ctx, 2*time.Minute, 10)
	require.NoError(t, err)
	require.Len(t, ungranted, 1)
	assert.Equal(t, old, ungranted[0].ID)
}

func (suite *RepositoryTestSuite) Test_List_Filters() {
	ctx := context.Background()
	t := suite.T()

	mine := suite.insert(suite.newPendingOrder(testhelpers.DefaultBuyer))
	suite.insert(suite.newPendingOrder(7))
	ok, err := suite.orders.CompareAndSetStatus(ctx, mine, domain.StatusPending, domain.StatusFailed, nil, nil)
	require.NoError(t, err)
	require.True(t, ok)

	buyer := testhelpers.DefaultBuyer
	orders, err := suite.orders.List(ctx, application.OrderFilter{BuyerID: &buyer})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, mine, orders[0].ID)

	pending := domain.StatusPending
	gateway := testhelpers.DefaultGateway
	orders, err = suite.orders.List(ctx, application.OrderFilter{Status: &pending, Gateway: &gateway})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, domain.BuyerID(7), orders[0].BuyerID)

	orders, err = suite.orders.List(ctx, application.OrderFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

// ============================================================================
// COURSES
// ============================================================================

func (suite *RepositoryTestSuite) Test_Resolve_ByCourseIDAndKey() {
	ctx := context.Background()
	t := suite.T()

	row := testhelpers.DefaultCourseRow()
	row.Entitlements = []string{"go-fundamentals", "go-community"}
	suite.testDB.SeedCourse(t, row)

	byID, err := suite.courses.Resolve(ctx, "7")
	require.NoError(t, err)
	assert.Equal(t, int64(7), byID.ID)
	assert.Equal(t, "49.99", byID.Price.Value())
	assert.Equal(t, []string{"paypal"}, byID.EnabledGateways)
	assert.Equal(t, []string{"go-fundamentals", "go-community"}, byID.Entitlements)
	assert.True(t, byID.IsPurchasable())

	byKey, err := suite.courses.Resolve(ctx, "go-fundamentals")
	require.NoError(t, err)
	assert.Equal(t, byID.ID, byKey.ID)
}

func (suite *RepositoryTestSuite) Test_Resolve_ByRowID() {
	ctx := context.Background()
	t := suite.T()

	row := testhelpers.DefaultCourseRow()
	row.CourseID = 1001
	suite.testDB.SeedCourse(t, row)

	// the first row gets id 1 after RESTART IDENTITY
	course, err := suite.courses.Resolve(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(1001), course.ID)
	assert.Empty(t, course.Entitlements)
	assert.Equal(t, []string{"1001"}, course.EntitlementIDs())
}

func (suite *RepositoryTestSuite) Test_Resolve_Unknown() {
	_, err := suite.courses.Resolve(context.Background(), "no-such-course")
	suite.ErrorIs(err, domain.ErrCourseNotFound)

	_, err = suite.courses.FindByID(context.Background(), 404)
	suite.ErrorIs(err, domain.ErrCourseNotFound)
}

// ============================================================================
// ENTITLEMENTS
// ============================================================================

func (suite *RepositoryTestSuite) Test_Grant_IsIdempotent() {
	ctx := context.Background()
	t := suite.T()

	require.NoError(t, suite.entitlements.Grant(ctx, testhelpers.DefaultBuyer, "go-fundamentals", "purchase"))
	require.NoError(t, suite.entitlements.Grant(ctx, testhelpers.DefaultBuyer, "go-fundamentals", "purchase"))
	require.NoError(t, suite.entitlements.Grant(ctx, testhelpers.DefaultBuyer, "go-community", "purchase"))

	held, err := suite.entitlements.ListForUser(ctx, testhelpers.DefaultBuyer)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"go-fundamentals", "go-community"}, held)
}
