package testhelpers

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DanielPopoola/course-checkout/internal/application"
	"github.com/DanielPopoola/course-checkout/internal/domain"
)

// MemoryOrderRepository is an in-memory OrderRepository. Status changes are
// atomic under its mutex so it can stand in for the store in race tests.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[int64]*domain.Order
	nextID int64

	CASAttempts atomic.Int64

	FindByIDFn            func(ctx context.Context, id int64) (*domain.Order, error)
	CompareAndSetStatusFn func(ctx context.Context, id int64, expected, next domain.OrderStatus, externalID *string, payload domain.GatewayPayload) (bool, error)
	MarkGrantedFn         func(ctx context.Context, id int64) error
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{orders: make(map[int64]*domain.Order)}
}

func cloneOrder(o *domain.Order) *domain.Order {
	c := *o
	if o.ExternalID != nil {
		id := *o.ExternalID
		c.ExternalID = &id
	}
	if o.EntitlementsGrantedAt != nil {
		at := *o.EntitlementsGrantedAt
		c.EntitlementsGrantedAt = &at
	}
	c.Payload = maps.Clone(o.Payload)
	return &c
}

// Seed stores order as-is, assigning an id when it has none.
func (m *MemoryOrderRepository) Seed(order *domain.Order) *domain.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	if order.ID == 0 {
		m.nextID++
		order.ID = m.nextID
	} else if order.ID > m.nextID {
		m.nextID = order.ID
	}
	m.orders[order.ID] = cloneOrder(order)
	return order
}

func (m *MemoryOrderRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.orders)
}

func (m *MemoryOrderRepository) FindByFingerprint(ctx context.Context, fingerprint string) (*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, o := range m.orders {
		if o.Fingerprint == fingerprint {
			return cloneOrder(o), nil
		}
	}
	return nil, fmt.Errorf("fingerprint %s: %w", fingerprint, domain.ErrOrderNotFound)
}

func (m *MemoryOrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	return m.Get(id)
}

// Get reads the stored order bypassing any override.
func (m *MemoryOrderRepository) Get(id int64) (*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if o, ok := m.orders[id]; ok {
		return cloneOrder(o), nil
	}
	return nil, domain.NewOrderNotFoundError(id)
}

func (m *MemoryOrderRepository) FindByExternalID(ctx context.Context, externalID string) (*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, o := range m.orders {
		if o.ExternalID != nil && *o.ExternalID == externalID {
			return cloneOrder(o), nil
		}
	}
	return nil, fmt.Errorf("external id %s: %w", externalID, domain.ErrOrderNotFound)
}

func (m *MemoryOrderRepository) InsertIfAbsent(ctx context.Context, order *domain.Order) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.Fingerprint == order.Fingerprint {
			return o.ID, false, nil
		}
	}
	m.nextID++
	stored := cloneOrder(order)
	stored.ID = m.nextID
	m.orders[stored.ID] = stored
	return stored.ID, true, nil
}

func (m *MemoryOrderRepository) CompareAndSetStatus(
	ctx context.Context,
	id int64,
	expected, next domain.OrderStatus,
	externalID *string,
	payload domain.GatewayPayload,
) (bool, error) {
	m.CASAttempts.Add(1)
	if m.CompareAndSetStatusFn != nil {
		return m.CompareAndSetStatusFn(ctx, id, expected, next, externalID, payload)
	}
	return m.SetStatus(id, expected, next, externalID, payload), nil
}

// SetStatus performs the conditional update without any override.
func (m *MemoryOrderRepository) SetStatus(id int64, expected, next domain.OrderStatus, externalID *string, payload domain.GatewayPayload) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	o, ok := m.orders[id]
	if !ok || o.Status != expected {
		return false
	}
	if externalID != nil && o.ExternalID != nil && *o.ExternalID != *externalID {
		return false
	}

	o.Status = next
	if externalID != nil && o.ExternalID == nil {
		ext := *externalID
		o.ExternalID = &ext
	}
	if payload != nil {
		o.Payload = maps.Clone(payload)
	}
	o.UpdatedAt = time.Now().UTC()
	return true
}

func (m *MemoryOrderRepository) MarkEntitlementsGranted(ctx context.Context, id int64) error {
	if m.MarkGrantedFn != nil {
		return m.MarkGrantedFn(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return domain.NewOrderNotFoundError(id)
	}
	now := time.Now().UTC()
	o.EntitlementsGrantedAt = &now
	return nil
}

func (m *MemoryOrderRepository) FindUngranted(ctx context.Context, minAge time.Duration, limit int) ([]*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cutoff := time.Now().UTC().Add(-minAge)
	var out []*domain.Order
	for _, o := range m.sortedLocked() {
		if o.Status == domain.StatusCompleted && o.EntitlementsGrantedAt == nil && !o.UpdatedAt.After(cutoff) {
			out = append(out, cloneOrder(o))
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *MemoryOrderRepository) List(ctx context.Context, filter application.OrderFilter) ([]*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sorted := m.sortedLocked()
	slices.Reverse(sorted)

	var out []*domain.Order
	for _, o := range sorted {
		if filter.BuyerID != nil && o.BuyerID != *filter.BuyerID {
			continue
		}
		if filter.CourseID != nil && o.CourseID != *filter.CourseID {
			continue
		}
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		if filter.Gateway != nil && o.Gateway != *filter.Gateway {
			continue
		}
		out = append(out, cloneOrder(o))
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (m *MemoryOrderRepository) sortedLocked() []*domain.Order {
	out := make([]*domain.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, o)
	}
	slices.SortFunc(out, func(a, b *domain.Order) int { return int(a.ID - b.ID) })
	return out
}

// MemoryCourseCatalog resolves courses from a fixed set.
type MemoryCourseCatalog struct {
	mu      sync.RWMutex
	courses map[int64]*domain.Course
}

func NewMemoryCourseCatalog(courses ...*domain.Course) *MemoryCourseCatalog {
	c := &MemoryCourseCatalog{courses: make(map[int64]*domain.Course)}
	for _, course := range courses {
		c.courses[course.ID] = course
	}
	return c
}

func (c *MemoryCourseCatalog) Resolve(ctx context.Context, identifier string) (*domain.Course, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if id, err := strconv.ParseInt(identifier, 10, 64); err == nil {
		if course, ok := c.courses[id]; ok {
			return course, nil
		}
	}
	for _, course := range c.courses {
		if course.Key == identifier {
			return course, nil
		}
	}
	return nil, fmt.Errorf("course %s: %w", identifier, domain.ErrCourseNotFound)
}

func (c *MemoryCourseCatalog) FindByID(ctx context.Context, courseID int64) (*domain.Course, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if course, ok := c.courses[courseID]; ok {
		return course, nil
	}
	return nil, fmt.Errorf("course %d: %w", courseID, domain.ErrCourseNotFound)
}

type Grant struct {
	UserID        domain.BuyerID
	EntitlementID string
	Source        string
}

// RecordingGranter records every Grant call. Err, when set, fails each call.
type RecordingGranter struct {
	mu    sync.Mutex
	calls []Grant
	Err   error
}

func (g *RecordingGranter) Grant(ctx context.Context, userID domain.BuyerID, entitlementID, source string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, Grant{UserID: userID, EntitlementID: entitlementID, Source: source})
	return g.Err
}

func (g *RecordingGranter) Calls() []Grant {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.calls)
}

// RecordingNotifier counts completion notifications.
type RecordingNotifier struct {
	count atomic.Int64
}

func (n *RecordingNotifier) OrderCompleted(ctx context.Context, order *domain.Order) {
	n.count.Add(1)
}

func (n *RecordingNotifier) Count() int {
	return int(n.count.Load())
}

// StaticLocker always answers Acquire the same way.
type StaticLocker struct {
	Acquired bool
	Err      error
}

func (l StaticLocker) Acquire(ctx context.Context, key string) (func(), bool, error) {
	return func() {}, l.Acquired, l.Err
}
