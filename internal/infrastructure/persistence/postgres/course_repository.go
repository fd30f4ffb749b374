package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/DanielPopoola/course-checkout/internal/application"
	"github.com/DanielPopoola/course-checkout/internal/domain"
	"github.com/jackc/pgx/v5"
)

const courseColumns = `
	c.course_id, c.course_key, c.title, c.price::text, c.currency, c.status,
	c.purchasable, c.commerce_visibility, c.payment_type, c.enabled_gateways,
	ARRAY(
		SELECT ce.entitlement_slug FROM course_entitlements ce
		WHERE ce.course_id = c.course_id ORDER BY ce.id
	)`

// CourseRepository reads the commerce projection of the course catalog.
type CourseRepository struct {
	db Executor
}

func NewCourseRepository(db *DB) *CourseRepository {
	return &CourseRepository{db: db.Pool}
}

var _ application.CourseCatalog = (*CourseRepository)(nil)

// Resolve looks the identifier up as a course id, then a row id, then a course key.
func (r *CourseRepository) Resolve(ctx context.Context, identifier string) (*domain.Course, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, fmt.Errorf("resolve course: %w", domain.ErrCourseNotFound)
	}

	if n, err := strconv.ParseInt(identifier, 10, 64); err == nil {
		course, err := r.FindByID(ctx, n)
		if err == nil || !errors.Is(err, domain.ErrCourseNotFound) {
			return course, err
		}

		query := `SELECT ` + courseColumns + ` FROM courses c WHERE c.id = $1`
		course, err = scanCourse(r.db.QueryRow(ctx, query, n))
		if err == nil || !errors.Is(err, domain.ErrCourseNotFound) {
			return course, err
		}
	}

	query := `SELECT ` + courseColumns + ` FROM courses c WHERE c.course_key = $1`
	return scanCourse(r.db.QueryRow(ctx, query, identifier))
}

func (r *CourseRepository) FindByID(ctx context.Context, courseID int64) (*domain.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses c WHERE c.course_id = $1`
	return scanCourse(r.db.QueryRow(ctx, query, courseID))
}

func scanCourse(row pgx.Row) (*domain.Course, error) {
	var m CourseModel
	err := row.Scan(
		&m.CourseID, &m.Key, &m.Title, &m.Price, &m.Currency, &m.Status,
		&m.Purchasable, &m.Visibility, &m.PaymentType, &m.EnabledGateways,
		&m.Entitlements,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("scan course: %w", domain.ErrCourseNotFound)
		}
		return nil, fmt.Errorf("failed to scan course: %w", err)
	}
	return toDomainCourse(m)
}
