package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/piresc/roadassist/internal/pkg/apperrors"
	"github.com/piresc/roadassist/internal/pkg/database"
	"github.com/piresc/roadassist/internal/pkg/models"
)

const (
	requestColumns = `id, customer_id, provider_id, target_provider_id, category, services,
		fuel_type, fuel_quantity, fuel_rate, origin_latitude, origin_longitude, address,
		base_fee, distance_fee, material_cost, total_amount, distance_km, bill_items,
		status, security_code, otp_verified, bill_sent, payment_status, payment_id,
		assigned_name, assigned_phone, problem_photo_url, cancellation_reason, cancelled_by,
		created_at, accepted_at, arrived_at, verified_at, billed_at, completed_at, cancelled_at,
		updated_at, version`

	activeStatuses = `('accepted', 'arrived', 'in_progress')`

	historyLimit = 100

	uniqueViolation = "23505"
)

// RequestRepo implements the request repository interface
type RequestRepo struct {
	cfg         *models.Config
	db          *sqlx.DB
	redisClient *database.RedisClient
}

// NewRequestRepository creates a new request repository
func NewRequestRepository(
	cfg *models.Config,
	db *sqlx.DB,
	redisClient *database.RedisClient,
) *RequestRepo {
	return &RequestRepo{
		cfg:         cfg,
		db:          db,
		redisClient: redisClient,
	}
}

func validateNew(req *models.ServiceRequest) error {
	if !req.Category.Valid() {
		return apperrors.NewValidationError("category", "unknown service category")
	}
	if len(req.Services) == 0 {
		return apperrors.NewValidationError("services", "pick at least one service")
	}
	for _, s := range req.Services {
		if strings.TrimSpace(s) == "" {
			return apperrors.NewValidationError("services", "service names cannot be blank")
		}
	}
	if !req.Origin.Valid() {
		return apperrors.NewValidationError("origin", "coordinates are out of range")
	}
	if req.CustomerID == uuid.Nil {
		return apperrors.NewValidationError("customer_id", "missing customer")
	}
	if req.Category == models.CategoryFuelDelivery {
		if req.Fuel == nil || strings.TrimSpace(req.Fuel.FuelType) == "" {
			return apperrors.NewValidationError("fuel", "fuel delivery needs a fuel type")
		}
		if req.Fuel.Quantity <= 0 {
			return apperrors.NewValidationError("fuel", "requested quantity must be greater than zero")
		}
	} else if req.Fuel != nil {
		return apperrors.NewValidationError("fuel", "fuel details only apply to fuel delivery")
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Create stores a new pending request and returns its id
func (r *RequestRepo) Create(ctx context.Context, req *models.ServiceRequest) (uuid.UUID, error) {
	if err := validateNew(req); err != nil {
		return uuid.Nil, err
	}
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	now := models.Now()
	if req.CreatedAt.IsZero() {
		req.CreatedAt = now
	}
	req.UpdatedAt = req.CreatedAt
	req.State = models.StatePending{}
	req.Version = 1

	query := `
		INSERT INTO service_requests (
			id, customer_id, target_provider_id, category, services,
			fuel_type, fuel_quantity, fuel_rate, origin_latitude, origin_longitude, address,
			base_fee, distance_fee, material_cost, total_amount, distance_km,
			status, otp_verified, bill_sent, payment_status, problem_photo_url,
			created_at, updated_at, version
		) VALUES (
			:id, :customer_id, :target_provider_id, :category, :services,
			:fuel_type, :fuel_quantity, :fuel_rate, :origin_latitude, :origin_longitude, :address,
			:base_fee, :distance_fee, :material_cost, :total_amount, :distance_km,
			:status, :otp_verified, :bill_sent, :payment_status, :problem_photo_url,
			:created_at, :updated_at, :version
		)`

	if _, err := r.db.NamedExecContext(ctx, query, req.ToDTO()); err != nil {
		if isUniqueViolation(err) {
			return uuid.Nil, apperrors.NewInvalidTransition(string(models.StatusPending), "create",
				"you already have an open request, cancel it before asking again")
		}
		return uuid.Nil, fmt.Errorf("failed to create request: %w", err)
	}
	return req.ID, nil
}

// Get retrieves a request by ID
func (r *RequestRepo) Get(ctx context.Context, id uuid.UUID) (*models.ServiceRequest, error) {
	req, err := r.getOne(ctx, `SELECT `+requestColumns+` FROM service_requests WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, apperrors.NewNotFound("request", id.String())
	}
	return req, nil
}

// FindActiveForCustomer returns the accepted or ongoing request of a customer, or nil
func (r *RequestRepo) FindActiveForCustomer(ctx context.Context, customerID uuid.UUID) (*models.ServiceRequest, error) {
	return r.getOne(ctx, `SELECT `+requestColumns+` FROM service_requests
		WHERE customer_id = $1 AND status IN `+activeStatuses+`
		ORDER BY created_at DESC LIMIT 1`, customerID)
}

// FindActiveForProvider returns the request a provider is working on, or nil
func (r *RequestRepo) FindActiveForProvider(ctx context.Context, providerID uuid.UUID) (*models.ServiceRequest, error) {
	return r.getOne(ctx, `SELECT `+requestColumns+` FROM service_requests
		WHERE provider_id = $1 AND status IN `+activeStatuses+`
		ORDER BY created_at DESC LIMIT 1`, providerID)
}

// FindPendingForCustomer returns the request of a customer still waiting for a provider, or nil
func (r *RequestRepo) FindPendingForCustomer(ctx context.Context, customerID uuid.UUID) (*models.ServiceRequest, error) {
	return r.getOne(ctx, `SELECT `+requestColumns+` FROM service_requests
		WHERE customer_id = $1 AND status = 'pending'
		ORDER BY created_at DESC LIMIT 1`, customerID)
}

func (r *RequestRepo) getOne(ctx context.Context, query string, args ...interface{}) (*models.ServiceRequest, error) {
	var dto models.ServiceRequestDTO
	if err := r.db.GetContext(ctx, &dto, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	req, err := dto.ToRequest()
	if err != nil {
		return nil, fmt.Errorf("failed to decode request: %w", err)
	}
	return req, nil
}

// Update applies a patch of non-lifecycle fields and returns the stored request
func (r *RequestRepo) Update(ctx context.Context, id uuid.UUID, patch models.RequestPatch) (*models.ServiceRequest, error) {
	if patch.Empty() {
		return nil, apperrors.NewValidationError("patch", "nothing to update")
	}

	var (
		sets []string
		args []interface{}
	)
	set := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, column+" = $"+strconv.Itoa(len(args)))
	}
	if patch.Address != nil {
		set("address", strings.TrimSpace(*patch.Address))
	}
	if patch.AssignedPerson != nil {
		set("assigned_name", nullable(patch.AssignedPerson.Name))
		set("assigned_phone", nullable(patch.AssignedPerson.Phone))
	}
	if patch.ProblemPhotoURL != nil {
		set("problem_photo_url", nullable(*patch.ProblemPhotoURL))
	}
	args = append(args, id)

	query := `UPDATE service_requests SET ` + strings.Join(sets, ", ") + `, updated_at = NOW()
		WHERE id = $` + strconv.Itoa(len(args)) + ` RETURNING ` + requestColumns

	req, err := r.getOne(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update request: %w", err)
	}
	if req == nil {
		return nil, apperrors.NewNotFound("request", id.String())
	}
	return req, nil
}

func nullable(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// UpdateState writes the lifecycle columns of req if the stored version is
// still expectedVersion. Fields owned by Update are left alone.
func (r *RequestRepo) UpdateState(ctx context.Context, req *models.ServiceRequest, expectedVersion int64) error {
	d := req.ToDTO()
	query := `
		UPDATE service_requests SET
			provider_id = $1, fuel_quantity = $2, fuel_rate = $3,
			base_fee = $4, distance_fee = $5, material_cost = $6, total_amount = $7, distance_km = $8,
			bill_items = $9, status = $10, security_code = $11, otp_verified = $12, bill_sent = $13,
			payment_status = $14, payment_id = $15, cancellation_reason = $16, cancelled_by = $17,
			accepted_at = $18, arrived_at = $19, verified_at = $20, billed_at = $21,
			completed_at = $22, cancelled_at = $23, updated_at = $24, version = $25
		WHERE id = $26 AND version = $27`

	result, err := r.db.ExecContext(ctx, query,
		d.ProviderID, d.FuelQuantity, d.FuelRate,
		d.BaseFee, d.DistanceFee, d.MaterialCost, d.TotalAmount, d.DistanceKm,
		d.BillItems, d.Status, d.SecurityCode, d.OTPVerified, d.BillSent,
		d.PaymentStatus, d.PaymentID, d.CancellationReason, d.CancelledBy,
		d.AcceptedAt, d.ArrivedAt, d.VerifiedAt, d.BilledAt,
		d.CompletedAt, d.CancelledAt, d.UpdatedAt, d.Version,
		d.ID, expectedVersion,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewInvalidTransition(string(req.Status()), "update",
				"the provider is already busy with another request")
		}
		return fmt.Errorf("failed to update request state: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NewStaleTransition(req.ID.String())
	}
	return nil
}

// ListHistory returns the finished requests of a participant, newest first
func (r *RequestRepo) ListHistory(ctx context.Context, participantID uuid.UUID, role models.Role) ([]*models.ServiceRequest, error) {
	var column string
	switch role {
	case models.RoleCustomer:
		column = "customer_id"
	case models.RoleProvider:
		column = "provider_id"
	default:
		return nil, apperrors.NewValidationError("role", "history is kept for customers and providers only")
	}

	query := `SELECT ` + requestColumns + ` FROM service_requests
		WHERE ` + column + ` = $1 AND status IN ('completed', 'cancelled')
		ORDER BY COALESCE(completed_at, cancelled_at, created_at) DESC
		LIMIT ` + strconv.Itoa(historyLimit)

	var rows []models.ServiceRequestDTO
	if err := r.db.SelectContext(ctx, &rows, query, participantID); err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	history := make([]*models.ServiceRequest, 0, len(rows))
	for i := range rows {
		req, err := rows[i].ToRequest()
		if err != nil {
			return nil, fmt.Errorf("failed to decode request: %w", err)
		}
		history = append(history, req)
	}
	return history, nil
}
