package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/piresc/roadassist/internal/pkg/apperrors"
	"github.com/piresc/roadassist/internal/pkg/database"
	"github.com/piresc/roadassist/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	// postgres bind type so named queries compile to $n
	return sqlx.NewDb(mockDB, "postgres"), mock
}

func setupMockRedis(t *testing.T) (*database.RedisClient, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return &database.RedisClient{Client: client}, mr
}

func newRepo(t *testing.T) (*RequestRepo, sqlmock.Sqlmock, *miniredis.Miniredis) {
	db, mock := setupMockDB(t)
	redisClient, mr := setupMockRedis(t)
	return NewRequestRepository(&models.Config{}, db, redisClient), mock, mr
}

var requestColumnNames = []string{
	"id", "customer_id", "provider_id", "target_provider_id", "category", "services",
	"fuel_type", "fuel_quantity", "fuel_rate", "origin_latitude", "origin_longitude", "address",
	"base_fee", "distance_fee", "material_cost", "total_amount", "distance_km", "bill_items",
	"status", "security_code", "otp_verified", "bill_sent", "payment_status", "payment_id",
	"assigned_name", "assigned_phone", "problem_photo_url", "cancellation_reason", "cancelled_by",
	"created_at", "accepted_at", "arrived_at", "verified_at", "billed_at", "completed_at", "cancelled_at",
	"updated_at", "version",
}

var createdAt = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

// requestRow returns the values of a pending mechanic request; overrides
// replace single columns.
func requestRow(id, customerID uuid.UUID, overrides map[string]driver.Value) []driver.Value {
	values := map[string]driver.Value{
		"id":               id.String(),
		"customer_id":      customerID.String(),
		"category":         "mechanic",
		"services":         `{"Spark Plug"}`,
		"origin_latitude":  12.9716,
		"origin_longitude": 77.5946,
		"address":          "MG Road",
		"base_fee":         50.0,
		"distance_fee":     20.0,
		"material_cost":    0.0,
		"total_amount":     70.0,
		"distance_km":      2.5,
		"status":           "pending",
		"otp_verified":     false,
		"bill_sent":        false,
		"payment_status":   "none",
		"created_at":       createdAt,
		"updated_at":       createdAt,
		"version":          int64(1),
	}
	for k, v := range overrides {
		values[k] = v
	}
	row := make([]driver.Value, len(requestColumnNames))
	for i, col := range requestColumnNames {
		row[i] = values[col]
	}
	return row
}

func newRequest() *models.ServiceRequest {
	return &models.ServiceRequest{
		CustomerID: uuid.New(),
		Category:   models.CategoryMechanic,
		Services:   []string{"Spark Plug"},
		Origin:     models.Location{Latitude: 12.9716, Longitude: 77.5946},
		Address:    "MG Road",
		Pricing:    models.Pricing{BaseFee: 50, DistanceFee: 20, TotalAmount: 70, DistanceKm: 2.5},
	}
}

func TestCreate_Success(t *testing.T) {
	// Arrange
	repo, mock, _ := newRepo(t)
	req := newRequest()
	mock.ExpectExec("INSERT INTO service_requests").WillReturnResult(sqlmock.NewResult(0, 1))

	// Act
	id, err := repo.Create(context.Background(), req)

	// Assert
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
	assert.Equal(t, id, req.ID)
	assert.Equal(t, int64(1), req.Version)
	assert.Equal(t, models.StatusPending, req.Status())
	assert.False(t, req.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(r *models.ServiceRequest)
		field  string
	}{
		{"no services", func(r *models.ServiceRequest) { r.Services = nil }, "services"},
		{"blank service", func(r *models.ServiceRequest) { r.Services = []string{" "} }, "services"},
		{"unknown category", func(r *models.ServiceRequest) { r.Category = "towing" }, "category"},
		{"invalid origin", func(r *models.ServiceRequest) { r.Origin = models.Location{Latitude: 91} }, "origin"},
		{"fuel delivery without fuel", func(r *models.ServiceRequest) { r.Category = models.CategoryFuelDelivery }, "fuel"},
		{"fuel delivery without quantity", func(r *models.ServiceRequest) {
			r.Category = models.CategoryFuelDelivery
			r.Fuel = &models.FuelDetails{FuelType: "petrol"}
		}, "fuel"},
		{"fuel on mechanic request", func(r *models.ServiceRequest) {
			r.Fuel = &models.FuelDetails{FuelType: "petrol", Quantity: 5}
		}, "fuel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, _ := newRepo(t)
			req := newRequest()
			tt.modify(req)

			_, err := repo.Create(context.Background(), req)

			var validation *apperrors.ValidationError
			require.ErrorAs(t, err, &validation)
			assert.Equal(t, tt.field, validation.Field)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCreate_DuplicateOpenRequest(t *testing.T) {
	repo, mock, _ := newRepo(t)
	mock.ExpectExec("INSERT INTO service_requests").WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.Create(context.Background(), newRequest())

	var transition *apperrors.InvalidTransitionError
	assert.ErrorAs(t, err, &transition)
}

func TestGet(t *testing.T) {
	repo, mock, _ := newRepo(t)
	id, customerID := uuid.New(), uuid.New()

	mock.ExpectQuery(`FROM service_requests WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(requestColumnNames).AddRow(requestRow(id, customerID, nil)...))

	got, err := repo.Get(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, customerID, got.CustomerID)
	assert.Equal(t, []string{"Spark Plug"}, got.Services)
	assert.Equal(t, models.StatePending{}, got.State)
	assert.Equal(t, 70.0, got.Pricing.TotalAmount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, _ := newRepo(t)
	id := uuid.New()
	mock.ExpectQuery(`FROM service_requests WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(requestColumnNames))

	_, err := repo.Get(context.Background(), id)

	var notFound *apperrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestGet_InconsistentRow(t *testing.T) {
	repo, mock, _ := newRepo(t)
	id := uuid.New()
	mock.ExpectQuery(`FROM service_requests WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(requestColumnNames).
			AddRow(requestRow(id, uuid.New(), map[string]driver.Value{"status": "accepted"})...))

	_, err := repo.Get(context.Background(), id)

	assert.ErrorIs(t, err, models.ErrInconsistentRow)
}

func TestFindActiveForProvider(t *testing.T) {
	repo, mock, _ := newRepo(t)
	id, providerID := uuid.New(), uuid.New()
	acceptedAt := createdAt.Add(2 * time.Minute)

	mock.ExpectQuery(`WHERE provider_id = \$1 AND status IN`).
		WithArgs(providerID).
		WillReturnRows(sqlmock.NewRows(requestColumnNames).AddRow(requestRow(id, uuid.New(), map[string]driver.Value{
			"provider_id":   providerID.String(),
			"status":        "accepted",
			"security_code": "4821",
			"accepted_at":   acceptedAt,
			"version":       int64(2),
		})...))

	got, err := repo.FindActiveForProvider(context.Background(), providerID)

	require.NoError(t, err)
	assert.Equal(t, models.StateAccepted{ProviderID: providerID, SecurityCode: "4821", AcceptedAt: acceptedAt}, got.State)
	assert.Equal(t, int64(2), got.Version)
}

func TestFindPendingForCustomer_None(t *testing.T) {
	repo, mock, _ := newRepo(t)
	customerID := uuid.New()
	mock.ExpectQuery(`WHERE customer_id = \$1 AND status = 'pending'`).
		WithArgs(customerID).
		WillReturnRows(sqlmock.NewRows(requestColumnNames))

	got, err := repo.FindPendingForCustomer(context.Background(), customerID)

	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestFindActiveForCustomer_DatabaseError(t *testing.T) {
	repo, mock, _ := newRepo(t)
	mock.ExpectQuery(`WHERE customer_id = \$1 AND status IN`).WillReturnError(errors.New("connection reset"))

	_, err := repo.FindActiveForCustomer(context.Background(), uuid.New())

	assert.ErrorContains(t, err, "failed to get request")
}

func TestUpdate(t *testing.T) {
	t.Run("address", func(t *testing.T) {
		repo, mock, _ := newRepo(t)
		id, customerID := uuid.New(), uuid.New()
		address := "  Gate 3, Tech Park "

		mock.ExpectQuery(`UPDATE service_requests SET address = \$1, updated_at = NOW\(\)\s+WHERE id = \$2 RETURNING`).
			WithArgs("Gate 3, Tech Park", id).
			WillReturnRows(sqlmock.NewRows(requestColumnNames).
				AddRow(requestRow(id, customerID, map[string]driver.Value{"address": "Gate 3, Tech Park"})...))

		got, err := repo.Update(context.Background(), id, models.RequestPatch{Address: &address})

		require.NoError(t, err)
		assert.Equal(t, "Gate 3, Tech Park", got.Address)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("assigned person", func(t *testing.T) {
		repo, mock, _ := newRepo(t)
		id := uuid.New()

		mock.ExpectQuery(`SET assigned_name = \$1, assigned_phone = \$2, updated_at = NOW\(\)\s+WHERE id = \$3`).
			WithArgs("Suresh", "+919800000000", id).
			WillReturnRows(sqlmock.NewRows(requestColumnNames).AddRow(requestRow(id, uuid.New(), map[string]driver.Value{
				"assigned_name":  "Suresh",
				"assigned_phone": "+919800000000",
			})...))

		got, err := repo.Update(context.Background(), id, models.RequestPatch{
			AssignedPerson: &models.AssignedPerson{Name: "Suresh", Phone: "+919800000000"},
		})

		require.NoError(t, err)
		assert.Equal(t, &models.AssignedPerson{Name: "Suresh", Phone: "+919800000000"}, got.AssignedPerson)
	})

	t.Run("empty patch", func(t *testing.T) {
		repo, _, _ := newRepo(t)

		_, err := repo.Update(context.Background(), uuid.New(), models.RequestPatch{})

		var validation *apperrors.ValidationError
		assert.ErrorAs(t, err, &validation)
	})

	t.Run("unknown request", func(t *testing.T) {
		repo, mock, _ := newRepo(t)
		url := "https://res.cloudinary.com/demo/image/upload/p.jpg"
		mock.ExpectQuery(`SET problem_photo_url = \$1`).WillReturnRows(sqlmock.NewRows(requestColumnNames))

		_, err := repo.Update(context.Background(), uuid.New(), models.RequestPatch{ProblemPhotoURL: &url})

		var notFound *apperrors.NotFoundError
		assert.ErrorAs(t, err, &notFound)
	})
}

func acceptedRequest() *models.ServiceRequest {
	req := newRequest()
	req.ID = uuid.New()
	req.State = models.StateAccepted{ProviderID: uuid.New(), SecurityCode: "4821", AcceptedAt: createdAt}
	req.Version = 2
	return req
}

func TestUpdateState(t *testing.T) {
	t.Run("persisted", func(t *testing.T) {
		repo, mock, _ := newRepo(t)
		req := acceptedRequest()
		mock.ExpectExec(`UPDATE service_requests SET`).WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateState(context.Background(), req, 1)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("stale version", func(t *testing.T) {
		repo, mock, _ := newRepo(t)
		req := acceptedRequest()
		mock.ExpectExec(`UPDATE service_requests SET`).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateState(context.Background(), req, 1)

		var stale *apperrors.StaleTransitionError
		assert.ErrorAs(t, err, &stale)
	})

	t.Run("provider already busy", func(t *testing.T) {
		repo, mock, _ := newRepo(t)
		mock.ExpectExec(`UPDATE service_requests SET`).WillReturnError(&pgconn.PgError{Code: "23505"})

		err := repo.UpdateState(context.Background(), acceptedRequest(), 1)

		var transition *apperrors.InvalidTransitionError
		assert.ErrorAs(t, err, &transition)
	})

	t.Run("database error", func(t *testing.T) {
		repo, mock, _ := newRepo(t)
		mock.ExpectExec(`UPDATE service_requests SET`).WillReturnError(errors.New("connection reset"))

		err := repo.UpdateState(context.Background(), acceptedRequest(), 1)

		assert.ErrorContains(t, err, "failed to update request state")
	})
}

func TestListHistory(t *testing.T) {
	repo, mock, _ := newRepo(t)
	providerID := uuid.New()
	completedAt := createdAt.Add(time.Hour)
	cancelledAt := createdAt.Add(10 * time.Minute)

	rows := sqlmock.NewRows(requestColumnNames).
		AddRow(requestRow(uuid.New(), uuid.New(), map[string]driver.Value{
			"provider_id":    providerID.String(),
			"status":         "completed",
			"otp_verified":   true,
			"bill_sent":      true,
			"payment_status": "success",
			"payment_id":     "cf_pay_1",
			"bill_items":     []byte(`[{"name":"Spark Plug","cost":150}]`),
			"material_cost":  150.0,
			"total_amount":   220.0,
			"arrived_at":     createdAt.Add(20 * time.Minute),
			"completed_at":   completedAt,
		})...).
		AddRow(requestRow(uuid.New(), uuid.New(), map[string]driver.Value{
			"provider_id":         providerID.String(),
			"status":              "cancelled",
			"cancellation_reason": "customer changed plans",
			"cancelled_by":        "customer",
			"cancelled_at":        cancelledAt,
		})...)

	mock.ExpectQuery(`WHERE provider_id = \$1 AND status IN \('completed', 'cancelled'\)`).
		WithArgs(providerID).
		WillReturnRows(rows)

	history, err := repo.ListHistory(context.Background(), providerID, models.RoleProvider)

	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, models.StatusCompleted, history[0].Status())
	assert.Equal(t, []models.BillItem{{Name: "Spark Plug", Cost: 150}}, history[0].Bill().Items)
	assert.Equal(t, models.StatusCancelled, history[1].Status())
}

func TestListHistory_UnknownRole(t *testing.T) {
	repo, _, _ := newRepo(t)

	_, err := repo.ListHistory(context.Background(), uuid.New(), models.RoleSystem)

	var validation *apperrors.ValidationError
	assert.ErrorAs(t, err, &validation)
}
