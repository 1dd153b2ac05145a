package http

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/piresc/roadassist/internal/pkg/apperrors"
	"github.com/piresc/roadassist/internal/pkg/lifecycle"
	"github.com/piresc/roadassist/internal/pkg/middleware"
	"github.com/piresc/roadassist/internal/pkg/models"
	"github.com/piresc/roadassist/services/requests/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(method, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func authenticate(c echo.Context, id uuid.UUID, role models.Role) {
	c.Set(middleware.ContextUserID, id)
	c.Set(middleware.ContextUserRole, role)
}

func withID(c echo.Context, id uuid.UUID) {
	c.SetParamNames("id")
	c.SetParamValues(id.String())
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCreateRequest(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockRequestUC(ctrl)
	customerID := uuid.New()
	requestID := uuid.New()

	uc.EXPECT().CreateRequest(gomock.Any(), customerID, models.CreateRequestInput{
		Category: models.CategoryMechanic,
		Services: []string{"Spark Plug"},
		Origin:   models.Location{Latitude: 12.97, Longitude: 77.59},
		Address:  "MG Road",
	}).Return(&models.CreateRequestResult{RequestID: requestID}, nil)

	c, rec := newContext(http.MethodPost,
		`{"category":"mechanic","services":["Spark Plug"],"origin":{"latitude":12.97,"longitude":77.59},"address":"MG Road"}`)
	authenticate(c, customerID, models.RoleCustomer)

	// Act
	require.NoError(t, NewRequestHandler(uc).CreateRequest(c))

	// Assert
	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decode(t, rec)
	assert.True(t, body.Success)
	assert.Contains(t, body.Message, "no provider is available")
	var result models.CreateRequestResult
	require.NoError(t, json.Unmarshal(body.Data, &result))
	assert.Equal(t, requestID, result.RequestID)
}

func TestCreateRequest_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		auth   bool
		err    error
		status int
	}{
		{"unauthenticated", `{}`, false, nil, http.StatusUnauthorized},
		{"malformed body", `{"category":`, true, nil, http.StatusBadRequest},
		{"validation", `{"category":"towing"}`, true, apperrors.NewValidationError("category", "unknown category"), http.StatusBadRequest},
		{"already open", `{"category":"mechanic"}`, true, apperrors.NewInvalidTransition("pending", "create", "you already have an open request"), http.StatusConflict},
		{"unexpected", `{"category":"mechanic"}`, true, assert.AnError, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc := mocks.NewMockRequestUC(ctrl)
			if tt.err != nil {
				uc.EXPECT().CreateRequest(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, tt.err)
			}

			c, rec := newContext(http.MethodPost, tt.body)
			if tt.auth {
				authenticate(c, uuid.New(), models.RoleCustomer)
			}

			require.NoError(t, NewRequestHandler(uc).CreateRequest(c))
			assert.Equal(t, tt.status, rec.Code)
			assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
		})
	}
}

func TestAcceptRequest(t *testing.T) {
	providerID, requestID := uuid.New(), uuid.New()

	t.Run("accepted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockRequestUC(ctrl)
		uc.EXPECT().AcceptRequest(gomock.Any(), requestID, providerID).
			Return(&models.RequestView{ID: requestID, Status: models.StatusAccepted}, nil)

		c, rec := newContext(http.MethodPut, "")
		authenticate(c, providerID, models.RoleProvider)
		withID(c, requestID)

		require.NoError(t, NewRequestHandler(uc).AcceptRequest(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"status":"accepted"`)
	})

	t.Run("taken by someone else", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockRequestUC(ctrl)
		uc.EXPECT().AcceptRequest(gomock.Any(), requestID, providerID).
			Return(nil, apperrors.NewInvalidTransition("accepted", "accept", "another provider already accepted"))

		c, rec := newContext(http.MethodPut, "")
		authenticate(c, providerID, models.RoleProvider)
		withID(c, requestID)

		require.NoError(t, NewRequestHandler(uc).AcceptRequest(c))
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, decode(t, rec).Error, "another provider already accepted")
	})

	t.Run("bad id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		c, rec := newContext(http.MethodPut, "")
		authenticate(c, providerID, models.RoleProvider)
		c.SetParamNames("id")
		c.SetParamValues("not-a-uuid")

		require.NoError(t, NewRequestHandler(mocks.NewMockRequestUC(ctrl)).AcceptRequest(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestMarkArrived(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockRequestUC(ctrl)
	providerID, requestID := uuid.New(), uuid.New()
	uc.EXPECT().MarkArrived(gomock.Any(), requestID, providerID).
		Return(&models.RequestView{ID: requestID, Status: models.StatusArrived}, nil)

	c, rec := newContext(http.MethodPut, "")
	authenticate(c, providerID, models.RoleProvider)
	withID(c, requestID)

	require.NoError(t, NewRequestHandler(uc).MarkArrived(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCancelRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockRequestUC(ctrl)
	customerID, requestID := uuid.New(), uuid.New()
	uc.EXPECT().CancelRequest(gomock.Any(), requestID,
		lifecycle.Actor{ID: customerID, Role: models.RoleCustomer}, "found help").
		Return(&models.RequestView{ID: requestID, Status: models.StatusCancelled}, nil)

	c, rec := newContext(http.MethodPut, `{"reason":"found help"}`)
	authenticate(c, customerID, models.RoleCustomer)
	withID(c, requestID)

	require.NoError(t, NewRequestHandler(uc).CancelRequest(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestVerifyOTP(t *testing.T) {
	customerID, requestID := uuid.New(), uuid.New()
	customer := lifecycle.Actor{ID: customerID, Role: models.RoleCustomer}

	t.Run("verified", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockRequestUC(ctrl)
		uc.EXPECT().VerifyOTP(gomock.Any(), requestID, customer, "4821").
			Return(&models.VerifyOTPResult{Success: true, Message: "Security code verified"}, nil)

		c, rec := newContext(http.MethodPost, `{"code":"4821"}`)
		authenticate(c, customerID, models.RoleCustomer)
		withID(c, requestID)

		require.NoError(t, NewRequestHandler(uc).VerifyOTP(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		var result models.VerifyOTPResult
		require.NoError(t, json.Unmarshal(decode(t, rec).Data, &result))
		assert.True(t, result.Success)
	})

	t.Run("wrong code", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockRequestUC(ctrl)
		uc.EXPECT().VerifyOTP(gomock.Any(), requestID, customer, "1111").
			Return(nil, &apperrors.OtpMismatchError{})

		c, rec := newContext(http.MethodPost, `{"code":"1111"}`)
		authenticate(c, customerID, models.RoleCustomer)
		withID(c, requestID)

		require.NoError(t, NewRequestHandler(uc).VerifyOTP(c))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.False(t, decode(t, rec).Success)
	})
}

func TestUploadPhoto(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockRequestUC(ctrl)
	customerID, requestID := uuid.New(), uuid.New()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("photo", "flat-tyre.jpg")
	require.NoError(t, err)
	_, _ = part.Write([]byte("jpeg bytes"))
	require.NoError(t, w.Close())

	uc.EXPECT().UploadPhoto(gomock.Any(), requestID, customerID, gomock.Any(), "flat-tyre.jpg").
		DoAndReturn(func(_ interface{}, _, _ uuid.UUID, r io.Reader, _ string) (*models.RequestView, error) {
			data, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, "jpeg bytes", string(data))
			return &models.RequestView{ID: requestID, ProblemPhotoURL: "https://cdn/p.jpg"}, nil
		})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	authenticate(c, customerID, models.RoleCustomer)
	withID(c, requestID)

	require.NoError(t, NewRequestHandler(uc).UploadPhoto(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "https://cdn/p.jpg")
}

func TestUploadPhoto_MissingFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	c, rec := newContext(http.MethodPost, `{}`)
	authenticate(c, uuid.New(), models.RoleCustomer)
	withID(c, uuid.New())

	require.NoError(t, NewRequestHandler(mocks.NewMockRequestUC(ctrl)).UploadPhoto(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockRequestUC(ctrl)
	customerID, requestID := uuid.New(), uuid.New()
	address := "Gate 3"
	uc.EXPECT().UpdateRequest(gomock.Any(), requestID, lifecycle.Actor{ID: customerID, Role: models.RoleCustomer},
		models.RequestPatch{Address: &address}).
		Return(&models.RequestView{ID: requestID, Address: address}, nil)

	c, rec := newContext(http.MethodPatch, `{"address":"Gate 3","problem_photo_url":"https://evil"}`)
	authenticate(c, customerID, models.RoleCustomer)
	withID(c, requestID)

	require.NoError(t, NewRequestHandler(uc).UpdateRequest(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestActiveRequest(t *testing.T) {
	providerID := uuid.New()
	provider := lifecycle.Actor{ID: providerID, Role: models.RoleProvider}

	t.Run("none", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockRequestUC(ctrl)
		uc.EXPECT().ActiveRequest(gomock.Any(), provider).Return(nil, nil)

		c, rec := newContext(http.MethodGet, "")
		authenticate(c, providerID, models.RoleProvider)

		require.NoError(t, NewRequestHandler(uc).ActiveRequest(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "No open request", decode(t, rec).Message)
	})

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockRequestUC(ctrl)
		uc.EXPECT().ActiveRequest(gomock.Any(), provider).Return(&models.RequestView{ID: uuid.New(), Status: models.StatusArrived}, nil)

		c, rec := newContext(http.MethodGet, "")
		authenticate(c, providerID, models.RoleProvider)

		require.NoError(t, NewRequestHandler(uc).ActiveRequest(c))
		assert.Contains(t, rec.Body.String(), `"status":"arrived"`)
	})
}

func TestHistory(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockRequestUC(ctrl)
	customerID := uuid.New()
	uc.EXPECT().History(gomock.Any(), lifecycle.Actor{ID: customerID, Role: models.RoleCustomer}).
		Return([]models.RequestView{{Status: models.StatusCompleted}, {Status: models.StatusCancelled}}, nil)

	c, rec := newContext(http.MethodGet, "")
	authenticate(c, customerID, models.RoleCustomer)

	require.NoError(t, NewRequestHandler(uc).History(c))
	var views []models.RequestView
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &views))
	assert.Len(t, views, 2)
}

func TestReconcile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockRequestUC(ctrl)
	viewerID, requestID := uuid.New(), uuid.New()
	uc.EXPECT().Reconcile(gomock.Any(), requestID, viewerID).
		Return(nil, apperrors.NewNotFound("request", requestID.String()))

	c, rec := newContext(http.MethodGet, "")
	authenticate(c, viewerID, models.RoleProvider)
	withID(c, requestID)

	require.NoError(t, NewRequestHandler(uc).Reconcile(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
