package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/rotaworks/shift_roster_app/internal/apperrors"
	"github.com/rotaworks/shift_roster_app/internal/core/domain"
	portssvc "github.com/rotaworks/shift_roster_app/internal/core/ports/services"
	"github.com/rotaworks/shift_roster_app/internal/dto"
	"github.com/rotaworks/shift_roster_app/internal/handlers"
	"github.com/rotaworks/shift_roster_app/internal/middleware"
)

// --- Mock OfferService ---
type MockOfferService struct {
	mock.Mock
}

func (m *MockOfferService) CreateOffer(ctx context.Context, actorID string, req dto.CreateOfferRequest) (*domain.Offer, error) {
	args := m.Called(ctx, actorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}
func (m *MockOfferService) RespondToOffer(ctx context.Context, offerID, actorID string, action domain.OfferAction) (*domain.Offer, error) {
	args := m.Called(ctx, offerID, actorID, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}
func (m *MockOfferService) DecideOffer(ctx context.Context, offerID, actorID string, action domain.OfferAction) (*domain.Offer, error) {
	args := m.Called(ctx, offerID, actorID, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}
func (m *MockOfferService) CompleteOffer(ctx context.Context, offerID, actorID string) (*domain.Offer, error) {
	args := m.Called(ctx, offerID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}
func (m *MockOfferService) CheckoutOffer(ctx context.Context, offerID, actorID string) (*domain.Offer, error) {
	args := m.Called(ctx, offerID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}
func (m *MockOfferService) CancelOffer(ctx context.Context, offerID, actorID, reason string) (*domain.Offer, error) {
	args := m.Called(ctx, offerID, actorID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}
func (m *MockOfferService) EditOfferPlacement(ctx context.Context, offerID, actorID string, patch dto.PlacementPatch) (*domain.Placement, error) {
	args := m.Called(ctx, offerID, actorID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Placement), args.Error(1)
}
func (m *MockOfferService) DeleteOffer(ctx context.Context, offerID, actorID string) error {
	args := m.Called(ctx, offerID, actorID)
	return args.Error(0)
}
func (m *MockOfferService) ListMyOffers(ctx context.Context, actorID string, status *domain.OfferStatus) ([]domain.Offer, error) {
	args := m.Called(ctx, actorID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Offer), args.Error(1)
}
func (m *MockOfferService) ListOffersForStaff(ctx context.Context, actorID, staffID string) ([]domain.Offer, error) {
	args := m.Called(ctx, actorID, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Offer), args.Error(1)
}
func (m *MockOfferService) ListPendingConfirmations(ctx context.Context, actorID string) ([]domain.Offer, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Offer), args.Error(1)
}
func (m *MockOfferService) ListSchedule(ctx context.Context, actorID, fromDay, toDay string) ([]domain.Offer, error) {
	args := m.Called(ctx, actorID, fromDay, toDay)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Offer), args.Error(1)
}
func (m *MockOfferService) Dashboard(ctx context.Context, actorID string) (*domain.DashboardCounts, error) {
	args := m.Called(ctx, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardCounts), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.OfferSvcFacade = (*MockOfferService)(nil)

// --- Test Suite ---
type OfferHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockOfferService *MockOfferService
	jwtSecret        string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *OfferHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "sra-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *OfferHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	handlers.RegisterCustomValidators()

	// Use the actual AuthMiddleware
	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockOfferService = new(MockOfferService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterOfferRoutes(v1, suite.mockOfferService)
}

func (suite *OfferHandlerTestSuite) doJSON(method, url, userID string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		suite.Require().NoError(err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, url, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *OfferHandlerTestSuite) TestSendOffer_ConflictReturns409WithConflictList() {
	managerID := "mgr-1"
	conflictErr := &apperrors.ConflictError{Conflicts: []apperrors.ShiftConflict{{
		OfferID:   "off-9",
		Status:    string(domain.StatusBookingConfirmed),
		Venue:     "The Anchor",
		Date:      "2026-03-10",
		StartTime: "18:00",
		EndTime:   "22:00",
	}}}
	suite.mockOfferService.On("CreateOffer",
		mock.Anything,
		managerID,
		mock.MatchedBy(func(req dto.CreateOfferRequest) bool {
			return req.StaffID == "stf-1" && !req.Force
		}),
	).Return(nil, conflictErr).Once()

	payload := dto.CreateOfferRequest{
		StaffID: "stf-1",
		Placement: dto.PlacementPayload{
			Venue:      "The Crown",
			RoleTitle:  "Bartender",
			Date:       "2026-03-10",
			StartTime:  "17:00",
			EndTime:    "21:00",
			HourlyRate: decimal.NewFromInt(12),
			TotalHours: decimal.NewFromInt(4),
		},
	}
	w := suite.doJSON(http.MethodPost, "/api/v1/offers/send", managerID, payload)

	suite.Equal(http.StatusConflict, w.Code)

	var responseBody struct {
		Error     string                    `json:"error"`
		Conflicts []apperrors.ShiftConflict `json:"conflicts"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &responseBody))
	suite.Equal("Shift conflict detected", responseBody.Error)
	suite.Require().Len(responseBody.Conflicts, 1)
	suite.Equal("off-9", responseBody.Conflicts[0].OfferID)
	suite.Equal("The Anchor", responseBody.Conflicts[0].Venue)

	suite.mockOfferService.AssertExpectations(suite.T())
}

func (suite *OfferHandlerTestSuite) TestRespond_InvalidTransitionReturns409WithStatus() {
	staffID := "stf-1"
	suite.mockOfferService.On("RespondToOffer",
		mock.Anything, "off-1", staffID, domain.ActionAccept,
	).Return(nil, &apperrors.InvalidTransitionError{
		Action:        string(domain.ActionAccept),
		CurrentStatus: string(domain.StatusCancelled),
	}).Once()

	w := suite.doJSON(http.MethodPatch, "/api/v1/offers/off-1/respond", staffID,
		dto.RespondToOfferRequest{Action: "accept"})

	suite.Equal(http.StatusConflict, w.Code)

	var responseBody map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &responseBody))
	suite.Equal(string(domain.StatusCancelled), responseBody["status"])
	suite.mockOfferService.AssertExpectations(suite.T())
}

func (suite *OfferHandlerTestSuite) TestSendOffer_ForbiddenReturns403() {
	suite.mockOfferService.On("CreateOffer", mock.Anything, "stf-1", mock.Anything).
		Return(nil, apperrors.ErrForbidden).Once()

	payload := dto.CreateOfferRequest{
		StaffID: "stf-2",
		Placement: dto.PlacementPayload{
			Venue:     "The Crown",
			RoleTitle: "Bartender",
			Date:      "2026-03-10",
			StartTime: "17:00",
			EndTime:   "21:00",
		},
	}
	w := suite.doJSON(http.MethodPost, "/api/v1/offers/send", "stf-1", payload)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockOfferService.AssertExpectations(suite.T())
}

func (suite *OfferHandlerTestSuite) TestSendOffer_BadClockRejectedBeforeService() {
	payload := map[string]any{
		"staffId": "stf-1",
		"placement": map[string]any{
			"venue":     "The Crown",
			"roleTitle": "Bartender",
			"date":      "2026-03-10",
			"startTime": "25:99",
			"endTime":   "21:00",
		},
	}
	w := suite.doJSON(http.MethodPost, "/api/v1/offers/send", "mgr-1", payload)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockOfferService.AssertNotCalled(suite.T(), "CreateOffer", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *OfferHandlerTestSuite) TestDashboard_ReturnsCounts() {
	managerID := "mgr-1"
	suite.mockOfferService.On("Dashboard", mock.Anything, managerID).
		Return(&domain.DashboardCounts{StaffTotal: 5, OffersOffered: 3, OffersAwaitingDecision: 2}, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/dashboard", managerID, nil)

	suite.Equal(http.StatusOK, w.Code)

	var responseBody domain.DashboardCounts
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &responseBody))
	suite.Equal(5, responseBody.StaffTotal)
	suite.Equal(3, responseBody.OffersOffered)
	suite.mockOfferService.AssertExpectations(suite.T())
}

func (suite *OfferHandlerTestSuite) TestDashboard_MissingTokenReturns401() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockOfferService.AssertNotCalled(suite.T(), "Dashboard", mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestOfferHandler(t *testing.T) {
	suite.Run(t, new(OfferHandlerTestSuite))
}
