package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"prive-ledger/pkg/logger"
	"prive-ledger/services/ledger/internal/entity"
	"prive-ledger/services/ledger/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockMonetizationUseCase is a mock implementation of MonetizationUseCase
type MockMonetizationUseCase struct {
	mock.Mock
}

func (m *MockMonetizationUseCase) Subscribe(subscriberID, creatorID string, monthlyPrice int64) (*entity.Entitlement, error) {
	args := m.Called(subscriberID, creatorID, monthlyPrice)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Entitlement), args.Error(1)
}

func (m *MockMonetizationUseCase) Unsubscribe(subscriberID, creatorID string) error {
	args := m.Called(subscriberID, creatorID)
	return args.Error(0)
}

func (m *MockMonetizationUseCase) Unlock(payerID, targetID string, kind entity.EntitlementKind, price int64) (*entity.Entitlement, error) {
	args := m.Called(payerID, targetID, kind, price)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Entitlement), args.Error(1)
}

func (m *MockMonetizationUseCase) Tip(payerID, recipientID string, amount int64) (*entity.Transaction, error) {
	args := m.Called(payerID, recipientID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *MockMonetizationUseCase) Subscriptions(userID string) ([]*entity.Entitlement, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Entitlement), args.Error(1)
}

var _ usecase.MonetizationUseCase = (*MockMonetizationUseCase)(nil)

func TestSubscribe_Success(t *testing.T) {
	mockUseCase := new(MockMonetizationUseCase)
	logger := logger.New()
	handler := NewMonetizationHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/subscriptions/:creator_id", func(c *gin.Context) {
		c.Set("user_id", "fan-123")
		handler.Subscribe(c)
	})

	mockEntitlement := &entity.Entitlement{
		ID:       "ent-1",
		TargetID: "creator-123",
		Kind:     entity.EntitlementKindSubscription,
	}
	mockUseCase.On("Subscribe", "fan-123", "creator-123", int64(1990)).Return(mockEntitlement, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/subscriptions/creator-123", bytes.NewBufferString(`{"price":1990}`))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Subscribed successfully", response["message"])

	mockUseCase.AssertExpectations(t)
}

func TestSubscribe_InsufficientFunds(t *testing.T) {
	mockUseCase := new(MockMonetizationUseCase)
	logger := logger.New()
	handler := NewMonetizationHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/subscriptions/:creator_id", func(c *gin.Context) {
		c.Set("user_id", "fan-123")
		handler.Subscribe(c)
	})

	mockUseCase.On("Subscribe", "fan-123", "creator-123", int64(1990)).Return(nil, entity.ErrInsufficientFunds)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/subscriptions/creator-123", bytes.NewBufferString(`{"price":1990}`))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestSubscribe_SelfPayment(t *testing.T) {
	mockUseCase := new(MockMonetizationUseCase)
	logger := logger.New()
	handler := NewMonetizationHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/subscriptions/:creator_id", func(c *gin.Context) {
		c.Set("user_id", "creator-123")
		handler.Subscribe(c)
	})

	mockUseCase.On("Subscribe", "creator-123", "creator-123", int64(1990)).Return(nil, entity.ErrSelfPayment)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/subscriptions/creator-123", bytes.NewBufferString(`{"price":1990}`))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestUnsubscribe_Success(t *testing.T) {
	mockUseCase := new(MockMonetizationUseCase)
	logger := logger.New()
	handler := NewMonetizationHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.DELETE("/subscriptions/:creator_id", func(c *gin.Context) {
		c.Set("user_id", "fan-123")
		handler.Unsubscribe(c)
	})

	mockUseCase.On("Unsubscribe", "fan-123", "creator-123").Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/subscriptions/creator-123", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestUnlockPost_Success(t *testing.T) {
	mockUseCase := new(MockMonetizationUseCase)
	logger := logger.New()
	handler := NewMonetizationHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/unlock/post/:post_id", func(c *gin.Context) {
		c.Set("user_id", "fan-123")
		handler.UnlockPost(c)
	})

	mockEntitlement := &entity.Entitlement{
		ID:       "ent-1",
		TargetID: "post-42",
		Kind:     entity.EntitlementKindUnlockPost,
	}
	mockUseCase.On("Unlock", "fan-123", "post-42", entity.EntitlementKindUnlockPost, int64(500)).Return(mockEntitlement, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/unlock/post/post-42", bytes.NewBufferString(`{"price":500}`))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Content unlocked", response["message"])

	mockUseCase.AssertExpectations(t)
}

func TestUnlockPost_TargetNotFound(t *testing.T) {
	mockUseCase := new(MockMonetizationUseCase)
	logger := logger.New()
	handler := NewMonetizationHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/unlock/post/:post_id", func(c *gin.Context) {
		c.Set("user_id", "fan-123")
		handler.UnlockPost(c)
	})

	mockUseCase.On("Unlock", "fan-123", "post-404", entity.EntitlementKindUnlockPost, int64(500)).Return(nil, entity.ErrTargetNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/unlock/post/post-404", bytes.NewBufferString(`{"price":500}`))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestUnlockMessage_Success(t *testing.T) {
	mockUseCase := new(MockMonetizationUseCase)
	logger := logger.New()
	handler := NewMonetizationHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/unlock/message/:message_id", func(c *gin.Context) {
		c.Set("user_id", "fan-123")
		handler.UnlockMessage(c)
	})

	mockEntitlement := &entity.Entitlement{
		ID:       "ent-1",
		TargetID: "msg-7",
		Kind:     entity.EntitlementKindUnlockMessage,
	}
	mockUseCase.On("Unlock", "fan-123", "msg-7", entity.EntitlementKindUnlockMessage, int64(990)).Return(mockEntitlement, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/unlock/message/msg-7", bytes.NewBufferString(`{"price":990}`))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestTip_Success(t *testing.T) {
	mockUseCase := new(MockMonetizationUseCase)
	logger := logger.New()
	handler := NewMonetizationHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/tips/:creator_id", func(c *gin.Context) {
		c.Set("user_id", "fan-123")
		handler.Tip(c)
	})

	mockTransaction := &entity.Transaction{
		ID:     "tx-1",
		Kind:   entity.TransactionKindTip,
		Amount: -1000,
		Status: entity.TransactionStatusCompleted,
	}
	mockUseCase.On("Tip", "fan-123", "creator-123", int64(1000)).Return(mockTransaction, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/tips/creator-123", bytes.NewBufferString(`{"amount":1000}`))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "Tip sent successfully", response["message"])

	mockUseCase.AssertExpectations(t)
}

func TestTip_InvalidBody(t *testing.T) {
	mockUseCase := new(MockMonetizationUseCase)
	logger := logger.New()
	handler := NewMonetizationHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/tips/:creator_id", handler.Tip)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/tips/creator-123", bytes.NewBufferString(`{"amount":-5}`))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertExpectations(t)
}
