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

// MockLedgerUseCase is a mock implementation of LedgerUseCase
type MockLedgerUseCase struct {
	mock.Mock
}

func (m *MockLedgerUseCase) GetAccount(userID string) (*entity.Account, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockLedgerUseCase) ProvisionAccount(userID string) (*entity.Account, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockLedgerUseCase) GetBalance(accountID string) (int64, error) {
	args := m.Called(accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerUseCase) Credit(accountID string, amount int64, kind entity.TransactionKind, description string) (*entity.Transaction, error) {
	args := m.Called(accountID, amount, kind, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *MockLedgerUseCase) Debit(accountID string, amount int64, kind entity.TransactionKind, description string) (*entity.Transaction, error) {
	args := m.Called(accountID, amount, kind, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *MockLedgerUseCase) Withdraw(accountID string, amount int64, description string) (*entity.Transaction, error) {
	args := m.Called(accountID, amount, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *MockLedgerUseCase) Transactions(accountID string, limit, offset int) ([]*entity.Transaction, error) {
	args := m.Called(accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Transaction), args.Error(1)
}

func (m *MockLedgerUseCase) Transaction(transactionID string) (*entity.Transaction, error) {
	args := m.Called(transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *MockLedgerUseCase) SettleTransaction(transactionID string, status entity.TransactionStatus) (*entity.Transaction, error) {
	args := m.Called(transactionID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *MockLedgerUseCase) ReverseWithdrawal(withdrawalID string) (*entity.Transaction, error) {
	args := m.Called(withdrawalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *MockLedgerUseCase) PurchaseEntitlement(purchase usecase.EntitlementPurchase) (*entity.Entitlement, *entity.Transaction, error) {
	args := m.Called(purchase)
	var entitlement *entity.Entitlement
	var transaction *entity.Transaction
	if args.Get(0) != nil {
		entitlement = args.Get(0).(*entity.Entitlement)
	}
	if args.Get(1) != nil {
		transaction = args.Get(1).(*entity.Transaction)
	}
	return entitlement, transaction, args.Error(2)
}

func (m *MockLedgerUseCase) RevokeEntitlement(accountID, targetID string, kind entity.EntitlementKind) error {
	args := m.Called(accountID, targetID, kind)
	return args.Error(0)
}

func (m *MockLedgerUseCase) Entitlement(accountID, targetID string, kind entity.EntitlementKind) (*entity.Entitlement, error) {
	args := m.Called(accountID, targetID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Entitlement), args.Error(1)
}

func (m *MockLedgerUseCase) Entitlements(accountID string) ([]*entity.Entitlement, error) {
	args := m.Called(accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Entitlement), args.Error(1)
}

var _ usecase.LedgerUseCase = (*MockLedgerUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestGetWallet_Success(t *testing.T) {
	mockUseCase := new(MockLedgerUseCase)
	logger := logger.New()
	handler := NewWalletHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.GET("/wallet", func(c *gin.Context) {
		c.Set("user_id", "user-123")
		handler.GetWallet(c)
	})

	mockAccount := &entity.Account{
		ID:      "acct-1",
		UserID:  "user-123",
		Balance: 15000,
	}
	mockUseCase.On("ProvisionAccount", "user-123").Return(mockAccount, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/wallet", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response entity.Account
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, int64(15000), response.Balance)

	mockUseCase.AssertExpectations(t)
}

func TestDeposit_Success(t *testing.T) {
	mockUseCase := new(MockLedgerUseCase)
	logger := logger.New()
	handler := NewWalletHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/wallet/deposit", func(c *gin.Context) {
		c.Set("user_id", "user-123")
		handler.Deposit(c)
	})

	mockAccount := &entity.Account{ID: "acct-1", UserID: "user-123", Balance: 0}
	mockTransaction := &entity.Transaction{
		ID:        "tx-1",
		AccountID: "acct-1",
		Kind:      entity.TransactionKindDeposit,
		Amount:    5000,
		Status:    entity.TransactionStatusCompleted,
	}

	mockUseCase.On("ProvisionAccount", "user-123").Return(mockAccount, nil)
	mockUseCase.On("Credit", "acct-1", int64(5000), entity.TransactionKindDeposit, "Deposit").Return(mockTransaction, nil)
	mockUseCase.On("GetBalance", "acct-1").Return(int64(5000), nil)

	depositJSON := `{"amount":5000}`
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/wallet/deposit", bytes.NewBufferString(depositJSON))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(5000), response["balance"])

	mockUseCase.AssertExpectations(t)
}

func TestDeposit_InvalidBody(t *testing.T) {
	mockUseCase := new(MockLedgerUseCase)
	logger := logger.New()
	handler := NewWalletHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.POST("/wallet/deposit", handler.Deposit)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/wallet/deposit", bytes.NewBufferString(`{"amount":0}`))
	req.Header.Set("Content-Type", "application/json")

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestGetTransactions_Success(t *testing.T) {
	mockUseCase := new(MockLedgerUseCase)
	logger := logger.New()
	handler := NewWalletHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.GET("/wallet/transactions", func(c *gin.Context) {
		c.Set("user_id", "user-123")
		handler.GetTransactions(c)
	})

	mockAccount := &entity.Account{ID: "acct-1", UserID: "user-123"}
	mockTransactions := []*entity.Transaction{
		{ID: "tx-2", AccountID: "acct-1", Kind: entity.TransactionKindTip, Amount: -1000},
		{ID: "tx-1", AccountID: "acct-1", Kind: entity.TransactionKindDeposit, Amount: 5000},
	}

	mockUseCase.On("ProvisionAccount", "user-123").Return(mockAccount, nil)
	mockUseCase.On("Transactions", "acct-1", 50, 0).Return(mockTransactions, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/wallet/transactions", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(2), response["count"])

	mockUseCase.AssertExpectations(t)
}

func TestGetEntitlements_Success(t *testing.T) {
	mockUseCase := new(MockLedgerUseCase)
	logger := logger.New()
	handler := NewWalletHandler(mockUseCase, logger)

	router := setupTestRouter()
	router.GET("/wallet/entitlements", func(c *gin.Context) {
		c.Set("user_id", "user-123")
		handler.GetEntitlements(c)
	})

	mockAccount := &entity.Account{ID: "acct-1", UserID: "user-123"}
	mockEntitlements := []*entity.Entitlement{
		{ID: "ent-1", AccountID: "acct-1", TargetID: "creator-1", Kind: entity.EntitlementKindSubscription},
	}

	mockUseCase.On("ProvisionAccount", "user-123").Return(mockAccount, nil)
	mockUseCase.On("Entitlements", "acct-1").Return(mockEntitlements, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/wallet/entitlements", nil)

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, float64(1), response["count"])

	mockUseCase.AssertExpectations(t)
}

func TestNewWalletHandler(t *testing.T) {
	mockUseCase := new(MockLedgerUseCase)
	logger := logger.New()
	handler := NewWalletHandler(mockUseCase, logger)

	assert.NotNil(t, handler)
}
