package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/contractbank/ledger-service/internal/ledger"
	"github.com/contractbank/ledger-service/internal/middleware"
)

// LedgerOperator defines the account operations used by LedgerHandler.
type LedgerOperator interface {
	Deposit(id string, amount float64) (ledger.Snapshot, error)
	Withdraw(id string, amount float64) (ledger.Snapshot, error)
	Transfer(fromID, toID string, amount float64) (ledger.Snapshot, ledger.Snapshot, error)
	Balance(id string) ledger.Snapshot
	Reset()
}

// LedgerHandler handles the ledger HTTP endpoints.
type LedgerHandler struct {
	ops LedgerOperator
}

func NewLedgerHandler(ops LedgerOperator) *LedgerHandler {
	return &LedgerHandler{ops: ops}
}

// Amounts carry no validation tag: sign and sufficiency checks belong to the
// account model, which classifies them as contract violations. The request
// layer only checks that account identifiers are present.
type DepositRequest struct {
	AccountID string  `json:"account_id" validate:"required"`
	Amount    float64 `json:"amount"`
}

type WithdrawRequest struct {
	AccountID string  `json:"account_id" validate:"required"`
	Amount    float64 `json:"amount"`
}

type TransferRequest struct {
	FromID string  `json:"from_id" validate:"required"`
	ToID   string  `json:"to_id" validate:"required"`
	Amount float64 `json:"amount"`
}

type AccountResponse struct {
	AccountID string  `json:"account_id"`
	Balance   float64 `json:"balance"`
	Message   string  `json:"message"`
}

type AccountState struct {
	AccountID string  `json:"account_id"`
	Balance   float64 `json:"balance"`
}

type TransferResponse struct {
	FromAccount AccountState `json:"from_account"`
	ToAccount   AccountState `json:"to_account"`
	Message     string       `json:"message"`
}

// ViolationResponse is the error body for contract violations: the category
// tag, the violation text and the operation that produced it.
type ViolationResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Context string `json:"context"`
}

func (h *LedgerHandler) Deposit(c *gin.Context) {
	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	snap, err := h.ops.Deposit(req.AccountID, req.Amount)
	if err != nil {
		respondWithViolation(c, err, "deposit")
		return
	}

	c.JSON(http.StatusOK, AccountResponse{
		AccountID: snap.ID,
		Balance:   snap.Balance,
		Message:   fmt.Sprintf("Successfully deposited %v", req.Amount),
	})
}

func (h *LedgerHandler) Withdraw(c *gin.Context) {
	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	snap, err := h.ops.Withdraw(req.AccountID, req.Amount)
	if err != nil {
		respondWithViolation(c, err, "withdraw")
		return
	}

	c.JSON(http.StatusOK, AccountResponse{
		AccountID: snap.ID,
		Balance:   snap.Balance,
		Message:   fmt.Sprintf("Successfully withdrew %v", req.Amount),
	})
}

func (h *LedgerHandler) Transfer(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return
	}

	from, to, err := h.ops.Transfer(req.FromID, req.ToID, req.Amount)
	if err != nil {
		respondWithViolation(c, err, "transfer")
		return
	}

	c.JSON(http.StatusOK, TransferResponse{
		FromAccount: AccountState{AccountID: from.ID, Balance: from.Balance},
		ToAccount:   AccountState{AccountID: to.ID, Balance: to.Balance},
		Message:     fmt.Sprintf("Successfully transferred %v from %s to %s", req.Amount, req.FromID, req.ToID),
	})
}

// GetAccount reads an account's balance, creating the account with zero
// balance if it does not exist yet. Never fails.
func (h *LedgerHandler) GetAccount(c *gin.Context) {
	snap := h.ops.Balance(c.Param("accountID"))
	c.JSON(http.StatusOK, AccountResponse{
		AccountID: snap.ID,
		Balance:   snap.Balance,
		Message:   "Account retrieved successfully",
	})
}

// ResetAccounts unconditionally destroys every account.
func (h *LedgerHandler) ResetAccounts(c *gin.Context) {
	h.ops.Reset()
	c.JSON(http.StatusOK, gin.H{"message": "All accounts cleared"})
}

// respondWithViolation maps a contract violation onto its status class:
// invalid amounts and same-account transfers are client input errors (422),
// insufficient funds is a business-state conflict (409), and anything else,
// including invariant or postcondition breaches, is a generic 400.
func respondWithViolation(c *gin.Context, err error, context string) {
	kind := ledger.KindOf(err)

	status := http.StatusBadRequest
	switch kind {
	case ledger.KindInvalidAmount, ledger.KindSameAccountTransfer:
		status = http.StatusUnprocessableEntity
	case ledger.KindInsufficientFunds:
		status = http.StatusConflict
	}

	c.JSON(status, ViolationResponse{
		Error:   string(kind),
		Message: err.Error(),
		Context: context,
	})
}
