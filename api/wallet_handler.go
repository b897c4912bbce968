package api

import (
	"encoding/json"
	"net/http"

	"mentorhub/application"
	"mentorhub/cache"
	"mentorhub/domain/entities"
	"mentorhub/domain/interfaces"
	"mentorhub/domain/services"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// WalletHandler serves the points wallet endpoints
type WalletHandler struct {
	uowFactory  application.UnitOfWorkFactory
	walletCache *cache.WalletCache
	validate    *validator.Validate
}

// NewWalletHandler creates the wallet handler
func NewWalletHandler(uowFactory application.UnitOfWorkFactory, walletCache *cache.WalletCache) *WalletHandler {
	return &WalletHandler{
		uowFactory:  uowFactory,
		walletCache: walletCache,
		validate:    validator.New(),
	}
}

// RegisterRoutes mounts the wallet routes on the router
func (h *WalletHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/wallets/{userId}", h.GetWallet).Methods("GET")
	router.HandleFunc("/wallets/{userId}/balance", h.GetBalance).Methods("GET")
	router.HandleFunc("/wallets/{userId}/credit", h.AddPoints).Methods("POST")
	router.HandleFunc("/wallets/{userId}/debit", h.SpendPoints).Methods("POST")
	router.HandleFunc("/wallets/{userId}/transactions", h.GetTransactions).Methods("GET")
}

type pointsRequest struct {
	Points      int64  `json:"points" validate:"required,gt=0"`
	Description string `json:"description" validate:"required,max=255"`
}

type balanceResponse struct {
	UserID  int64 `json:"user_id"`
	Balance int64 `json:"balance"`
}

// GetWallet returns the user's wallet, creating one on first access
func (h *WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	var wallet *entities.Wallet
	err := withUnitOfWork(r.Context(), h.uowFactory, func(uow application.UnitOfWork) error {
		var err error
		wallet, err = h.walletService(uow).GetOrCreateWallet(r.Context(), userID)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.cacheBalance(r, userID, wallet.Balance)
	writeJSON(w, http.StatusOK, wallet)
}

// GetBalance returns only the balance, served from cache when warm
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	if h.walletCache != nil {
		if balance, err := h.walletCache.GetBalance(r.Context(), userID); err == nil {
			writeJSON(w, http.StatusOK, balanceResponse{UserID: userID, Balance: balance})
			return
		} else if err != cache.ErrBalanceNotFound {
			logrus.WithError(err).Warn("balance cache read failed")
		}
	}

	var wallet *entities.Wallet
	err := withUnitOfWork(r.Context(), h.uowFactory, func(uow application.UnitOfWork) error {
		var err error
		wallet, err = h.walletService(uow).GetOrCreateWallet(r.Context(), userID)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.cacheBalance(r, userID, wallet.Balance)
	writeJSON(w, http.StatusOK, balanceResponse{UserID: userID, Balance: wallet.Balance})
}

// AddPoints credits points to the user's wallet
func (h *WalletHandler) AddPoints(w http.ResponseWriter, r *http.Request) {
	h.mutateBalance(w, r, func(wallet interfaces.WalletService, userID int64, req pointsRequest) (*entities.Wallet, error) {
		return wallet.AddPoints(r.Context(), userID, req.Points, req.Description)
	})
}

// SpendPoints debits points from the user's wallet
func (h *WalletHandler) SpendPoints(w http.ResponseWriter, r *http.Request) {
	h.mutateBalance(w, r, func(wallet interfaces.WalletService, userID int64, req pointsRequest) (*entities.Wallet, error) {
		return wallet.SpendPoints(r.Context(), userID, req.Points, req.Description)
	})
}

// GetTransactions returns the user's ledger, optionally filtered by type
func (h *WalletHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	var filter *entities.TransactionType
	if raw := r.URL.Query().Get("type"); raw != "" {
		transactionType := entities.TransactionType(raw)
		if !transactionType.IsValid() {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown transaction type"})
			return
		}
		filter = &transactionType
	}

	var transactions []*entities.WalletTransaction
	err := withUnitOfWork(r.Context(), h.uowFactory, func(uow application.UnitOfWork) error {
		wallet := h.walletService(uow)
		var err error
		if filter != nil {
			transactions, err = wallet.GetTransactionsByType(r.Context(), userID, *filter)
		} else {
			transactions, err = wallet.GetTransactions(r.Context(), userID)
		}
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}

	if transactions == nil {
		transactions = []*entities.WalletTransaction{}
	}
	writeJSON(w, http.StatusOK, transactions)
}

func (h *WalletHandler) mutateBalance(w http.ResponseWriter, r *http.Request, fn func(wallet interfaces.WalletService, userID int64, req pointsRequest) (*entities.Wallet, error)) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	var req pointsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	var wallet *entities.Wallet
	err := withUnitOfWork(r.Context(), h.uowFactory, func(uow application.UnitOfWork) error {
		var err error
		wallet, err = fn(h.walletService(uow), userID, req)
		return err
	})
	if err != nil {
		writeError(w, err)
		return
	}

	h.invalidateBalance(r, userID)
	writeJSON(w, http.StatusOK, wallet)
}

func (h *WalletHandler) walletService(uow application.UnitOfWork) interfaces.WalletService {
	return services.NewWalletService(uow.WalletRepository(), uow.EventBus())
}

func (h *WalletHandler) cacheBalance(r *http.Request, userID int64, balance int64) {
	if h.walletCache == nil {
		return
	}
	if err := h.walletCache.SetBalance(r.Context(), userID, balance); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("failed to cache balance")
	}
}

func (h *WalletHandler) invalidateBalance(r *http.Request, userID int64) {
	if h.walletCache == nil {
		return
	}
	if err := h.walletCache.Invalidate(r.Context(), userID); err != nil {
		logrus.WithError(err).WithField("user_id", userID).Warn("failed to invalidate balance cache")
	}
}
