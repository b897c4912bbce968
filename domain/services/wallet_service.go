package services

import (
	"context"
	"fmt"

	"mentorhub/domain/entities"
	"mentorhub/domain/events"
	"mentorhub/domain/interfaces"
)

type walletService struct {
	walletRepo     interfaces.WalletRepository
	eventPublisher interfaces.EventPublisher
}

// NewWalletService creates a new wallet service
func NewWalletService(walletRepo interfaces.WalletRepository, eventPublisher interfaces.EventPublisher) interfaces.WalletService {
	return &walletService{
		walletRepo:     walletRepo,
		eventPublisher: eventPublisher,
	}
}

// GetOrCreateWallet retrieves the user's wallet, creating an empty one on first access
func (s *walletService) GetOrCreateWallet(ctx context.Context, userID int64) (*entities.Wallet, error) {
	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	if wallet != nil {
		return wallet, nil
	}

	wallet = &entities.Wallet{UserID: userID}
	if err := s.walletRepo.Create(ctx, wallet); err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	if err := s.eventPublisher.Publish(events.WalletCreatedEvent{
		WalletID: wallet.ID,
		UserID:   userID,
	}); err != nil {
		return nil, fmt.Errorf("failed to publish wallet created event: %w", err)
	}

	return wallet, nil
}

// AddPoints credits points with an earned ledger entry
func (s *walletService) AddPoints(ctx context.Context, userID int64, points int64, description string) (*entities.Wallet, error) {
	if points <= 0 {
		return nil, fmt.Errorf("point amount must be positive")
	}

	wallet, err := s.GetOrCreateWallet(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.credit(ctx, wallet, points, entities.TransactionTypeEarned, description, nil, true); err != nil {
		return nil, err
	}

	wallet.Balance += points
	wallet.TotalEarned += points
	return wallet, nil
}

// SpendPoints debits points outside the booking flow
func (s *walletService) SpendPoints(ctx context.Context, userID int64, points int64, description string) (*entities.Wallet, error) {
	if points <= 0 {
		return nil, fmt.Errorf("point amount must be positive")
	}

	wallet, err := s.GetOrCreateWallet(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.deduct(ctx, wallet, points, description, nil); err != nil {
		return nil, err
	}

	wallet.Balance -= points
	wallet.TotalSpent += points
	return wallet, nil
}

// DeductForAppointment authorizes and deducts the cost of a booking
func (s *walletService) DeductForAppointment(ctx context.Context, userID int64, points int64, appointmentID int64) error {
	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get wallet: %w", err)
	}
	if wallet == nil {
		return entities.ErrWalletNotFound
	}

	description := fmt.Sprintf("Appointment booking #%d", appointmentID)
	return s.deduct(ctx, wallet, points, description, &appointmentID)
}

// RefundForAppointment credits back the points of a cancelled booking
func (s *walletService) RefundForAppointment(ctx context.Context, userID int64, points int64, appointmentID int64) error {
	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get wallet: %w", err)
	}
	if wallet == nil {
		return entities.ErrWalletNotFound
	}

	description := fmt.Sprintf("Appointment cancellation refund #%d", appointmentID)
	// Refunds restore balance without inflating total_earned
	return s.credit(ctx, wallet, points, entities.TransactionTypeRefunded, description, &appointmentID, false)
}

// GetTransactions returns the user's ledger, newest first
func (s *walletService) GetTransactions(ctx context.Context, userID int64) ([]*entities.WalletTransaction, error) {
	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	if wallet == nil {
		return nil, nil
	}

	transactions, err := s.walletRepo.GetTransactionsByWallet(ctx, wallet.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return transactions, nil
}

// GetTransactionsByType returns the user's ledger entries of one type
func (s *walletService) GetTransactionsByType(ctx context.Context, userID int64, transactionType entities.TransactionType) ([]*entities.WalletTransaction, error) {
	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	if wallet == nil {
		return nil, nil
	}

	transactions, err := s.walletRepo.GetTransactionsByType(ctx, wallet.ID, transactionType)
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return transactions, nil
}

// deduct performs the conditional balance update and appends the spent entry.
// The conditional update and the ledger insert run on the same transaction,
// so a failed half rolls back the other.
func (s *walletService) deduct(ctx context.Context, wallet *entities.Wallet, points int64, description string, appointmentID *int64) error {
	ok, err := s.walletRepo.Deduct(ctx, wallet.ID, points)
	if err != nil {
		return fmt.Errorf("failed to deduct points: %w", err)
	}
	if !ok {
		return entities.ErrInsufficientBalance
	}

	transaction := &entities.WalletTransaction{
		WalletID:      wallet.ID,
		Amount:        -points,
		Type:          entities.TransactionTypeSpent,
		Description:   description,
		AppointmentID: appointmentID,
	}
	if err := s.walletRepo.CreateTransaction(ctx, transaction); err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}

	if err := s.eventPublisher.Publish(events.BalanceChangeEvent{
		UserID:          wallet.UserID,
		WalletID:        wallet.ID,
		OldBalance:      wallet.Balance,
		NewBalance:      wallet.Balance - points,
		ChangeAmount:    -points,
		TransactionType: entities.TransactionTypeSpent,
		AppointmentID:   appointmentID,
	}); err != nil {
		return fmt.Errorf("failed to publish balance change event: %w", err)
	}

	return nil
}

// credit adds points to the balance and appends the matching ledger entry
func (s *walletService) credit(ctx context.Context, wallet *entities.Wallet, points int64, transactionType entities.TransactionType, description string, appointmentID *int64, countEarned bool) error {
	if err := s.walletRepo.Credit(ctx, wallet.ID, points, countEarned); err != nil {
		return fmt.Errorf("failed to credit points: %w", err)
	}

	transaction := &entities.WalletTransaction{
		WalletID:      wallet.ID,
		Amount:        points,
		Type:          transactionType,
		Description:   description,
		AppointmentID: appointmentID,
	}
	if err := s.walletRepo.CreateTransaction(ctx, transaction); err != nil {
		return fmt.Errorf("failed to record transaction: %w", err)
	}

	if err := s.eventPublisher.Publish(events.BalanceChangeEvent{
		UserID:          wallet.UserID,
		WalletID:        wallet.ID,
		OldBalance:      wallet.Balance,
		NewBalance:      wallet.Balance + points,
		ChangeAmount:    points,
		TransactionType: transactionType,
		AppointmentID:   appointmentID,
	}); err != nil {
		return fmt.Errorf("failed to publish balance change event: %w", err)
	}

	return nil
}
