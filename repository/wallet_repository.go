package repository

import (
	"context"
	"fmt"

	"mentorhub/database"
	"mentorhub/domain/entities"
	"mentorhub/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

const walletColumns = `id, user_id, balance, total_spent, total_earned, created_at, updated_at`

const transactionColumns = `id, wallet_id, amount, transaction_type, description, appointment_id, created_at`

// WalletRepository implements the WalletRepository interface on postgres
type WalletRepository struct {
	q Queryable
}

// NewWalletRepository creates a wallet repository over the connection pool
func NewWalletRepository(db *database.DB) *WalletRepository {
	return &WalletRepository{q: db.Pool}
}

// NewWalletRepositoryTx creates a wallet repository bound to a transaction
func NewWalletRepositoryTx(tx Queryable) interfaces.WalletRepository {
	return &WalletRepository{q: tx}
}

// Create persists a new wallet and fills in its id
func (r *WalletRepository) Create(ctx context.Context, wallet *entities.Wallet) error {
	query := `
		INSERT INTO wallets (user_id, balance, total_spent, total_earned)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.q.QueryRow(ctx, query,
		wallet.UserID,
		wallet.Balance,
		wallet.TotalSpent,
		wallet.TotalEarned,
	).Scan(&wallet.ID, &wallet.CreatedAt, &wallet.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create wallet for user %d: %w", wallet.UserID, err)
	}
	return nil
}

// GetByUserID retrieves the wallet owned by a user, nil when absent
func (r *WalletRepository) GetByUserID(ctx context.Context, userID int64) (*entities.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1`
	wallet, err := r.scanWallet(r.q.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet for user %d: %w", userID, err)
	}
	return wallet, nil
}

// GetByID retrieves a wallet by id, nil when absent
func (r *WalletRepository) GetByID(ctx context.Context, id int64) (*entities.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1`
	wallet, err := r.scanWallet(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet %d: %w", id, err)
	}
	return wallet, nil
}

// Deduct atomically subtracts points when the balance covers them. The
// balance guard lives in the WHERE clause, so two racing deductions cannot
// both succeed past the funds: the second sees zero rows affected.
func (r *WalletRepository) Deduct(ctx context.Context, walletID int64, points int64) (bool, error) {
	query := `
		UPDATE wallets
		SET balance = balance - $1, total_spent = total_spent + $1, updated_at = NOW()
		WHERE id = $2 AND balance >= $1
	`
	result, err := r.q.Exec(ctx, query, points, walletID)
	if err != nil {
		return false, fmt.Errorf("failed to deduct %d points from wallet %d: %w", points, walletID, err)
	}
	return result.RowsAffected() > 0, nil
}

// Credit atomically adds points to the balance
func (r *WalletRepository) Credit(ctx context.Context, walletID int64, points int64, countEarned bool) error {
	query := `
		UPDATE wallets
		SET balance = balance + $1, updated_at = NOW()
		WHERE id = $2
	`
	if countEarned {
		query = `
			UPDATE wallets
			SET balance = balance + $1, total_earned = total_earned + $1, updated_at = NOW()
			WHERE id = $2
		`
	}
	result, err := r.q.Exec(ctx, query, points, walletID)
	if err != nil {
		return fmt.Errorf("failed to credit %d points to wallet %d: %w", points, walletID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("wallet %d not found", walletID)
	}
	return nil
}

// CreateTransaction appends a ledger entry
func (r *WalletRepository) CreateTransaction(ctx context.Context, transaction *entities.WalletTransaction) error {
	if err := transaction.Validate(); err != nil {
		return fmt.Errorf("invalid transaction for wallet %d: %w", transaction.WalletID, err)
	}

	query := `
		INSERT INTO wallet_transactions (wallet_id, amount, transaction_type, description, appointment_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	err := r.q.QueryRow(ctx, query,
		transaction.WalletID,
		transaction.Amount,
		transaction.Type,
		transaction.Description,
		transaction.AppointmentID,
	).Scan(&transaction.ID, &transaction.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record transaction for wallet %d: %w", transaction.WalletID, err)
	}
	return nil
}

// GetTransactionsByWallet returns the ledger for a wallet, newest first
func (r *WalletRepository) GetTransactionsByWallet(ctx context.Context, walletID int64) ([]*entities.WalletTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM wallet_transactions WHERE wallet_id = $1 ORDER BY created_at DESC, id DESC`
	return r.queryTransactions(ctx, query, walletID)
}

// GetTransactionsByType returns a wallet's ledger entries of one type
func (r *WalletRepository) GetTransactionsByType(ctx context.Context, walletID int64, transactionType entities.TransactionType) ([]*entities.WalletTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM wallet_transactions WHERE wallet_id = $1 AND transaction_type = $2 ORDER BY created_at DESC, id DESC`
	return r.queryTransactions(ctx, query, walletID, transactionType)
}

func (r *WalletRepository) scanWallet(row pgx.Row) (*entities.Wallet, error) {
	var wallet entities.Wallet
	err := row.Scan(
		&wallet.ID,
		&wallet.UserID,
		&wallet.Balance,
		&wallet.TotalSpent,
		&wallet.TotalEarned,
		&wallet.CreatedAt,
		&wallet.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

func (r *WalletRepository) queryTransactions(ctx context.Context, query string, args ...any) ([]*entities.WalletTransaction, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*entities.WalletTransaction
	for rows.Next() {
		var transaction entities.WalletTransaction
		err := rows.Scan(
			&transaction.ID,
			&transaction.WalletID,
			&transaction.Amount,
			&transaction.Type,
			&transaction.Description,
			&transaction.AppointmentID,
			&transaction.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, &transaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return transactions, nil
}
