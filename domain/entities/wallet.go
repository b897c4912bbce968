package entities

import "time"

// Wallet holds a user's point balance. One wallet per user, created lazily
// on first access. Balance never goes negative; TotalSpent and TotalEarned
// are monotonic informational counters.
type Wallet struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	Balance     int64     `db:"balance" json:"balance"`
	TotalSpent  int64     `db:"total_spent" json:"total_spent"`
	TotalEarned int64     `db:"total_earned" json:"total_earned"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// CanAfford returns true if the balance covers the given point amount
func (w *Wallet) CanAfford(points int64) bool {
	return w.Balance >= points
}
