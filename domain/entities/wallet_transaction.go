package entities

import (
	"errors"
	"time"
)

// WalletTransaction is one append-only ledger entry. Amount is signed:
// negative for spends, positive for earns, refunds and bonuses. Entries
// caused by a booking carry that appointment's id.
type WalletTransaction struct {
	ID            int64           `db:"id" json:"id"`
	WalletID      int64           `db:"wallet_id" json:"wallet_id"`
	Amount        int64           `db:"amount" json:"amount"`
	Type          TransactionType `db:"transaction_type" json:"type"`
	Description   string          `db:"description" json:"description"`
	AppointmentID *int64          `db:"appointment_id" json:"appointment_id,omitempty"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}

// Validate checks that the amount sign agrees with the transaction type
func (t *WalletTransaction) Validate() error {
	if !t.Type.IsValid() {
		return errors.New("unknown transaction type")
	}
	if t.Amount == 0 {
		return errors.New("transaction amount cannot be zero")
	}
	if t.Type.IsDebit() && t.Amount > 0 {
		return errors.New("spend transactions must carry a negative amount")
	}
	if t.Type.IsCredit() && t.Amount < 0 {
		return errors.New("credit transactions must carry a positive amount")
	}
	return nil
}

// IsForAppointment returns true if the entry is tagged with an appointment
func (t *WalletTransaction) IsForAppointment(appointmentID int64) bool {
	return t.AppointmentID != nil && *t.AppointmentID == appointmentID
}
