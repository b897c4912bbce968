package entities

// TransactionType represents the kind of wallet ledger entry
type TransactionType string

// All transaction types supported by the ledger
const (
	TransactionTypeEarned   TransactionType = "earned"
	TransactionTypeSpent    TransactionType = "spent"
	TransactionTypeRefunded TransactionType = "refunded"
	TransactionTypeBonus    TransactionType = "bonus"
)

// IsCredit returns true if the transaction type increases the balance
func (tt TransactionType) IsCredit() bool {
	return tt == TransactionTypeEarned ||
		tt == TransactionTypeRefunded ||
		tt == TransactionTypeBonus
}

// IsDebit returns true if the transaction type decreases the balance
func (tt TransactionType) IsDebit() bool {
	return tt == TransactionTypeSpent
}

// IsValid returns true for a known transaction type
func (tt TransactionType) IsValid() bool {
	switch tt {
	case TransactionTypeEarned, TransactionTypeSpent, TransactionTypeRefunded, TransactionTypeBonus:
		return true
	}
	return false
}

// String returns the string representation of the transaction type
func (tt TransactionType) String() string {
	return string(tt)
}
