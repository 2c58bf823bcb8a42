package enums

import "fmt"

// TransactionType classifies an inventory movement.
type TransactionType string

const (
	TransactionRentOut TransactionType = "RENT_OUT"
	TransactionReturn  TransactionType = "RETURN"
	TransactionSale    TransactionType = "SALE"
	TransactionDamage  TransactionType = "DAMAGE"
)

var validTransactionTypes = []TransactionType{
	TransactionRentOut,
	TransactionReturn,
	TransactionSale,
	TransactionDamage,
}

func (t TransactionType) String() string {
	return string(t)
}

func (t TransactionType) IsValid() bool {
	for _, v := range validTransactionTypes {
		if t == v {
			return true
		}
	}
	return false
}

// AllowsDamageRecords reports whether damage details may be attached to
// a transaction of this type.
func (t TransactionType) AllowsDamageRecords() bool {
	return t == TransactionReturn || t == TransactionDamage
}

func ParseTransactionType(value string) (TransactionType, error) {
	candidate := TransactionType(value)
	if !candidate.IsValid() {
		return "", fmt.Errorf("invalid transaction type: %q", value)
	}
	return candidate, nil
}
