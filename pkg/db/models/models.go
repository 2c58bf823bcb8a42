package models

// All returns every model in dependency order, for AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&Customer{},
		&Product{},
		&ProductSize{},
		&ProductVariant{},
		&RentPrice{},
		&SalePrice{},
		&Inventory{},
		&Booking{},
		&BookingItem{},
		&InventoryTransaction{},
		&DamageRecord{},
		&Penalty{},
	}
}
