package repository

import "gorm.io/gorm"

// Repositories EqMS 저장소 집합
type Repositories struct {
	Part        *PartRepository
	Inventory   *InventoryRepository
	Price       *PriceRepository
	Supplier    *SupplierRepository
	Transaction *TransactionRepository
	User        *UserRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Part:        NewPartRepository(db),
		Inventory:   NewInventoryRepository(db),
		Price:       NewPriceRepository(db),
		Supplier:    NewSupplierRepository(db),
		Transaction: NewTransactionRepository(db),
		User:        NewUserRepository(db),
	}
}
