// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns.
//
// Structure:
//   - base.go: BaseModel and OwnerAggregateModel
//   - inventory.go: products
//   - partner.go: customers
//   - billing.go: bills, bill_items, sales_entries, payments, credit_transactions
package models
