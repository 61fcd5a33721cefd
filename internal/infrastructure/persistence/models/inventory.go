package models

import (
	"github.com/bizpulse/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product aggregate root.
type ProductModel struct {
	OwnerAggregateModel
	Name             string          `gorm:"type:varchar(200);not null;index"`
	Category         string          `gorm:"type:varchar(100);index"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitCost         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	StockQuantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReorderThreshold decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *inventory.Product {
	return &inventory.Product{
		OwnerAggregateRoot: m.ToDomainOwnerAggregateRoot(),
		Name:               m.Name,
		Category:           m.Category,
		UnitPrice:          m.UnitPrice,
		UnitCost:           m.UnitCost,
		StockQuantity:      m.StockQuantity,
		ReorderThreshold:   m.ReorderThreshold,
	}
}

// FromDomain populates the persistence model from a domain Product
func (m *ProductModel) FromDomain(p *inventory.Product) {
	m.FromDomainOwnerAggregateRoot(p.OwnerAggregateRoot)
	m.Name = p.Name
	m.Category = p.Category
	m.UnitPrice = p.UnitPrice
	m.UnitCost = p.UnitCost
	m.StockQuantity = p.StockQuantity
	m.ReorderThreshold = p.ReorderThreshold
}

// ProductModelFromDomain creates a new persistence model from a domain Product
func ProductModelFromDomain(p *inventory.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
