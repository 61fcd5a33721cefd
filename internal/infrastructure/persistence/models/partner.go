package models

import (
	"github.com/bizpulse/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// CustomerModel is the persistence model for the Customer aggregate root.
type CustomerModel struct {
	OwnerAggregateModel
	Name        string          `gorm:"type:varchar(200);not null;index"`
	Phone       string          `gorm:"type:varchar(50)"`
	Email       string          `gorm:"type:varchar(200)"`
	Address     string          `gorm:"type:text"`
	CreditLimit decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		OwnerAggregateRoot: m.ToDomainOwnerAggregateRoot(),
		Name:               m.Name,
		Phone:              m.Phone,
		Email:              m.Email,
		Address:            m.Address,
		CreditLimit:        m.CreditLimit,
	}
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{
		Name:        c.Name,
		Phone:       c.Phone,
		Email:       c.Email,
		Address:     c.Address,
		CreditLimit: c.CreditLimit,
	}
	m.FromDomainOwnerAggregateRoot(c.OwnerAggregateRoot)
	return m
}
