package models

import (
	"time"

	"github.com/bizpulse/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillModel is the persistence model for the Bill aggregate root.
type BillModel struct {
	OwnerAggregateModel
	BillNumber       string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_bills_bill_number"`
	CustomerID       *uuid.UUID      `gorm:"type:uuid;index"`
	CustomerName     string          `gorm:"type:varchar(200);not null"`
	Subtotal         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TaxTotal         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	DiscountTotal    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaymentMethod    string          `gorm:"type:varchar(20);not null"`
	PaymentStatus    string          `gorm:"type:varchar(20);not null;index"`
	CreditPaidAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreditBalance    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0;index"`
	Notes            string          `gorm:"type:text"`
	Items            []BillItemModel `gorm:"foreignKey:BillID;references:ID"`
}

// TableName returns the table name for GORM
func (BillModel) TableName() string {
	return "bills"
}

// ToDomain converts the persistence model to a domain Bill, items included
func (m *BillModel) ToDomain() *billing.Bill {
	b := &billing.Bill{
		OwnerAggregateRoot: m.ToDomainOwnerAggregateRoot(),
		BillNumber:         m.BillNumber,
		CustomerID:         m.CustomerID,
		CustomerName:       m.CustomerName,
		Subtotal:           m.Subtotal,
		TaxTotal:           m.TaxTotal,
		DiscountTotal:      m.DiscountTotal,
		TotalAmount:        m.TotalAmount,
		PaymentMethod:      billing.PaymentMethod(m.PaymentMethod),
		PaymentStatus:      billing.PaymentStatus(m.PaymentStatus),
		CreditPaidAmount:   m.CreditPaidAmount,
		CreditBalance:      m.CreditBalance,
		Notes:              m.Notes,
		Items:              make([]billing.LineItem, len(m.Items)),
	}
	for i := range m.Items {
		b.Items[i] = m.Items[i].ToDomain()
	}
	return b
}

// BillModelFromDomain creates a persistence model from a domain Bill, items included
func BillModelFromDomain(b *billing.Bill) *BillModel {
	m := &BillModel{
		BillNumber:       b.BillNumber,
		CustomerID:       b.CustomerID,
		CustomerName:     b.CustomerName,
		Subtotal:         b.Subtotal,
		TaxTotal:         b.TaxTotal,
		DiscountTotal:    b.DiscountTotal,
		TotalAmount:      b.TotalAmount,
		PaymentMethod:    string(b.PaymentMethod),
		PaymentStatus:    string(b.PaymentStatus),
		CreditPaidAmount: b.CreditPaidAmount,
		CreditBalance:    b.CreditBalance,
		Notes:            b.Notes,
		Items:            make([]BillItemModel, len(b.Items)),
	}
	m.FromDomainOwnerAggregateRoot(b.OwnerAggregateRoot)
	for i := range b.Items {
		m.Items[i] = BillItemModelFromDomain(b.OwnerID, &b.Items[i])
	}
	return m
}

// BillItemModel is the persistence model for a bill line item.
type BillItemModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key"`
	OwnerID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	BillID            uuid.UUID       `gorm:"type:uuid;not null;index"`
	LineNo            int             `gorm:"not null"`
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName       string          `gorm:"type:varchar(200);not null"`
	Category          string          `gorm:"type:varchar(100)"`
	Quantity          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineTotal         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	AllocatedTax      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	AllocatedDiscount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (BillItemModel) TableName() string {
	return "bill_items"
}

// ToDomain converts the persistence model to a domain LineItem
func (m *BillItemModel) ToDomain() billing.LineItem {
	return billing.LineItem{
		ID:                m.ID,
		BillID:            m.BillID,
		LineNo:            m.LineNo,
		ProductID:         m.ProductID,
		ProductName:       m.ProductName,
		Category:          m.Category,
		Quantity:          m.Quantity,
		UnitPrice:         m.UnitPrice,
		UnitCost:          m.UnitCost,
		LineTotal:         m.LineTotal,
		AllocatedTax:      m.AllocatedTax,
		AllocatedDiscount: m.AllocatedDiscount,
	}
}

// BillItemModelFromDomain creates a persistence model from a domain LineItem
func BillItemModelFromDomain(ownerID uuid.UUID, li *billing.LineItem) BillItemModel {
	return BillItemModel{
		ID:                li.ID,
		OwnerID:           ownerID,
		BillID:            li.BillID,
		LineNo:            li.LineNo,
		ProductID:         li.ProductID,
		ProductName:       li.ProductName,
		Category:          li.Category,
		Quantity:          li.Quantity,
		UnitPrice:         li.UnitPrice,
		UnitCost:          li.UnitCost,
		LineTotal:         li.LineTotal,
		AllocatedTax:      li.AllocatedTax,
		AllocatedDiscount: li.AllocatedDiscount,
	}
}

// SalesEntryModel is the persistence model for a sales-ledger row.
type SalesEntryModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OwnerID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	BillID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	LineItemID  uuid.UUID       `gorm:"type:uuid;not null"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Category    string          `gorm:"type:varchar(100)"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Tax         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Discount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	SoldAt      time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (SalesEntryModel) TableName() string {
	return "sales_entries"
}

// SalesEntryModelFromDomain creates a persistence model from a domain SalesEntry
func SalesEntryModelFromDomain(e *billing.SalesEntry) SalesEntryModel {
	return SalesEntryModel{
		ID:          e.ID,
		OwnerID:     e.OwnerID,
		BillID:      e.BillID,
		LineItemID:  e.LineItemID,
		ProductID:   e.ProductID,
		ProductName: e.ProductName,
		Category:    e.Category,
		Quantity:    e.Quantity,
		UnitPrice:   e.UnitPrice,
		UnitCost:    e.UnitCost,
		LineTotal:   e.LineTotal,
		Tax:         e.Tax,
		Discount:    e.Discount,
		SoldAt:      e.SoldAt,
	}
}

// PaymentModel is the persistence model for a payment record.
type PaymentModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OwnerID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	BillID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Method      string          `gorm:"type:varchar(30);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ProcessedAt time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain PaymentRecord
func (m *PaymentModel) ToDomain() billing.PaymentRecord {
	return billing.PaymentRecord{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		BillID:      m.BillID,
		Method:      m.Method,
		Amount:      m.Amount,
		ProcessedAt: m.ProcessedAt,
	}
}

// PaymentModelFromDomain creates a persistence model from a domain PaymentRecord
func PaymentModelFromDomain(p *billing.PaymentRecord) PaymentModel {
	return PaymentModel{
		ID:          p.ID,
		OwnerID:     p.OwnerID,
		BillID:      p.BillID,
		Method:      p.Method,
		Amount:      p.Amount,
		ProcessedAt: p.ProcessedAt,
	}
}

// CreditTransactionModel is the persistence model for a credit audit entry.
type CreditTransactionModel struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	OwnerID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	BillID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerID      *uuid.UUID      `gorm:"type:uuid;index"`
	CustomerName    string          `gorm:"type:varchar(200);not null"`
	Type            string          `gorm:"type:varchar(20);not null;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Method          string          `gorm:"type:varchar(30);not null"`
	ReferenceNumber string          `gorm:"type:varchar(50)"`
	Note            string          `gorm:"type:text"`
	CreatedAt       time.Time       `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (CreditTransactionModel) TableName() string {
	return "credit_transactions"
}

// ToDomain converts the persistence model to a domain CreditTransaction
func (m *CreditTransactionModel) ToDomain() billing.CreditTransaction {
	return billing.CreditTransaction{
		ID:              m.ID,
		OwnerID:         m.OwnerID,
		BillID:          m.BillID,
		CustomerID:      m.CustomerID,
		CustomerName:    m.CustomerName,
		Type:            billing.CreditTransactionType(m.Type),
		Amount:          m.Amount,
		Method:          m.Method,
		ReferenceNumber: m.ReferenceNumber,
		Note:            m.Note,
		CreatedAt:       m.CreatedAt,
	}
}

// CreditTransactionModelFromDomain creates a persistence model from a domain CreditTransaction
func CreditTransactionModelFromDomain(t *billing.CreditTransaction) CreditTransactionModel {
	return CreditTransactionModel{
		ID:              t.ID,
		OwnerID:         t.OwnerID,
		BillID:          t.BillID,
		CustomerID:      t.CustomerID,
		CustomerName:    t.CustomerName,
		Type:            string(t.Type),
		Amount:          t.Amount,
		Method:          t.Method,
		ReferenceNumber: t.ReferenceNumber,
		Note:            t.Note,
		CreatedAt:       t.CreatedAt,
	}
}

// All returns every model, in dependency order, for AutoMigrate in tests and
// sqlite installs
func All() []any {
	return []any{
		&ProductModel{},
		&CustomerModel{},
		&BillModel{},
		&BillItemModel{},
		&SalesEntryModel{},
		&PaymentModel{},
		&CreditTransactionModel{},
	}
}
