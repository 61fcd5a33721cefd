package billing

import (
	"time"

	"github.com/bizpulse/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItemRequest is one requested line of a new bill.
// UnitPrice defaults to the product's list price when nil.
type LineItemRequest struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
	UnitPrice *decimal.Decimal
}

// CreateBillRequest represents a request to create a bill
type CreateBillRequest struct {
	CustomerID           *uuid.UUID
	CustomerName         string
	LineItems            []LineItemRequest
	TaxTotal             decimal.Decimal
	DiscountTotal        decimal.Decimal
	PaymentMethod        string
	PartialUpfrontAmount decimal.Decimal
	Notes                string
}

// BillCreatedResponse is returned after a bill is committed
type BillCreatedResponse struct {
	BillID           uuid.UUID       `json:"bill_id"`
	SequenceNumber   string          `json:"sequence_number"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	TaxTotal         decimal.Decimal `json:"tax_total"`
	DiscountTotal    decimal.Decimal `json:"discount_total"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	PaymentMethod    string          `json:"payment_method"`
	PaymentStatus    string          `json:"payment_status"`
	CreditPaidAmount decimal.Decimal `json:"credit_paid_amount"`
	CreditBalance    decimal.Decimal `json:"credit_balance"`
}

// LineItemResponse represents a bill line in API responses
type LineItemResponse struct {
	ID                uuid.UUID       `json:"id"`
	LineNo            int             `json:"line_no"`
	ProductID         uuid.UUID       `json:"product_id"`
	ProductName       string          `json:"product_name"`
	Category          string          `json:"category,omitempty"`
	Quantity          decimal.Decimal `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	LineTotal         decimal.Decimal `json:"line_total"`
	AllocatedTax      decimal.Decimal `json:"allocated_tax"`
	AllocatedDiscount decimal.Decimal `json:"allocated_discount"`
}

// PaymentRecordResponse represents a payment in API responses
type PaymentRecordResponse struct {
	ID          uuid.UUID       `json:"id"`
	Method      string          `json:"method"`
	Amount      decimal.Decimal `json:"amount"`
	ProcessedAt time.Time       `json:"processed_at"`
}

// BillResponse represents a bill header in API responses
type BillResponse struct {
	ID               uuid.UUID               `json:"id"`
	BillNumber       string                  `json:"bill_number"`
	CustomerID       *uuid.UUID              `json:"customer_id,omitempty"`
	CustomerName     string                  `json:"customer_name"`
	Subtotal         decimal.Decimal         `json:"subtotal"`
	TaxTotal         decimal.Decimal         `json:"tax_total"`
	DiscountTotal    decimal.Decimal         `json:"discount_total"`
	TotalAmount      decimal.Decimal         `json:"total_amount"`
	PaymentMethod    string                  `json:"payment_method"`
	PaymentStatus    string                  `json:"payment_status"`
	CreditPaidAmount decimal.Decimal         `json:"credit_paid_amount"`
	CreditBalance    decimal.Decimal         `json:"credit_balance"`
	Notes            string                  `json:"notes,omitempty"`
	CreatedAt        time.Time               `json:"created_at"`
	Items            []LineItemResponse      `json:"items,omitempty"`
	Payments         []PaymentRecordResponse `json:"payments,omitempty"`
}

// RecordPaymentRequest represents a payment against a credit bill
type RecordPaymentRequest struct {
	BillID         uuid.UUID
	Amount         decimal.Decimal
	Method         string
	Note           string
	IdempotencyKey string
}

// PaymentResultResponse is returned after a payment is applied
type PaymentResultResponse struct {
	BillID         uuid.UUID       `json:"bill_id"`
	BillNumber     string          `json:"bill_number"`
	TransactionID  uuid.UUID       `json:"transaction_id"`
	AmountApplied  decimal.Decimal `json:"amount_applied"`
	OverpaidAmount decimal.Decimal `json:"overpaid_amount"`
	NewPaidAmount  decimal.Decimal `json:"new_paid_amount"`
	NewBalance     decimal.Decimal `json:"new_balance"`
	NewStatus      string          `json:"new_status"`
}

// OutstandingBillsQuery filters the outstanding bills list
type OutstandingBillsQuery struct {
	CustomerID   *uuid.UUID
	CustomerName string
	Status       string
	From         *time.Time
	To           *time.Time
	Page         int
	PageSize     int
}

// CreditTransactionResponse represents a credit audit entry in API responses
type CreditTransactionResponse struct {
	ID              uuid.UUID       `json:"id"`
	BillID          uuid.UUID       `json:"bill_id"`
	CustomerID      *uuid.UUID      `json:"customer_id,omitempty"`
	CustomerName    string          `json:"customer_name"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	Method          string          `json:"method"`
	ReferenceNumber string          `json:"reference_number"`
	Note            string          `json:"note,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ReceivableResponse aggregates outstanding credit
type ReceivableResponse struct {
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	TotalBilled      decimal.Decimal `json:"total_billed"`
	TotalReceived    decimal.Decimal `json:"total_received"`
	BillCount        int64           `json:"bill_count"`
	CustomerCount    int64           `json:"customer_count"`
}

// CustomerStatementResponse is a customer's bills and credit history
type CustomerStatementResponse struct {
	CustomerID       uuid.UUID                   `json:"customer_id"`
	CustomerName     string                      `json:"customer_name"`
	CreditLimit      decimal.Decimal             `json:"credit_limit"`
	TotalBilled      decimal.Decimal             `json:"total_billed"`
	TotalPaid        decimal.Decimal             `json:"total_paid"`
	TotalOutstanding decimal.Decimal             `json:"total_outstanding"`
	Bills            []BillResponse              `json:"bills"`
	Transactions     []CreditTransactionResponse `json:"transactions"`
}

// CollectionResponse summarizes payments received on a day
type CollectionResponse struct {
	Date             string          `json:"date"`
	TransactionCount int64           `json:"transaction_count"`
	TotalCollected   decimal.Decimal `json:"total_collected"`
}

// ToBillCreatedResponse converts a domain Bill to BillCreatedResponse
func ToBillCreatedResponse(b *billing.Bill) *BillCreatedResponse {
	return &BillCreatedResponse{
		BillID:           b.ID,
		SequenceNumber:   b.BillNumber,
		Subtotal:         b.Subtotal,
		TaxTotal:         b.TaxTotal,
		DiscountTotal:    b.DiscountTotal,
		TotalAmount:      b.TotalAmount,
		PaymentMethod:    string(b.PaymentMethod),
		PaymentStatus:    string(b.PaymentStatus),
		CreditPaidAmount: b.CreditPaidAmount,
		CreditBalance:    b.CreditBalance,
	}
}

// ToBillResponse converts a domain Bill to BillResponse, items included
func ToBillResponse(b *billing.Bill) BillResponse {
	resp := BillResponse{
		ID:               b.ID,
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
		CreatedAt:        b.CreatedAt,
	}
	for _, item := range b.Items {
		resp.Items = append(resp.Items, LineItemResponse{
			ID:                item.ID,
			LineNo:            item.LineNo,
			ProductID:         item.ProductID,
			ProductName:       item.ProductName,
			Category:          item.Category,
			Quantity:          item.Quantity,
			UnitPrice:         item.UnitPrice,
			LineTotal:         item.LineTotal,
			AllocatedTax:      item.AllocatedTax,
			AllocatedDiscount: item.AllocatedDiscount,
		})
	}
	return resp
}

// ToBillResponses converts a slice of bills, dropping line items
func ToBillResponses(bills []billing.Bill) []BillResponse {
	result := make([]BillResponse, len(bills))
	for i := range bills {
		result[i] = ToBillResponse(&bills[i])
		result[i].Items = nil
	}
	return result
}

// ToPaymentRecordResponses converts payment records
func ToPaymentRecordResponses(records []billing.PaymentRecord) []PaymentRecordResponse {
	result := make([]PaymentRecordResponse, len(records))
	for i, r := range records {
		result[i] = PaymentRecordResponse{
			ID:          r.ID,
			Method:      r.Method,
			Amount:      r.Amount,
			ProcessedAt: r.ProcessedAt,
		}
	}
	return result
}

// ToCreditTransactionResponses converts credit transactions
func ToCreditTransactionResponses(txns []billing.CreditTransaction) []CreditTransactionResponse {
	result := make([]CreditTransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = CreditTransactionResponse{
			ID:              t.ID,
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
	return result
}
