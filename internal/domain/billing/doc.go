// Package billing provides the domain model of the transactional sales ledger.
//
// This package implements the billing bounded context, which is responsible for:
//   - Building a bill from line items and splitting its tax and discount across them
//   - Classifying how a bill is settled (cash, partial, deferred credit)
//   - Applying later payments against a bill's outstanding credit balance
//
// Key Aggregates:
//   - Bill: header, line items and payment state of one sale
//
// Append-only records:
//   - PaymentRecord: money received against a bill
//   - CreditTransaction: issued/payment audit trail for credit bills
//   - SalesEntry: one sales-ledger row per line item
//
// The billing domain integrates with:
//   - Inventory domain: stock is decremented for every line item and restored on deletion
//   - Partner domain: an optional customer the bill is charged to
package billing
