package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	cases := map[string]string{
		"":                         "DESC",
		"asc":                      "ASC",
		"  ASC ":                   "ASC",
		"desc":                     "DESC",
		"ascending":                "DESC",
		"ASC; DROP TABLE bills;--": "DESC",
	}
	for in, want := range cases {
		assert.Equal(t, want, ValidateSortOrder(in), "input %q", in)
	}
}

func TestValidateSortField(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", "created_at"},
		{"total_amount", "total_amount"},
		{" credit_balance ", "credit_balance"},
		{"TOTAL_AMOUNT", "created_at"},
		{"owner_id", "created_at"},
		{"bill_number desc", "created_at"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateSortField(tt.input, BillSortFields, "created_at"))
		})
	}
	assert.Empty(t, ValidateSortField("unknown", ProductSortFields, ""))
}

func TestSortFieldsWhitelists(t *testing.T) {
	whitelists := map[string]map[string]bool{
		"ProductSortFields":  ProductSortFields,
		"CustomerSortFields": CustomerSortFields,
		"BillSortFields":     BillSortFields,
	}

	for name, whitelist := range whitelists {
		t.Run(name+" contains created_at", func(t *testing.T) {
			assert.True(t, whitelist["created_at"], "%s should contain created_at", name)
		})
		t.Run(name+" excludes owner_id", func(t *testing.T) {
			assert.False(t, whitelist["owner_id"])
		})
	}
}

func TestSQLInjectionPrevention(t *testing.T) {
	injectionPayloads := []string{
		"created_at; DROP TABLE bills;--",
		"name' OR '1'='1",
		"total_amount UNION SELECT * FROM bills",
		"credit_balance, (SELECT owner_id FROM bills)",
		"CASE WHEN 1=1 THEN id ELSE name END",
		"name/**/;DROP TABLE products",
		"name\n; DROP TABLE products",
	}

	for _, payload := range injectionPayloads {
		t.Run("field: "+payload[:min(len(payload), 30)], func(t *testing.T) {
			assert.Equal(t, "created_at", ValidateSortField(payload, BillSortFields, "created_at"))
		})

		t.Run("order: "+payload[:min(len(payload), 30)], func(t *testing.T) {
			assert.Equal(t, "DESC", ValidateSortOrder(payload))
		})
	}
}
