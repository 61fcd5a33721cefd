package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaymentMethod(t *testing.T) {
	m, err := ParsePaymentMethod(" Partial ")
	require.NoError(t, err)
	assert.Equal(t, PaymentMethodPartial, m)
	assert.True(t, m.IsCredit())

	_, err = ParsePaymentMethod("cheque")
	assert.Error(t, err)
}

func TestParsePaymentStatus(t *testing.T) {
	s, err := ParsePaymentStatus("unpaid")
	require.NoError(t, err)
	assert.Equal(t, PaymentStatusUnpaid, s)

	_, err = ParsePaymentStatus("void")
	assert.Error(t, err)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		method      PaymentMethod
		total       string
		upfront     string
		wantMethod  PaymentMethod
		wantStatus  PaymentStatus
		wantPaid    string
		wantBalance string
	}{
		{"cash", PaymentMethodCash, "354", "0", PaymentMethodCash, PaymentStatusPaid, "354", "0"},
		{"credit", PaymentMethodCredit, "236", "0", PaymentMethodCredit, PaymentStatusUnpaid, "0", "236"},
		{"partial", PaymentMethodPartial, "500", "200", PaymentMethodPartial, PaymentStatusPartial, "200", "300"},
		{"partial zero upfront", PaymentMethodPartial, "500", "0", PaymentMethodCredit, PaymentStatusUnpaid, "0", "500"},
		{"partial full upfront", PaymentMethodPartial, "500", "500", PaymentMethodCash, PaymentStatusPaid, "500", "0"},
		{"zero total credit", PaymentMethodCredit, "0", "0", PaymentMethodCash, PaymentStatusPaid, "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Classify(tt.method, dec(tt.total), dec(tt.upfront))

			require.NoError(t, err)
			assert.Equal(t, tt.wantMethod, s.Method)
			assert.Equal(t, tt.wantStatus, s.Status)
			assert.True(t, dec(tt.wantPaid).Equal(s.Paid))
			assert.True(t, dec(tt.wantBalance).Equal(s.Balance))
			assert.True(t, s.Paid.Add(s.Balance).Equal(dec(tt.total)))
		})
	}
}
