package service

import (
	"errors"
	"testing"
	"time"

	"github.com/andy/rebancariza/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() ClientForm {
	return ClientForm{
		DNI:            " 12345678 ",
		Name:           "Juan Pérez Rodríguez",
		Phone:          "987654321",
		Description:    "Servicio de consultoría empresarial",
		ManagementDate: "2024-01-15",
		PaymentDate:    "2024-02-15",
		MonthlyFee:     "150.00",
		Status:         "active",
	}
}

func TestClientFormParse_Valid(t *testing.T) {
	patch, err := validForm().Parse()
	require.NoError(t, err)

	assert.Equal(t, "12345678", patch.DNI)
	assert.Equal(t, domain.NewDate(2024, time.February, 15), patch.PaymentDate)
	assert.True(t, patch.MonthlyFee.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, domain.StatusActive, patch.Status)
}

func TestClientFormParse_DescriptionOptional(t *testing.T) {
	f := validForm()
	f.Description = ""
	_, err := f.Parse()
	assert.NoError(t, err)
}

func TestClientFormParse_LegacyStatus(t *testing.T) {
	f := validForm()
	f.Status = "Castigo"
	patch, err := f.Parse()
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDelinquent, patch.Status)
}

func TestClientFormParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*ClientForm)
		field string
	}{
		{"missing dni", func(f *ClientForm) { f.DNI = "  " }, "dni"},
		{"missing name", func(f *ClientForm) { f.Name = "" }, "name"},
		{"missing phone", func(f *ClientForm) { f.Phone = "" }, "phone"},
		{"missing management date", func(f *ClientForm) { f.ManagementDate = "" }, "managementDate"},
		{"bad payment date", func(f *ClientForm) { f.PaymentDate = "15/02/2024" }, "paymentDate"},
		{"missing fee", func(f *ClientForm) { f.MonthlyFee = "" }, "monthlyFee"},
		{"non numeric fee", func(f *ClientForm) { f.MonthlyFee = "abc" }, "monthlyFee"},
		{"zero fee", func(f *ClientForm) { f.MonthlyFee = "0" }, "monthlyFee"},
		{"negative fee", func(f *ClientForm) { f.MonthlyFee = "-10" }, "monthlyFee"},
		{"unknown status", func(f *ClientForm) { f.Status = "overdue" }, "status"},
		{"first error wins", func(f *ClientForm) { f.Name = ""; f.MonthlyFee = "" }, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.edit(&f)

			_, err := f.Parse()

			var vErr *domain.ValidationError
			require.True(t, errors.As(err, &vErr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.field, vErr.Field)
			assert.NotEmpty(t, vErr.Message)
			assert.ErrorIs(t, err, domain.ErrInvalidClient)
		})
	}
}

func TestNewClientForm_Defaults(t *testing.T) {
	f := NewClientForm(time.Date(2024, 3, 9, 18, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-03-09", f.ManagementDate)
	assert.Equal(t, "2024-03-09", f.PaymentDate)
	assert.Equal(t, "active", f.Status)
	assert.Empty(t, f.Name)
}

func TestFormFromClientRoundTrip(t *testing.T) {
	c := SampleClients()[2]
	patch, err := FormFromClient(c).Parse()
	require.NoError(t, err)
	assert.Equal(t, c.Patch().Name, patch.Name)
	assert.Equal(t, c.PaymentDate, patch.PaymentDate)
	assert.True(t, c.MonthlyFee.Equal(patch.MonthlyFee))
	assert.Equal(t, domain.StatusDelinquent, patch.Status)
}
