package service

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/andy/rebancariza/internal/domain"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ClientForm holds the raw text of the client form. Field order here is the
// order in which validation errors are reported.
type ClientForm struct {
	DNI            string `form:"dni" validate:"required"`
	Name           string `form:"name" validate:"required"`
	Phone          string `form:"phone" validate:"required"`
	Description    string `form:"description"`
	ManagementDate string `form:"managementDate" validate:"required,datetime=2006-01-02"`
	PaymentDate    string `form:"paymentDate" validate:"required,datetime=2006-01-02"`
	MonthlyFee     string `form:"monthlyFee" validate:"required,numeric"`
	Status         string `form:"status" validate:"required,oneof=active delinquent activo castigo"`
}

var formValidator = newFormValidator()

func newFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("form")
	})
	return v
}

// NewClientForm returns the blank form: both dates default to today and the
// status to active.
func NewClientForm(today time.Time) ClientForm {
	d := domain.DateOf(today).String()
	return ClientForm{
		ManagementDate: d,
		PaymentDate:    d,
		Status:         string(domain.StatusActive),
	}
}

// FormFromClient pre-fills the form for editing c.
func FormFromClient(c *domain.Client) ClientForm {
	return ClientForm{
		DNI:            c.DNI,
		Name:           c.Name,
		Phone:          c.Phone,
		Description:    c.Description,
		ManagementDate: c.ManagementDate.String(),
		PaymentDate:    c.PaymentDate.String(),
		MonthlyFee:     c.MonthlyFee.StringFixed(2),
		Status:         string(c.Status),
	}
}

func (f ClientForm) trimmed() ClientForm {
	return ClientForm{
		DNI:            strings.TrimSpace(f.DNI),
		Name:           strings.TrimSpace(f.Name),
		Phone:          strings.TrimSpace(f.Phone),
		Description:    strings.TrimSpace(f.Description),
		ManagementDate: strings.TrimSpace(f.ManagementDate),
		PaymentDate:    strings.TrimSpace(f.PaymentDate),
		MonthlyFee:     strings.TrimSpace(f.MonthlyFee),
		Status:         strings.ToLower(strings.TrimSpace(f.Status)),
	}
}

// Parse validates the form and converts it to a patch. The returned error
// is a *domain.ValidationError naming the first offending field.
func (f ClientForm) Parse() (domain.ClientPatch, error) {
	f = f.trimmed()

	if err := formValidator.Struct(f); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return domain.ClientPatch{}, fieldError(errs[0])
		}
		return domain.ClientPatch{}, fmt.Errorf("validate form: %w", err)
	}

	mgmt, err := domain.ParseDate(f.ManagementDate)
	if err != nil {
		return domain.ClientPatch{}, &domain.ValidationError{Field: "managementDate", Message: "enter a date as YYYY-MM-DD"}
	}
	pay, err := domain.ParseDate(f.PaymentDate)
	if err != nil {
		return domain.ClientPatch{}, &domain.ValidationError{Field: "paymentDate", Message: "enter a date as YYYY-MM-DD"}
	}
	fee, err := decimal.NewFromString(f.MonthlyFee)
	if err != nil || !fee.IsPositive() {
		return domain.ClientPatch{}, &domain.ValidationError{Field: "monthlyFee", Message: "enter an amount greater than 0"}
	}
	status, err := domain.ParseStatus(f.Status)
	if err != nil {
		return domain.ClientPatch{}, &domain.ValidationError{Field: "status", Message: "choose active or delinquent"}
	}

	return domain.ClientPatch{
		DNI:            f.DNI,
		Name:           f.Name,
		Phone:          f.Phone,
		Description:    f.Description,
		ManagementDate: mgmt,
		PaymentDate:    pay,
		MonthlyFee:     fee,
		Status:         status,
	}, nil
}

func fieldError(fe validator.FieldError) *domain.ValidationError {
	var msg string
	switch fe.Tag() {
	case "required":
		msg = "this field is required"
	case "datetime":
		msg = "enter a date as YYYY-MM-DD"
	case "numeric":
		msg = "enter an amount greater than 0"
	case "oneof":
		msg = "choose active or delinquent"
	default:
		msg = fmt.Sprintf("failed %s check", fe.Tag())
	}
	return &domain.ValidationError{Field: fe.Field(), Message: msg}
}
