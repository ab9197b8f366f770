package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrClientNotFound = errors.New("client not found")
	ErrInvalidClient  = errors.New("invalid client")
)

// Client is one billing relationship. It is the only persisted entity.
type Client struct {
	ID             string          `json:"id"`
	DNI            string          `json:"dni"`
	Name           string          `json:"name"`
	Phone          string          `json:"phone"`
	Description    string          `json:"description"`
	ManagementDate Date            `json:"managementDate"`
	PaymentDate    Date            `json:"paymentDate"`
	MonthlyFee     decimal.Decimal `json:"monthlyFee"`
	Status         Status          `json:"status"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// MarshalJSON writes monthlyFee as a JSON number, the way the browser
// version stores it.
func (c Client) MarshalJSON() ([]byte, error) {
	type plain Client
	return json.Marshal(struct {
		plain
		MonthlyFee json.Number `json:"monthlyFee"`
	}{plain(c), json.Number(c.MonthlyFee.String())})
}

// ClientPatch holds every mutable field of a client. ID and CreatedAt are
// never patched.
type ClientPatch struct {
	DNI            string
	Name           string
	Phone          string
	Description    string
	ManagementDate Date
	PaymentDate    Date
	MonthlyFee     decimal.Decimal
	Status         Status
}

// NewClient builds an unsaved client from a patch. The repository assigns
// ID and CreatedAt.
func NewClient(p ClientPatch) *Client {
	c := &Client{}
	c.Apply(p)
	return c
}

// Apply replaces the mutable fields of c with the patch values.
func (c *Client) Apply(p ClientPatch) {
	c.DNI = strings.TrimSpace(p.DNI)
	c.Name = strings.TrimSpace(p.Name)
	c.Phone = strings.TrimSpace(p.Phone)
	c.Description = strings.TrimSpace(p.Description)
	c.ManagementDate = p.ManagementDate
	c.PaymentDate = p.PaymentDate
	c.MonthlyFee = p.MonthlyFee
	c.Status = p.Status
}

// Patch returns the mutable fields of c.
func (c *Client) Patch() ClientPatch {
	return ClientPatch{
		DNI:            c.DNI,
		Name:           c.Name,
		Phone:          c.Phone,
		Description:    c.Description,
		ManagementDate: c.ManagementDate,
		PaymentDate:    c.PaymentDate,
		MonthlyFee:     c.MonthlyFee,
		Status:         c.Status,
	}
}

// Clone returns a copy that shares no state with c.
func (c *Client) Clone() *Client {
	cp := *c
	return &cp
}

// IsActive reports whether the client counts towards revenue and alerts.
func (c *Client) IsActive() bool {
	return c.Status == StatusActive
}

// Validate returns an error if the client is invalid
func (c *Client) Validate() error {
	switch {
	case strings.TrimSpace(c.DNI) == "":
		return &ValidationError{Field: "dni", Message: "DNI is required"}
	case strings.TrimSpace(c.Name) == "":
		return &ValidationError{Field: "name", Message: "name is required"}
	case strings.TrimSpace(c.Phone) == "":
		return &ValidationError{Field: "phone", Message: "phone is required"}
	case c.ManagementDate.IsZero():
		return &ValidationError{Field: "managementDate", Message: "management date is required"}
	case c.PaymentDate.IsZero():
		return &ValidationError{Field: "paymentDate", Message: "payment date is required"}
	case !c.MonthlyFee.IsPositive():
		return &ValidationError{Field: "monthlyFee", Message: "monthly fee must be greater than 0"}
	case !c.Status.Valid():
		return &ValidationError{Field: "status", Message: "status must be active or delinquent"}
	}
	return nil
}

// ValidationError reports a single invalid form or record field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidClient
}
