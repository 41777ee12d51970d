package employee

import (
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	FirstName  string          `json:"first_name" binding:"required,max=100"`
	LastName   string          `json:"last_name" binding:"required,max=100"`
	Email      string          `json:"email" binding:"required,email"`
	Phone      string          `json:"phone"`
	Department string          `json:"department"`
	Position   string          `json:"position"`
	Salary     decimal.Decimal `json:"salary"`
	HireDate   string          `json:"hire_date" binding:"required"`
}

// UpdateEmployeeRequest is a partial payload: nil means "not supplied, leave
// the stored value alone". This holds for every field, including hire_date
// and is_active, so an absent field can never overwrite with a default.
type UpdateEmployeeRequest struct {
	FirstName  *string          `json:"first_name"`
	LastName   *string          `json:"last_name"`
	Email      *string          `json:"email" binding:"omitempty,email"`
	Phone      *string          `json:"phone"`
	Department *string          `json:"department"`
	Position   *string          `json:"position"`
	Salary     *decimal.Decimal `json:"salary"`
	HireDate   *string          `json:"hire_date"`
	IsActive   *bool            `json:"is_active"`
}

type EmployeeResponse struct {
	ID         string          `json:"id"`
	FirstName  string          `json:"first_name"`
	LastName   string          `json:"last_name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	Department string          `json:"department"`
	Position   string          `json:"position"`
	Salary     decimal.Decimal `json:"salary"`
	HireDate   string          `json:"hire_date"`
	IsActive   bool            `json:"is_active"`
	CreatedAt  string          `json:"created_at"`
	UpdatedAt  *string         `json:"updated_at"`
}
