package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Employee struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	FirstName  string          `gorm:"column:first_name;type:varchar(100);not null"`
	LastName   string          `gorm:"column:last_name;type:varchar(100);not null"`
	Email      string          `gorm:"column:email;type:varchar(255);uniqueIndex:uq_employee_email;not null"`
	Phone      string          `gorm:"column:phone;type:varchar(50)"`
	Department string          `gorm:"column:department;type:varchar(100)"`
	Position   string          `gorm:"column:position;type:varchar(100)"`
	Salary     decimal.Decimal `gorm:"column:salary;type:numeric(12,2)"`
	HireDate   time.Time       `gorm:"column:hire_date;type:date"`
	IsActive   bool            `gorm:"column:is_active;default:true"`

	// CreatedAt is set once at creation; UpdatedAt stays nil until the first
	// mutation. Both are stamped by the service, not by GORM hooks.
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime:false"`
}

func (Employee) TableName() string {
	return "employees"
}
