package employee

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context, includeInactive bool) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	Search(ctx context.Context, term string) ([]Employee, error)
	FindByDepartment(ctx context.Context, department string) ([]Employee, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (active int64, inactive int64, err error)
	CountByDepartment(ctx context.Context) (map[string]int64, error)
	FindRecentHires(ctx context.Context, limit int) ([]Employee, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx binds all statements of the returned repository to the given
// transaction, so a mutation and its outbox row commit or roll back together.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	if tx == nil {
		return r
	}
	session := r.db.Session(&gorm.Session{NewDB: true})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

const listOrder = "last_name asc, first_name asc"

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindAll(ctx context.Context, includeInactive bool) ([]Employee, error) {
	var empls []Employee
	q := r.db.WithContext(ctx).Order(listOrder)
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&empls).Error
	return empls, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).First(&empl, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) Search(ctx context.Context, term string) ([]Employee, error) {
	var empls []Employee
	pattern := "%" + term + "%"
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where(
			r.db.Where("first_name ILIKE ?", pattern).
				Or("last_name ILIKE ?", pattern).
				Or("email ILIKE ?", pattern).
				Or("department ILIKE ?", pattern).
				Or("position ILIKE ?", pattern),
		).
		Order(listOrder).
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByDepartment(ctx context.Context, department string) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Where("department = ?", department).
		Where("is_active = ?", true).
		Order(listOrder).
		Find(&empls).Error
	return empls, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Employee{}, "id = ?", id).Error
}

func (r *repository) CountByStatus(ctx context.Context) (int64, int64, error) {
	var active, inactive int64
	if err := r.db.WithContext(ctx).Model(&Employee{}).Where("is_active = ?", true).Count(&active).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).Model(&Employee{}).Where("is_active = ?", false).Count(&inactive).Error; err != nil {
		return 0, 0, err
	}
	return active, inactive, nil
}

func (r *repository) CountByDepartment(ctx context.Context) (map[string]int64, error) {
	type row struct {
		Department string
		Total      int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&Employee{}).
		Select("department, count(*) as total").
		Where("is_active = ?", true).
		Group("department").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Department] = rw.Total
	}
	return counts, nil
}

func (r *repository) FindRecentHires(ctx context.Context, limit int) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("hire_date desc").
		Limit(limit).
		Find(&empls).Error
	return empls, err
}
