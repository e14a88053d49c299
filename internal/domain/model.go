package domain

import (
	"time"

	"github.com/weiawesome/wes-storefront-gateway/pkg/database"
)

// CustomerModel is the GORM model for the customers table.
type CustomerModel struct {
	CustomerID    string               `gorm:"column:customer_id;type:varchar(64);primaryKey"`
	Email         string               `gorm:"type:varchar(255);index;not null"`
	FirstName     string               `gorm:"type:varchar(100)"`
	LastName      string               `gorm:"type:varchar(100)"`
	Role          string               `gorm:"type:varchar(20);index;not null"`
	Phone         string               `gorm:"type:varchar(20)"`
	CompanyName   string               `gorm:"type:varchar(200);index"`
	Website       string               `gorm:"type:varchar(255)"`
	EmployeeCount string               `gorm:"type:varchar(16)"`
	Country       string               `gorm:"type:varchar(2);index"`
	Verified      bool                 `gorm:"index;not null;default:false"`
	Tags          database.StringArray `gorm:"type:text"`
	CreatedAt     time.Time            `gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time            `gorm:"autoUpdateTime;index"`
}

// TableName specifies the table name for CustomerModel.
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts CustomerModel to domain Customer.
func (m *CustomerModel) ToDomain() *Customer {
	tags := []string(m.Tags)
	if tags == nil {
		tags = []string{}
	}
	return &Customer{
		ID:            m.CustomerID,
		Email:         m.Email,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		Role:          m.Role,
		Phone:         m.Phone,
		CompanyName:   m.CompanyName,
		Website:       m.Website,
		EmployeeCount: m.EmployeeCount,
		Country:       m.Country,
		Verified:      m.Verified,
		Tags:          tags,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// CustomerToModel converts domain Customer to CustomerModel.
func CustomerToModel(c *Customer) *CustomerModel {
	return &CustomerModel{
		CustomerID:    c.ID,
		Email:         c.Email,
		FirstName:     c.FirstName,
		LastName:      c.LastName,
		Role:          c.Role,
		Phone:         c.Phone,
		CompanyName:   c.CompanyName,
		Website:       c.Website,
		EmployeeCount: c.EmployeeCount,
		Country:       c.Country,
		Verified:      c.Verified,
		Tags:          database.StringArray(c.Tags),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}
