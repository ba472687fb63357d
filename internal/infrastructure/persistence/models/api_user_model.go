package models

import (
	"time"

	"github.com/bensternthal/basket/internal/domain/news"
)

// APIUserModel is the GORM database model for API key holders (infrastructure concern)
type APIUserModel struct {
	ID      string `gorm:"primaryKey;type:varchar(36)"`
	Name    string `gorm:"not null;type:varchar(255)"`
	APIKey  string `gorm:"not null;uniqueIndex;type:varchar(36)"`
	Enabled bool
	Created time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (APIUserModel) TableName() string {
	return "api_users"
}

// ToDomain converts GORM model to domain entity
func (m *APIUserModel) ToDomain() *news.APIUser {
	return &news.APIUser{
		ID:      m.ID,
		Name:    m.Name,
		APIKey:  m.APIKey,
		Enabled: m.Enabled,
		Created: m.Created,
	}
}

// FromDomain converts domain entity to GORM model
func (m *APIUserModel) FromDomain(u *news.APIUser) {
	m.ID = u.ID
	m.Name = u.Name
	m.APIKey = u.APIKey
	m.Enabled = u.Enabled
	m.Created = u.Created
}
