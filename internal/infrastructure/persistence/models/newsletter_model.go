package models

import (
	"time"

	"github.com/bensternthal/basket/internal/domain/news"
)

// NewsletterModel is the GORM database model for newsletter catalog entries
// (infrastructure concern). Languages are stored as a comma-separated list;
// whitespace is stripped on the way in so stored data stays clean no matter
// what an editor pasted.
type NewsletterModel struct {
	ID          string `gorm:"primaryKey;type:varchar(36)"`
	Slug        string `gorm:"not null;uniqueIndex;type:varchar(128)"`
	Title       string `gorm:"type:varchar(255)"`
	Description string `gorm:"type:text"`
	Show        bool
	Active      bool
	Welcome     string `gorm:"type:varchar(64)"`
	VendorID    string `gorm:"not null;type:varchar(128)"`
	Languages   string `gorm:"type:varchar(255)"`
	Order       int    `gorm:"column:sort_order"`
	Created     time.Time
}

// TableName specifies the table name for GORM
func (NewsletterModel) TableName() string {
	return "newsletters"
}

// ToDomain converts GORM model to domain entity
func (m *NewsletterModel) ToDomain() *news.Newsletter {
	return &news.Newsletter{
		ID:          m.ID,
		Slug:        m.Slug,
		Title:       m.Title,
		Description: m.Description,
		Show:        m.Show,
		Active:      m.Active,
		Welcome:     m.Welcome,
		VendorID:    m.VendorID,
		Languages:   splitCSV(m.Languages),
		Order:       m.Order,
		Created:     m.Created,
	}
}

// FromDomain converts domain entity to GORM model
func (m *NewsletterModel) FromDomain(n *news.Newsletter) {
	m.ID = n.ID
	m.Slug = n.Slug
	m.Title = n.Title
	m.Description = n.Description
	m.Show = n.Show
	m.Active = n.Active
	m.Welcome = n.Welcome
	m.VendorID = n.VendorID
	m.Languages = joinCSV(n.Languages)
	m.Order = n.Order
	m.Created = n.Created
}
