package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/bensternthal/basket/internal/domain/news"
)

// SubscriberModel is the GORM database model for subscribers (infrastructure concern)
type SubscriberModel struct {
	ID          string `gorm:"primaryKey;type:varchar(36)"`
	Email       string `gorm:"not null;uniqueIndex;type:varchar(255)"`
	Token       string `gorm:"not null;uniqueIndex;type:varchar(36)"`
	Newsletters string `gorm:"type:text"`
	Lang        string `gorm:"type:varchar(10)"`
	Country     string `gorm:"type:varchar(5)"`
	Optin       bool
	Confirmed   bool
	UnsubReason string    `gorm:"type:text"`
	Fields      string    `gorm:"type:text"`
	Created     time.Time `gorm:"not null"`
	Updated     time.Time
}

// TableName specifies the table name for GORM
func (SubscriberModel) TableName() string {
	return "subscribers"
}

// ToDomain converts GORM model to domain entity
func (m *SubscriberModel) ToDomain() *news.Subscriber {
	var fields map[string]string
	if m.Fields != "" {
		// Rows written by this code always hold valid JSON
		_ = json.Unmarshal([]byte(m.Fields), &fields)
	}

	return &news.Subscriber{
		ID:          m.ID,
		Email:       m.Email,
		Token:       m.Token,
		Newsletters: splitCSV(m.Newsletters),
		Lang:        m.Lang,
		Country:     m.Country,
		Optin:       m.Optin,
		Confirmed:   m.Confirmed,
		UnsubReason: m.UnsubReason,
		Fields:      fields,
		Created:     m.Created,
		Updated:     m.Updated,
	}
}

// FromDomain converts domain entity to GORM model
func (m *SubscriberModel) FromDomain(s *news.Subscriber) {
	m.ID = s.ID
	m.Email = s.Email
	m.Token = s.Token
	m.Newsletters = joinCSV(s.Newsletters)
	m.Lang = s.Lang
	m.Country = s.Country
	m.Optin = s.Optin
	m.Confirmed = s.Confirmed
	m.UnsubReason = s.UnsubReason
	m.Fields = ""
	if len(s.Fields) > 0 {
		if data, err := json.Marshal(s.Fields); err == nil {
			m.Fields = string(data)
		}
	}
	m.Created = s.Created
	m.Updated = s.Updated
}

func splitCSV(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	cleaned := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			cleaned = append(cleaned, p)
		}
	}
	return cleaned
}

func joinCSV(values []string) string {
	cleaned := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			cleaned = append(cleaned, v)
		}
	}
	return strings.Join(cleaned, ",")
}
