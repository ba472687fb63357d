package models

import (
	"encoding/json"
	"time"

	"github.com/bensternthal/basket/internal/domain/pipeline"
)

// BuildModel is the GORM database model for pipeline builds (infrastructure
// concern). Command results are serialized to JSON in a text column; the
// queries the service needs only touch state and number.
type BuildModel struct {
	ID         string `gorm:"primaryKey;type:varchar(36)"`
	Number     int    `gorm:"not null;index"`
	State      string `gorm:"not null;type:varchar(16)"`
	Results    string `gorm:"type:text"`
	StartedAt  time.Time
	FinishedAt time.Time
}

// TableName specifies the table name for GORM
func (BuildModel) TableName() string {
	return "builds"
}

// ToDomain converts GORM model to domain entity
func (m *BuildModel) ToDomain() *pipeline.Build {
	var results []pipeline.CommandResult
	if m.Results != "" {
		// Rows written by this code always hold valid JSON
		_ = json.Unmarshal([]byte(m.Results), &results)
	}

	return &pipeline.Build{
		ID:         m.ID,
		Number:     m.Number,
		State:      m.State,
		Results:    results,
		StartedAt:  m.StartedAt,
		FinishedAt: m.FinishedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *BuildModel) FromDomain(b *pipeline.Build) {
	m.ID = b.ID
	m.Number = b.Number
	m.State = b.State
	m.Results = ""
	if len(b.Results) > 0 {
		if data, err := json.Marshal(b.Results); err == nil {
			m.Results = string(data)
		}
	}
	m.StartedAt = b.StartedAt
	m.FinishedAt = b.FinishedAt
}
