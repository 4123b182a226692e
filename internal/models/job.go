package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// JobPosting is a marketplace job mirrored into the local catalog.
// Rows are read-only from the pipelines' perspective; only the seeder
// writes them.
type JobPosting struct {
	ID       string `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SourceID string `gorm:"column:source_id;type:text;uniqueIndex" json:"sourceId"`

	Title       string `gorm:"column:title;type:text" json:"title"`
	Description string `gorm:"column:description;type:text" json:"description"`

	Currency  string   `gorm:"column:currency;type:text" json:"currency"`
	BudgetMin *float64 `gorm:"column:budget_min" json:"budgetMin"`
	BudgetMax *float64 `gorm:"column:budget_max" json:"budgetMax"`

	Skills pq.StringArray `gorm:"column:skills;type:text[]" json:"skills"`

	Type   string `gorm:"column:type;type:text" json:"type"`     // hourly|fixed
	Status string `gorm:"column:status;type:text" json:"status"` // open|closed|...
	SeoURL string `gorm:"column:seo_url;type:text" json:"seoUrl"`

	// raw marketplace detail payload, kept for re-mapping
	Raw datatypes.JSON `gorm:"column:raw;type:jsonb" json:"-"`

	PostedAt  time.Time `gorm:"column:posted_at;type:timestamptz" json:"postedAt"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamptz" json:"updatedAt"`
}

func (JobPosting) TableName() string { return "job_postings" }

// JobDetails is the job-side input to draft generation. Only the fields
// the draft prompt consumes, independent of whether the job exists in the
// local catalog.
type JobDetails struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
}
