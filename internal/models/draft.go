package models

import "time"

const (
	DraftStatusSaved   = "draft_saved"
	DraftStatusApplied = "applied"
)

type BudgetSnapshot struct {
	Currency string   `bson:"currency" json:"currency"`
	Min      *float64 `bson:"min" json:"min"`
	Max      *float64 `bson:"max" json:"max"`
}

// ApplicationDraft is a saved, possibly edited, generated application.
// One per (user, job): saving again for the same job overwrites the text,
// and status only ever moves draft_saved -> applied.
type ApplicationDraft struct {
	UserID   string `bson:"user_id" json:"userId"`
	JobID    string `bson:"job_id" json:"jobId"`
	JobTitle string `bson:"jobTitle" json:"jobTitle"`

	DraftText string `bson:"draftText" json:"draftText"`
	Status    string `bson:"status" json:"status"`

	JobBudgetSnapshot *BudgetSnapshot `bson:"jobBudgetSnapshot,omitempty" json:"jobBudgetSnapshot,omitempty"`
	JobSkillsSnapshot []string        `bson:"jobSkillsSnapshot,omitempty" json:"jobSkillsSnapshot,omitempty"`

	SavedAt time.Time `bson:"savedAt" json:"savedAt"`
}
