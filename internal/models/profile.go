package models

import "time"

// ProfileSourceGemini tags AI-extracted profiles with their provenance.
const ProfileSourceGemini = "gemini-ai"

type PersonalInfo struct {
	Name     *string `bson:"name" json:"name"`
	Email    *string `bson:"email" json:"email"`
	Phone    *string `bson:"phone" json:"phone"`
	Location *string `bson:"location" json:"location"`
}

type WorkExperience struct {
	Company     string `bson:"company" json:"company"`
	Position    string `bson:"position" json:"position"`
	Duration    string `bson:"duration" json:"duration"`
	Description string `bson:"description" json:"description"`
}

type Education struct {
	Institution string `bson:"institution" json:"institution"`
	Degree      string `bson:"degree" json:"degree"`
	Duration    string `bson:"duration" json:"duration"`
}

// StructuredProfile is the AI-extracted resume representation. Every field
// is optional: the model is instructed to use null for anything not clearly
// present in the resume text.
type StructuredProfile struct {
	PersonalInfo   *PersonalInfo    `bson:"personalInfo" json:"personalInfo"`
	Skills         []string         `bson:"skills" json:"skills"`
	WorkExperience []WorkExperience `bson:"workExperience" json:"workExperience"`
	Education      []Education      `bson:"education" json:"education"`
	Summary        *string          `bson:"summary" json:"summary"`

	// provenance, assigned server-side after a successful extraction
	Source      string    `bson:"source" json:"source"`
	ProcessedAt time.Time `bson:"processedAt" json:"processedAt"`
}

type JobPreferences struct {
	TargetRoles            []string `bson:"targetRoles" json:"targetRoles"`
	MinimumRate            *float64 `bson:"minimumRate" json:"minimumRate"`
	RateCurrency           string   `bson:"rateCurrency" json:"rateCurrency"`
	WorkLocationPreference string   `bson:"workLocationPreference" json:"workLocationPreference"`
	PreferredLocation      string   `bson:"preferredLocation" json:"preferredLocation"`
}

// ApprovedProfile is the user-confirmed (possibly hand-edited) profile.
// Written only by the explicit approve action, never by the AI pipeline,
// and required before draft generation.
type ApprovedProfile struct {
	PersonalInfo   *PersonalInfo    `bson:"personalInfo" json:"personalInfo"`
	Skills         []string         `bson:"skills" json:"skills"`
	WorkExperience []WorkExperience `bson:"workExperience" json:"workExperience"`
	Education      []Education      `bson:"education" json:"education"`
	Summary        *string          `bson:"summary" json:"summary"`
	JobPreferences *JobPreferences  `bson:"jobPreferences" json:"jobPreferences"`
	VerifiedAt     time.Time        `bson:"verifiedAt" json:"verifiedAt"`
}

type ProcessingError struct {
	Message   string    `bson:"message" json:"message"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// UserDocument is the per-user document in the document store. Pipeline
// writes merge into it field by field; fields owned by other features
// must survive a merge untouched.
type UserDocument struct {
	UserID                string             `bson:"_id" json:"userId"`
	AIProfileData         *StructuredProfile `bson:"aiProfileData,omitempty" json:"aiProfileData,omitempty"`
	ResumeProcessedAt     *time.Time         `bson:"resumeProcessedAt,omitempty" json:"resumeProcessedAt,omitempty"`
	ResumeProcessingError *ProcessingError   `bson:"resumeProcessingError,omitempty" json:"resumeProcessingError,omitempty"`
	ApprovedProfileData   *ApprovedProfile   `bson:"approvedProfileData,omitempty" json:"approvedProfileData,omitempty"`
}
