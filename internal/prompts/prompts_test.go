package prompts

import (
	"strings"
	"testing"

	"github.com/gigfeed/gigfeed/internal/models"
)

func strPtr(s string) *string { return &s }

func TestResumeExtraction_EmbedsText(t *testing.T) {
	p := ResumeExtraction("JANE DOE\nSenior Engineer\n")

	if !strings.Contains(p, "JANE DOE\nSenior Engineer\n") {
		t.Fatal("prompt must embed the resume text")
	}
	for _, key := range []string{`"personalInfo"`, `"skills"`, `"workExperience"`, `"education"`, `"summary"`} {
		if !strings.Contains(p, key) {
			t.Fatalf("prompt schema missing %s", key)
		}
	}
	if !strings.Contains(p, "Use null for missing fields.") {
		t.Fatal("prompt must instruct null for missing fields")
	}
}

func TestApplicationDraft_Fallbacks(t *testing.T) {
	job := models.JobDetails{Description: "Fix our build", Skills: []string{"CI"}}
	profile := &models.ApprovedProfile{Skills: []string{"CI"}}

	p := ApplicationDraft(job, profile)

	if !strings.Contains(p, "Title: Freelance Position\n") {
		t.Fatal("missing job title must fall back to Freelance Position")
	}
	if !strings.Contains(p, "Name: Professional\n") {
		t.Fatal("missing applicant name must fall back to Professional")
	}
}

func TestApplicationDraft_Content(t *testing.T) {
	job := models.JobDetails{
		Title:       "Migrate to Kubernetes",
		Description: "Move our workloads off bare VMs.",
		Skills:      []string{"Kubernetes", "Terraform"},
	}
	profile := &models.ApprovedProfile{
		PersonalInfo: &models.PersonalInfo{Name: strPtr("Sam Chen")},
		Skills:       []string{"Kubernetes", "Go"},
		Summary:      strPtr("Infra engineer."),
		WorkExperience: []models.WorkExperience{
			{Company: "A Corp", Position: "SRE", Duration: "2023", Description: "On-call"},
			{Company: "B Corp", Position: "SRE", Duration: "2022", Description: "Migrations"},
			{Company: "C Corp", Position: "Dev", Duration: "2021", Description: "Backend"},
			{Company: "D Corp", Position: "Intern", Duration: "2020", Description: "Tooling"},
		},
		Education: []models.Education{
			{Institution: "State University", Degree: "BSc Computer Science"},
			{Institution: "Online Academy", Degree: "Cloud Certificate"},
		},
	}

	p := ApplicationDraft(job, profile)

	for _, want := range []string{
		"Title: Migrate to Kubernetes\n",
		"Move our workloads off bare VMs.",
		"Required Skills: Kubernetes, Terraform\n",
		"Name: Sam Chen\n",
		"Summary: Infra engineer.\n",
		"SRE at A Corp (2023): On-call",
		"Education: BSc Computer Science from State University, Cloud Certificate from Online Academy\n",
		ProofPlaceholder,
	} {
		if !strings.Contains(p, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}

	// only the three most recent experiences are included
	if strings.Contains(p, "D Corp") {
		t.Fatal("prompt must cap experience at three entries")
	}
}

func TestApplicationDraft_OmitsEmptySections(t *testing.T) {
	job := models.JobDetails{Description: "desc", Skills: []string{"X"}}
	profile := &models.ApprovedProfile{Skills: []string{"X"}}

	p := ApplicationDraft(job, profile)

	if strings.Contains(p, "Summary:") {
		t.Fatal("empty summary must be omitted")
	}
	if strings.Contains(p, "Recent Experience:") {
		t.Fatal("empty experience must be omitted")
	}
	if strings.Contains(p, "Education:") {
		t.Fatal("empty education must be omitted")
	}
}
