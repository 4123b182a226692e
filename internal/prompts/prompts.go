// Package prompts holds the generation prompts for both pipelines.
// The wording is load-bearing: the extraction prompt pins the JSON
// schema the parser expects, and the draft prompt carries the stylistic
// instructions the generated application must honor.
package prompts

import (
	"fmt"
	"strings"

	"github.com/gigfeed/gigfeed/internal/models"
)

// ProofPlaceholder must appear verbatim in generated drafts so the user
// can swap in a real past project before sending.
const ProofPlaceholder = "[Briefly mention a relevant past project similar to this one]"

const resumeExtractionTemplate = `
Please analyze the following resume text and extract structured information.
Return ONLY a valid JSON object with the following structure:

{
  "personalInfo": {
    "name": "Full name",
    "email": "Email address",
    "phone": "Phone number",
    "location": "City, State/Country"
  },
  "skills": [
    "List of technical and professional skills"
  ],
  "workExperience": [
    {
      "company": "Company name",
      "position": "Job title",
      "duration": "Start date - End date",
      "description": "Brief description of responsibilities and achievements"
    }
  ],
  "education": [
    {
      "institution": "School/University name",
      "degree": "Degree type and field",
      "duration": "Start date - End date"
    }
  ],
  "summary": "A brief professional summary based on the resume content"
}

Extract information only if it's clearly present in the resume. Use null for missing fields.

Resume text:
%s
`

// ResumeExtraction embeds the raw extracted resume text into the
// fixed-schema extraction prompt.
func ResumeExtraction(resumeText string) string {
	return fmt.Sprintf(resumeExtractionTemplate, resumeText)
}

// ApplicationDraft builds the draft-generation prompt from a job's fields
// and the applicant's approved profile. Missing job title and applicant
// name fall back to neutral placeholders; only the three most recent work
// experiences are included.
func ApplicationDraft(job models.JobDetails, profile *models.ApprovedProfile) string {
	jobTitle := job.Title
	if jobTitle == "" {
		jobTitle = "Freelance Position"
	}

	applicantName := "Professional"
	if profile.PersonalInfo != nil && profile.PersonalInfo.Name != nil && *profile.PersonalInfo.Name != "" {
		applicantName = *profile.PersonalInfo.Name
	}

	summary := ""
	if profile.Summary != nil {
		summary = *profile.Summary
	}

	experience := profile.WorkExperience
	if len(experience) > 3 {
		experience = experience[:3]
	}
	highlights := make([]string, 0, len(experience))
	for _, exp := range experience {
		highlights = append(highlights, fmt.Sprintf("%s at %s (%s): %s", exp.Position, exp.Company, exp.Duration, exp.Description))
	}

	degrees := make([]string, 0, len(profile.Education))
	for _, edu := range profile.Education {
		degrees = append(degrees, fmt.Sprintf("%s from %s", edu.Degree, edu.Institution))
	}

	jobSkills := strings.Join(job.Skills, ", ")
	userSkills := strings.Join(profile.Skills, ", ")

	var b strings.Builder

	b.WriteString("You are helping a freelancer create a compelling, bid-winning application for a job on a freelancing platform.\n\n")

	b.WriteString("**Job Details:**\n")
	fmt.Fprintf(&b, "Title: %s\n", jobTitle)
	fmt.Fprintf(&b, "Description: %s\n\n", job.Description)
	fmt.Fprintf(&b, "Required Skills: %s\n\n", jobSkills)

	b.WriteString("**Applicant's Profile:**\n")
	fmt.Fprintf(&b, "Name: %s\n", applicantName)
	fmt.Fprintf(&b, "Skills: %s\n", userSkills)
	if summary != "" {
		fmt.Fprintf(&b, "Summary: %s\n", summary)
	}
	b.WriteString("\n")
	if len(highlights) > 0 {
		fmt.Fprintf(&b, "Recent Experience:\n%s\n", strings.Join(highlights, "\n"))
	}
	if len(degrees) > 0 {
		fmt.Fprintf(&b, "Education: %s\n", strings.Join(degrees, ", "))
	}
	b.WriteString("\n")

	b.WriteString("**CRITICAL INSTRUCTIONS - Follow these EXACTLY:**\n\n")
	b.WriteString("Generate a professional application draft that:\n\n")
	b.WriteString("1. **GREETING:** Start with a friendly but professional greeting. DO NOT use placeholders like \"[Employer Name]\", \"Sir/Madam\", or any generic terms. Use \"Hi there,\" or address the project directly. NEVER personalize with the employer's name since you don't have it.\n\n")
	fmt.Fprintf(&b, "2. **PROJECT FOCUS:** Heavily emphasize and demonstrate understanding of THIS SPECIFIC PROJECT. Deeply reference the job description: \"%s\". Show you've read and understood their exact needs. Be specific about what they're trying to achieve.\n\n", job.Description)
	fmt.Fprintf(&b, "3. **SKILL MATCHING:** Cross-reference the required skills (%s) with the applicant's skills (%s) and explicitly mention 1-2 KEY skills where there's a clear match. Be specific: say which skills and how they apply to THIS project.\n\n", jobSkills, userSkills)
	b.WriteString("4. **RELEVANT EXPERIENCE:** If there's experience that matches this project, mention 1-2 specific examples. If not, focus more on how the skills transfer to this project.\n\n")
	b.WriteString("5. **CONCISENESS:** Keep it to 2-3 SHORT paragraphs maximum. Be direct and avoid fluff. Freelancers value efficiency.\n\n")
	b.WriteString("6. **INCLUDE A QUESTION:** End with ONE relevant, open-ended question about the project that shows genuine interest and encourages a reply. Make it specific to their project, not generic.\n\n")
	fmt.Fprintf(&b, "7. **ADD PROOF PLACEHOLDER:** Include the following placeholder text exactly as shown: \"%s\"\n\n", ProofPlaceholder)
	b.WriteString("8. **NO GENERIC LANGUAGE:** Avoid phrases like \"I am a hard worker\" or \"I can help you.\" Every sentence should be tailored to THIS SPECIFIC JOB and THIS SPECIFIC USER. Show you understand their unique needs.\n\n")
	b.WriteString("9. **TONE:** Professional but warm and human. Avoid corporate jargon. Speak like a real person who's excited about their project.\n\n")
	b.WriteString("Now generate the application draft. It should feel completely personalized and show you've read their job description carefully:")

	return b.String()
}
