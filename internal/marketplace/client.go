// Package marketplace talks to the freelance marketplace REST API the
// job catalog is seeded from. Listing is a two-step fetch: the active
// list carries only ids and seo urls, full fields come from a per-project
// detail call.
package marketplace

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gigfeed/gigfeed/internal/models"
	"gorm.io/datatypes"
)

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 20 * time.Second},
	}
}

type ProjectRef struct {
	ID     json.Number `json:"id"`
	SeoURL string      `json:"seo_url"`
	Title  string      `json:"title"`
}

type ProjectDetail struct {
	ID          json.Number `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Currency    struct {
		Code string `json:"code"`
	} `json:"currency"`
	Budget struct {
		Minimum *float64 `json:"minimum"`
		Maximum *float64 `json:"maximum"`
	} `json:"budget"`
	Jobs []struct {
		Name string `json:"name"`
	} `json:"jobs"`
	TimeSubmitted int64  `json:"time_submitted"`
	Type          string `json:"type"`
	Status        string `json:"status"`

	raw json.RawMessage
}

func (c *Client) get(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("freelancer-oauth-v1", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("marketplace request failed with status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// ActiveProjects fetches the current active-project list (ids + seo urls).
func (c *Client) ActiveProjects(ctx context.Context) ([]ProjectRef, error) {
	var envelope struct {
		Result struct {
			Projects []ProjectRef `json:"projects"`
		} `json:"result"`
	}
	url := c.baseURL + "/projects/0.1/projects/active/"
	if err := c.get(ctx, url, &envelope); err != nil {
		return nil, err
	}
	return envelope.Result.Projects, nil
}

// ProjectDetail fetches the full record for one project, including the
// long description and required-skill tags.
func (c *Client) ProjectDetail(ctx context.Context, id string) (*ProjectDetail, error) {
	var envelope struct {
		Result json.RawMessage `json:"result"`
	}
	url := fmt.Sprintf("%s/projects/0.1/projects/%s/?full_description=true&job_details=true", c.baseURL, id)
	if err := c.get(ctx, url, &envelope); err != nil {
		return nil, err
	}
	if len(envelope.Result) == 0 || string(envelope.Result) == "null" {
		return nil, fmt.Errorf("no detail data for project %s", id)
	}

	var detail ProjectDetail
	if err := json.Unmarshal(envelope.Result, &detail); err != nil {
		return nil, err
	}
	detail.raw = envelope.Result
	return &detail, nil
}

// ToJobPosting maps a detail record (plus its list-call ref) onto the
// local catalog row. Defaults mirror the marketplace's own: USD, hourly,
// open, and "posted now" when the timestamp is absent.
func (d *ProjectDetail) ToJobPosting(ref ProjectRef) *models.JobPosting {
	now := time.Now().UTC()

	postedAt := now
	if d.TimeSubmitted > 0 {
		postedAt = time.Unix(d.TimeSubmitted, 0).UTC()
	}

	currency := d.Currency.Code
	if currency == "" {
		currency = "USD"
	}
	typ := d.Type
	if typ == "" {
		typ = "hourly"
	}
	status := d.Status
	if status == "" {
		status = "open"
	}

	skills := make([]string, 0, len(d.Jobs))
	for _, j := range d.Jobs {
		skills = append(skills, j.Name)
	}

	return &models.JobPosting{
		ID:          uuid.NewString(),
		SourceID:    ref.ID.String(),
		Title:       d.Title,
		Description: d.Description,
		Currency:    currency,
		BudgetMin:   d.Budget.Minimum,
		BudgetMax:   d.Budget.Maximum,
		Skills:      skills,
		Type:        typ,
		Status:      status,
		SeoURL:      ref.SeoURL,
		Raw:         datatypes.JSON(d.raw),
		PostedAt:    postedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
