package tracker

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// Issue represents an issue record as returned by the tracker API.
type Issue struct {
	ID         string `json:"_id"`
	Project    string `json:"project,omitempty"`
	Title      string `json:"issue_title"`
	Text       string `json:"issue_text"`
	CreatedBy  string `json:"created_by"`
	AssignedTo string `json:"assigned_to"`
	StatusText string `json:"status_text"`
	Open       bool   `json:"open"`
	CreatedOn  string `json:"created_on,omitempty"`
	UpdatedOn  string `json:"updated_on,omitempty"`
}

// NewIssue is the form body for POST /api/issues/{project}.
type NewIssue struct {
	Title      string
	Text       string
	CreatedBy  string
	AssignedTo string
	StatusText string
}

func (n NewIssue) form() url.Values {
	return url.Values{
		"issue_title": {n.Title},
		"issue_text":  {n.Text},
		"created_by":  {n.CreatedBy},
		"assigned_to": {n.AssignedTo},
		"status_text": {n.StatusText},
	}
}

// Update is the form body for PUT /api/issues/{project}. Only non-empty
// fields are sent. Open is passed through as a string ("true" or "false").
type Update struct {
	ID         string
	Title      string
	Text       string
	CreatedBy  string
	AssignedTo string
	StatusText string
	Open       string
}

func (u Update) form() url.Values {
	v := url.Values{"_id": {u.ID}}
	set := func(key, value string) {
		if value != "" {
			v.Set(key, value)
		}
	}
	set("issue_title", u.Title)
	set("issue_text", u.Text)
	set("created_by", u.CreatedBy)
	set("assigned_to", u.AssignedTo)
	set("status_text", u.StatusText)
	set("open", u.Open)
	return v
}

// Filter holds query parameters for GET /api/issues/{project}, e.g.
// Filter{"open": "false"}. Values are sent verbatim.
type Filter map[string]string

func (f Filter) query() url.Values {
	v := url.Values{}
	for key, value := range f {
		v.Set(key, value)
	}
	return v
}

// Response is a raw tracker reply: the status code and the decoded JSON body.
// Body is an object (map[string]any) or an array ([]any).
type Response struct {
	StatusCode int
	Body       any
	Raw        []byte
}

// IDOf returns the "_id" field of an object body, or "" if there is none.
func IDOf(resp *Response) string {
	if resp == nil {
		return ""
	}
	obj, ok := resp.Body.(map[string]any)
	if !ok {
		return ""
	}
	id, _ := obj["_id"].(string)
	return id
}

// Issues decodes an array body into issue records.
func Issues(resp *Response) ([]Issue, error) {
	if resp == nil {
		return nil, nil
	}
	var issues []Issue
	if err := json.Unmarshal(resp.Raw, &issues); err != nil {
		return nil, fmt.Errorf("decoding issue list: %w", err)
	}
	return issues, nil
}
