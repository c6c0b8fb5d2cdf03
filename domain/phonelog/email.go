package phonelog

import (
	"fmt"
	"net/url"
	"strings"
)

const orgName = "TDM Service Desk"

// MailtoDraft builds a mailto: link summarizing a logged call, for the
// optional Outlook-draft-on-submit flow.
func MailtoDraft(e Entry, recipients []string) string {
	property := e.Property
	if property == "" {
		property = "(no property)"
	}
	subject := fmt.Sprintf("%s — New Phone Call — %s", orgName, property)

	lines := []string{
		orgName,
		"New phone call logged:",
		"",
	}
	if e.Date != "" {
		lines = append(lines, "Date: "+e.Date)
	}
	lines = append(lines,
		"Taken by: "+e.TakenBy,
		"Property / Company Name: "+e.Property,
	)
	if e.Address != "" {
		lines = append(lines, "Address: "+e.Address)
	}
	problem := e.Problem
	if problem == "" {
		problem = "(not provided)"
	}
	lines = append(lines,
		"",
		"Caller Name: "+e.CallerName,
		"Phone: "+e.CallerPhone,
		"Email: "+e.CallerEmail,
		"",
		"Problem / What they need:",
		problem,
		"",
		"Action Needed: "+e.Needed,
	)

	body := strings.Join(lines, "\n")
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s",
		strings.Join(recipients, ","), escape(subject), escape(body))
}

// escape percent-encodes for a mailto URL. QueryEscape's "+" for spaces
// confuses mail clients, so spaces become %20.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
