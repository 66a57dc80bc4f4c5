package models

import (
	"encoding/json"
	"time"
)

// Cookie names. The _21_3 suffix versions the policy; bumping it re-prompts
// every visitor.
const (
	PolicyCookieName         = "cookies_policy_21_3"
	PreferencesSetCookieName = "cookies_preferences_set_21_3"
)

// PreferencesSetValue is the only flag value that counts as a decision.
const PreferencesSetValue = "true"

// Policy lists the cookie categories a visitor accepted.
type Policy struct {
	Essential bool `json:"essential"`
	Usage     bool `json:"usage"`
}

// AcceptAll is the only policy this page can record.
var AcceptAll = Policy{Essential: true, Usage: true}

// Encode returns the JSON payload stored in the policy cookie, before URL escaping.
func (p Policy) Encode() string {
	b, _ := json.Marshal(p)
	return string(b)
}

// ConsentRecord is the semantic view of the two consent cookies.
type ConsentRecord struct {
	PolicyAccepted bool
	UsageAccepted  bool
	ExpiresAt      time.Time
}

// NewRecord builds the record written by an accept action at now.
func NewRecord(policy Policy, now time.Time) ConsentRecord {
	return ConsentRecord{
		PolicyAccepted: policy.Essential,
		UsageAccepted:  policy.Usage,
		ExpiresAt:      ExpiryFrom(now),
	}
}

// ExpiryFrom advances now by one calendar month. Day overflow normalises the
// same way time.AddDate does (31 Jan -> 2 or 3 Mar).
func ExpiryFrom(now time.Time) time.Time {
	return now.AddDate(0, 1, 0)
}

// Entry is a single cookie write.
type Entry struct {
	Name    string
	Value   string
	Expires time.Time
}

// Expired reports whether the entry is no longer visible at now.
func (e Entry) Expired(now time.Time) bool {
	return !e.Expires.IsZero() && !now.Before(e.Expires)
}
