package models

import (
	"strconv"
	"time"
)

// Claims is the flattened claim set asserted by the identity provider.
type Claims map[string]string

// Get returns the value of a single claim.
func (c Claims) Get(name string) (string, bool) {
	v, ok := c[name]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// First returns the first non-empty claim among names, or "".
func (c Claims) First(names ...string) string {
	for _, name := range names {
		if v, ok := c.Get(name); ok {
			return v
		}
	}
	return ""
}

// AuthTimeLayout is how the authentication instant is shown on the profile page.
const AuthTimeLayout = "2006-01-02 15:04:05 UTC"

// Profile is the view of the signed-in identity rendered by the profile page.
type Profile struct {
	DisplayName    string
	Email          string
	JobTitle       string
	Department     string
	OfficeLocation string
	MobilePhone    string
	CompanyName    string
	UserID         string
	TenantID       string
	AuthTime       string
}

// NewProfile builds a Profile from identity claims, preferring Azure AD claim
// names and falling back to the standard OIDC ones.
func NewProfile(c Claims) Profile {
	p := Profile{
		DisplayName:    c.First("name", "preferred_username"),
		Email:          c.First("preferred_username", "email"),
		JobTitle:       c.First("jobTitle"),
		Department:     c.First("department"),
		OfficeLocation: c.First("officeLocation"),
		MobilePhone:    c.First("mobilePhone"),
		CompanyName:    c.First("companyName"),
		UserID:         c.First("oid", "sub"),
		TenantID:       c.First("tid"),
		AuthTime:       "Not available",
	}
	if raw, ok := c.Get("auth_time"); ok {
		if ts, err := strconv.ParseInt(raw, 10, 64); err == nil {
			p.AuthTime = time.Unix(ts, 0).UTC().Format(AuthTimeLayout)
		}
	}
	return p
}
