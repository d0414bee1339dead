package model

import (
	"fmt"
	"strings"
)

// Role is the closed set of account roles.
type Role string

const (
	// RoleCandidate is a job seeker account
	RoleCandidate Role = "candidate"
	// RoleRecruiter is an account that can post jobs and manage companies
	RoleRecruiter Role = "recruiter"
	// RoleAdmin is a privileged account created out-of-band
	RoleAdmin Role = "admin"
)

// ParseRole normalizes a raw role label into one of the closed Role variants.
// Legacy data uses "user" and "candidate" interchangeably for the same role,
// so both map to RoleCandidate. An empty label defaults to RoleCandidate.
// Any other label is rejected.
func ParseRole(raw string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "user", "candidate":
		return RoleCandidate, nil
	case "recruiter":
		return RoleRecruiter, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unrecognized role %q", raw)
	}
}
