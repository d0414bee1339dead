package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		raw  string
		want Role
	}{
		{"candidate", RoleCandidate},
		{"user", RoleCandidate},
		{"", RoleCandidate},
		{" Candidate ", RoleCandidate},
		{"USER", RoleCandidate},
		{"recruiter", RoleRecruiter},
		{"Recruiter", RoleRecruiter},
		{"admin", RoleAdmin},
	}
	for _, tc := range cases {
		got, err := ParseRole(tc.raw)
		assert.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}

func TestParseRoleRejectsUnknown(t *testing.T) {
	for _, raw := range []string{"superuser", "moderator", "root"} {
		_, err := ParseRole(raw)
		assert.Error(t, err, raw)
	}
}
