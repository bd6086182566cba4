// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Role is the product role of an authenticated user.
type Role string

const (
	RoleTrainer Role = "trainer"
	RoleAthlete Role = "athlete"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleTrainer || r == RoleAthlete
}

// Scope is the set of rows a user may see and write, resolved on the
// remote endpoint from the caller's verified identity.
type Scope struct {
	UserID     string
	Role       Role
	AthleteIDs []string
}

// OwnsOrCoaches reports whether ownerID is the caller or one of the
// caller's enrolled athletes.
func (s Scope) OwnsOrCoaches(ownerID string) bool {
	if ownerID == s.UserID {
		return true
	}
	if s.Role != RoleTrainer {
		return false
	}
	for _, id := range s.AthleteIDs {
		if id == ownerID {
			return true
		}
	}
	return false
}

// VisibleOwners lists every owner whose rows the caller may read.
func (s Scope) VisibleOwners() []string {
	owners := make([]string, 0, len(s.AthleteIDs)+1)
	owners = append(owners, s.UserID)
	if s.Role == RoleTrainer {
		owners = append(owners, s.AthleteIDs...)
	}
	return owners
}
