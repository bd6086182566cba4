// Package policy holds the role-based write rules shared by the client
// engine, which uses them to decide what to push, and the remote endpoint,
// which enforces them.
package policy

import "github.com/MKhiriev/go-fit-sync/models"

// target says whose rows a role may write for an entity type.
type target int

const (
	ownRows target = 1 << iota
	athleteRows
)

var writeRules = map[models.Role]map[models.EntityType]target{
	models.RoleAthlete: {
		models.EntityAthleteProfiles: ownRows,
		models.EntityTestResults:     ownRows,
		models.EntityWorkoutLogs:     ownRows,
	},
	models.RoleTrainer: {
		models.EntityTrainingPlans:   athleteRows,
		models.EntityTestResults:     athleteRows,
		models.EntityCalendarEvents:  ownRows | athleteRows,
		models.EntityTrainerProfiles: ownRows,
	},
}

// Rules evaluates the write rules against a resolved [models.Scope].
type Rules struct{}

// CanWrite reports whether scope may write a row of entityType owned by
// ownerID.
func (Rules) CanWrite(scope models.Scope, entityType models.EntityType, ownerID string) bool {
	allowed, ok := writeRules[scope.Role][entityType]
	if !ok || ownerID == "" {
		return false
	}

	if ownerID == scope.UserID {
		return allowed&ownRows != 0
	}
	if allowed&athleteRows == 0 {
		return false
	}
	for _, id := range scope.AthleteIDs {
		if id == ownerID {
			return true
		}
	}
	return false
}

// RoleMayWrite reports whether role may write entityType for anyone. The
// client uses it to hold back records it knows the server would refuse.
func RoleMayWrite(role models.Role, entityType models.EntityType) bool {
	_, ok := writeRules[role][entityType]
	return ok
}

// WritableTypes lists the entity types role may write, in declaration order.
func WritableTypes(role models.Role) []models.EntityType {
	var types []models.EntityType
	for _, entityType := range models.EntityTypes {
		if RoleMayWrite(role, entityType) {
			types = append(types, entityType)
		}
	}
	return types
}
