package models

import "fmt"

// Top-level collections of the remote document store.
const (
	HouseholdsCollection = "households"
	UsersCollection      = "users"
)

// HouseholdPath returns "households/{householdID}".
func HouseholdPath(householdID string) string {
	return HouseholdsCollection + "/" + householdID
}

// ChoresCollection returns "households/{householdID}/chores".
func ChoresCollection(householdID string) string {
	return HouseholdPath(householdID) + "/chores"
}

// ChorePath returns "households/{householdID}/chores/{choreID}".
func ChorePath(householdID, choreID string) string {
	return ChoresCollection(householdID) + "/" + choreID
}

// NotesCollection returns "households/{householdID}/notes".
func NotesCollection(householdID string) string {
	return HouseholdPath(householdID) + "/notes"
}

// NotePath returns "households/{householdID}/notes/{noteID}".
func NotePath(householdID, noteID string) string {
	return NotesCollection(householdID) + "/" + noteID
}

// UserPath returns "users/{userID}".
func UserPath(userID string) string {
	return UsersCollection + "/" + userID
}

// ItemPath returns the remote path of a household-scoped item of the given kind.
func ItemPath(kind ItemKind, householdID, itemID string) (string, error) {
	switch kind {
	case ItemKindChore:
		return ChorePath(householdID, itemID), nil
	case ItemKindNote:
		return NotePath(householdID, itemID), nil
	default:
		return "", fmt.Errorf("unknown item kind %q", kind)
	}
}
