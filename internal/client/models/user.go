package models

// User is an account profile. Birthdate is kept as entered (YYYY-MM-DD).
type User struct {
	ID             string
	Email          string
	DisplayName    string
	ProfilePicture string
	Phone          string
	Birthdate      string
	HouseholdID    string
	PushToken      string
}

// Document converts the user to its remote representation.
func (u *User) Document() Document {
	return Document{
		"id":             u.ID,
		"email":          u.Email,
		"displayName":    u.DisplayName,
		"profilePicture": u.ProfilePicture,
		"phone":          u.Phone,
		"birthdate":      u.Birthdate,
		"householdId":    u.HouseholdID,
		"fcmToken":       u.PushToken,
	}
}

// UserFromDocument builds a user from a remote document.
func UserFromDocument(d Document) (*User, error) {
	id, err := d.requireID()
	if err != nil {
		return nil, err
	}
	return &User{
		ID:             id,
		Email:          d.String("email"),
		DisplayName:    d.String("displayName"),
		ProfilePicture: d.String("profilePicture"),
		Phone:          d.String("phone"),
		Birthdate:      d.String("birthdate"),
		HouseholdID:    d.String("householdId"),
		PushToken:      d.String("fcmToken"),
	}, nil
}
