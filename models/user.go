package models

// User is an account record under users/{userId}. Subscription fields are
// written by the billing side and read-only here.
type User struct {
	FirstName             string `json:"firstName"`
	LastName              string `json:"lastName"`
	Email                 string `json:"email,omitempty"`
	Phone                 string `json:"phone,omitempty"`
	Address               string `json:"address,omitempty"`
	ProfilePicURL         string `json:"profilePicUrl,omitempty"`
	SubscriptionStatus    string `json:"subscriptionStatus,omitempty"`
	SubscriptionStartDate string `json:"subscriptionStartDate,omitempty"`
	SubscriptionEndDate   string `json:"subscriptionEndDate,omitempty"`
}

// FullName joins first and last name, trimming when either is missing.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// ProfileUpdate is the editable subset of a user record.
type ProfileUpdate struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	ProfilePicURL string `json:"profilePicUrl,omitempty"`
}
