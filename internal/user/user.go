// Package user defines the user model used throughout the application,
// particularly for authentication and user-scoped record storage.
package user

// User represents a system user.
// The identifier is issued by storage; the display attributes come from the
// external identity provider and are only stored and echoed back.
type User struct {
	// ID is the unique identifier of the user, meaning a UUID.
	ID string `json:"id"`

	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}
