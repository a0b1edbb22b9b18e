package entities

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleCreator   Role = "creator"
	RoleDonor     Role = "donor"
	RoleVolunteer Role = "volunteer"
)

// Actor is the authenticated caller, decoded from the bearer token.
type Actor struct {
	ID    string `json:"id"`
	Role  Role   `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }
