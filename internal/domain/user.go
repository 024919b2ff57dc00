package domain

import "time"

type Role string

const (
	RoleCustomer  Role = "customer"
	RoleOrganizer Role = "organizer"
)

type User struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Customer struct {
	User
	CustomerID uint `json:"customer_id"`
}

type Organizer struct {
	User
	OrganizerID      uint   `json:"organizer_id"`
	OrganizationName string `json:"organization_name"`
	BusinessAddress  string `json:"business_address"`
}

// Principal is the authenticated actor issuing a request, resolved once at
// the handler boundary. Exactly one of CustomerID/OrganizerID is set,
// depending on Role.
type Principal struct {
	UserID      uint
	Role        Role
	CustomerID  uint
	OrganizerID uint
}

func (p Principal) IsCustomer() bool {
	return p.Role == RoleCustomer
}

func (p Principal) IsOrganizer() bool {
	return p.Role == RoleOrganizer
}
