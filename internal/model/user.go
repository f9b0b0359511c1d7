package model

const (
	RoleOwner    = "Owner"
	RoleCustomer = "Customer"
)

// Seeded owner account, present whenever the users collection was never persisted.
const (
	SeedOwnerUsername = "admin"
	SeedOwnerPassword = "123"
	SeedOwnerName     = "Star Pro Owner"
)

// User is a credential record. Customers sign in with their phone number as username.
type User struct {
	Username string `json:"username"`
	Password string `json:"password"` // bcrypt hash once hydrated
	Role     string `json:"role"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Session is the current logged-in identity. It mirrors a User without the password.
type Session struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email,omitempty"`
}

// Session returns the identity record established when u logs in.
func (u User) Session() Session {
	return Session{
		Username: u.Username,
		Role:     u.Role,
		Name:     u.Name,
		Phone:    u.Phone,
		Email:    u.Email,
	}
}

func (s Session) IsOwner() bool {
	return s.Role == RoleOwner
}

// SignupRequest is used for customer self-registration.
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
}
