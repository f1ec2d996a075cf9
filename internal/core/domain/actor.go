package domain

import "time"

// ActorKind discriminates the two independent actor namespaces. It is carried
// as an explicit tagged claim in every token payload.
type ActorKind string

const (
	ActorKindUser    ActorKind = "user"
	ActorKindCompany ActorKind = "company"
)

// UserRole is the role of a User actor. Companies carry the implicit role
// RoleCompany.
type UserRole string

const (
	RoleLearner UserRole = "learner"
	RoleMentor  UserRole = "mentor"
	RoleCompany UserRole = "company"
)

// AuthProvider identifies how an actor's credentials were established.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "local"
	ProviderGoogle AuthProvider = "google"
)

// Credentials holds the authentication state shared by both actor variants.
// PasswordHash is empty for OAuth-only actors (GoogleID set).
type Credentials struct {
	PasswordHash string `json:"-"`
	GoogleID     string `json:"-"`

	IsEmailVerified            bool       `json:"isEmailVerified"`
	EmailVerificationTokenHash string     `json:"-"`
	EmailVerificationExpiresAt *time.Time `json:"-"`
	PasswordResetTokenHash     string     `json:"-"`
	PasswordResetExpiresAt     *time.Time `json:"-"`

	LoginAttempts int        `json:"-"`
	LockUntil     *time.Time `json:"-"`

	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// User is a student actor: a learner looking for projects or a mentor guiding
// them.
type User struct {
	UserID string   `json:"userID"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Role   UserRole `json:"role"`
	Credentials
	Timestamps
}

// Company is a business actor posting short-term projects. It authenticates
// through the same credential mechanics as User but additionally requires
// partnership approval before it can reach session-gated routes.
type Company struct {
	CompanyID   string `json:"companyID"`
	CompanyName string `json:"companyName"`
	Email       string `json:"email"`
	IsApproved  bool   `json:"isApproved"`
	Credentials
	Timestamps
}

// Actor is the normalized view of an authenticated principal used by the
// credential service and session middleware, independent of which table the
// record lives in.
type Actor struct {
	ID       string
	Kind     ActorKind
	Role     UserRole
	Name     string
	Email    string
	Approved bool // always true for users
	Credentials
}

// AsActor normalizes a User into the shared Actor view.
func (u *User) AsActor() *Actor {
	return &Actor{
		ID:          u.UserID,
		Kind:        ActorKindUser,
		Role:        u.Role,
		Name:        u.Name,
		Email:       u.Email,
		Approved:    true,
		Credentials: u.Credentials,
	}
}

// AsActor normalizes a Company into the shared Actor view.
func (c *Company) AsActor() *Actor {
	return &Actor{
		ID:          c.CompanyID,
		Kind:        ActorKindCompany,
		Role:        RoleCompany,
		Name:        c.CompanyName,
		Email:       c.Email,
		Approved:    c.IsApproved,
		Credentials: c.Credentials,
	}
}

// GoogleUserInfo holds the subset of the Google userinfo/ID-token payload the
// OAuth flow consumes.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
