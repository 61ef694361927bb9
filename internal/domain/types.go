package domain

// ID is used across domain entities.
type ID int64

const (
	RoleAdmin     = "admin"
	RolePassenger = "passenger"
)

// RequestContext carries the authenticated principal for one request.
type RequestContext struct {
	UserID   ID     `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (r RequestContext) IsAdmin() bool { return r.Role == RoleAdmin }
