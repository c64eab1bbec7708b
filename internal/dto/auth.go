package dto

// LoginRequest carries username/password credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the bearer token for subsequent requests.
type LoginResponse struct {
	Token    string `json:"token"`
	StaffID  string `json:"staffID"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
