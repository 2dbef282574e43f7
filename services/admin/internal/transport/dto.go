package transport

type VerifyKeyRequest struct {
	ActivationKey string `json:"activationKey" validate:"required"`
}

type SignupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name"  validate:"omitempty,min=1"`
	Email string `json:"email" validate:"omitempty,email"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Admin any    `json:"admin"`
}
