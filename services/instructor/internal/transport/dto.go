package transport

type SignupRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Title    string `json:"title"    validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"  validate:"omitempty,email"`
	Title           string `json:"title"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type CreateCourseRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category"    validate:"required"`
}

type UpdateCourseRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending accepted rejected"`
}

type LoginResponse struct {
	Token string `json:"token"`
	ID    string `json:"id"`
}
