package transport

type RegisterRequest struct {
	Name        string `json:"name"        validate:"required"`
	Email       string `json:"email"       validate:"required,email"`
	Password    string `json:"password"    validate:"required"`
	Description string `json:"description"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email" validate:"omitempty,email"`
	Description     string `json:"description"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// AdminUpdateRequest is the admin-on-behalf-of-learner update. The password,
// when present, is replaced without a current-password check: a deliberate
// admin-override path.
type AdminUpdateRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email" validate:"omitempty,email"`
	Description string `json:"description"`
	Password    string `json:"password"`
}

type EnrollRequest struct {
	CourseID string `json:"courseId" validate:"required"`
}

type ProgressRequest struct {
	CourseID  string `json:"courseId"  validate:"required"`
	ContentID string `json:"contentId" validate:"required"`
	Completed bool   `json:"completed"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	LearnerID string `json:"learnerId"`
}
