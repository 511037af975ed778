package requests

type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	UserType string `json:"user_type" validate:"required,user_type"`
}

type ForgotPassword struct {
	Email    string `json:"email" validate:"required,email"`
	UserType string `json:"user_type" validate:"required,user_type"`
}

type ResetPassword struct {
	Token                   string `json:"token" validate:"required"`
	NewPassword             string `json:"new_password" validate:"required,password"`
	NewPasswordConfirmation string `json:"new_password_confirmation" validate:"required,eqfield=NewPassword"`
}

type VerifyAccount struct {
	Token string `json:"token" validate:"required"`
}
