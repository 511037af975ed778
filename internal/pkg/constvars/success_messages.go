package constvars

const (
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	LoginSuccessMessage               = "successfully login"
	LogoutSuccessMessage              = "successfully logout"
	RefreshTokenSuccessMessage        = "access token refreshed"
	ForgotPasswordSuccessMessage      = "reset password link already sent to your email"
	ResetPasswordSuccessMessage       = "password already reset successfully"
	VerifyAccountSuccessMessage       = "account verified successfully"
	GetSessionSuccessMessage          = "get session successfully"
	SessionAssignmentSuccessMessage   = "assignment updated successfully"
	PageAllowedMessage                = "page allowed"
	RedirectMessage                   = "redirect required"
	WizardStepAdvancedMessage         = "registration step completed"
	WizardStepValidationFailedMessage = "registration step has invalid fields"
	WizardStepBackMessage             = "moved to previous registration step"
	WizardStateMessage                = "get registration progress successfully"
	WizardPhotoUploadedMessage        = "profile picture uploaded"
	WizardSubmittedMessage            = "registration submitted, please check your email to verify your account"
	WizardResetMessage                = "registration progress cleared"
	GetFeedSuccessMessage             = "get feed successfully"
	GetPostSuccessMessage             = "get post successfully"
	CreatePostSuccessMessage          = "post created successfully"
	LikePostSuccessMessage            = "post liked successfully"
	GetCommentsSuccessMessage         = "get comments successfully"
	CreateCommentSuccessMessage       = "comment created successfully"
)
