package responses

type WizardState struct {
	UserType       string            `json:"user_type"`
	ActiveStep     int               `json:"active_step"`
	StepName       string            `json:"step_name,omitempty"`
	Steps          []string          `json:"steps"`
	Completed      bool              `json:"completed"`
	Submitting     bool              `json:"submitting"`
	Fields         map[string]string `json:"fields,omitempty"`
	ProfilePicture string            `json:"profile_picture,omitempty"`
	Errors         []FieldError      `json:"errors,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
