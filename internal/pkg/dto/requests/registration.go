package requests

import "io"

type WizardStep struct {
	Fields map[string]string `json:"fields"`
}

// RegisterForm is the multipart registration payload sent to the backend.
type RegisterForm struct {
	UserType       string
	Fields         map[string]string
	ProfilePicture *ProfilePicture
}

type ProfilePicture struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}
