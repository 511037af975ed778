package responses

type PageDescriptor struct {
	Page    string  `json:"page"`
	Path    string  `json:"path"`
	Session Session `json:"session"`
}

type Redirect struct {
	Redirect string `json:"redirect"`
}
