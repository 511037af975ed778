package requests

type CreatePost struct {
	Title   string `json:"title" validate:"required,max=150"`
	Content string `json:"content" validate:"required"`
}

type CreateComment struct {
	Content string `json:"content" validate:"required,max=1000"`
}
