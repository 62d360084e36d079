package api

// Slider is the JSON view of a slider record.
type Slider struct {
	ID          string `json:"id"`
	AuthorID    string `json:"author_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Thumbnail   string `json:"thumbnail"`
	Visibility  string `json:"visibility"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type Image struct {
	Path      string `json:"path"`
	Hash      string `json:"hash"`
	CreatedAt string `json:"created_at"`
}

// ThumbnailRequest sets or, with an empty path, clears a slider thumbnail.
type ThumbnailRequest struct {
	Path string `json:"path"`
}

type Page struct {
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	UpdatedAt string `json:"updated_at"`
}

type PageRequest struct {
	Body string `json:"body"`
}

type LoginRequest struct {
	Login    string `json:"login" form:"login" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}
