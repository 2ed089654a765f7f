package dto

type Pagination struct {
	Limit  int `form:"limit" binding:"min=0"`
	Offset int `form:"offset" binding:"min=0"`
}

type CreatePostRequest struct {
	Content  string  `json:"content" binding:"max=2000"`
	ImageURL *string `json:"image_url" binding:"omitempty,url"`
}

type CreateCommentRequest struct {
	Text string `json:"text" binding:"max=1000"`
}
