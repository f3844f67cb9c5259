package dto

type CreatePostRequest struct {
	Text    string `form:"text" json:"text"`
	GroupID *int64 `form:"group" json:"group"`
}

type EditPostRequest struct {
	Text    string `form:"text" json:"text"`
	GroupID *int64 `form:"group" json:"group"`
}

type GetPostsRequest struct {
	Page string `form:"page"`
}

// Image is an uploaded file read into memory by the transport layer.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}
