package dto

type CreateTagRequest struct {
	NameTag string `json:"name_tag" validate:"required,notblank,max=100"`
}

type TagResponse struct {
	ID        string `json:"id"`
	NameTag   string `json:"name_tag"`
	CreatedAt string `json:"created_at"`
}
