package dto

type SourceSearchRequest struct {
	Category string `params:"category" validate:"required,oneof=crm lms rms hrms rag"`
	Query    string `query:"q" validate:"max=500"`
	Page     int    `query:"page" validate:"gte=0"`
	PageSize int    `query:"page_size" validate:"gte=0,lte=100"`
}

type SourceSearchResponse struct {
	Category string                   `json:"category"`
	Records  []map[string]interface{} `json:"records"`
	Total    int64                    `json:"total"`
	Page     int                      `json:"page"`
	PageSize int                      `json:"page_size"`
	HasMore  bool                     `json:"has_more"`
}
