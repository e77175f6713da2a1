package dto

import "arwikicats/internal/pkg/request"

// BatchLookupDto POST /api/list
type BatchLookupDto struct {
	Titles []string `json:"titles" binding:"required,min=1,max=1000,dive,required"`
}

func (BatchLookupDto) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{
		"Titles.required":   "titles is required",
		"Titles.min":        "titles must not be empty",
		"Titles.max":        "at most 1000 titles per request",
		"Titles.*.required": "titles must not contain blank entries",
	}
}
