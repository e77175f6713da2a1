package request

import (
	"errors"
	"regexp"

	cErr "arwikicats/internal/pkg/error"

	"github.com/go-playground/validator/v10"
)

// Validator DTO 可自訂欄位錯誤訊息，key 為 "<Field>.<tag>"
type Validator interface {
	GetMessages() ValidatorMessages
}

type ValidatorMessages map[string]string

var reg = regexp.MustCompile(`\[\d+\]`)

// GetError 將 binding 錯誤轉成 ValidateErr，只回傳第一則訊息
func GetError(request interface{}, err error) *cErr.Error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		if err != nil {
			return cErr.ValidateErr(err.Error())
		}
		return cErr.ValidateErr("Parameter error")
	}

	custom, isValidator := request.(Validator)
	for _, v := range validationErrors {
		if isValidator {
			field := reg.ReplaceAllString(v.Field(), ".*")
			if message, exist := custom.GetMessages()[field+"."+v.Tag()]; exist {
				return cErr.ValidateErr(message)
			}
		}
		return cErr.ValidateErr(v.Error())
	}
	return cErr.ValidateErr("Parameter error")
}
