package core

import "errors"

// 核心層錯誤；HTTP 對應只在 handler 層處理
var (
	ErrStorageInit       = errors.New("storage init failed")
	ErrStorageWrite      = errors.New("storage write failed")
	ErrStorageBusy       = errors.New("storage busy")
	ErrInvalidQueryParam = errors.New("invalid query param")
	ErrResolver          = errors.New("resolver failed")
)
