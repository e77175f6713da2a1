package validate

import (
	"fmt"
	"reflect"
	"strings"

	"arwikicats/internal/core"
	cErr "arwikicats/internal/pkg/error"
	"arwikicats/internal/pkg/request"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// 輸出格式化的 validator error（欄位 json 名/型別/規則列表）
func ValidationErrorResponse(obj interface{}, err error) string {
	if errs, ok := err.(validator.ValidationErrors); ok {
		var b strings.Builder
		b.WriteString("Validation error:\n")
		for _, fe := range errs {
			field := jsonFieldName(obj, fe.StructField())
			ftype := fieldType(obj, fe.StructField())
			format := getFieldFormat(obj, fe.StructField())
			b.WriteString(fmt.Sprintf(" - Field \"%s\" (type: %s) failed the '%s' validation (rules: %v)\n",
				field, ftype, fe.Tag(), format))
		}
		return b.String()
	}
	return fmt.Sprintf("Validation error: %s", err.Error())
}

func jsonFieldName(obj interface{}, structField string) string {
	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if f, ok := t.FieldByName(structField); ok {
		tag := f.Tag.Get("json")
		if tag != "" && tag != "-" {
			return strings.Split(tag, ",")[0]
		}
	}
	return structField
}

func fieldType(obj interface{}, structField string) string {
	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if f, ok := t.FieldByName(structField); ok {
		return f.Type.String()
	}
	return ""
}

func getFieldFormat(obj interface{}, structField string) []string {
	t := reflect.TypeOf(obj)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if f, ok := t.FieldByName(structField); ok {
		tag := f.Tag.Get("binding")
		if tag != "" {
			return strings.Split(tag, ",")
		}
	}
	return nil
}

// BindAndValidate 綁定 JSON body；DTO 有自訂訊息時優先使用
func BindAndValidate(c *gin.Context, req any) (cause error, responseErr error) {
	if err := c.ShouldBindJSON(req); err != nil {
		if _, ok := req.(request.Validator); ok {
			return err, request.GetError(req, err)
		}
		return err, cErr.ValidateErr(ValidationErrorResponse(req, err))
	}
	return nil, nil
}

// BindQuery 綁定 query string；格式錯誤視為 InvalidQueryParam
func BindQuery(c *gin.Context, req any) error {
	if err := c.ShouldBindQuery(req); err != nil {
		return fmt.Errorf("%w: %s", core.ErrInvalidQueryParam, strings.TrimSpace(ValidationErrorResponse(req, err)))
	}
	return nil
}

// ParseTable 取 query 的 table，未帶時為 logs
func ParseTable(c *gin.Context) (core.SqliteTable, error) {
	return core.ParseSqliteTable(c.DefaultQuery("table", string(core.SqliteTableLogs)))
}

// ParseDayParam 驗證路徑或 query 上的 YYYY-MM-DD
func ParseDayParam(value string, required bool) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		if required {
			return "", fmt.Errorf("%w: day is required", core.ErrInvalidQueryParam)
		}
		return "", nil
	}
	if !core.IsDay(value) {
		return "", fmt.Errorf("%w: day %q is not YYYY-MM-DD", core.ErrInvalidQueryParam, value)
	}
	return value, nil
}
