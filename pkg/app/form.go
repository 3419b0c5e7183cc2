package app

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/gin-gonic/gin"
	val "github.com/go-playground/validator/v10"
)

// ValidError 单个字段的验证错误
type ValidError struct {
	Key     string
	Message string
}

func (v *ValidError) Error() string {
	return v.Message
}

type ValidErrors []*ValidError

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

func (v ValidErrors) ErrorsToString() string {
	return strings.Join(v.Errors(), ",")
}

// MapsToString 转换为 key:message 映射，便于前端逐字段展示
func (v ValidErrors) MapsToString() map[string]string {
	m := make(map[string]string, len(v))
	for _, err := range v {
		m[err.Key] = err.Message
	}
	return m
}

// BindAndValid 绑定请求参数并验证，验证错误消息走请求语言的翻译器
func BindAndValid(c *gin.Context, v any) (bool, ValidErrors) {
	var errs ValidErrors

	err := c.ShouldBind(v)
	if err != nil {
		verrs, ok := err.(val.ValidationErrors)
		if !ok {
			errs = append(errs, &ValidError{
				Key:     "body",
				Message: err.Error(),
			})
			return false, errs
		}

		trans := translatorFromContext(c)
		for _, fieldErr := range verrs {
			message := fieldErr.Error()
			if trans != nil {
				message = fieldErr.Translate(trans)
			}
			errs = append(errs, &ValidError{
				Key:     fieldErr.Field(),
				Message: message,
			})
		}
		return false, errs
	}

	return true, nil
}

func translatorFromContext(c *gin.Context) ut.Translator {
	v, ok := c.Get("trans")
	if !ok {
		return nil
	}
	trans, ok := v.(ut.Translator)
	if !ok {
		return nil
	}
	return trans
}
