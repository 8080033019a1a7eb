package app

import (
	"strings"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	validatorV10 "github.com/go-playground/validator/v10"
)

// ValidError one field level validation failure
// ValidError 单个字段级校验失败
type ValidError struct {
	Field   string
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
	errs := make([]string, 0, len(v))
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

// ContextTransKey gin context key holding the request translator
// ContextTransKey gin 上下文中保存请求翻译器的键
const ContextTransKey = "trans"

// BindAndValid binds the request body and translates validation failures
// BindAndValid 绑定请求体并翻译校验失败信息
func BindAndValid(c *gin.Context, v any) (bool, ValidErrors) {
	var errs ValidErrors

	err := c.ShouldBind(v)
	if err == nil {
		return true, nil
	}

	verrs, ok := err.(validatorV10.ValidationErrors)
	if !ok {
		errs = append(errs, &ValidError{Field: "body", Message: err.Error()})
		return false, errs
	}

	trans, hasTrans := c.Value(ContextTransKey).(ut.Translator)
	for _, verr := range verrs {
		field := verr.Field()
		message := verr.Error()
		if hasTrans {
			message = verr.Translate(trans)
		}
		errs = append(errs, &ValidError{Field: field, Message: message})
	}
	return false, errs
}
