package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// New builds a validator that reports field names from json tags, so
// validation errors line up with the wire schema instead of Go field names.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
