package handlers

import (
	"errors"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// RegisterValidators adds the custom binding rules used by the request DTOs to gin's validator.
// It is safe to call more than once.
func RegisterValidators() error {
	var err error
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = errors.New("gin binding validator is not go-playground/validator")
			return
		}
		err = v.RegisterValidation("currency_code", isCurrencyCode)
	})
	return err
}

// isCurrencyCode accepts three ASCII letters in either case; services upper-case the code.
func isCurrencyCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	if len(code) != 3 {
		return false
	}
	for i := 0; i < len(code); i++ {
		ch := code[i] | 0x20
		if ch < 'a' || ch > 'z' {
			return false
		}
	}
	return true
}
