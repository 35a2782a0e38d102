package handler

import (
	"errors"

	"github.com/ErlanBelekov/task-manager-api/internal/auth"
	"github.com/ErlanBelekov/task-manager-api/internal/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the "taskstate" and "bcryptlen" tags to gin's
// validator. It must run before any request using them is bound.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator engine is not go-playground/validator")
	}
	if err := v.RegisterValidation("taskstate", func(fl validator.FieldLevel) bool {
		return domain.TaskState(fl.Field().String()).Valid()
	}); err != nil {
		return err
	}
	// "max" counts runes; bcrypt's limit is in bytes.
	return v.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= auth.MaxPasswordBytes
	})
}
