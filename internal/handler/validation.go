package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/xxxsen/legalease/internal/summary"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("language", validateLanguage)
	}
}

func validateLanguage(fl validator.FieldLevel) bool {
	_, err := summary.ParseLanguage(fl.Field().String())
	return err == nil
}

type summaryForm struct {
	Language string `form:"language" binding:"required,language"`
}
