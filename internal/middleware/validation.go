package middleware

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/chartpro/emr-api/internal/model"
)

// RegisterValidators installs domain validation rules on gin's binding
// engine. Called once at startup.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("visittype", func(fl validator.FieldLevel) bool {
		switch model.VisitType(fl.Field().String()) {
		case model.VisitTypeEvaluation, model.VisitTypeReEval, model.VisitTypeTreatment, model.VisitTypeDischarge:
			return true
		}
		return false
	})
}
