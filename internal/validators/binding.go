package validators

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/catalog"
)

// RegisterBindings adds the custom tags used by request structs:
//
//	hhmm        "HH:mm" time of day
//	category    one of the service categories
//	apptstatus  an appointment status
func RegisterBindings() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return Register(v)
}

func Register(v *validator.Validate) error {
	if err := v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, err := domain.ParseClock(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}

	if err := v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return catalog.IsCategory(fl.Field().String())
	}); err != nil {
		return err
	}

	return v.RegisterValidation("apptstatus", func(fl validator.FieldLevel) bool {
		return domain.Status(fl.Field().String()).Valid()
	})
}
