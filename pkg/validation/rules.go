package validation

import (
	"quote-system/pkg/constants"

	"github.com/go-playground/validator/v10"
)

func registerRules(v *validator.Validate) error {
	// Статус наличия при проверке склада: in_stock, to_order, absent.
	if err := v.RegisterValidation("availability_status", func(fl validator.FieldLevel) bool {
		return constants.IsKnownAvailability(fl.Field().String())
	}); err != nil {
		return err
	}

	// Статус КП из фиксированного перечня.
	if err := v.RegisterValidation("quote_status", func(fl validator.FieldLevel) bool {
		return constants.IsKnownStatus(fl.Field().String())
	}); err != nil {
		return err
	}

	// Роль пользователя.
	if err := v.RegisterValidation("user_role", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case constants.RoleManager, constants.RoleWarehouse, constants.RoleAdmin:
			return true
		}
		return false
	}); err != nil {
		return err
	}

	return nil
}
