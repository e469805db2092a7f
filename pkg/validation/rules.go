package validation

import (
	"github.com/go-playground/validator/v10"

	"gearguard/pkg/constants"
)

// registerRules registers the enum tags used in DTO struct tags.
func registerRules(v *validator.Validate) error {
	rules := map[string]func(string) bool{
		"role":             constants.IsValidRole,
		"equipment_status": constants.IsValidEquipmentStatus,
		"request_status":   constants.IsValidRequestStatus,
		"maintenance_type": constants.IsValidMaintenanceType,
		"priority":         constants.IsValidPriority,
	}
	for tag, check := range rules {
		if err := v.RegisterValidation(tag, enumRule(check)); err != nil {
			return err
		}
	}
	return nil
}

func enumRule(check func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return check(fl.Field().String())
	}
}
