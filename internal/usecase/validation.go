package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"pilot-career-service/internal/domain/entity"
	"pilot-career-service/pkg/utils"
)

func newRequestValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("airport", func(fl validator.FieldLevel) bool {
		return utils.IsAirportCode(fl.Field().String())
	})
	v.RegisterValidation("airline", func(fl validator.FieldLevel) bool {
		return utils.IsAirlineCode(fl.Field().String())
	})
	return v
}

// NormalizeRequest upper-cases codes and lower-cases enum values. It
// returns a copy.
func NormalizeRequest(req entity.ScheduleRequest) entity.ScheduleRequest {
	req.StartLocation = utils.NormalizeCode(req.StartLocation)
	req.EndLocation = utils.NormalizeCode(req.EndLocation)
	req.HomeBase = utils.NormalizeCode(req.HomeBase)
	req.PreferredAirline = utils.NormalizeCode(req.PreferredAirline)
	req.ReturnTo = entity.ReturnPolicy(strings.ToLower(strings.TrimSpace(string(req.ReturnTo))))
	req.HaulPreferences.Preferred = entity.HaulType(strings.ToLower(strings.TrimSpace(string(req.HaulPreferences.Preferred))))
	req.Policy = strings.ToLower(strings.TrimSpace(req.Policy))
	return req
}

func validateRequest(v *validator.Validate, req entity.ScheduleRequest) error {
	if err := v.Struct(req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			parts := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				parts = append(parts, fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag()))
			}
			return invalidRequest("%s", strings.Join(parts, "; "))
		}
		return invalidRequest("%v", err)
	}
	if !req.HaulPreferences.Selectable() {
		return invalidRequest("haul preferences select no haul type")
	}
	if req.ReturnTo == entity.ReturnToHomeBase && req.EndLocation == "" && req.HomeBase == "" {
		return invalidRequest("returnTo home_base requires homeBase")
	}
	return nil
}
