package validation

import "github.com/jmolenaar/wealth-tracker/internal/model"

// ValidateSettings checks a settings payload before persistence.
func ValidateSettings(settings *model.Settings) error {
	fields := make(map[string]string)

	if settings.BaseCurrency == "" {
		fields["baseCurrency"] = "base currency is required"
	} else if len(settings.BaseCurrency) != 3 {
		fields["baseCurrency"] = "base currency must be a 3-letter ISO code"
	}

	return newError(fields)
}
