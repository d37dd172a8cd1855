package request

type UpdateSettingsRequest struct {
	BaseCurrency  string `json:"baseCurrency"`
	ProviderToken string `json:"providerToken"`
}
