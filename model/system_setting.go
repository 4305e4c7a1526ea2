package model

import "encoding/json"

const (
	// SettingTypeSecurity holds the security settings, currently only the
	// JWT secret generated on first boot.
	SettingTypeSecurity = "security"
	// SettingTypeGeneral holds general instance settings.
	SettingTypeGeneral = "general"
)

type SystemSetting struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

type SystemSettingSecurity struct {
	JWTSecret string `json:"jwt_secret"`
}

func (s *SystemSettingSecurity) ToJSON() string {
	b, _ := json.Marshal(s)
	return string(b)
}

type SystemSettingGeneral struct {
	DisableSignup bool `json:"disable_signup"`
}

func (s *SystemSettingGeneral) ToJSON() string {
	b, _ := json.Marshal(s)
	return string(b)
}
