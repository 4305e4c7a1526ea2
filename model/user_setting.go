package model

import "encoding/json"

// UserSettingKey identifies one user_setting row kind.
type UserSettingKey string

const (
	// UserSettingKeyAccessTokens stores the list of access tokens issued to
	// the user, as JSON.
	UserSettingKeyAccessTokens UserSettingKey = "access-tokens"
)

func (k UserSettingKey) String() string {
	return string(k)
}

type UserSetting struct {
	UserID int32          `json:"user_id"`
	Key    UserSettingKey `json:"key"`
	Value  string         `json:"value"`
}

type FindUserSetting struct {
	UserID *int32         `json:"user_id"`
	Key    UserSettingKey `json:"key"`
}

// AccessToken is one issued token together with its description, so a user
// can tell sessions apart.
type AccessToken struct {
	Token       string `json:"token"`
	Description string `json:"description"`
}

type AccessTokens struct {
	Tokens []AccessToken `json:"tokens"`
}

func (t *AccessTokens) ToJSON() string {
	b, _ := json.Marshal(t)
	return string(b)
}
