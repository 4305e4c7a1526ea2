package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/seowoojae/shelfd/log"
	"github.com/seowoojae/shelfd/model"
)

func getUserSettingCacheKey(userID int32, key string) string {
	return fmt.Sprintf("%d-%s", userID, key)
}

func (s *Store) UpsertUserSetting(userSetting *model.UserSetting) (*model.UserSetting, error) {
	query := `
		INSERT INTO user_setting (user_id, key, value)
		VALUES (?, ?, ?)
        ON CONFLICT(user_id, key) DO UPDATE
		SET value = EXCLUDED.value
	`

	log.Debug("SQL query and args:")
	log.Fallback("Debug", fmt.Sprintf("UpsertUserSetting query: %s\nargs:\nUserID:%d\nKey:%s\n", query, userSetting.UserID, userSetting.Key.String()))

	_, err := s.db.Exec(query, userSetting.UserID, userSetting.Key.String(), userSetting.Value)
	if err != nil {
		return nil, err
	}
	s.UserSettingCache.Store(getUserSettingCacheKey(userSetting.UserID, userSetting.Key.String()), userSetting)
	return userSetting, nil
}

func (s *Store) GetUserSetting(find *model.FindUserSetting) (*model.UserSetting, error) {
	if find.UserID != nil {
		if cache, ok := s.UserSettingCache.Load(getUserSettingCacheKey(*find.UserID, find.Key.String())); ok {
			return cache.(*model.UserSetting), nil
		}
	}

	list, err := s.ListUserSettings(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	if len(list) > 1 {
		return nil, errors.Errorf("Expected 1 user setting, but got %d", len(list))
	}

	userSetting := list[0]
	s.UserSettingCache.Store(getUserSettingCacheKey(userSetting.UserID, userSetting.Key.String()), userSetting)
	return userSetting, nil
}

func (s *Store) ListUserSettings(find *model.FindUserSetting) ([]*model.UserSetting, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.Key; v != "" {
		where, args = append(where, "key = ?"), append(args, v.String())
	}
	if v := find.UserID; v != nil {
		where, args = append(where, "user_id = ?"), append(args, *v)
	}

	query := `
		SELECT
			user_id,
			key,
			value
		FROM user_setting
		WHERE ` + strings.Join(where, " AND ")

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	userSettingList := make([]*model.UserSetting, 0)
	for rows.Next() {
		userSetting := &model.UserSetting{}
		var keyString string
		if err := rows.Scan(
			&userSetting.UserID,
			&keyString,
			&userSetting.Value,
		); err != nil {
			return nil, err
		}
		userSetting.Key = model.UserSettingKey(keyString)
		userSettingList = append(userSettingList, userSetting)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return userSettingList, nil
}

// GetUserAccessTokens returns the tokens issued to the user. A missing
// setting row means no tokens yet.
func (s *Store) GetUserAccessTokens(userID int32) ([]model.AccessToken, error) {
	setting, err := s.GetUserSetting(&model.FindUserSetting{
		UserID: &userID,
		Key:    model.UserSettingKeyAccessTokens,
	})
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return []model.AccessToken{}, nil
	}

	tokens := &model.AccessTokens{}
	if err := json.Unmarshal([]byte(setting.Value), tokens); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal access tokens")
	}
	return tokens.Tokens, nil
}

// UpsertAccessToken appends a newly issued token to the user's token list.
func (s *Store) UpsertAccessToken(userID int32, accessToken, description string) error {
	tokens, err := s.GetUserAccessTokens(userID)
	if err != nil {
		return errors.Wrap(err, "failed to get user access tokens")
	}
	tokens = append(tokens, model.AccessToken{Token: accessToken, Description: description})

	value := (&model.AccessTokens{Tokens: tokens}).ToJSON()
	_, err = s.UpsertUserSetting(&model.UserSetting{
		UserID: userID,
		Key:    model.UserSettingKeyAccessTokens,
		Value:  value,
	})
	return err
}

// RemoveAccessToken drops one token from the user's token list, used on
// sign-out.
func (s *Store) RemoveAccessToken(userID int32, accessToken string) error {
	tokens, err := s.GetUserAccessTokens(userID)
	if err != nil {
		return errors.Wrap(err, "failed to get user access tokens")
	}

	kept := make([]model.AccessToken, 0, len(tokens))
	for _, token := range tokens {
		if token.Token != accessToken {
			kept = append(kept, token)
		}
	}

	value := (&model.AccessTokens{Tokens: kept}).ToJSON()
	_, err = s.UpsertUserSetting(&model.UserSetting{
		UserID: userID,
		Key:    model.UserSettingKeyAccessTokens,
		Value:  value,
	})
	return err
}
