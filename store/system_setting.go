package store

import (
	"database/sql"
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/seowoojae/shelfd/log"
	"github.com/seowoojae/shelfd/model"
	"github.com/seowoojae/shelfd/util"
)

func (s *Store) GetSystemSetting(name string) (*model.SystemSetting, error) {
	if cache, ok := s.SystemSettingCache.Load(name); ok {
		return cache.(*model.SystemSetting), nil
	}

	setting := &model.SystemSetting{}
	stmt := `SELECT name, value, description FROM system_setting WHERE name = ?`
	if err := s.db.QueryRow(stmt, name).Scan(&setting.Name, &setting.Value, &setting.Description); err != nil {
		return nil, errors.Wrap(err, "failed to get system setting")
	}

	s.SystemSettingCache.Store(name, setting)
	return setting, nil
}

func (s *Store) UpsertSystemSetting(setting *model.SystemSetting) (*model.SystemSetting, error) {
	stmt := `
	INSERT INTO system_setting (
		name, value, description
	)
	VALUES (?, ?, ?)
	ON CONFLICT(name) DO UPDATE
	SET
		value = EXCLUDED.value,
		description = EXCLUDED.description
	`
	if _, err := s.db.Exec(stmt, setting.Name, setting.Value, setting.Description); err != nil {
		return nil, errors.Wrap(err, "failed to insert/update system setting")
	}
	s.SystemSettingCache.Store(setting.Name, setting)
	return setting, nil
}

func (s *Store) GetSystemGeneralSetting() (*model.SystemSettingGeneral, error) {
	systemSetting, err := s.GetSystemSetting(model.SettingTypeGeneral)
	if err != nil {
		if errors.Is(errors.Cause(err), sql.ErrNoRows) {
			return &model.SystemSettingGeneral{}, nil
		}
		return nil, errors.Wrap(err, "failed to get system general setting")
	}
	generalSetting := &model.SystemSettingGeneral{}
	if err := json.Unmarshal([]byte(systemSetting.Value), generalSetting); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal system general setting")
	}
	return generalSetting, nil
}

// GetOrUpsertSystemSecuritySetting returns the security settings, creating
// them with a fresh JWT secret on first use.
func (s *Store) GetOrUpsertSystemSecuritySetting() (*model.SystemSettingSecurity, error) {
	systemSetting, err := s.GetSystemSetting(model.SettingTypeSecurity)
	if err != nil && !errors.Is(errors.Cause(err), sql.ErrNoRows) {
		return nil, errors.Wrap(err, "failed to get security settings")
	}

	securitySetting := &model.SystemSettingSecurity{}
	if systemSetting != nil {
		if err := json.Unmarshal([]byte(systemSetting.Value), securitySetting); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal security settings")
		}
	}

	if securitySetting.JWTSecret != "" {
		return securitySetting, nil
	}

	log.Debug("No JWT secret found, create it")
	securitySetting = &model.SystemSettingSecurity{
		JWTSecret: util.GenUUID(),
	}
	if _, err := s.UpsertSystemSetting(&model.SystemSetting{
		Name:  model.SettingTypeSecurity,
		Value: securitySetting.ToJSON(),
	}); err != nil {
		return nil, errors.Wrap(err, "failed to upsert security settings")
	}
	return securitySetting, nil
}
