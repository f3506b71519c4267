package service

import (
	"context"
	"encoding/json"

	"ugc-service/internal/model"

	"gorm.io/datatypes"
)

// loadSettings decodes the stored settings of kind into dst. It reports false when the
// organization has not saved any yet, leaving dst untouched.
func loadSettings(ctx context.Context, store SettingStore, orgID, kind string, dst interface{}) (bool, error) {
	setting, err := store.Get(ctx, orgID, kind)
	if isNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(setting.Settings) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(setting.Settings, dst); err != nil {
		return false, err
	}
	return true, nil
}

func saveSettings(ctx context.Context, store SettingStore, orgID, kind string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return store.Upsert(ctx, &model.IntegrationSetting{
		OrganizationID: orgID,
		Kind:           kind,
		Settings:       datatypes.JSON(raw),
	})
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}
