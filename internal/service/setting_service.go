package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/smklab/lms-backend/internal/repository"
)

// SettingService exposes the school-wide key-value settings (school name,
// academic year, timezone) to both the admin panel and the public site.
type SettingService struct {
	settingRepo *repository.SettingRepository
	log         zerolog.Logger
}

func NewSettingService(settingRepo *repository.SettingRepository, log zerolog.Logger) *SettingService {
	return &SettingService{
		settingRepo: settingRepo,
		log:         log.With().Str("component", "setting_service").Logger(),
	}
}

// GetAllSettings flattens the settings rows into a key-value map.
func (s *SettingService) GetAllSettings(ctx context.Context) (map[string]string, error) {
	rows, err := s.settingRepo.GetAll(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to get all settings")
		return nil, err
	}

	out := make(map[string]string, len(rows))
	for _, row := range rows {
		out[row.Key] = row.Value
	}
	return out, nil
}

// UpdateSettings upserts each given key. Settings are low volume, so a
// per-key upsert is fine.
func (s *SettingService) UpdateSettings(ctx context.Context, settings map[string]string) error {
	for key, value := range settings {
		if err := s.settingRepo.Upsert(ctx, key, value); err != nil {
			s.log.Error().Err(err).Str("key", key).Msg("failed to update setting")
			return err
		}
	}
	return nil
}

func (s *SettingService) GetSettingByKey(ctx context.Context, key string) (string, error) {
	row, err := s.settingRepo.GetByKey(ctx, key)
	if err != nil {
		return "", err
	}
	return row.Value, nil
}
