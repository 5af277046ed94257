package stores

import (
	"context"

	"github.com/rs/zerolog"

	apperrors "tradermind/internal/errors"
	"tradermind/internal/logging"
	"tradermind/internal/models"
	"tradermind/internal/store"
)

const (
	settingsPrefix = "settings"
	settingsKey    = "general"
)

// SettingsStore manages the single general settings record.
type SettingsStore struct {
	items    *store.Collection[models.GeneralSettings]
	settings models.GeneralSettings
	logger   zerolog.Logger
}

// NewSettingsStore creates a settings store backed by the given storage backend.
func NewSettingsStore(backend store.Backend, logger zerolog.Logger) *SettingsStore {
	return &SettingsStore{
		items:    store.NewCollection[models.GeneralSettings](backend, settingsPrefix),
		settings: models.DefaultSettings(),
		logger:   logging.WithStore(logger, settingsPrefix),
	}
}

// Settings returns the current settings.
func (s *SettingsStore) Settings() models.GeneralSettings {
	return s.settings
}

// SetAccountSize updates the account size used for position sizing.
func (s *SettingsStore) SetAccountSize(ctx context.Context, size float64) (models.GeneralSettings, error) {
	if size < 0 {
		return models.GeneralSettings{}, apperrors.NewValidationError("accountSize", size, "account size must not be negative")
	}
	updated := s.settings
	updated.AccountSize = size
	return s.persist(ctx, "setAccountSize", updated)
}

// SetRiskPerTrade updates the percentage of the account risked per trade.
func (s *SettingsStore) SetRiskPerTrade(ctx context.Context, risk float64) (models.GeneralSettings, error) {
	if risk < 0 || risk > 100 {
		return models.GeneralSettings{}, apperrors.NewValidationError("riskPerTrade", risk, "risk per trade must be between 0 and 100")
	}
	updated := s.settings
	updated.RiskPerTrade = risk
	return s.persist(ctx, "setRiskPerTrade", updated)
}

// Load reads the persisted settings, falling back to defaults when the
// record is absent or unreadable.
func (s *SettingsStore) Load(ctx context.Context) error {
	settings, err := s.items.Get(ctx, settingsKey)
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrNotFound) {
			s.logger.Warn().Err(err).Msg("Failed to load settings, using defaults")
		}
		s.settings = models.DefaultSettings()
		return nil
	}
	s.settings = settings
	return nil
}

// Restore persists the given settings verbatim and replaces in-memory state.
func (s *SettingsStore) Restore(ctx context.Context, settings models.GeneralSettings) error {
	if err := s.items.Set(ctx, settingsKey, settings); err != nil {
		return err
	}
	s.settings = settings
	return nil
}

// Clear removes the persisted record and resets to defaults.
func (s *SettingsStore) Clear(ctx context.Context) error {
	if err := s.items.Clear(ctx); err != nil {
		return err
	}
	s.settings = models.DefaultSettings()
	return nil
}

func (s *SettingsStore) persist(ctx context.Context, op string, settings models.GeneralSettings) (models.GeneralSettings, error) {
	if err := s.items.Set(ctx, settingsKey, settings); err != nil {
		return models.GeneralSettings{}, err
	}
	s.settings = settings
	logging.LogMutation(s.logger, settingsPrefix, op, settingsKey)
	return settings, nil
}
