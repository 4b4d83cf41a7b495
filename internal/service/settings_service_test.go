package service

import (
	"coachpro_backend/internal/model"
	"coachpro_backend/internal/repository"
	"coachpro_backend/internal/util"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_DefaultsAreSeeded(t *testing.T) {
	svc := NewSettingsService(repository.NewSettingRepository(newTestDB(t)))

	settings, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "USD", settings[model.SettingCurrency])
	assert.Equal(t, "false", settings[model.SettingCommerceEnabled])
	assert.Equal(t, "[]", settings[model.SettingRules])
}

func TestSettings_SaveAndReadBack(t *testing.T) {
	svc := NewSettingsService(repository.NewSettingRepository(newTestDB(t)))

	require.NoError(t, svc.Save(context.Background(), map[string]string{
		model.SettingCurrency:    "EUR",
		model.SettingProgramPage: "/programs",
	}))

	settings, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "EUR", settings[model.SettingCurrency])
	assert.Equal(t, "/programs", settings[model.SettingProgramPage])
}

func TestSettings_RejectsUnknownKey(t *testing.T) {
	svc := NewSettingsService(repository.NewSettingRepository(newTestDB(t)))

	err := svc.Save(context.Background(), map[string]string{"no_such_key": "x"})
	assert.ErrorIs(t, err, util.ErrSettingsUnknown)
}

func TestSettings_RejectsMalformedRulesBeforeWriting(t *testing.T) {
	svc := NewSettingsService(repository.NewSettingRepository(newTestDB(t)))

	bad := []string{
		`not json`,
		`[{"when":{"field":"nope","op":"lt","value":1},"then":{"recommend":"x"}}]`,
		`[{"when":{"field":"avg_score","op":"between","value":1},"then":{"recommend":"x"}}]`,
		`[{"when":{"field":"avg_score","op":"lt","value":1,"all":[{"field":"completion","op":"gt","value":0}]},"then":{"recommend":"x"}}]`,
		`[{"when":{"field":"avg_score","op":"lt","value":1},"then":{"note":"missing target"}}]`,
	}
	for _, doc := range bad {
		err := svc.Save(context.Background(), map[string]string{
			model.SettingCurrency: "EUR",
			model.SettingRules:    doc,
		})
		assert.ErrorIs(t, err, util.ErrInvalidRules, "document %s", doc)
	}

	// Nothing from the rejected batches may have landed.
	settings, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "USD", settings[model.SettingCurrency])
	assert.Equal(t, "[]", settings[model.SettingRules])
}
