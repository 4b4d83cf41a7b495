package service

import (
	"coachpro_backend/internal/model"
	"coachpro_backend/internal/repository"
	"coachpro_backend/internal/util"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile_SaveCreatesThenUpdates(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(repository.NewProfileRepository(db))

	_, err := svc.Get(context.Background(), 1)
	assert.ErrorIs(t, err, util.ErrProfileNotFound)

	p, err := svc.Save(context.Background(), 1, ProfileRequest{
		Goals: json.RawMessage(`["run a 10k"]`),
	})
	require.NoError(t, err)
	created := p.ID

	p, err = svc.Save(context.Background(), 1, ProfileRequest{
		Preferences: json.RawMessage(`{"contact":"email"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, created, p.ID)

	// Fields absent from the second save keep their stored values.
	got, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.JSONEq(t, `["run a 10k"]`, string(got.Goals))
	assert.JSONEq(t, `{"contact":"email"}`, string(got.Preferences))
}

func TestProfile_NewestRowWins(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(repository.NewProfileRepository(db))

	require.NoError(t, db.Create(&model.Profile{UserID: 2, Goals: []byte(`["old"]`)}).Error)
	require.NoError(t, db.Create(&model.Profile{UserID: 2, Goals: []byte(`["new"]`)}).Error)

	got, err := svc.Get(context.Background(), 2)
	require.NoError(t, err)
	assert.JSONEq(t, `["new"]`, string(got.Goals))
}
