package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comicvault/internal/microservices/http-api/models"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestComicInput_ToModel(t *testing.T) {
	in := ComicInput{
		Title:       "Saga",
		Author:      "B.K. Vaughan",
		Volume:      intPtr(1),
		Condition:   strPtr("near-mint"),
		ReleaseDate: strPtr("2012-03-14"),
	}

	m := in.ToModel()
	assert.Equal(t, "Saga", m.Title)
	assert.Equal(t, 1, *m.Volume)
	require.NotNil(t, m.Condition)
	assert.Equal(t, models.ConditionNearMint, *m.Condition)
	require.NotNil(t, m.ReleaseDate)
	assert.Equal(t, time.Date(2012, 3, 14, 0, 0, 0, 0, time.UTC), *m.ReleaseDate)
	assert.NotNil(t, m.Tags)
	assert.Empty(t, m.ID)
}

func TestUpdateComicInput_ToUpdate(t *testing.T) {
	read := true
	in := UpdateComicInput{Notes: strPtr("signed"), IsRead: &read}

	u := in.ToUpdate()
	assert.Nil(t, u.Title)
	assert.Nil(t, u.Condition)
	assert.Equal(t, "signed", *u.Notes)
	assert.True(t, *u.IsRead)
}

func TestFromModelToResponse(t *testing.T) {
	cond := models.ConditionGood
	release := time.Date(1986, 3, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
	m := models.Comic{
		ID:          "65a1f0c2e4b0a1b2c3d4e5f6",
		Title:       "Watchmen",
		Author:      "Alan Moore",
		Condition:   &cond,
		ReleaseDate: &release,
		CreatedAt:   created,
		UpdatedAt:   created,
	}

	resp := FromModelToResponse(m)
	assert.Equal(t, "65a1f0c2e4b0a1b2c3d4e5f6", resp.ID)
	assert.Equal(t, "good", *resp.Condition)
	assert.Equal(t, "1986-03-01", *resp.ReleaseDate)
	assert.Equal(t, "2026-01-02T15:04:05Z", resp.CreatedAt)
	assert.Equal(t, []string{}, resp.Tags)
}
