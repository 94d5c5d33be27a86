package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LandWatch-App/internal/domain/model"
	"LandWatch-App/internal/repository/memory"
)

var testUser = &model.AuthUser{ID: "user-1", Email: "user@example.com"}

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func TestLocationsService(t *testing.T) {
	svc := NewLocationsService(memory.NewLocationsRepository())
	ctx := context.Background()

	_, err := svc.LastLocation(ctx, testUser)
	assert.ErrorIs(t, err, model.ErrLocationNotFound)

	saved, err := svc.SaveLocation(ctx, testUser, &model.SaveLocationRequest{
		Latitude:  floatp(0),
		Longitude: floatp(-0.5),
	})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultNotificationAdvance, saved.NotificationAdvance)
	assert.Equal(t, model.DefaultCloudCoverage, saved.CloudCoverage)

	time.Sleep(time.Millisecond)
	_, err = svc.SaveLocation(ctx, testUser, &model.SaveLocationRequest{
		Latitude:            floatp(52.2),
		Longitude:           floatp(21.0),
		NotificationAdvance: intp(12),
		CloudCoverage:       intp(30),
	})
	require.NoError(t, err)

	last, err := svc.LastLocation(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, 52.2, last.Latitude)
	assert.Equal(t, 12, last.NotificationAdvance)
	assert.Equal(t, 30, last.CloudCoverage)
}

func TestEventsService(t *testing.T) {
	svc := NewEventsService(memory.NewEventsRepository())
	ctx := context.Background()
	base := time.Date(2024, 9, 24, 9, 0, 0, 0, time.UTC)

	_, err := svc.AddEvent(ctx, testUser, &model.AddEventRequest{Title: "bad", StartTime: base, EndTime: base.Add(-time.Minute)})
	assert.ErrorIs(t, err, model.ErrInvalidEventRange)

	_, err = svc.AddEvent(ctx, testUser, &model.AddEventRequest{Title: "second", StartTime: base.Add(time.Hour), EndTime: base.Add(2 * time.Hour)})
	require.NoError(t, err)
	ev, err := svc.AddEvent(ctx, testUser, &model.AddEventRequest{Title: "first", StartTime: base, EndTime: base})
	require.NoError(t, err)
	assert.NotEmpty(t, ev.ID)

	events, err := svc.ListEvents(ctx, testUser)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "first", events[0].Title)

	others, err := svc.ListEvents(ctx, &model.AuthUser{ID: "other"})
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestNotificationsService(t *testing.T) {
	repo := memory.NewNotificationsRepository()
	svc := NewNotificationsService(repo)
	ctx := context.Background()

	resp, err := svc.List(ctx, testUser)
	require.NoError(t, err)
	assert.NotNil(t, resp.Notifications)
	assert.Equal(t, 0, resp.Unread)

	n1 := &model.Notification{UserEmail: testUser.Email, Title: "one"}
	n2 := &model.Notification{UserEmail: testUser.Email, Title: "two"}
	require.NoError(t, repo.Create(ctx, n1))
	require.NoError(t, repo.Create(ctx, n2))

	require.NoError(t, svc.MarkRead(ctx, testUser, n1.ID))
	assert.ErrorIs(t, svc.MarkRead(ctx, &model.AuthUser{Email: "x@example.com"}, n2.ID), model.ErrNotFound)

	resp, err = svc.List(ctx, testUser)
	require.NoError(t, err)
	assert.Len(t, resp.Notifications, 2)
	assert.Equal(t, 1, resp.Unread)
}

type stubMetadataReader struct {
	md  *model.LandsatMetadata
	err error
	got string
}

func (s *stubMetadataReader) Metadata(fileName string) (*model.LandsatMetadata, error) {
	s.got = fileName
	return s.md, s.err
}

func TestLandsatService(t *testing.T) {
	reader := &stubMetadataReader{err: model.ErrSceneFileNotFound}
	scenes := &memory.ScenesRepository{Scenes: []model.Scene{
		{ID: "a", CloudCover: 50},
		{ID: "b", CloudCover: 5},
	}}
	svc := NewLandsatService(reader, scenes, "scene_MTL.txt")

	_, err := svc.Metadata(context.Background())
	assert.ErrorIs(t, err, model.ErrSceneFileNotFound)
	assert.Equal(t, "scene_MTL.txt", reader.got)

	list, err := svc.Scenes(context.Background(), 15)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].ID)
}
