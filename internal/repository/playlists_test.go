package repository

import (
	"testing"

	"clipstream-backend/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAddVideoKeepsOrderAndDeduplicates(t *testing.T) {
	db := newTestDB(t)
	playlists := NewPlaylistRepository(db)
	alice := seedUser(t, db, "alice")
	first := seedVideo(t, db, alice.Id, "first")
	second := seedVideo(t, db, alice.Id, "second")

	playlist := models.Playlist{Name: "watch later", OwnerId: alice.Id}
	require.NoError(t, playlists.Create(&playlist))

	require.NoError(t, playlists.AddVideo(playlist.Id, first.Id))
	require.NoError(t, playlists.AddVideo(playlist.Id, second.Id))
	// Re-adding a member is a no-op, not an error.
	require.NoError(t, playlists.AddVideo(playlist.Id, first.Id))

	got, err := playlists.FindWithVideos(playlist.Id)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	require.Equal(t, first.Id, got.Items[0].VideoId)
	require.Equal(t, second.Id, got.Items[1].VideoId)
	require.NotNil(t, got.Items[0].Video)
	require.Equal(t, "alice", got.Items[0].Video.Owner.Username)
}

func TestRemoveVideoKeepsOthers(t *testing.T) {
	db := newTestDB(t)
	playlists := NewPlaylistRepository(db)
	alice := seedUser(t, db, "alice")
	first := seedVideo(t, db, alice.Id, "first")
	second := seedVideo(t, db, alice.Id, "second")

	playlist := models.Playlist{Name: "mix", OwnerId: alice.Id}
	require.NoError(t, playlists.Create(&playlist))
	require.NoError(t, playlists.AddVideo(playlist.Id, first.Id))
	require.NoError(t, playlists.AddVideo(playlist.Id, second.Id))

	require.NoError(t, playlists.RemoveVideo(playlist.Id, first.Id))
	// Removing a non-member is harmless.
	require.NoError(t, playlists.RemoveVideo(playlist.Id, first.Id))

	got, err := playlists.FindWithVideos(playlist.Id)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	require.Equal(t, second.Id, got.Items[0].VideoId)
}

func TestListByOwnerIsScoped(t *testing.T) {
	db := newTestDB(t)
	playlists := NewPlaylistRepository(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	for _, name := range []string{"a", "b"} {
		require.NoError(t, playlists.Create(&models.Playlist{Name: name, OwnerId: alice.Id}))
	}
	require.NoError(t, playlists.Create(&models.Playlist{Name: "c", OwnerId: bob.Id}))

	mine, err := playlists.ListByOwner(alice.Id)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	require.Equal(t, "a", mine[0].Name)
	require.Equal(t, "b", mine[1].Name)
}

func TestPlaylistDeleteRemovesMemberships(t *testing.T) {
	db := newTestDB(t)
	playlists := NewPlaylistRepository(db)
	alice := seedUser(t, db, "alice")
	video := seedVideo(t, db, alice.Id, "clip")

	playlist := models.Playlist{Name: "doomed", OwnerId: alice.Id}
	require.NoError(t, playlists.Create(&playlist))
	require.NoError(t, playlists.AddVideo(playlist.Id, video.Id))

	require.NoError(t, playlists.Delete(playlist.Id))

	_, err := playlists.FindByID(playlist.Id)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var memberships int64
	require.NoError(t, db.Model(&models.PlaylistVideo{}).Count(&memberships).Error)
	require.Zero(t, memberships)

	// The video itself is untouched.
	var videoCount int64
	require.NoError(t, db.Model(&models.Video{}).Count(&videoCount).Error)
	require.EqualValues(t, 1, videoCount)
}
