package routes

import (
	"clipstream-backend/internal/controllers"

	"github.com/gofiber/fiber/v3"
)

type Controllers struct {
	Auth          *controllers.AuthController
	Users         *controllers.UserController
	Videos        *controllers.VideoController
	Comments      *controllers.CommentController
	Likes         *controllers.LikeController
	Subscriptions *controllers.SubscriptionController
	Playlists     *controllers.PlaylistController
}

func Setup(app *fiber.App, ctl Controllers, auth fiber.Handler) {
	user := app.Group("/api/user")
	user.Post("/register", ctl.Auth.Register)
	user.Post("/login", ctl.Auth.Login)
	user.Post("/token-refresh", ctl.Auth.Refresh)
	user.Post("/forgot-password", ctl.Auth.ForgotPassword)
	user.Post("/reset-password", ctl.Auth.ResetPassword)
	user.Post("/logout", ctl.Auth.Logout, auth)
	user.Post("/change-password", ctl.Auth.ChangePassword, auth)
	user.Get("/current-user", ctl.Auth.CurrentUser, auth)
	user.Patch("/update-details", ctl.Users.UpdateDetails, auth)
	user.Patch("/update-avatar", ctl.Users.UpdateAvatar, auth)
	user.Patch("/update-coverimage", ctl.Users.UpdateCoverImage, auth)
	user.Get("/channel/:username", ctl.Users.ChannelProfile, auth)
	user.Get("/history", ctl.Users.WatchHistory, auth)

	video := app.Group("/api/video", auth)
	video.Get("/allVideos", ctl.Videos.Feed)
	video.Post("/publish", ctl.Videos.Publish)
	video.Patch("/change-thumbnail/:videoId", ctl.Videos.ChangeThumbnail)
	video.Get("/v/:videoId", ctl.Videos.GetByID)
	video.Patch("/v/:videoId", ctl.Videos.Update)
	video.Delete("/v/:videoId", ctl.Videos.Delete)
	video.Post("/v/:videoId", ctl.Videos.TogglePublish)

	comment := app.Group("/api/comment", auth)
	comment.Patch("/comment/:commentId", ctl.Comments.Update)
	comment.Delete("/comment/:commentId", ctl.Comments.Delete)
	comment.Get("/:videoId", ctl.Comments.List)
	comment.Post("/:videoId", ctl.Comments.Add)

	likes := app.Group("/api/likes", auth)
	likes.Post("/toggle/video/:videoId", ctl.Likes.ToggleVideo)
	likes.Post("/toggle/comment/:commentId", ctl.Likes.ToggleComment)
	likes.Get("/likedVideos", ctl.Likes.LikedVideos)

	subscriptions := app.Group("/api/subscriptions", auth)
	subscriptions.Post("/channel/:channelId", ctl.Subscriptions.Toggle)
	subscriptions.Get("/channel/:channelId", ctl.Subscriptions.ChannelSubscribers)
	subscriptions.Get("/user/:userId", ctl.Subscriptions.SubscribedChannels)

	playlist := app.Group("/api/playlist", auth)
	playlist.Post("/", ctl.Playlists.Create)
	playlist.Get("/user/:userId", ctl.Playlists.UserPlaylists)
	playlist.Patch("/addVideo/:playlistId/:videoId", ctl.Playlists.AddVideo)
	playlist.Patch("/removeVideo/:playlistId/:videoId", ctl.Playlists.RemoveVideo)
	playlist.Get("/:playlistId", ctl.Playlists.GetByID)
	playlist.Patch("/:playlistId", ctl.Playlists.Update)
	playlist.Delete("/:playlistId", ctl.Playlists.Delete)
}
