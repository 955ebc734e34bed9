package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"clipstream-backend/internal/apperrors"
	"clipstream-backend/internal/config"
	"clipstream-backend/internal/controllers"
	"clipstream-backend/internal/models"
	"clipstream-backend/internal/repository"
	"clipstream-backend/internal/routes"
	"clipstream-backend/internal/token"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubUploader struct {
	fail     bool
	uploaded []string
	removed  []string
}

func (s *stubUploader) Upload(ctx context.Context, objectName string, src io.Reader, size int64, contentType string) (string, error) {
	if s.fail {
		return "", fmt.Errorf("blob store unavailable")
	}
	s.uploaded = append(s.uploaded, objectName)
	return "http://blob/" + objectName, nil
}

func (s *stubUploader) Remove(ctx context.Context, url string) error {
	if s.fail {
		return fmt.Errorf("blob store unavailable")
	}
	s.removed = append(s.removed, url)
	return nil
}

type stubSender struct {
	sent []string
	fail bool
}

func (s *stubSender) Send(to, subject, body string) error {
	if s.fail {
		return fmt.Errorf("smtp unavailable")
	}
	s.sent = append(s.sent, to+": "+body)
	return nil
}

type testEnv struct {
	app       *fiber.App
	db        *gorm.DB
	users     *repository.UserRepository
	videos    *repository.VideoRepository
	comments  *repository.CommentRepository
	likes     *repository.LikeRepository
	subs      *repository.SubscriptionRepository
	playlists *repository.PlaylistRepository
	codes     *repository.VerificationCodeRepository
	tokens    *token.Service
	uploads   *stubUploader
	mail      *stubSender
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))

	env := &testEnv{
		db:        db,
		users:     repository.NewUserRepository(db),
		videos:    repository.NewVideoRepository(db),
		comments:  repository.NewCommentRepository(db),
		likes:     repository.NewLikeRepository(db),
		subs:      repository.NewSubscriptionRepository(db),
		playlists: repository.NewPlaylistRepository(db),
		codes:     repository.NewVerificationCodeRepository(db),
		uploads:   &stubUploader{},
		mail:      &stubSender{},
	}
	env.tokens = token.NewService(config.Auth{
		AccessSecret:  "test-access-secret",
		RefreshSecret: "test-refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    time.Hour,
	}, env.users)

	app := fiber.New(fiber.Config{
		ErrorHandler: apperrors.Handler(true),
	})
	ctl := routes.Controllers{
		Auth:          controllers.NewAuthController(env.users, env.codes, env.tokens, env.uploads, env.mail),
		Users:         controllers.NewUserController(env.users, env.subs, env.uploads),
		Videos:        controllers.NewVideoController(env.videos, env.users, env.likes, env.uploads),
		Comments:      controllers.NewCommentController(env.comments, env.videos),
		Likes:         controllers.NewLikeController(env.likes, env.videos, env.comments),
		Subscriptions: controllers.NewSubscriptionController(env.subs, env.users),
		Playlists:     controllers.NewPlaylistController(env.playlists, env.videos, env.users),
	}
	routes.Setup(app, ctl, controllers.RequireAuth(env.tokens, env.users))
	env.app = app
	return env
}

// envelope mirrors the uniform response shape with the payload left raw.
type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
}

func (e *testEnv) request(t *testing.T, req *http.Request) (*http.Response, envelope) {
	t.Helper()
	resp, err := e.app.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env), "body: %s", body)
	return resp, env
}

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func authed(req *http.Request, accessToken string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+accessToken)
	return req
}

func httpGet(target string) *http.Request {
	return httptest.NewRequest(http.MethodGet, target, nil)
}

func jsonUnmarshal(data json.RawMessage, out any) error {
	return json.Unmarshal(data, out)
}

type formFile struct {
	field, name, content string
}

func multipartRequest(t *testing.T, method, target string, fields map[string]string, files ...formFile) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, w.WriteField(key, value))
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

// seedAccount creates a user directly and returns it with a valid access token.
func (e *testEnv) seedAccount(t *testing.T, username string) (*models.User, string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(username+"-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		FullName:     username,
		AvatarUrl:    "http://blob/avatar/" + username,
		PasswordHash: hash,
	}
	require.NoError(t, e.users.Create(user))

	access, err := e.tokens.IssueAccessToken(user)
	require.NoError(t, err)
	return user, access
}

func (e *testEnv) seedVideo(t *testing.T, ownerID uint, title string) *models.Video {
	t.Helper()
	video := &models.Video{
		VideoUrl:     "http://blob/video/" + title,
		ThumbnailUrl: "http://blob/thumb/" + title,
		Title:        title,
		Description:  "about " + title,
		Duration:     30,
		IsPublished:  true,
		OwnerId:      ownerID,
	}
	require.NoError(t, e.videos.Create(video))
	return video
}
