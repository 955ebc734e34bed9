package controllers

import (
	"strconv"
	"time"

	"clipstream-backend/internal/models"

	"github.com/gofiber/fiber/v3"
)

// ApiResponse is the uniform success envelope.
type ApiResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

func respond(c fiber.Ctx, status int, data any, message string) error {
	return c.Status(status).JSON(ApiResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// Page wraps a paginated result set.
type Page[T any] struct {
	Items   []T   `json:"items"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	HasNext bool  `json:"hasNext"`
}

func newPage[T any](items []T, total int64, page, limit int) Page[T] {
	return Page[T]{
		Items:   items,
		Total:   total,
		Page:    page,
		Limit:   limit,
		HasNext: int64(page*limit) < total,
	}
}

const (
	defaultPageLimit = 10
	maxPageLimit     = 20
)

// paginationParams reads page/limit query values, defaulting to 1/10 and
// capping limit at 20.
func paginationParams(c fiber.Ctx) (page, limit int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.Atoi(c.Query("limit", strconv.Itoa(defaultPageLimit)))
	if err != nil || limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

type LoginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type UpdateDetailsRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Email    string `json:"email"`
	Code     string `json:"code"`
	Password string `json:"password"`
}

type UpdateVideoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type CommentRequest struct {
	Content string `json:"content"`
}

type PlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UserResponse struct {
	Id            uint      `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName"`
	AvatarUrl     string    `json:"avatarUrl"`
	CoverImageUrl string    `json:"coverImageUrl,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toUserResponse(u *models.User) UserResponse {
	return UserResponse{
		Id:            u.Id,
		Username:      u.Username,
		Email:         u.Email,
		FullName:      u.FullName,
		AvatarUrl:     u.AvatarUrl,
		CoverImageUrl: u.CoverImageUrl,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

type LoginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

type VideoResponse struct {
	Id           uint                  `json:"id"`
	VideoUrl     string                `json:"videoUrl"`
	ThumbnailUrl string                `json:"thumbnailUrl"`
	Title        string                `json:"title"`
	Description  string                `json:"description"`
	Duration     float64               `json:"duration"`
	Views        uint                  `json:"views"`
	IsPublished  bool                  `json:"isPublished"`
	LikesCount   int64                 `json:"likesCount"`
	Owner        *models.PublicProfile `json:"owner,omitempty"`
	CreatedAt    time.Time             `json:"createdAt"`
}

func toVideoResponse(v *models.Video) VideoResponse {
	resp := VideoResponse{
		Id:           v.Id,
		VideoUrl:     v.VideoUrl,
		ThumbnailUrl: v.ThumbnailUrl,
		Title:        v.Title,
		Description:  v.Description,
		Duration:     v.Duration,
		Views:        v.Views,
		IsPublished:  v.IsPublished,
		CreatedAt:    v.CreatedAt,
	}
	if v.Owner != nil {
		profile := v.Owner.PublicProfile()
		resp.Owner = &profile
	}
	return resp
}

func toVideoResponses(videos []models.Video) []VideoResponse {
	out := make([]VideoResponse, 0, len(videos))
	for i := range videos {
		out = append(out, toVideoResponse(&videos[i]))
	}
	return out
}

type CommentResponse struct {
	Id        uint                  `json:"id"`
	Content   string                `json:"content"`
	VideoId   uint                  `json:"videoId"`
	Owner     *models.PublicProfile `json:"owner,omitempty"`
	CreatedAt time.Time             `json:"createdAt"`
}

func toCommentResponse(cm *models.Comment) CommentResponse {
	resp := CommentResponse{
		Id:        cm.Id,
		Content:   cm.Content,
		VideoId:   cm.VideoId,
		CreatedAt: cm.CreatedAt,
	}
	if cm.Owner != nil {
		profile := cm.Owner.PublicProfile()
		resp.Owner = &profile
	}
	return resp
}

type ChannelProfileResponse struct {
	Username          string    `json:"username"`
	FullName          string    `json:"fullName"`
	AvatarUrl         string    `json:"avatarUrl"`
	CoverImageUrl     string    `json:"coverImageUrl,omitempty"`
	SubscriberCount   int64     `json:"subscriberCount"`
	SubscribedToCount int64     `json:"subscribedToCount"`
	IsSubscribed      bool      `json:"isSubscribed"`
	CreatedAt         time.Time `json:"createdAt"`
}

type PlaylistResponse struct {
	Id          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	OwnerId     uint            `json:"ownerId"`
	Videos      []VideoResponse `json:"videos"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func toPlaylistResponse(p *models.Playlist) PlaylistResponse {
	videos := make([]VideoResponse, 0, len(p.Items))
	for i := range p.Items {
		if p.Items[i].Video != nil {
			videos = append(videos, toVideoResponse(p.Items[i].Video))
		}
	}
	return PlaylistResponse{
		Id:          p.Id,
		Name:        p.Name,
		Description: p.Description,
		OwnerId:     p.OwnerId,
		Videos:      videos,
		CreatedAt:   p.CreatedAt,
	}
}

type ToggleResponse struct {
	Active bool `json:"active"`
}
