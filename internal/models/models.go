package models

import "time"

type User struct {
	Id            uint      `json:"id"`
	Username      string    `gorm:"uniqueIndex" json:"username"`
	Email         string    `gorm:"uniqueIndex" json:"email"`
	FullName      string    `json:"fullName"`
	AvatarUrl     string    `json:"avatarUrl"`
	CoverImageUrl string    `json:"coverImageUrl"`
	PasswordHash  []byte    `json:"-"`
	RefreshToken  string    `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// PublicProfile is the projection of a user embedded in view models.
type PublicProfile struct {
	Id            uint   `json:"id"`
	Username      string `json:"username"`
	AvatarUrl     string `json:"avatarUrl"`
	CoverImageUrl string `json:"coverImageUrl"`
}

func (u *User) PublicProfile() PublicProfile {
	return PublicProfile{
		Id:            u.Id,
		Username:      u.Username,
		AvatarUrl:     u.AvatarUrl,
		CoverImageUrl: u.CoverImageUrl,
	}
}

type Video struct {
	Id           uint      `json:"id"`
	VideoUrl     string    `json:"videoUrl"`
	ThumbnailUrl string    `json:"thumbnailUrl"`
	Title        string    `gorm:"index" json:"title"`
	Description  string    `json:"description"`
	Duration     float64   `json:"duration"`
	Views        uint      `gorm:"default:0" json:"views"`
	IsPublished  bool      `gorm:"default:true" json:"isPublished"`
	OwnerId      uint      `gorm:"index" json:"ownerId"`
	Owner        *User     `gorm:"foreignKey:OwnerId" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type Comment struct {
	Id        uint      `json:"id"`
	Content   string    `json:"content"`
	VideoId   uint      `gorm:"index" json:"videoId"`
	OwnerId   uint      `json:"ownerId"`
	Owner     *User     `gorm:"foreignKey:OwnerId" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Like targets exactly one of a video or a comment. The repository only
// exposes per-target operations, so a row never carries both references.
// The composite unique indexes keep one edge per (owner, target) pair even
// under concurrent toggles.
type Like struct {
	Id        uint     `json:"id"`
	OwnerId   uint     `gorm:"uniqueIndex:idx_video_like;uniqueIndex:idx_comment_like" json:"ownerId"`
	VideoId   *uint    `gorm:"uniqueIndex:idx_video_like" json:"videoId,omitempty"`
	CommentId *uint    `gorm:"uniqueIndex:idx_comment_like" json:"commentId,omitempty"`
	Video     *Video   `gorm:"foreignKey:VideoId" json:"-"`
	Comment   *Comment `gorm:"foreignKey:CommentId" json:"-"`
}

type Subscription struct {
	Id             uint  `json:"id"`
	SubscriberId   uint  `gorm:"uniqueIndex:idx_subscription" json:"subscriberId"`
	SubscribedToId uint  `gorm:"uniqueIndex:idx_subscription" json:"subscribedToId"`
	Subscriber     *User `gorm:"foreignKey:SubscriberId" json:"-"`
	SubscribedTo   *User `gorm:"foreignKey:SubscribedToId" json:"-"`
}

type Playlist struct {
	Id          uint            `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	OwnerId     uint            `gorm:"index" json:"ownerId"`
	Items       []PlaylistVideo `gorm:"foreignKey:PlaylistId" json:"-"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// PlaylistVideo keeps playlist membership ordered by Position. The unique
// index gives $addToSet semantics: inserting the same video twice is refused.
type PlaylistVideo struct {
	Id         uint   `json:"id"`
	PlaylistId uint   `gorm:"uniqueIndex:idx_playlist_video" json:"playlistId"`
	VideoId    uint   `gorm:"uniqueIndex:idx_playlist_video" json:"videoId"`
	Position   int    `json:"position"`
	Video      *Video `gorm:"foreignKey:VideoId" json:"-"`
}

type WatchHistoryEntry struct {
	Id        uint      `json:"id"`
	UserId    uint      `gorm:"index" json:"userId"`
	VideoId   uint      `json:"videoId"`
	WatchedAt time.Time `json:"watchedAt"`
	Video     *Video    `gorm:"foreignKey:VideoId" json:"-"`
}

type VerificationCode struct {
	Id        uint      `json:"id"`
	UserId    uint      `gorm:"index" json:"userId"`
	Code      string    `json:"code"`
	Purpose   string    `json:"purpose"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}
