package dto

import (
	"time"

	"github.com/ElSheemy11/High-Up/internal/model"
	"github.com/google/uuid"
)

// GetUserDto is the public profile: it leaves out the external identity key and the email.
type GetUserDto struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Name           string    `json:"name"`
	Bio            *string   `json:"bio"`
	ImageURL       *string   `json:"image_url"`
	FollowerCount  int64     `json:"follower_count"`
	FollowingCount int64     `json:"following_count"`
	PostCount      int64     `json:"post_count"`
	CreatedAt      time.Time `json:"created_at"`
}

func GetUserDtoFromFullUser(fullUser model.FullUser) *GetUserDto {
	return &GetUserDto{
		ID:             fullUser.ID,
		Username:       fullUser.Username,
		Name:           fullUser.Name,
		Bio:            fullUser.Bio,
		ImageURL:       fullUser.ImageURL,
		FollowerCount:  fullUser.FollowerCount,
		FollowingCount: fullUser.FollowingCount,
		PostCount:      fullUser.PostCount,
		CreatedAt:      fullUser.CreatedAt,
	}
}
