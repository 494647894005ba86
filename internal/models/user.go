package models

import "time"

// User represents a registered account and its public profile.
type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"uniqueIndex;type:varchar(100)" validate:"required,min=3,max=100"`
	Email        string `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	PasswordHash string `json:"-" gorm:"type:varchar(255)"` // Never exposed or logged

	DisplayName       string `json:"display_name" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	Bio               string `json:"bio" gorm:"type:varchar(500)" validate:"omitempty,max=500"`
	Location          string `json:"location" gorm:"type:varchar(100)" validate:"omitempty,max=100"`
	Website           string `json:"website" gorm:"type:varchar(255)" validate:"omitempty,max=255"`
	ProfilePictureURL string `json:"profile_picture_url" gorm:"type:varchar(255)" validate:"omitempty,max=255"`
	CoverPhotoURL     string `json:"cover_photo_url" gorm:"type:varchar(255)" validate:"omitempty,max=255"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile is the JSON shape returned by the user endpoints. Email is only
// filled in when the profile belongs to the requester.
type Profile struct {
	ID                uint   `json:"id"`
	Username          string `json:"username"`
	Email             string `json:"email,omitempty"`
	DisplayName       string `json:"display_name"`
	Bio               string `json:"bio"`
	Location          string `json:"location"`
	Website           string `json:"website"`
	ProfilePictureURL string `json:"profile_picture_url"`
	CoverPhotoURL     string `json:"cover_photo_url"`
}

// PublicProfile returns the profile as visible to other users.
func (u *User) PublicProfile() Profile {
	return Profile{
		ID:                u.ID,
		Username:          u.Username,
		DisplayName:       u.DisplayName,
		Bio:               u.Bio,
		Location:          u.Location,
		Website:           u.Website,
		ProfilePictureURL: u.ProfilePictureURL,
		CoverPhotoURL:     u.CoverPhotoURL,
	}
}

// OwnProfile returns the profile as visible to the account owner, email included.
func (u *User) OwnProfile() Profile {
	p := u.PublicProfile()
	p.Email = u.Email
	return p
}
