package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is a dashboard account or a client registered through the bot.
type User struct {
	ID            uint      `json:"id"`
	Username      string    `json:"username"`
	Password      string    `json:"-"`
	DiscordUserID *string   `json:"discordUserId"`
	AvatarURL     *string   `json:"avatarUrl"`
	IsAdmin       bool      `json:"isAdmin"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Clone returns a deep copy of the user.
func (u User) Clone() User {
	u.DiscordUserID = clonePtr(u.DiscordUserID)
	u.AvatarURL = clonePtr(u.AvatarURL)
	return u
}

// UserInput is the insert schema for POST /api/users.
type UserInput struct {
	Username      string  `json:"username" validate:"required,min=2,max=100"`
	Password      string  `json:"password" validate:"required,min=6,max=72"`
	DiscordUserID *string `json:"discordUserId" validate:"omitempty,min=1,max=32"`
	AvatarURL     *string `json:"avatarUrl" validate:"omitempty,url"`
	IsAdmin       bool    `json:"isAdmin"`
}

func (in *UserInput) Validate() error {
	return validate.Struct(in)
}

// ToUser hashes the password and builds the record to store.
func (in *UserInput) ToUser() (*User, error) {
	pw, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	return &User{
		Username:      in.Username,
		Password:      pw,
		DiscordUserID: in.DiscordUserID,
		AvatarURL:     in.AvatarURL,
		IsAdmin:       in.IsAdmin,
	}, nil
}

// UserPatch is the partial insert schema for PATCH /api/users/:id.
type UserPatch struct {
	Username      *string `json:"username" validate:"omitempty,min=2,max=100"`
	Password      *string `json:"password" validate:"omitempty,min=6,max=72"`
	DiscordUserID *string `json:"discordUserId" validate:"omitempty,min=1,max=32"`
	AvatarURL     *string `json:"avatarUrl" validate:"omitempty,url"`
	IsAdmin       *bool   `json:"isAdmin"`
}

func (p *UserPatch) Validate() error {
	return validate.Struct(p)
}

// HashPasswordField replaces a plain password in the patch by its bcrypt hash.
func (p *UserPatch) HashPasswordField() error {
	if p.Password == nil {
		return nil
	}
	pw, err := HashPassword(*p.Password)
	if err != nil {
		return err
	}
	p.Password = &pw
	return nil
}

func (p *UserPatch) Apply(u *User) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	if p.DiscordUserID != nil {
		u.DiscordUserID = clonePtr(p.DiscordUserID)
	}
	if p.AvatarURL != nil {
		u.AvatarURL = clonePtr(p.AvatarURL)
	}
	if p.IsAdmin != nil {
		u.IsAdmin = *p.IsAdmin
	}
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// CheckPassword verifies if the provided password matches the user's stored password
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.Password)
}
