package discord

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/WelcomerTeam/Sandwich-Events/sandwichjson"
)

// user.go represents all structures for a discord user.

// UserFlags represents the flags on a user's account.
type UserFlags uint32

// User represents a user on discord.
type User struct {
	Avatar        *string   `json:"avatar"`
	GlobalName    string    `json:"global_name"`
	Username      string    `json:"username"`
	Discriminator string    `json:"discriminator"`
	ID            UserID    `json:"id"`
	PublicFlags   UserFlags `json:"public_flags"`
	Bot           bool      `json:"bot"`
	System        bool      `json:"system"`
}

// Used to avoid a marshal loop.
type marshalUser User

func (u User) MarshalJSON() ([]byte, error) {
	// Patch for discriminator
	if u.Discriminator == "" {
		u.Discriminator = "0"
	}

	return sandwichjson.Marshal(marshalUser(u))
}

// DisplayName returns the global name of the user, falling back to the username.
func (u User) DisplayName() string {
	if u.GlobalName != "" {
		return u.GlobalName
	}

	return u.Username
}

// AvatarURL returns the avatar of the user, or their default avatar if they have none.
func (u User) AvatarURL() string {
	if u.Avatar == nil || *u.Avatar == "" {
		return fmt.Sprintf(DefaultUserAvatarURL, u.defaultAvatarIndex())
	}

	extension := "png"
	if strings.HasPrefix(*u.Avatar, "a_") {
		extension = "gif"
	}

	return fmt.Sprintf(UserAvatarURL, u.ID.String(), *u.Avatar, extension)
}

func (u User) defaultAvatarIndex() int64 {
	// Migrated usernames have a discriminator of 0.
	if u.Discriminator == "" || u.Discriminator == "0" {
		return (int64(u.ID) >> 22) % 6
	}

	discriminator, _ := strconv.ParseInt(u.Discriminator, 10, 64)

	return discriminator % 5
}

// GuildMember represents the member of a guild, as included in interactions.
type GuildMember struct {
	User     *User      `json:"user,omitempty"`
	Nick     *string    `json:"nick,omitempty"`
	JoinedAt Timestamp  `json:"joined_at"`
	Roles    StringList `json:"roles"`
}
