package discord

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/WelcomerTeam/Sandwich-Events/sandwichjson"
)

// sticker.go represents all structures for a sticker.

// StickerFormat represents the file format of a sticker asset.
type StickerFormat int

const (
	StickerFormatUnknown StickerFormat = -1
	StickerFormatPNG     StickerFormat = 1
	StickerFormatAPNG    StickerFormat = 2
	// StickerFormatLottie is not a renderable image. The asset is JSON
	// animation data for use with the lottie library.
	StickerFormatLottie StickerFormat = 3
)

var stickerFormatExtensions = map[StickerFormat]string{
	StickerFormatPNG:    "png",
	StickerFormatAPNG:   "apng",
	StickerFormatLottie: "json",
}

// StickerFormatFromID resolves a format id to its StickerFormat.
// Ids that are not recognised resolve to StickerFormatUnknown.
func StickerFormatFromID(id int) StickerFormat {
	switch format := StickerFormat(id); format {
	case StickerFormatPNG, StickerFormatAPNG, StickerFormatLottie:
		return format
	default:
		return StickerFormatUnknown
	}
}

// ID returns the numeric id discord uses for the format.
func (f StickerFormat) ID() int {
	return int(f)
}

// Extension returns the file extension used for the sticker asset.
// Returns ErrUnknownStickerFormat for StickerFormatUnknown.
func (f StickerFormat) Extension() (string, error) {
	extension, ok := stickerFormatExtensions[f]
	if !ok {
		return "", ErrUnknownStickerFormat
	}

	return extension, nil
}

func (f StickerFormat) String() string {
	switch f {
	case StickerFormatPNG:
		return "PNG"
	case StickerFormatAPNG:
		return "APNG"
	case StickerFormatLottie:
		return "LOTTIE"
	default:
		return "UNKNOWN"
	}
}

func (f *StickerFormat) UnmarshalJSON(b []byte) error {
	id, err := unmarshalEnumID(b)
	if err != nil {
		return err
	}

	*f = StickerFormatFromID(id)

	return nil
}

func (f StickerFormat) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(StickerFormatFromID(int(f)).ID())), nil
}

// StickerType represents the type of sticker.
type StickerType int

const (
	StickerTypeUnknown StickerType = -1
	// StickerTypeStandard is a sticker that belongs to a sticker pack.
	StickerTypeStandard StickerType = 1
	// StickerTypeGuild is a sticker uploaded to a guild.
	StickerTypeGuild StickerType = 2
)

// StickerTypeFromID resolves a type id to its StickerType.
// Ids that are not recognised resolve to StickerTypeUnknown.
func StickerTypeFromID(id int) StickerType {
	switch stickerType := StickerType(id); stickerType {
	case StickerTypeStandard, StickerTypeGuild:
		return stickerType
	default:
		return StickerTypeUnknown
	}
}

// ID returns the numeric id discord uses for the type.
func (t StickerType) ID() int {
	return int(t)
}

func (t StickerType) String() string {
	switch t {
	case StickerTypeStandard:
		return "STANDARD"
	case StickerTypeGuild:
		return "GUILD"
	default:
		return "UNKNOWN"
	}
}

func (t *StickerType) UnmarshalJSON(b []byte) error {
	id, err := unmarshalEnumID(b)
	if err != nil {
		return err
	}

	*t = StickerTypeFromID(id)

	return nil
}

func (t StickerType) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(StickerTypeFromID(int(t)).ID())), nil
}

// unmarshalEnumID reads a numeric enum id. null and numbers that are not an
// int, such as 1.5 or values out of range, read as -1 so they resolve to unknown.
func unmarshalEnumID(b []byte) (int, error) {
	if string(b) == "null" {
		return -1, nil
	}

	value := strings.Trim(string(b), `"`)

	id, err := strconv.Atoi(value)
	if err == nil {
		return id, nil
	}

	if _, floatErr := strconv.ParseFloat(value, 64); floatErr == nil || errors.Is(floatErr, strconv.ErrRange) {
		return -1, nil
	}

	return 0, fmt.Errorf("failed to unmarshal enum: %w", err)
}

// Sticker represents a sticker object. A Sticker is immutable once created,
// use NewSticker or decode it from JSON.
type Sticker struct {
	user        *User
	tags        map[string]struct{}
	name        string
	description string
	id          StickerID
	packID      Snowflake
	sortValue   int
	stickerType StickerType
	formatType  StickerFormat
	available   bool
}

// NewSticker creates a sticker. The type and format are normalised so values
// outside the known set become unknown. Sort values only apply to standard
// stickers and are -1 for every other type.
func NewSticker(
	id StickerID,
	packID Snowflake,
	name string,
	description string,
	tags []string,
	stickerType StickerType,
	formatType StickerFormat,
	available bool,
	user *User,
	sortValue int,
) Sticker {
	sticker := Sticker{
		id:          id,
		packID:      packID,
		name:        name,
		description: description,
		tags:        make(map[string]struct{}, len(tags)),
		stickerType: StickerTypeFromID(int(stickerType)),
		formatType:  StickerFormatFromID(int(formatType)),
		available:   available,
		sortValue:   sortValue,
	}

	for _, tag := range tags {
		sticker.tags[tag] = struct{}{}
	}

	if user != nil {
		userCopy := *user
		sticker.user = &userCopy
	}

	if sticker.stickerType != StickerTypeStandard {
		sticker.sortValue = -1
	}

	return sticker
}

func (s Sticker) ID() StickerID {
	return s.id
}

// PackID returns the id of the pack the sticker is from. For guild stickers
// this is the id of the guild instead.
func (s Sticker) PackID() Snowflake {
	return s.packID
}

func (s Sticker) Name() string {
	return s.name
}

// Description returns the description of the sticker, or an empty string.
func (s Sticker) Description() string {
	return s.description
}

// Tags returns the tags of the sticker, sorted. Tags are aliases that can be
// used in place of the sticker name.
func (s Sticker) Tags() []string {
	tags := make([]string, 0, len(s.tags))

	for tag := range s.tags {
		tags = append(tags, tag)
	}

	sort.Strings(tags)

	return tags
}

func (s Sticker) HasTag(tag string) bool {
	_, ok := s.tags[tag]

	return ok
}

func (s Sticker) Type() StickerType {
	return s.stickerType
}

func (s Sticker) FormatType() StickerFormat {
	return s.formatType
}

// Available reports if the sticker can be used. Guild stickers can become
// unavailable when the guild loses boosts, every other sticker is available.
func (s Sticker) Available() bool {
	return s.available
}

// User returns the user that uploaded the sticker. Only guild stickers have one.
func (s Sticker) User() *User {
	if s.user == nil {
		return nil
	}

	user := *s.user

	return &user
}

// SortValue returns the position of the sticker in its pack, or -1 if the
// sticker is not a standard sticker.
func (s Sticker) SortValue() int {
	return s.sortValue
}

// IconURL returns the url of the sticker asset.
// Returns ErrUnknownStickerFormat if the format of the sticker is unknown.
func (s Sticker) IconURL() (string, error) {
	extension, err := s.formatType.Extension()
	if err != nil {
		return "", err
	}

	return stickerIconURL(s.id, extension), nil
}

// stickerJSON is the wire representation of a sticker.
type stickerJSON struct {
	PackID      *StickerPackID `json:"pack_id,omitempty"`
	GuildID     *GuildID       `json:"guild_id,omitempty"`
	User        *User          `json:"user,omitempty"`
	Description *string        `json:"description"`
	SortValue   *int           `json:"sort_value,omitempty"`
	Available   *bool          `json:"available,omitempty"`
	Name        string         `json:"name"`
	Tags        string         `json:"tags"`
	ID          StickerID      `json:"id"`
	Type        StickerType    `json:"type"`
	FormatType  StickerFormat  `json:"format_type"`
}

func (s *Sticker) UnmarshalJSON(b []byte) error {
	wire := stickerJSON{
		Type:       StickerTypeUnknown,
		FormatType: StickerFormatUnknown,
	}

	if err := sandwichjson.Unmarshal(b, &wire); err != nil {
		return fmt.Errorf("failed to unmarshal sticker: %w", err)
	}

	var packID Snowflake

	switch {
	case wire.PackID != nil:
		packID = Snowflake(*wire.PackID)
	case wire.GuildID != nil:
		packID = Snowflake(*wire.GuildID)
	}

	var description string
	if wire.Description != nil {
		description = *wire.Description
	}

	available := true
	if wire.Available != nil {
		available = *wire.Available
	}

	sortValue := -1
	if wire.SortValue != nil {
		sortValue = *wire.SortValue
	}

	*s = NewSticker(
		wire.ID,
		packID,
		wire.Name,
		description,
		splitStickerTags(wire.Tags),
		wire.Type,
		wire.FormatType,
		available,
		wire.User,
		sortValue,
	)

	return nil
}

func (s Sticker) MarshalJSON() ([]byte, error) {
	description := s.description
	available := s.available

	wire := stickerJSON{
		ID:          s.id,
		Name:        s.name,
		Description: &description,
		Tags:        strings.Join(s.Tags(), ","),
		Type:        s.stickerType,
		FormatType:  s.formatType,
		Available:   &available,
		User:        s.user,
	}

	if s.packID != 0 {
		if s.stickerType == StickerTypeGuild {
			guildID := GuildID(s.packID)
			wire.GuildID = &guildID
		} else {
			packID := StickerPackID(s.packID)
			wire.PackID = &packID
		}
	}

	if s.sortValue != -1 {
		sortValue := s.sortValue
		wire.SortValue = &sortValue
	}

	return sandwichjson.Marshal(wire)
}

// splitStickerTags splits the comma separated tags discord sends.
func splitStickerTags(tags string) []string {
	split := strings.Split(tags, ",")
	result := make([]string, 0, len(split))

	for _, tag := range split {
		if tag = strings.TrimSpace(tag); tag != "" {
			result = append(result, tag)
		}
	}

	return result
}

// StickerPack represents a pack of standard stickers.
type StickerPack struct {
	CoverStickerID *StickerID    `json:"cover_sticker_id,omitempty"`
	BannerAssetID  *Snowflake    `json:"banner_asset_id,omitempty"`
	Name           string        `json:"name"`
	Description    string        `json:"description"`
	Stickers       StickerList   `json:"stickers"`
	ID             StickerPackID `json:"id"`
	SKUID          SKUID         `json:"sku_id"`
}

// BannerURL returns the url of the banner of the pack, or an empty string
// if the pack has no banner.
func (p StickerPack) BannerURL() string {
	if p.BannerAssetID == nil {
		return ""
	}

	return fmt.Sprintf(StickerPackBannerURL, p.BannerAssetID.String())
}

// StickerPacks is the response body of the list sticker packs endpoint.
type StickerPacks struct {
	StickerPacks []StickerPack `json:"sticker_packs"`
}
