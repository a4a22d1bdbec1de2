package discord

type GuildID Snowflake

func (s *GuildID) UnmarshalJSON(b []byte) error {
	return toSnowflake(b, (*Snowflake)(s))
}

func (s GuildID) MarshalJSON() ([]byte, error) {
	return Snowflake(s).MarshalJSON()
}

func (s GuildID) String() string {
	return Snowflake(s).String()
}

type ChannelID Snowflake

func (s *ChannelID) UnmarshalJSON(b []byte) error {
	return toSnowflake(b, (*Snowflake)(s))
}

func (s ChannelID) MarshalJSON() ([]byte, error) {
	return Snowflake(s).MarshalJSON()
}

func (s ChannelID) String() string {
	return Snowflake(s).String()
}

type MessageID Snowflake

func (s *MessageID) UnmarshalJSON(b []byte) error {
	return toSnowflake(b, (*Snowflake)(s))
}

func (s MessageID) MarshalJSON() ([]byte, error) {
	return Snowflake(s).MarshalJSON()
}

type UserID Snowflake

func (s *UserID) UnmarshalJSON(b []byte) error {
	return toSnowflake(b, (*Snowflake)(s))
}

func (s UserID) MarshalJSON() ([]byte, error) {
	return Snowflake(s).MarshalJSON()
}

func (s UserID) String() string {
	return Snowflake(s).String()
}

type StickerID Snowflake

func (s *StickerID) UnmarshalJSON(b []byte) error {
	return toSnowflake(b, (*Snowflake)(s))
}

func (s StickerID) MarshalJSON() ([]byte, error) {
	return Snowflake(s).MarshalJSON()
}

func (s StickerID) String() string {
	return Snowflake(s).String()
}

type StickerPackID Snowflake

func (s *StickerPackID) UnmarshalJSON(b []byte) error {
	return toSnowflake(b, (*Snowflake)(s))
}

func (s StickerPackID) MarshalJSON() ([]byte, error) {
	return Snowflake(s).MarshalJSON()
}

func (s StickerPackID) String() string {
	return Snowflake(s).String()
}

type SKUID Snowflake

func (s *SKUID) UnmarshalJSON(b []byte) error {
	return toSnowflake(b, (*Snowflake)(s))
}

func (s SKUID) MarshalJSON() ([]byte, error) {
	return Snowflake(s).MarshalJSON()
}

type ApplicationID Snowflake

func (s *ApplicationID) UnmarshalJSON(b []byte) error {
	return toSnowflake(b, (*Snowflake)(s))
}

func (s ApplicationID) MarshalJSON() ([]byte, error) {
	return Snowflake(s).MarshalJSON()
}

func (s ApplicationID) String() string {
	return Snowflake(s).String()
}

type ApplicationCommandID Snowflake

func (s *ApplicationCommandID) UnmarshalJSON(b []byte) error {
	return toSnowflake(b, (*Snowflake)(s))
}

func (s ApplicationCommandID) MarshalJSON() ([]byte, error) {
	return Snowflake(s).MarshalJSON()
}

func (s ApplicationCommandID) String() string {
	return Snowflake(s).String()
}

type InteractionID Snowflake

func (s *InteractionID) UnmarshalJSON(b []byte) error {
	return toSnowflake(b, (*Snowflake)(s))
}

func (s InteractionID) MarshalJSON() ([]byte, error) {
	return Snowflake(s).MarshalJSON()
}

func (s InteractionID) String() string {
	return Snowflake(s).String()
}

// ID functions
func (s *GuildID) IsNil() bool {
	return *s == 0
}

func (s *ChannelID) IsNil() bool {
	return *s == 0
}
