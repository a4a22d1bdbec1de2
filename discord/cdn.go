package discord

import "fmt"

// cdn.go contains the asset urls served by the discord cdn.

const (
	EndpointCDN = "https://cdn.discordapp.com"

	// StickerIconURL is formatted with the sticker id and format extension.
	StickerIconURL = EndpointCDN + "/stickers/%s.%s"

	// StickerPackBannerURL is formatted with the banner asset id of a sticker pack.
	StickerPackBannerURL = EndpointCDN + "/app-assets/710982414301790216/store/%s.png"

	UserAvatarURL        = EndpointCDN + "/avatars/%s/%s.%s"
	DefaultUserAvatarURL = EndpointCDN + "/embed/avatars/%d.png"
)

func stickerIconURL(stickerID StickerID, extension string) string {
	return fmt.Sprintf(StickerIconURL, stickerID.String(), extension)
}
