package version

const (
	AppName        = "Akane"
	AppDescription = "Moderation and support tickets for Discord servers."
	AppVersion     = "0.4.0"
)
