package config

// CategoryWeights orders command categories in /help.
var CategoryWeights = map[string]int{
	"🕯️ Information": 0,
	"🛡️ Moderation":  10,
	"🎫 Tickets":      20,
	"🧪 Showcase":     90,
	"⚙️ Settings":    100,
}
