package installer

// Settings collects the answers the wizard gathers. The env tags drive both
// the rendered .env file and mirror the runtime config keys.
type Settings struct {
	DefaultMode     string `env:"MARVIN_DEFAULT_MODE"`
	VoiceStyle      string `env:"MARVIN_VOICE_STYLE"`
	WeatherAPIKey   string `env:"MARVIN_WEATHER_API_KEY"`
	DefaultCity     string `env:"MARVIN_DEFAULT_CITY"`
	EnableTelegram  bool   `env:"MARVIN_ENABLE_TELEGRAM"`
	TelegramToken   string `env:"MARVIN_TELEGRAM_TOKEN"`
	TelegramOwnerID int64  `env:"MARVIN_TELEGRAM_OWNER_ID"`
	Debug           string `env:"MARVIN_DEBUG"`
}

type InstallState struct {
	Settings Settings
}

func NewInstallState() *InstallState {
	return &InstallState{}
}
