package core

type AppConfig interface {
	GetRuntimePath() string
	GetDatabasePath() string
	GetPatternsPath() string
	GetMemorySize() int
	GetDefaultMode() Mode
	GetDefaultVoice() VoiceSettings
	GetDefaultCity() string
	IsTelegramSelected() bool
}

type WeatherConfig interface {
	GetWeatherAPIKey() string
	GetWeatherBaseURL() string
	GetWeatherUnits() string
}

type TelegramConfig interface {
	GetTelegramToken() string
	GetTelegramOwnerID() int64
}
