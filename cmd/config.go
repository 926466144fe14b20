package cmd

// Config collects every runtime setting the application reads from the
// environment. Values are kept as strings except where a flag is genuinely
// boolean; parsing happens at the edge, in main.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr     string
	RedisPassword string

	RabbitURL string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	// WebhookSecret signs payment gateway callbacks.
	WebhookSecret string
	// CourierAPIKey guards the GPS push endpoint.
	CourierAPIKey string

	NominatimBaseURL string

	RoutingEnabled bool
	ORSBaseURL     string
	ORSAPIKey      string
	OSRMBaseURL    string

	OllamaBaseURL string
	OllamaModel   string
}
