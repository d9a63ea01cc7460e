package constants

import "time"

const (
	DefaultRunAddr         = ":8080"
	DefaultJWTSecret       = "supersecretkey"
	DefaultTokenTTL        = 24 * time.Hour
	DefaultShutdownTimeout = 5 * time.Second
	DefaultEnv             = EnvLocal

	DefaultDeliveryTimeout = 10 * time.Second
	DefaultRetryInterval   = time.Second
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

const BearerPrefix = "Bearer "

// Webhook contract shared by the server and the delivery client.
const (
	WebhookPath                 = "/webhook/payment"
	DuplicateTransactionMessage = "Transaction already processed"
)
