package encrypt

import (
	"net/http"
	"time"

	"github.com/prolifik1992/discourse-encrypt/internal/crypto"
	"github.com/prolifik1992/discourse-encrypt/internal/devicestore"
)

const defaultTimeout = 30 * time.Second

// clientConfig holds configuration for the client.
type clientConfig struct {
	baseURL       string
	httpClient    *http.Client
	timeout       time.Duration
	retries       int
	retryOn       []int
	kdfIterations int
	deviceStore   devicestore.Store
	devicePath    string
}

// Option configures the client.
type Option func(*clientConfig)

// WithBaseURL sets the Discourse instance base URL. Required.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithRetries sets the number of retries for API calls.
func WithRetries(count int) Option {
	return func(c *clientConfig) {
		c.retries = count
	}
}

// WithRetryOn sets the HTTP status codes that trigger a retry.
// Default: [408, 429, 500, 502, 503, 504]
func WithRetryOn(statusCodes []int) Option {
	return func(c *clientConfig) {
		c.retryOn = statusCodes
	}
}

// WithKDFIterations overrides the PBKDF2 iteration count used when
// wrapping a private key. Unwrapping reads the count from the envelope
// itself, so this never needs to match the wrapping client's setting.
// Lowering it weakens passphrase protection; the default (128 000)
// matches the protocol.
func WithKDFIterations(iterations int) Option {
	return func(c *clientConfig) {
		c.kdfIterations = iterations
	}
}

// WithDeviceStore replaces the device-local key store. Useful for tests
// and for hosts with their own secure storage.
func WithDeviceStore(store devicestore.Store) Option {
	return func(c *clientConfig) {
		c.deviceStore = store
	}
}

// WithDeviceStorePath sets the path of the default file-backed device
// store. Ignored when WithDeviceStore is also given.
func WithDeviceStorePath(path string) Option {
	return func(c *clientConfig) {
		c.devicePath = path
	}
}

func defaultConfig() *clientConfig {
	return &clientConfig{
		timeout:       defaultTimeout,
		kdfIterations: crypto.KDFIterations,
	}
}
