package encrypt

import (
	"sync"

	"github.com/prolifik1992/discourse-encrypt/internal/api"
	"github.com/prolifik1992/discourse-encrypt/internal/devicestore"
)

// Client is the Discourse Encrypt client. It owns the session-scoped
// state: the HTTP collaborator, the device key store, the in-memory topic
// key registry, and the status-change subscriptions. Construct one per
// session and Close it on logout or device deactivation.
type Client struct {
	api           *api.Client
	device        devicestore.Store
	topics        *TopicKeyRegistry
	subs          *subscriptionManager
	kdfIterations int

	mu     sync.RWMutex
	closed bool
}

// buildAPIClient creates and configures an API client from the given config.
func buildAPIClient(apiKey string, cfg *clientConfig) (*api.Client, error) {
	apiOpts := []api.Option{
		api.WithBaseURL(cfg.baseURL),
	}
	if cfg.timeout > 0 {
		apiOpts = append(apiOpts, api.WithTimeout(cfg.timeout))
	}
	if cfg.retries > 0 {
		apiOpts = append(apiOpts, api.WithRetries(cfg.retries))
	}
	if len(cfg.retryOn) > 0 {
		apiOpts = append(apiOpts, api.WithRetryOn(cfg.retryOn))
	}

	apiClient, err := api.New(apiKey, apiOpts...)
	if err != nil {
		return nil, err
	}

	if cfg.httpClient != nil {
		apiClient.SetHTTPClient(cfg.httpClient)
	}

	return apiClient, nil
}

// buildDeviceStore resolves the configured device store, defaulting to the
// file-backed store in the user's config directory.
func buildDeviceStore(cfg *clientConfig) (devicestore.Store, error) {
	if cfg.deviceStore != nil {
		return cfg.deviceStore, nil
	}
	path := cfg.devicePath
	if path == "" {
		p, err := devicestore.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return devicestore.NewFileStore(path)
}

// New creates a new Discourse Encrypt client authenticated with a user
// API key. WithBaseURL is required.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.baseURL == "" {
		return nil, ErrMissingBaseURL
	}

	apiClient, err := buildAPIClient(apiKey, cfg)
	if err != nil {
		return nil, err
	}

	device, err := buildDeviceStore(cfg)
	if err != nil {
		return nil, err
	}

	c := &Client{
		api:           apiClient,
		device:        device,
		subs:          newSubscriptionManager(),
		kdfIterations: cfg.kdfIterations,
	}
	c.topics = newTopicKeyRegistry(c)

	return c, nil
}

// checkClosed returns ErrClientClosed if the client has been closed.
func (c *Client) checkClosed() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClientClosed
	}
	return nil
}

// TopicKeys returns the session's topic key registry.
func (c *Client) TopicKeys() *TopicKeyRegistry {
	return c.topics
}

// OnStatusChange registers a callback invoked whenever encryption is
// enabled, activated, or disabled on this device. The event carries no
// payload; call Status to re-query. The returned function unsubscribes
// and must be called to avoid leaks.
func (c *Client) OnStatusChange(callback func()) func() {
	return c.subs.subscribe(callback)
}

// Close tears down the session: cached topic keys are dropped and all
// subscriptions are released. The device store is left intact so the
// device stays activated across sessions.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	c.topics.reset()
	c.subs.clear()

	return nil
}
