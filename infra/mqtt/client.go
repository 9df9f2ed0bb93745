package mqtt

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"os"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	coremqtt "github.com/solbatt/solbatt/core/mqtt"
	"github.com/solbatt/solbatt/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT client.
type Config struct {
	Enabled    bool        `json:"enabled"`
	Broker     string      `json:"broker"`
	ClientID   string      `json:"client_id"`
	Username   string      `json:"username"`
	Password   string      `json:"password"`
	Topic      string      `json:"topic"`
	QoS        byte        `json:"qos"`
	Retain     bool        `json:"retain"`
	UseTLS     bool        `json:"use_tls"`
	ClientCert string      `json:"client_cert"`
	ClientKey  string      `json:"client_key"`
	CABundle   string      `json:"ca_bundle"`
	MaxRetries int         `json:"max_retries"`
	BackoffMS  int         `json:"backoff_ms"`
	TLSConfig  *tls.Config `json:"-"`
}

type pahoClient interface {
	IsConnected() bool
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

// PahoPublisher implements the Publisher interface using Eclipse Paho.
type PahoPublisher struct {
	cli        pahoClient
	topic      string
	qos        byte
	retain     bool
	maxRetries int
	backoff    time.Duration
	logger     logger.Logger
}

var newMQTTClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// NewPahoPublisher connects to the MQTT broker.
func NewPahoPublisher(cfg Config) (*PahoPublisher, error) {
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}

	log := logger.New("mqtt_publisher")
	opts.OnConnect = func(paho.Client) {
		log.Infof("MQTT connected")
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(_ paho.Client, _ *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}

	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	p := &PahoPublisher{
		cli:        c,
		topic:      cfg.Topic,
		qos:        cfg.QoS,
		retain:     cfg.Retain,
		maxRetries: cfg.MaxRetries,
		backoff:    time.Duration(cfg.BackoffMS) * time.Millisecond,
		logger:     log,
	}
	if p.topic == "" {
		p.topic = "solbatt/schedule"
	}
	if p.maxRetries <= 0 {
		p.maxRetries = 3
	}
	if p.backoff <= 0 {
		p.backoff = 100 * time.Millisecond
	}
	return p, nil
}

// NewClientOptions builds mqtt client options from Config.
func NewClientOptions(cfg Config) (*paho.ClientOptions, error) {
	opts := paho.NewClientOptions().AddBroker(cfg.Broker).SetClientID(cfg.ClientID)
	opts.AutoReconnect = true
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	if cfg.UseTLS {
		tlsCfg, err := cfg.LoadTLSConfig()
		if err != nil {
			return nil, err
		}
		opts.SetTLSConfig(tlsCfg)
	}
	return opts, nil
}

// LoadTLSConfig loads the TLS configuration from the file paths in the config.
func (c Config) LoadTLSConfig() (*tls.Config, error) {
	if c.TLSConfig != nil {
		return c.TLSConfig, nil
	}
	if c.ClientCert == "" || c.ClientKey == "" || c.CABundle == "" {
		return nil, fmt.Errorf("tls config requires client_cert, client_key and ca_bundle")
	}
	cert, err := tls.LoadX509KeyPair(c.ClientCert, c.ClientKey)
	if err != nil {
		return nil, fmt.Errorf("load cert: %w", err)
	}
	caBytes, err := os.ReadFile(c.CABundle)
	if err != nil {
		return nil, fmt.Errorf("read ca: %w", err)
	}
	pool := x509.NewCertPool()
	pool.AppendCertsFromPEM(caBytes)
	cfg := &tls.Config{Certificates: []tls.Certificate{cert}, RootCAs: pool, MinVersion: tls.VersionTLS12}
	return cfg, nil
}

// PublishSchedule publishes the document to the schedule topic, retrying
// with a fixed backoff on failure.
func (p *PahoPublisher) PublishSchedule(doc coremqtt.ScheduleDocument) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	var publishErr error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		token := p.cli.Publish(p.topic, p.qos, p.retain, payload)
		token.Wait()
		publishErr = token.Error()
		if publishErr == nil {
			p.logger.Infof("published schedule %s (%d slots) to %s", doc.RunID, len(doc.Entries), p.topic)
			return nil
		}
		p.logger.Warnf("publish attempt %d failed: %v", attempt+1, publishErr)
		time.Sleep(p.backoff)
	}
	return fmt.Errorf("publish schedule %s: %w", doc.RunID, publishErr)
}

// Close disconnects from the broker.
func (p *PahoPublisher) Close() {
	p.cli.Disconnect(250)
}
