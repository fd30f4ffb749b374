package paypal

import (
	"fmt"
	"strings"
	"time"

	"github.com/DanielPopoola/course-checkout/internal/config"
	"github.com/go-playground/validator"
)

const (
	sandboxBaseURL = "https://api-m.sandbox.paypal.com"
	liveBaseURL    = "https://api-m.paypal.com"
)

// Settings are the credentials and presentation options of the gateway.
type Settings struct {
	Enabled      bool
	Sandbox      bool
	ClientID     string `validate:"required"`
	ClientSecret string `validate:"required"`
	BaseURL      string `validate:"omitempty,url"`
	BrandName    string
	ReturnURL    string `validate:"omitempty,url"`
	CancelURL    string `validate:"omitempty,url"`
	Timeout      time.Duration
}

func SettingsFromConfig(cfg config.PayPalConfig) Settings {
	return Settings{
		Enabled:      cfg.Enabled,
		Sandbox:      cfg.Sandbox,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		BaseURL:      cfg.BaseURL,
		BrandName:    cfg.BrandName,
		ReturnURL:    cfg.ReturnURL,
		CancelURL:    cfg.CancelURL,
		Timeout:      cfg.Timeout,
	}
}

// Validate reports the first missing or malformed setting.
func (s Settings) Validate() error {
	if err := validator.New().Struct(s); err != nil {
		return fmt.Errorf("invalid paypal settings: %w", err)
	}
	return nil
}

// APIBase returns the configured base URL, or the sandbox/live host.
func (s Settings) APIBase() string {
	if s.BaseURL != "" {
		return strings.TrimRight(s.BaseURL, "/")
	}
	if s.Sandbox {
		return sandboxBaseURL
	}
	return liveBaseURL
}
