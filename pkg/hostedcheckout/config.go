package hostedcheckout

import "time"

type Config struct {
	URL         string        `mapstructure:"url"`
	SecretKey   string        `mapstructure:"secret_key"`
	RedirectURL string        `mapstructure:"redirect_url"`
	Currency    string        `mapstructure:"currency"`
	Timeout     time.Duration `mapstructure:"timeout"`
}
