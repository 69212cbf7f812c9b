package config

import (
	"crypto/rand"
	"encoding/base64"
	"log"
	"net/url"
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

type Config struct {
	ListenPort int    `toml:"port"`
	APIBaseURL string `toml:"api_base_url"`

	// Hosts the portal may send the browser to after an elevated-role
	// login. The API host is always allowed.
	RedirectAllowlist []string `toml:"redirect_allowed_domains"`

	Store struct {
		// "file", "redis" or "memory"
		Backend string `toml:"backend"`
		Path    string `toml:"path"`

		Redis struct {
			Addr     string `toml:"addr"`
			Password string `toml:"password"`
		} `toml:"redis"`
	} `toml:"store"`

	Cookie struct {
		Secret string `toml:"secret"`
		Name   string `toml:"name"`
		Secure bool   `toml:"secure"`
	} `toml:"cookie"`
}

// TOML marshaller doesn't override fields that weren't set in the TOML, so we can apply defaults here
func (c *Config) setDefaults() {
	c.ListenPort = 8080

	c.Store.Backend = "file"
	c.Store.Path = "lms-credentials.json"

	c.Cookie.Name = "_lms_portal_flash"
	c.Cookie.Secure = true
}

// APIHost returns the hostname of the configured API base URL.
func (c *Config) APIHost() string {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

func LoadFromTomlFileAndValidate(filepath string) (*Config, error) {
	file, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}

	conf := new(Config)
	conf.setDefaults()

	err = toml.Unmarshal(file, conf)
	if err != nil {
		return nil, err
	}

	if conf.APIBaseURL == "" {
		log.Fatalf("Please supply api_base_url")
	}

	if _, err := url.Parse(conf.APIBaseURL); err != nil {
		log.Fatalf("api_base_url is not a valid URL: %v", err)
	}

	switch conf.Store.Backend {
	case "file", "memory":
	case "redis":
		if conf.Store.Redis.Addr == "" {
			log.Fatalf("store.backend is redis, but no store.redis.addr was supplied")
		}
	default:
		log.Fatalf("Invalid store backend supplied (%s), valid types are \"file\", \"redis\" and \"memory\"", conf.Store.Backend)
	}

	if len(conf.Cookie.Secret) == 0 {
		log.Printf("No cookie secret was provided, randomly generating one...")
		buff := make([]byte, 16)
		_, err := rand.Read(buff)
		if err != nil {
			log.Fatalf("Failed to generate random cookie secret: %v", err)
		}

		conf.Cookie.Secret = base64.RawStdEncoding.EncodeToString(buff)
		log.Printf("Note: because your cookie secret was randomly generated, flash messages won't survive a portal restart.")

	} else if len(conf.Cookie.Secret) < 16 {
		log.Fatalf("Error: your cookie.secret was less than 16 characters. Please supply a long, random secret")
	}

	return conf, nil
}
