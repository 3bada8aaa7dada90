package profile

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pkg/errors"

	"github.com/repgenie/repgenie/internal/version"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where repgenie stores its own data
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of server
	Version string
	// Secret signs short-lived tokens (captcha challenges). An explicit
	// value keeps issued tokens valid across restarts.
	Secret string

	// AI configuration
	OpenAIAPIKey    string // REPGENIE_OPENAI_API_KEY
	OpenAIBaseURL   string // REPGENIE_OPENAI_BASE_URL (default: https://api.openai.com/v1)
	ChatModel       string // REPGENIE_CHAT_MODEL (default: gpt-4o)
	VisionModel     string // REPGENIE_VISION_MODEL (default: gpt-4o)
	TranscribeModel string // REPGENIE_TRANSCRIBE_MODEL (default: whisper-1)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsAIEnabled returns true if an upstream LLM credential is configured.
func (p *Profile) IsAIEnabled() bool {
	return p.OpenAIAPIKey != ""
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from REPGENIE_* environment variables.
// Values already set (e.g. from flags) win over the environment.
func (p *Profile) FromEnv() {
	if p.OpenAIAPIKey == "" {
		p.OpenAIAPIKey = os.Getenv("REPGENIE_OPENAI_API_KEY")
	}
	if p.Secret == "" {
		p.Secret = os.Getenv("REPGENIE_SECRET")
	}
	p.OpenAIBaseURL = getEnvOrDefault("REPGENIE_OPENAI_BASE_URL", "https://api.openai.com/v1")
	p.ChatModel = getEnvOrDefault("REPGENIE_CHAT_MODEL", "gpt-4o")
	p.VisionModel = getEnvOrDefault("REPGENIE_VISION_MODEL", "gpt-4o")
	p.TranscribeModel = getEnvOrDefault("REPGENIE_TRANSCRIBE_MODEL", "whisper-1")
}

func checkDataDir(dataDir string) (string, error) {
	// Convert to absolute path if relative path is supplied.
	if !filepath.IsAbs(dataDir) {
		relativeDir := filepath.Join(filepath.Dir(os.Args[0]), dataDir)
		absDir, err := filepath.Abs(relativeDir)
		if err != nil {
			return "", err
		}
		dataDir = absDir
	}

	// Trim trailing \ or / in case user supplies
	dataDir = strings.TrimRight(dataDir, "\\/")
	if _, err := os.Stat(dataDir); err != nil {
		return "", errors.Wrapf(err, "unable to access data folder %s", dataDir)
	}
	return dataDir, nil
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Driver == "" {
		p.Driver = "sqlite"
	}
	if p.Driver != "sqlite" && p.Driver != "postgres" {
		return errors.Errorf("unsupported driver %q: only 'sqlite' and 'postgres' are supported", p.Driver)
	}

	if p.Mode == "prod" && p.Data == "" {
		if runtime.GOOS == "windows" {
			p.Data = filepath.Join(os.Getenv("ProgramData"), "repgenie")
			if _, err := os.Stat(p.Data); os.IsNotExist(err) {
				if err := os.MkdirAll(p.Data, 0770); err != nil {
					slog.Error("failed to create data directory", slog.String("data", p.Data), slog.String("error", err.Error()))
					return err
				}
			}
		} else {
			p.Data = "/var/opt/repgenie"
		}
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		slog.Error("failed to check data dir", slog.String("data", dataDir), slog.String("error", err.Error()))
		return err
	}

	p.Data = dataDir
	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("repgenie_%s.db", p.Mode)
		p.DSN = filepath.Join(dataDir, dbFile)
	}
	if p.Driver == "postgres" && p.DSN == "" {
		return errors.New("dsn is required for the postgres driver")
	}

	if p.Version == "" {
		p.Version = version.GetCurrentVersion(p.Mode)
	}

	// Captcha tokens must never be signable with a known key. Tokens
	// live minutes, so a per-process secret only invalidates them on
	// restart.
	if p.Secret == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return errors.Wrap(err, "failed to generate signing secret")
		}
		p.Secret = hex.EncodeToString(buf)
	}

	return nil
}
