package commands

import (
	"os"
	"strconv"

	"refassist-backend/lib/assignr"
	"refassist-backend/lib/configutil"
	"refassist-backend/lib/mailer"
	"refassist-backend/lib/restyutil"
	"refassist-backend/lib/roster"
	"refassist-backend/lib/serviceutil"
)

type AssignrConfig struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	Scope        string `json:"scope"`
	BaseURL      string `json:"base_url"`
	AuthURL      string `json:"auth_url"`
}

type RosterConfig struct {
	AssignorCSV string `json:"assignor_csv"`
	CoachCSV    string `json:"coach_csv"`
	RefereeCSV  string `json:"referee_csv"`
}

type Config struct {
	Assignr AssignrConfig     `json:"assignr"`
	Smtp    mailer.SmtpConfig `json:"smtp"`
	Roster  RosterConfig      `json:"roster"`

	AdminEmail          string `json:"admin_email"`
	MisconductsEmail    string `json:"misconducts_email"`
	MissingReportsEmail string `json:"missing_reports_email"`
}

// loadConfig reads config.json5 (plus config.local.json5) and lets the
// secrets be overridden from the environment so they can live in .env
// instead of the config file.
func loadConfig() (Config, error) {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil && !os.IsNotExist(err) {
		return cfg, err
	}

	cfg.Assignr.ClientID = configutil.EnvOverride("CLIENT_ID", cfg.Assignr.ClientID)
	cfg.Assignr.ClientSecret = configutil.EnvOverride("CLIENT_SECRET", cfg.Assignr.ClientSecret)
	cfg.Assignr.Scope = configutil.EnvOverride("CLIENT_SCOPE", cfg.Assignr.Scope)
	cfg.Assignr.BaseURL = configutil.EnvOverride("BASE_URL", cfg.Assignr.BaseURL)
	cfg.Assignr.AuthURL = configutil.EnvOverride("AUTH_URL", cfg.Assignr.AuthURL)

	cfg.Smtp.Server = configutil.EnvOverride("EMAIL_SERVER", cfg.Smtp.Server)
	if port := os.Getenv("EMAIL_PORT"); port != "" {
		if parsed, err := strconv.Atoi(port); err == nil {
			cfg.Smtp.Port = parsed
		}
	}
	cfg.Smtp.EmailAddress = configutil.EnvOverride("EMAIL_USERNAME", cfg.Smtp.EmailAddress)
	cfg.Smtp.Password = configutil.EnvOverride("EMAIL_PASSWORD", cfg.Smtp.Password)
	if cfg.Smtp.Server == "" {
		cfg.Smtp.Server = "smtp.gmail.com"
	}
	if cfg.Smtp.Port == 0 {
		cfg.Smtp.Port = 587
	}

	cfg.Roster.AssignorCSV = configutil.EnvOverride("ASSIGNOR_CSV_FILE", cfg.Roster.AssignorCSV)
	cfg.Roster.CoachCSV = configutil.EnvOverride("COACH_CSV_FILE", cfg.Roster.CoachCSV)
	cfg.Roster.RefereeCSV = configutil.EnvOverride("REFEREE_CSV_FILE", cfg.Roster.RefereeCSV)

	cfg.AdminEmail = configutil.EnvOverride("ADMIN_EMAIL", cfg.AdminEmail)
	cfg.MisconductsEmail = configutil.EnvOverride("MISCONDUCTS_EMAIL", cfg.MisconductsEmail)
	cfg.MissingReportsEmail = configutil.EnvOverride("MISSING_REPORTS_EMAIL", cfg.MissingReportsEmail)

	return cfg, nil
}

func newAssignrClient(cfg Config) *assignr.Client {
	if dir := os.Getenv("DEBUG_HTTP_DIR"); dir != "" {
		assignr.SetRestyInstrumentOutput(restyutil.NewFilesystemOutput(dir))
	}
	return assignr.NewClient(assignr.Options{
		ClientID:     cfg.Assignr.ClientID,
		ClientSecret: cfg.Assignr.ClientSecret,
		Scope:        cfg.Assignr.Scope,
		BaseURL:      cfg.Assignr.BaseURL,
		AuthURL:      cfg.Assignr.AuthURL,
	})
}

func newMailer(cfg Config) mailer.Client {
	return mailer.NewClient(cfg.Smtp, "Game Report")
}

func loadDirectories(cfg Config) (roster.AssignorDirectory, roster.CoachDirectory) {
	assignors, err := roster.LoadAssignors(cfg.Roster.AssignorCSV)
	if err != nil {
		serviceutil.Fatal("failed to load assignor roster", err)
	}
	coaches, err := roster.LoadCoaches(cfg.Roster.CoachCSV)
	if err != nil {
		serviceutil.Fatal("failed to load coach roster", err)
	}
	return assignors, coaches
}
