// Package config contains utilities for loading configs
package config

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/go-playground/validator/v10"
	"github.com/matt-dz/foodgram/internal/password"
)

const (
	defaultConfigFilePath = "/data/foodgram.yaml"
	appSecretBytes        = 32
	appSecretFilePerms    = 0o600
)

const (
	EnvProd = "PROD"
	EnvDev  = "DEV"
)

const (
	DefaultServerPort        = 8080
	DefaultRateLimitRequests = 100
	DefaultRateLimitWindow   = time.Minute
	DefaultMinCookingTime    = 1
	DefaultMinAmount         = 1
	DefaultPageSize          = 6
	DefaultMaxPageSize       = 100
	DefaultMaxBodyBytes      = 10 << 20
)

type AdminPassword string

func (a AdminPassword) Validate() error {
	return password.ValidatePassword(string(a))
}

type AppSecretValue string

func (a *AppSecretValue) Validate() error {
	if a == nil {
		return errors.New("secret should not be nil")
	}
	if len([]byte(*a)) < appSecretBytes {
		return errors.New("secret should be at least 32 bytes")
	}
	return nil
}

func splitFieldList(param string) []string {
	// "A,B,C" or "A B C"
	param = strings.ReplaceAll(param, " ", ",")
	parts := strings.Split(param, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// allOrNothing implements a cross-field validator for go-playground/validator.
//
// The validator succeeds only if every field listed in the tag parameter is
// zero-valued, or every one of them is set. It must be attached to a
// placeholder field and inspects the parent struct. Field names are given as a
// comma- or space-separated list (e.g. `validate:"allOrNothing=A,B,C"`).
//
// Nil pointers and interfaces count as zero; non-nil ones are dereferenced
// before the check. A missing parent, a non-struct parent, an unknown field
// name or an empty parameter list fail validation to signal misconfiguration.
func allOrNothing(fl validator.FieldLevel) bool {
	parent := fl.Parent()
	if parent.Kind() == reflect.Pointer {
		if parent.IsNil() {
			return true // nothing to validate
		}
		parent = parent.Elem()
	}
	if parent.Kind() != reflect.Struct {
		return false
	}

	names := splitFieldList(fl.Param())
	if len(names) == 0 {
		return false
	}

	hasZero := false
	hasNonZero := false

	for _, name := range names {
		f := parent.FieldByName(name)
		if !f.IsValid() {
			return false // field name typo / not found
		}

		for (f.Kind() == reflect.Pointer || f.Kind() == reflect.Interface) && !f.IsNil() {
			f = f.Elem()
		}

		if f.IsZero() {
			hasZero = true
		} else {
			hasNonZero = true
		}

		if hasZero && hasNonZero {
			return false
		}
	}

	return true
}

func registerAllOrNothing(v *validator.Validate) {
	_ = v.RegisterValidation("allOrNothing", allOrNothing)
}

func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors) //nolint:errorlint
	if !ok {
		return err
	}

	for _, e := range validationErrs {
		if e.Tag() == "allOrNothing" {
			// e.g., "Config.Database.Validate" -> "Database"
			namespace := e.Namespace()
			parts := strings.Split(namespace, ".")
			var structName string
			//nolint:mnd
			if len(parts) >= 2 {
				structName = parts[len(parts)-2]
			}

			var fields string
			switch structName {
			case "Database":
				fields = "Port, Host, Database, User, and Password"
			case "Admin":
				fields = "Username, FirstName, LastName, Email, and Password"
			default:
				fields = "all related fields"
			}

			return fmt.Errorf(
				"%s configuration is incomplete: either all fields must be set (%s) or all must be empty",
				structName, fields)
		}
	}

	return err
}

type AppSecret struct {
	Value   *AppSecretValue `yaml:"value" validate:"omitempty,validateFn"`
	Path    string          `yaml:"path" validate:"omitempty,filepath"`
	Version string          `yaml:"version"`
}

type Database struct {
	Port     uint16 `yaml:"port"`
	Host     string `yaml:"host" validate:"omitempty,hostname_rfc1123"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`

	Validate struct{} `yaml:"-" validate:"allOrNothing=Port Host Database User Password"`
}

// URL builds the postgres connection string.
func (d Database) URL() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%d/%s", d.User, d.Password, d.Host, d.Port, d.Database)
}

type Admin struct {
	Username  string        `yaml:"username" validate:"required_with_all=Email Password"`
	FirstName string        `yaml:"first_name" validate:"required_with_all=Email Password"`
	LastName  string        `yaml:"last_name" validate:"required_with_all=Email Password"`
	Email     string        `yaml:"email" validate:"omitempty,email"`
	Password  AdminPassword `yaml:"password" validate:"omitempty,validateFn"`

	Validate struct{} `yaml:"-" validate:"allOrNothing=Username FirstName LastName Email Password"`
}

type Server struct {
	Port              uint16        `yaml:"port"`
	CORSOrigins       []string      `yaml:"cors_origins" validate:"dive,url"`
	RateLimitRequests int           `yaml:"rate_limit_requests" validate:"gte=0"`
	RateLimitWindow   time.Duration `yaml:"rate_limit_window" validate:"gte=0"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes" validate:"gte=0"`
}

type Recipes struct {
	MinCookingTime int32 `yaml:"min_cooking_time" validate:"gte=1"`
	MinAmount      int32 `yaml:"min_amount" validate:"gte=1"`
}

type Pagination struct {
	PageSize    int `yaml:"page_size" validate:"gte=1"`
	MaxPageSize int `yaml:"max_page_size" validate:"gtefield=PageSize"`
}

type Config struct {
	AppSecret  AppSecret  `yaml:"app_secret"`
	Admin      Admin      `yaml:"admin"`
	Database   Database   `yaml:"database"`
	Server     Server     `yaml:"server"`
	Recipes    Recipes    `yaml:"recipes"`
	Pagination Pagination `yaml:"pagination"`
	HostOrigin string     `yaml:"host_origin" validate:"url"`
	Env        string     `yaml:"env" validate:"omitempty,oneof=DEV PROD"`
}

// Default returns a config populated with every default value.
func Default() Config {
	return Config{
		AppSecret: AppSecret{
			Path:    "/data/secret",
			Version: "1",
		},
		Database: Database{
			Host: "localhost",
			Port: 5432,
		},
		Server: Server{
			Port:              DefaultServerPort,
			RateLimitRequests: DefaultRateLimitRequests,
			RateLimitWindow:   DefaultRateLimitWindow,
			MaxBodyBytes:      DefaultMaxBodyBytes,
		},
		Recipes: Recipes{
			MinCookingTime: DefaultMinCookingTime,
			MinAmount:      DefaultMinAmount,
		},
		Pagination: Pagination{
			PageSize:    DefaultPageSize,
			MaxPageSize: DefaultMaxPageSize,
		},
		HostOrigin: "http://localhost:8080",
		Env:        EnvDev,
	}
}

// applyDefaults fills every zero-valued setting with its default.
func applyDefaults(config *Config) {
	def := Default()
	if config.AppSecret.Path == "" {
		config.AppSecret.Path = def.AppSecret.Path
	}
	if config.AppSecret.Version == "" {
		config.AppSecret.Version = def.AppSecret.Version
	}
	if config.Env == "" {
		config.Env = def.Env
	}
	if config.HostOrigin == "" {
		config.HostOrigin = def.HostOrigin
	}
	if config.Database.Host == "" {
		config.Database.Host = def.Database.Host
	}
	if config.Database.Port == 0 {
		config.Database.Port = def.Database.Port
	}
	if config.Server.Port == 0 {
		config.Server.Port = def.Server.Port
	}
	if config.Server.RateLimitRequests == 0 {
		config.Server.RateLimitRequests = def.Server.RateLimitRequests
	}
	if config.Server.RateLimitWindow == 0 {
		config.Server.RateLimitWindow = def.Server.RateLimitWindow
	}
	if config.Server.MaxBodyBytes == 0 {
		config.Server.MaxBodyBytes = def.Server.MaxBodyBytes
	}
	if config.Recipes.MinCookingTime == 0 {
		config.Recipes.MinCookingTime = def.Recipes.MinCookingTime
	}
	if config.Recipes.MinAmount == 0 {
		config.Recipes.MinAmount = def.Recipes.MinAmount
	}
	if config.Pagination.PageSize == 0 {
		config.Pagination.PageSize = def.Pagination.PageSize
	}
	if config.Pagination.MaxPageSize == 0 {
		config.Pagination.MaxPageSize = def.Pagination.MaxPageSize
	}
}

func newAppSecret() (string, error) {
	token := make([]byte, appSecretBytes)
	if _, err := rand.Reader.Read(token); err != nil {
		return "", fmt.Errorf("creating app secret: %w", err)
	}
	return base64.StdEncoding.EncodeToString(token), nil
}

func loadAppSecret(config *Config) error {
	if config.AppSecret.Value != nil {
		return nil
	}

	var secret string
	if f1, err := os.Lstat(config.AppSecret.Path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("checking secret path: %w", err)
		}

		file, err := os.OpenFile(config.AppSecret.Path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, appSecretFilePerms)
		if err != nil {
			return fmt.Errorf("creating secret file: %w", err)
		}
		defer func() { _ = file.Close() }()

		secret, err = newAppSecret()
		if err != nil {
			return fmt.Errorf("generating new app secret: %w", err)
		}

		if _, err := file.WriteString(secret); err != nil {
			return fmt.Errorf("writing secret file: %w", err)
		}
	} else {
		if f1.IsDir() {
			return fmt.Errorf("expected file, got directory at %q", config.AppSecret.Path)
		}
		data, err := os.ReadFile(config.AppSecret.Path)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		secret = string(data)
	}
	val := AppSecretValue(secret)
	config.AppSecret.Value = &val
	return nil
}

func loadWithDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	return splitFieldList(v)
}

func validate(conf Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	registerAllOrNothing(v)
	if err := v.Struct(conf); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func loadConfigFromEnv() (Config, error) {
	conf := Default()
	conf.Env = loadWithDefault("ENV", conf.Env)
	conf.HostOrigin = loadWithDefault("HOST_ORIGIN", conf.HostOrigin)

	// AppSecret
	if v := os.Getenv("APP_SECRET"); v != "" {
		val := AppSecretValue(v)
		conf.AppSecret.Value = &val
	}
	conf.AppSecret.Path = loadWithDefault("APP_SECRET_PATH", conf.AppSecret.Path)
	conf.AppSecret.Version = loadWithDefault("APP_SECRET_VERSION", conf.AppSecret.Version)

	// Database
	databasePort := loadWithDefault("DATABASE_PORT", strconv.Itoa(int(conf.Database.Port)))
	conf.Database.Host = loadWithDefault("DATABASE_HOST", conf.Database.Host)
	conf.Database.Database = loadWithDefault("DATABASE", "")
	conf.Database.User = loadWithDefault("DATABASE_USER", "")
	conf.Database.Password = loadWithDefault("DATABASE_PASSWORD", "")
	if port, err := strconv.ParseUint(databasePort, 10, 16); err != nil {
		return conf, fmt.Errorf("invalid DATABASE_PORT (%q): %w", databasePort, err)
	} else {
		conf.Database.Port = uint16(port)
	}

	// Admin
	conf.Admin = Admin{
		Username:  loadWithDefault("ADMIN_USERNAME", ""),
		FirstName: loadWithDefault("ADMIN_FIRST_NAME", ""),
		LastName:  loadWithDefault("ADMIN_LAST_NAME", ""),
		Email:     loadWithDefault("ADMIN_EMAIL", ""),
		Password:  AdminPassword(loadWithDefault("ADMIN_PASSWORD", "")),
	}

	// Server
	serverPort := loadWithDefault("SERVER_PORT", strconv.Itoa(int(conf.Server.Port)))
	if port, err := strconv.ParseUint(serverPort, 10, 16); err != nil {
		return conf, fmt.Errorf("invalid SERVER_PORT (%q): %w", serverPort, err)
	} else {
		conf.Server.Port = uint16(port)
	}
	conf.Server.CORSOrigins = splitList(os.Getenv("CORS_ORIGINS"))
	rateLimit := loadWithDefault("RATE_LIMIT_REQUESTS", strconv.Itoa(conf.Server.RateLimitRequests))
	if n, err := strconv.Atoi(rateLimit); err != nil {
		return conf, fmt.Errorf("invalid RATE_LIMIT_REQUESTS (%q): %w", rateLimit, err)
	} else {
		conf.Server.RateLimitRequests = n
	}
	rateWindow := loadWithDefault("RATE_LIMIT_WINDOW", conf.Server.RateLimitWindow.String())
	if d, err := time.ParseDuration(rateWindow); err != nil {
		return conf, fmt.Errorf("invalid RATE_LIMIT_WINDOW (%q): %w", rateWindow, err)
	} else {
		conf.Server.RateLimitWindow = d
	}
	maxBody := loadWithDefault("MAX_BODY_BYTES", strconv.FormatInt(conf.Server.MaxBodyBytes, 10))
	if n, err := strconv.ParseInt(maxBody, 10, 64); err != nil {
		return conf, fmt.Errorf("invalid MAX_BODY_BYTES (%q): %w", maxBody, err)
	} else {
		conf.Server.MaxBodyBytes = n
	}

	// Recipes
	minCookingTime := loadWithDefault("RECIPES_MIN_COOKING_TIME", strconv.Itoa(int(conf.Recipes.MinCookingTime)))
	if n, err := strconv.ParseInt(minCookingTime, 10, 32); err != nil {
		return conf, fmt.Errorf("invalid RECIPES_MIN_COOKING_TIME (%q): %w", minCookingTime, err)
	} else {
		conf.Recipes.MinCookingTime = int32(n)
	}
	minAmount := loadWithDefault("RECIPES_MIN_AMOUNT", strconv.Itoa(int(conf.Recipes.MinAmount)))
	if n, err := strconv.ParseInt(minAmount, 10, 32); err != nil {
		return conf, fmt.Errorf("invalid RECIPES_MIN_AMOUNT (%q): %w", minAmount, err)
	} else {
		conf.Recipes.MinAmount = int32(n)
	}

	// Pagination
	pageSize := loadWithDefault("PAGE_SIZE", strconv.Itoa(conf.Pagination.PageSize))
	if n, err := strconv.Atoi(pageSize); err != nil {
		return conf, fmt.Errorf("invalid PAGE_SIZE (%q): %w", pageSize, err)
	} else {
		conf.Pagination.PageSize = n
	}

	if err := validate(conf); err != nil {
		return conf, err
	}

	if err := loadAppSecret(&conf); err != nil {
		return conf, fmt.Errorf("loading app secret: %w", err)
	}

	return conf, nil
}

func loadConfigFromFile(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(contents, &config); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	applyDefaults(&config)

	if err := validate(config); err != nil {
		return Config{}, err
	}

	if err := loadAppSecret(&config); err != nil {
		return Config{}, fmt.Errorf("loading app secret: %w", err)
	}

	return config, nil
}

func configFileExists(path string) bool {
	f, err := os.Lstat(path)
	if err != nil {
		return false
	}

	return !f.IsDir()
}

// LoadConfig reads the YAML file at CONFIG_PATH when present and falls back
// to environment variables otherwise.
func LoadConfig() (Config, error) {
	path := loadWithDefault("CONFIG_PATH", defaultConfigFilePath)
	if configFileExists(path) {
		return loadConfigFromFile(path)
	}

	return loadConfigFromEnv()
}
