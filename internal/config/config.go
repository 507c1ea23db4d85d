package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Planner holds the default plan parameters used when a request does
// not override them.
type Planner struct {
	AvailableHoursPerDay float64 `yaml:"available_hours_per_day"`
	SessionDuration      float64 `yaml:"session_duration"`
}

type Config struct {
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	Port string

	Planner Planner
}

// Load reads configuration from the environment. If STUDYPLAN_CONFIG
// points at a YAML file, its planner settings override the env values.
func Load() *Config {

	port, err := strconv.Atoi(os.Getenv("DB_PORT"))
	if err != nil {
		port = 5432 // fallback
	}

	httpPort := os.Getenv("PORT")
	if httpPort == "" {
		httpPort = "8080"
	}

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     port,
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		Port: httpPort,

		Planner: Planner{
			AvailableHoursPerDay: envFloat("HOURS_PER_DAY", 4.0),
			SessionDuration:      envFloat("SESSION_DURATION", 1.0),
		},
	}

	if path := os.Getenv("STUDYPLAN_CONFIG"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "config: ignoring %s: %v\n", path, err)
		}
	}

	return cfg
}

func (c *Config) ConnString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

// applyFile overlays planner settings from a YAML file. Zero values in
// the file leave the current setting alone.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var file struct {
		Planner Planner `yaml:"planner"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}

	if file.Planner.AvailableHoursPerDay > 0 {
		c.Planner.AvailableHoursPerDay = file.Planner.AvailableHoursPerDay
	}
	if file.Planner.SessionDuration > 0 {
		c.Planner.SessionDuration = file.Planner.SessionDuration
	}
	return nil
}

func envFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
