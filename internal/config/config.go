package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"

	"github.com/evgfitil/cmdcopy/internal/copyfilter"
	"github.com/evgfitil/cmdcopy/internal/markdown"
	"github.com/evgfitil/cmdcopy/internal/page"
)

const (
	Dir       = "cmdcopy"
	File      = "config.yaml"
	EnvPrefix = "CMDCOPY"

	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

var (
	DefaultExcludeClasses = []string{copyfilter.ClassPrompt, copyfilter.ClassOutput}
	DefaultInclude        = []string{"*.html"}
)

// Config represents the application configuration
type Config struct {
	Page     PageConfig     `mapstructure:"page"`
	Filter   FilterConfig   `mapstructure:"filter"`
	Site     SiteConfig     `mapstructure:"site"`
	Markdown MarkdownConfig `mapstructure:"markdown"`
	Log      LogConfig      `mapstructure:"log"`
}

// PageConfig describes how copy buttons are marked up.
type PageConfig struct {
	TriggerSelector string `mapstructure:"trigger_selector"`
	TargetAttr      string `mapstructure:"target_attr"`
	TextAttr        string `mapstructure:"text_attr"`
}

// FilterConfig lists the classes dropped from copied text.
type FilterConfig struct {
	ExcludeClasses []string `mapstructure:"exclude_classes"`
}

// SiteConfig selects the files patched in a site directory.
type SiteConfig struct {
	Include []string `mapstructure:"include"`
}

// MarkdownConfig controls extraction from markdown sources.
type MarkdownConfig struct {
	Languages     []string `mapstructure:"languages"`
	PromptPattern string   `mapstructure:"prompt_pattern"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// PageOptions converts PageConfig to page.Options
func (c PageConfig) PageOptions() page.Options {
	return page.Options{
		TriggerSelector: c.TriggerSelector,
		TargetAttr:      c.TargetAttr,
		TextAttr:        c.TextAttr,
	}
}

// NewFilter builds the copy filter from the configured classes.
func (c FilterConfig) NewFilter() *copyfilter.Filter {
	return copyfilter.New(copyfilter.NewClassSet(c.ExcludeClasses...))
}

// MarkdownOptions converts MarkdownConfig to markdown.Options. The prompt
// pattern has already been validated by Load.
func (c MarkdownConfig) MarkdownOptions() markdown.Options {
	return markdown.Options{
		Languages: c.Languages,
		Prompt:    regexp.MustCompile(c.PromptPattern),
	}
}

// configPath returns the full path to the config file
func configPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, Dir, File), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".config", Dir, File), nil
}

// Load reads configuration from the config file and CMDCOPY_* environment variables.
// A missing config file is not an error.
func Load() (*Config, error) {
	viper.SetDefault("page.trigger_selector", page.DefaultTriggerSelector)
	viper.SetDefault("page.target_attr", page.DefaultTargetAttr)
	viper.SetDefault("page.text_attr", page.DefaultTextAttr)
	viper.SetDefault("filter.exclude_classes", DefaultExcludeClasses)
	viper.SetDefault("site.include", DefaultInclude)
	viper.SetDefault("markdown.languages", markdown.DefaultLanguages)
	viper.SetDefault("markdown.prompt_pattern", markdown.DefaultPromptPattern)
	viper.SetDefault("log.level", DefaultLogLevel)
	viper.SetDefault("log.format", DefaultLogFormat)
	viper.SetDefault("log.file", "")

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	path, err := configPath()
	if err != nil {
		return nil, err
	}

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	if readErr := viper.ReadInConfig(); readErr != nil {
		if !errors.Is(readErr, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var cfg Config
	if unmarshalErr := viper.Unmarshal(&cfg); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w (in %s)", err, path)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Page.TriggerSelector) == "" {
		return errors.New("page.trigger_selector must not be empty")
	}
	if strings.TrimSpace(c.Page.TargetAttr) == "" {
		return errors.New("page.target_attr must not be empty")
	}
	if strings.TrimSpace(c.Page.TextAttr) == "" {
		return errors.New("page.text_attr must not be empty")
	}
	if copyfilter.NewClassSet(c.Filter.ExcludeClasses...).Len() == 0 {
		return errors.New("filter.exclude_classes must list at least one class")
	}
	for _, pattern := range c.Site.Include {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("site.include pattern %q is invalid: %w", pattern, err)
		}
	}
	if _, err := regexp.Compile(c.Markdown.PromptPattern); err != nil {
		return fmt.Errorf("markdown.prompt_pattern is invalid: %w", err)
	}
	return nil
}

// Path returns the path to the config file
func Path() string {
	path, err := configPath()
	if err != nil {
		return filepath.Join("~", ".config", Dir, File)
	}
	return path
}
