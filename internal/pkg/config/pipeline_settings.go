package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// CommandList is a pipeline phase: an ordered list of shell commands.
// The file format accepts either a single scalar or a sequence.
type CommandList []string

// UnmarshalYAML accepts both `script: cmd` and `script: [cmd, cmd]`.
func (c *CommandList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var single string
		if err := value.Decode(&single); err != nil {
			return err
		}
		*c = CommandList{single}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*c = CommandList(list)
		return nil
	default:
		return fmt.Errorf("expected scalar or sequence for command list, got yaml kind %d", value.Kind)
	}
}

// IRCNotificationSettings configures build status delivery to IRC.
// Channels use the server#channel form, e.g. irc.mozilla.org#newsletter.
type IRCNotificationSettings struct {
	Channels  []string `yaml:"channels" validate:"required,min=1"`
	OnSuccess string   `yaml:"on_success" validate:"omitempty,oneof=always change never"`
	OnFailure string   `yaml:"on_failure" validate:"omitempty,oneof=always change never"`
	UseNotice bool     `yaml:"use_notice"`
	Nick      string   `yaml:"nick"`
}

// SuccessPolicy returns the effective on_success policy ("change" by default).
func (s *IRCNotificationSettings) SuccessPolicy() string {
	if s.OnSuccess == "" {
		return NotifyChange
	}
	return s.OnSuccess
}

// FailurePolicy returns the effective on_failure policy ("always" by default).
func (s *IRCNotificationSettings) FailurePolicy() string {
	if s.OnFailure == "" {
		return NotifyAlways
	}
	return s.OnFailure
}

// NotificationSettings groups the notification sinks of a pipeline.
type NotificationSettings struct {
	IRC *IRCNotificationSettings `yaml:"irc"`
}

// PipelineSettings is the declarative definition of the build pipeline:
// which runtime to use, how to install dependencies, how to run the test
// suite and where to report results. Phases run strictly in order
// before_install, install, before_script, script, after_success.
type PipelineSettings struct {
	Language      string                `yaml:"language" validate:"required"`
	Python        CommandList           `yaml:"python"`
	Go            CommandList           `yaml:"go"`
	BeforeInstall CommandList           `yaml:"before_install"`
	Install       CommandList           `yaml:"install"`
	BeforeScript  CommandList           `yaml:"before_script"`
	Script        CommandList           `yaml:"script" validate:"required,min=1"`
	AfterSuccess  CommandList           `yaml:"after_success"`
	Notifications *NotificationSettings `yaml:"notifications"`
}

// Validate checks the pipeline definition for well-formedness.
func (s *PipelineSettings) Validate() error {
	validate := validator.New()

	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validation failed for PipelineSettings: %w", err)
	}

	if s.Notifications != nil && s.Notifications.IRC != nil {
		for _, channel := range s.Notifications.IRC.Channels {
			server, name, ok := strings.Cut(channel, "#")
			if !ok || server == "" || name == "" {
				return fmt.Errorf("invalid irc channel %q: expected server#channel", channel)
			}
		}
	}

	return nil
}

// LoadPipelineSettings reads and validates a pipeline definition file.
// Unknown keys are rejected so that typos fail the build up front instead
// of silently skipping a phase.
func LoadPipelineSettings(path string) (*PipelineSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline file %s: %w", path, err)
	}

	settings, err := ParsePipelineSettings(data)
	if err != nil {
		return nil, fmt.Errorf("invalid pipeline file %s: %w", path, err)
	}

	return settings, nil
}

// ParsePipelineSettings parses and validates a pipeline definition.
func ParsePipelineSettings(data []byte) (*PipelineSettings, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	settings := &PipelineSettings{}
	if err := decoder.Decode(settings); err != nil {
		return nil, fmt.Errorf("failed to parse pipeline definition: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return settings, nil
}
