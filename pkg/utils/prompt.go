package utils

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/AlecAivazis/survey/v2"

	"github.com/picogrid/ballistics-sim/pkg/simulation"
)

const (
	// EnvPrefix prefixes the environment overrides of simulation parameters
	EnvPrefix = "BALLISTICS_"

	// SkipPromptsEnv disables interactive prompting when set to "true"
	SkipPromptsEnv = EnvPrefix + "SKIP_PROMPTS"
)

// EnvKey returns the environment variable that overrides a parameter
func EnvKey(name string) string {
	return EnvPrefix + strings.ToUpper(name)
}

// PromptForParameters prompts the user for simulation parameters
func PromptForParameters(params []simulation.Parameter) (map[string]interface{}, error) {
	return ResolveParameters(params, nil)
}

// ResolveParameters fills every parameter not in provided, from the environment or by
// prompting. Provided values are coerced to their declared types and never prompted.
func ResolveParameters(params []simulation.Parameter, provided map[string]interface{}) (map[string]interface{}, error) {
	result, err := CoerceParameters(params, provided)
	if err != nil {
		return nil, err
	}

	for _, param := range params {
		if _, ok := result[param.Name]; ok {
			continue
		}
		value, err := promptForParameter(param)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s: %w", param.Name, err)
		}
		if value != nil {
			result[param.Name] = value
		}
	}

	return result, nil
}

// promptForParameter prompts for a single parameter
func promptForParameter(param simulation.Parameter) (interface{}, error) {
	envValue := os.Getenv(EnvKey(param.Name))

	// Check if we should skip prompts entirely (for CI/automation)
	if os.Getenv(SkipPromptsEnv) == "true" {
		if envValue != "" {
			return CoerceValue(param, envValue)
		}
		if param.Default != nil {
			return CoerceValue(param, param.Default)
		}
		if param.Required {
			return nil, fmt.Errorf("required parameter %s not provided and no default available", param.Name)
		}
		return nil, nil
	}

	// An environment value becomes the prompt default
	if envValue != "" {
		if parsed, err := parseEnvValue(envValue, param); err == nil {
			param.Default = parsed
		}
	}

	switch param.Type {
	case "integer":
		return promptInteger(param)
	case "float":
		return promptFloat(param)
	case "string":
		return promptString(param)
	case "boolean":
		return promptBoolean(param)
	case "duration":
		return promptDuration(param)
	default:
		return nil, fmt.Errorf("unsupported parameter type: %s", param.Type)
	}
}

// parseEnvValue parses an environment variable value according to the parameter type
func parseEnvValue(value string, param simulation.Parameter) (interface{}, error) {
	switch param.Type {
	case "integer":
		return strconv.Atoi(value)
	case "float":
		return strconv.ParseFloat(value, 64)
	case "string":
		return value, nil
	case "boolean":
		return strconv.ParseBool(value)
	case "duration":
		duration, err := time.ParseDuration(value)
		if err != nil {
			return nil, err
		}
		return duration, nil
	default:
		return nil, fmt.Errorf("unsupported parameter type: %s", param.Type)
	}
}

func defaultString(param simulation.Parameter) string {
	if param.Default == nil {
		return ""
	}
	return fmt.Sprintf("%v", param.Default)
}

func promptInteger(param simulation.Parameter) (int, error) {
	prompt := &survey.Input{
		Message: param.Description,
		Default: defaultString(param),
	}

	var result string
	if err := survey.AskOne(prompt, &result, survey.WithValidator(survey.Required)); err != nil {
		return 0, err
	}

	value, err := strconv.Atoi(result)
	if err != nil {
		return 0, fmt.Errorf("invalid integer: %w", err)
	}
	return value, checkRange(param, float64(value))
}

func promptFloat(param simulation.Parameter) (float64, error) {
	prompt := &survey.Input{
		Message: param.Description,
		Default: defaultString(param),
	}

	var result string
	if err := survey.AskOne(prompt, &result, survey.WithValidator(survey.Required)); err != nil {
		return 0, err
	}

	value, err := strconv.ParseFloat(result, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number: %w", err)
	}
	return value, checkRange(param, value)
}

func promptString(param simulation.Parameter) (string, error) {
	// If options are provided, use a select prompt
	if len(param.Options) > 0 {
		prompt := &survey.Select{
			Message: param.Description,
			Options: param.Options,
		}
		if def := defaultString(param); def != "" {
			prompt.Default = def
		}

		var result string
		if err := survey.AskOne(prompt, &result); err != nil {
			return "", err
		}
		return result, nil
	}

	prompt := &survey.Input{
		Message: param.Description,
		Default: defaultString(param),
	}

	var result string
	var validators []survey.Validator
	if param.Required {
		validators = append(validators, survey.Required)
	}

	if err := survey.AskOne(prompt, &result, survey.WithValidator(survey.ComposeValidators(validators...))); err != nil {
		return "", err
	}

	return result, nil
}

func promptBoolean(param simulation.Parameter) (bool, error) {
	defaultBool := false
	switch v := param.Default.(type) {
	case bool:
		defaultBool = v
	case string:
		defaultBool = v == "true" || v == "yes" || v == "1"
	}

	prompt := &survey.Confirm{
		Message: param.Description,
		Default: defaultBool,
	}

	var result bool
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}

	return result, nil
}

func promptDuration(param simulation.Parameter) (time.Duration, error) {
	prompt := &survey.Input{
		Message: param.Description + " (e.g., 500ms, 2s, 1m)",
		Default: defaultString(param),
	}

	var result string
	if err := survey.AskOne(prompt, &result, survey.WithValidator(func(val interface{}) error {
		str := val.(string)
		if _, err := time.ParseDuration(str); err != nil {
			return fmt.Errorf("invalid duration format (use formats like 500ms, 2s, 1m)")
		}
		return nil
	})); err != nil {
		return 0, err
	}

	duration, err := time.ParseDuration(result)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}

	return duration, nil
}
