package utils

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/picogrid/ballistics-sim/pkg/simulation"
)

// LoadParamsFile reads simulation parameters from a YAML mapping
func LoadParamsFile(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read params file: %w", err)
	}

	params := make(map[string]interface{})
	if err := yaml.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("failed to parse params file: %w", err)
	}
	return params, nil
}

// CoerceParameters converts raw values (from a params file, config file or flags) into
// the types the descriptors declare. Unknown names are rejected.
func CoerceParameters(params []simulation.Parameter, raw map[string]interface{}) (map[string]interface{}, error) {
	byName := make(map[string]simulation.Parameter, len(params))
	for _, p := range params {
		byName[p.Name] = p
	}

	result := make(map[string]interface{}, len(raw))
	for name, value := range raw {
		param, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("unknown parameter %s", name)
		}
		coerced, err := CoerceValue(param, value)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", name, err)
		}
		result[name] = coerced
	}
	return result, nil
}

// CoerceValue converts one raw value to the parameter's declared type and checks
// its range and options
func CoerceValue(param simulation.Parameter, value interface{}) (interface{}, error) {
	if s, ok := value.(string); ok {
		if param.Type == "string" {
			return s, checkOptions(param, s)
		}
		parsed, err := parseEnvValue(s, param)
		if err != nil {
			return nil, err
		}
		return CoerceValue(param, parsed)
	}

	switch param.Type {
	case "integer":
		switch v := value.(type) {
		case int:
			return v, checkRange(param, float64(v))
		case float64:
			if v != float64(int(v)) {
				return nil, fmt.Errorf("%v is not an integer", v)
			}
			return int(v), checkRange(param, v)
		}
	case "float":
		switch v := value.(type) {
		case float64:
			return v, checkRange(param, v)
		case int:
			return float64(v), checkRange(param, float64(v))
		}
	case "boolean":
		if v, ok := value.(bool); ok {
			return v, nil
		}
	case "duration":
		switch v := value.(type) {
		case time.Duration:
			return v, nil
		case int:
			return time.Duration(v) * time.Second, nil
		case float64:
			return time.Duration(v * float64(time.Second)), nil
		}
	case "string":
		return fmt.Sprintf("%v", value), nil
	}
	return nil, fmt.Errorf("cannot use %T as %s", value, param.Type)
}

func checkRange(param simulation.Parameter, value float64) error {
	if param.Min != nil && value < toFloat64(param.Min) {
		return fmt.Errorf("value must be at least %v", param.Min)
	}
	if param.Max != nil && value > toFloat64(param.Max) {
		return fmt.Errorf("value must be at most %v", param.Max)
	}
	return nil
}

func checkOptions(param simulation.Parameter, value string) error {
	if len(param.Options) == 0 {
		return nil
	}
	for _, option := range param.Options {
		if option == value {
			return nil
		}
	}
	return fmt.Errorf("%q is not one of %v", value, param.Options)
}

// Helper functions
func toFloat64(v interface{}) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case string:
		f, _ := strconv.ParseFloat(val, 64)
		return f
	default:
		return 0
	}
}
