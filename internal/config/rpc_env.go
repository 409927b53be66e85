package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// envVarRefPattern matches every ${VAR_NAME} occurrence inside a value
var envVarRefPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// MissingEnvVars returns the variables referenced by rawValue that are unset or empty.
func MissingEnvVars(rawValue string) []string {
	var missing []string
	for _, m := range envVarRefPattern.FindAllStringSubmatch(rawValue, -1) {
		if os.Getenv(m[1]) == "" {
			missing = append(missing, m[1])
		}
	}
	return missing
}

// expandRequired expands ${VAR} references and fails when one of them is not set.
// what names the setting in the error message.
func expandRequired(what, rawValue string) (string, error) {
	if missing := MissingEnvVars(rawValue); len(missing) > 0 {
		return "", fmt.Errorf("%s references unset environment variable(s) %s (set them in .env)",
			what, strings.Join(missing, ", "))
	}
	return os.ExpandEnv(rawValue), nil
}
