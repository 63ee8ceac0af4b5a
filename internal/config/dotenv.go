package config

import (
	"bufio"
	"os"
	"strings"
)

// LoadDotenv seeds the process environment from a taskdeck .env file
// (normally $TASKDECK_PATH/.env, see DotenvPath). Variables already set in
// the environment win over file entries, so a shell-exported
// TASKDECK_AUTH_SECRET or OPENAI_API_KEY is never clobbered. A missing file
// is not an error.
func LoadDotenv(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := parseDotenvLine(scanner.Text())
		if !ok {
			continue
		}
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		os.Setenv(key, value)
	}
	return scanner.Err()
}

// parseDotenvLine parses one .env line into a key/value pair. Blank lines,
// comments and lines without '=' report ok=false. Lines may carry a shell
// "export " prefix; unquoted values may carry a trailing " # comment".
func parseDotenvLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimPrefix(line, "export ")

	key, value, ok = strings.Cut(line, "=")
	if !ok {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if key == "" {
		return "", "", false
	}

	if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0] {
		return key, value[1 : len(value)-1], true
	}
	if i := strings.Index(value, " #"); i >= 0 {
		value = strings.TrimSpace(value[:i])
	}
	return key, value, true
}
