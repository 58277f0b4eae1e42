package envconf

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// DefaultFile is the configuration file Load reads before applying
// environment variables.
const DefaultFile = ".env"

// Load reads DefaultFile (if present) and every environment variable
// starting with prefix into target. target must be a pointer to a
// struct; nested struct fields map to dotted key paths.
func Load(prefix string, target any) error {
	return LoadFile(DefaultFile, prefix, target)
}

// LoadFile behaves like Load but reads the given file instead of
// DefaultFile. A missing file is not an error; a malformed one is.
func LoadFile(file, prefix string, target any) error {
	if prefix == "" {
		return errors.New("prefix must not be empty")
	}

	v := viper.New()

	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read %s: %w", file, err)
	}

	// Set ranks above file values in viper, so the environment wins.
	prefixUpper := strings.ToUpper(prefix)
	for _, entry := range os.Environ() {
		pair := strings.SplitN(entry, "=", 2)
		if len(pair) != 2 {
			continue
		}
		key, value := pair[0], pair[1]
		if !strings.HasPrefix(key, prefixUpper) {
			continue
		}

		// CELLAUTH_TOKEN_ACCESS -> token.access
		propKey := strings.TrimPrefix(key, prefixUpper)
		propKey = strings.ToLower(strings.ReplaceAll(propKey, "_", "."))
		propKey = strings.TrimPrefix(propKey, ".")
		if propKey == "" {
			continue
		}
		v.Set(propKey, value)
	}

	if err := v.Unmarshal(target); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}
