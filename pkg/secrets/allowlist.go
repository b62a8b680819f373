package secrets

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// LoadAllowlistFile reads pattern names to disable from a TOML file:
//
//	[allowlist]
//	names = ["JWT", "Bearer Token"]
//
// A missing file is not an error and yields no names, so an operator
// can delete the file to re-enable everything. Invalid TOML is an
// error: a half-read allowlist could silently disable detection the
// operator thinks is active.
func LoadAllowlistFile(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}

	var config struct {
		Allowlist struct {
			Names []string `toml:"names"`
		} `toml:"allowlist"`
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat allowlist file: %w", err)
	}

	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidTOML, path, err)
	}

	return config.Allowlist.Names, nil
}

// MergeAllowlists unions name lists from config and file sources,
// dropping duplicates while keeping first-seen order.
func MergeAllowlists(lists ...[]string) []string {
	var merged []string
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, name := range list {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			merged = append(merged, name)
		}
	}
	return merged
}
