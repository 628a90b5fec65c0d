package config

import "github.com/BurntSushi/toml"

// DeprecatedConfigWarnings reports warnings for keys that moved or are no
// longer read.
func DeprecatedConfigWarnings(content string) []string {
	type marker struct{}
	var decoded marker
	md, err := toml.Decode(content, &decoded)
	if err != nil {
		return nil
	}

	var warnings []string
	if md.IsDefined("resize", "border") {
		warnings = append(warnings, "[resize] border is no longer supported; borders are part of the window rectangle")
	}
	if md.IsDefined("window", "min_width") || md.IsDefined("window", "min_height") {
		warnings = append(warnings, "[window] min_width/min_height moved to [resize]")
	}
	return warnings
}
