package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const (
	configKindString = iota
	configKindBool
	configKindInt
	configKindFloat
	configKindDuration
)

type configEntry struct {
	key  string
	kind int
	help string
}

var entries = []configEntry{
	{"metaDir", configKindString, "directory for versions, libraries, natives & assets"},
	{"profileDir", configKindString, "game directory of the profile"},
	{"platform.os", configKindString, "osx, linux or windows"},
	{"platform.arch", configKindString, "x64, x86 or arm32"},
	{"timeout", configKindDuration, "timeout of every single request"},
	{"retries", configKindInt, "retries of failed downloads"},
	{"waveSize", configKindInt, "number of assets that are downloaded at once"},
	{"rateLimit", configKindFloat, "max requests per second (0 is unlimited)"},
	{"assetCDN", configKindString, "root url of asset objects"},
	{"metaURL", configKindString, "url of the version list"},
	{"extractNatives", configKindBool, "extract native libraries after downloading"},
	{"logLevel", configKindString, "debug, info, warn or error"},
	{"logFormat", configKindString, "text or json"},
	{"noColor", configKindBool, "disable color output"},
	{"nonInteractive", configKindBool, "never prompt"},
}

// File returns the config file currently in use. Set by the root command
var File = func() string { return "" }

// DefaultFile is written to if no config file is in use
var DefaultFile string

var SubCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage global config options",
}

// lookup finds an entry case insensitive
func lookup(key string) (configEntry, error) {
	for _, entry := range entries {
		if strings.EqualFold(entry.key, key) {
			return entry, nil
		}
	}
	return configEntry{}, fmt.Errorf("config key \"%s\" does not exist", key)
}

func (e configEntry) parse(value string) (interface{}, error) {
	switch e.kind {
	case configKindBool:
		return parseBool(value)
	case configKindString:
		return value, nil
	case configKindInt:
		return strconv.Atoi(value)
	case configKindFloat:
		return strconv.ParseFloat(value, 64)
	case configKindDuration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return nil, err
		}
		// stored as string so it survives the toml round trip
		return d.String(), nil
	default:
		return nil, fmt.Errorf("what? uncovered config values type")
	}
}

func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "true", "yes", "on", "1":
		return true, nil
	case "false", "no", "off", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean value. Use \"true\" or \"false\"")
	}
}

func configFile() string {
	if file := File(); file != "" {
		return file
	}
	return DefaultFile
}
