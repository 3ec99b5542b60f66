package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/minepkg/mcfetch/internals/cmdlog"
	"github.com/minepkg/mcfetch/internals/downloadmgr"
	"github.com/minepkg/mcfetch/internals/launchermeta"
	"github.com/minepkg/mcfetch/internals/minecraft"
	"github.com/minepkg/mcfetch/internals/ownhttp"
	"github.com/spf13/viper"
	"github.com/stoewer/go-strcase"
)

// envKeys can be set with MCFETCH_ environment variables
var envKeys = []string{
	"metaDir",
	"profileDir",
	"platform.os",
	"platform.arch",
	"timeout",
	"retries",
	"waveSize",
	"rateLimit",
	"assetCDN",
	"metaURL",
	"extractNatives",
	"logLevel",
	"logFormat",
	"noColor",
	"nonInteractive",
}

// envName turns "platform.os" into "PLATFORM_OS" and "metaDir" into "META_DIR"
func envName(key string) string {
	return strcase.UpperSnakeCase(strings.ReplaceAll(key, ".", "_"))
}

func setDefaults(v *viper.Viper, globalDir string) {
	current := minecraft.CurrentPlatform()

	v.SetDefault("metaDir", filepath.Join(globalDir, "meta"))
	v.SetDefault("profileDir", filepath.Join(globalDir, "profiles", "default"))
	v.SetDefault("platform.os", current.OS)
	v.SetDefault("platform.arch", current.Arch)
	v.SetDefault("timeout", downloadmgr.DefaultTimeout)
	v.SetDefault("retries", 2)
	v.SetDefault("waveSize", downloadmgr.DefaultWaveSize)
	v.SetDefault("rateLimit", 0)
	v.SetDefault("assetCDN", minecraft.DefaultAssetCDN)
	v.SetDefault("metaURL", launchermeta.DefaultURL)
	v.SetDefault("extractNatives", true)
	v.SetDefault("logLevel", "warn")
	v.SetDefault("logFormat", "text")
	v.SetDefault("noColor", false)
	v.SetDefault("nonInteractive", false)
}

// settings is the resolved configuration of one command run
type settings struct {
	MetaDir        string
	ProfileDir     string
	Platform       minecraft.Platform
	Timeout        time.Duration
	Retries        int
	WaveSize       int
	RateLimit      float64
	AssetCDN       string
	MetaURL        string
	ExtractNatives bool
	LogLevel       slog.Level
	LogJSON        bool
	NoColor        bool
	NonInteractive bool
}

func loadSettings(v *viper.Viper) *settings {
	return &settings{
		MetaDir:        v.GetString("metaDir"),
		ProfileDir:     v.GetString("profileDir"),
		Platform:       minecraft.NewPlatform(v.GetString("platform.os"), v.GetString("platform.arch")),
		Timeout:        v.GetDuration("timeout"),
		Retries:        v.GetInt("retries"),
		WaveSize:       v.GetInt("waveSize"),
		RateLimit:      v.GetFloat64("rateLimit"),
		AssetCDN:       v.GetString("assetCDN"),
		MetaURL:        v.GetString("metaURL"),
		ExtractNatives: v.GetBool("extractNatives"),
		LogLevel:       cmdlog.ParseLevel(v.GetString("logLevel")),
		LogJSON:        v.GetString("logFormat") == "json",
		NoColor:        v.GetBool("noColor") || os.Getenv("CI") != "",
		NonInteractive: v.GetBool("nonInteractive"),
	}
}

func (s *settings) logger() *slog.Logger {
	return cmdlog.New(os.Stderr, s.LogLevel, s.LogJSON)
}

func (s *settings) metaClient(logger *slog.Logger) *launchermeta.Client {
	client := launchermeta.New(ownhttp.New(), s.MetaURL)
	client.VersionsDir = filepath.Join(s.MetaDir, "versions")
	client.Logger = logger
	return client
}

func (s *settings) downloadManager(logger *slog.Logger) *downloadmgr.DownloadManager {
	return downloadmgr.New(downloadmgr.Options{
		HTTPClient: ownhttp.NewThrottled(s.RateLimit),
		Logger:     logger,
		Platform:   s.Platform,
		AssetCDN:   s.AssetCDN,
		WaveSize:   s.WaveSize,
		Timeout:    s.Timeout,
		Retries:    s.Retries,
	})
}
