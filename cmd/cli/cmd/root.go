package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	vocabulary "github.com/dewarrum/vocabulary-client"
	"github.com/dewarrum/vocabulary-client/internal/constants"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Define configuration keys
const (
	CfgKeyBaseURL  = "api.baseurl"
	CfgKeyCookie   = "api.cookie" // Raw Cookie header carrying the session
	CfgKeyLogLevel = "log.level"
	CfgKeyDebug    = "log.debug"
)

// VocabularyClient is the subset of *vocabulary.Client the commands use.
type VocabularyClient interface {
	GetProfile(ctx context.Context) (*vocabulary.Profile, error)
	SearchSubtitles(ctx context.Context, query string) ([]vocabulary.Subtitle, error)
	GetManifest(ctx context.Context, subtitleID string) (*vocabulary.Manifest, error)
	UploadVideo(ctx context.Context, params vocabulary.UploadVideoParams) (*vocabulary.UploadVideoResponse, error)
}

// NewClientFunc allows overriding the client creation for testing.
var NewClientFunc = func(config vocabulary.Config) (VocabularyClient, error) {
	return vocabulary.NewClient(config)
}

var (
	// Used for flags.
	cfgFile string

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "vlcli",
		Short: "A CLI for the vocabulary-leveling backend.",
		Long: `vlcli shows the signed-in user's profile, searches subtitle cues,
fetches clip manifests and uploads videos on a vocabulary-leveling backend.

The backend base URL is read from --base-url, the api.baseurl config key,
VLCLI_API_BASEURL or PUBLIC_API_BASE_URL (a .env file in the working
directory is loaded first).`,
		SilenceUsage: true,
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := RootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.vlcli/config.yaml or ./config.yaml)")
	flags.String("base-url", "", "backend base URL, e.g. https://vocab.example.com")
	flags.String("cookie", "", "raw Cookie header carrying the session, e.g. session=abc")
	flags.Bool("debug", false, "enable debug logging")

	_ = viper.BindPFlag(CfgKeyBaseURL, flags.Lookup("base-url"))
	_ = viper.BindPFlag(CfgKeyCookie, flags.Lookup("cookie"))
	_ = viper.BindPFlag(CfgKeyDebug, flags.Lookup("debug"))
	viper.SetDefault(CfgKeyLogLevel, "info")
}

// initConfig reads in .env, the config file and ENV variables if set.
func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error reading .env file: %v\n", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(filepath.Join(home, ".vlcli"))
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("VLCLI") // e.g. VLCLI_API_BASEURL
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	_ = viper.BindEnv(CfgKeyBaseURL, "VLCLI_API_BASEURL", constants.BaseURLEnv)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error reading config file (%s): %v\n", viper.ConfigFileUsed(), err)
		}
	}
}

// newLogger builds the command logger from log.level and --debug.
func newLogger(out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.TextFormatter{})

	level, err := logrus.ParseLevel(viper.GetString(CfgKeyLogLevel))
	if err != nil {
		logger.Warnf("Unknown log level %q, using info", viper.GetString(CfgKeyLogLevel))
		level = logrus.InfoLevel
	}
	if viper.GetBool(CfgKeyDebug) {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)
	return logger
}

// newClient creates the backend client from the current configuration.
func newClient(logger *logrus.Logger) (VocabularyClient, error) {
	client, err := NewClientFunc(vocabulary.Config{
		BaseURL:       viper.GetString(CfgKeyBaseURL),
		SessionCookie: viper.GetString(CfgKeyCookie),
		UserAgent:     "vlcli/0.1",
		Logger:        logger,
	})
	if err != nil {
		logger.WithError(err).Error("Failed to initialize client")
		return nil, fmt.Errorf("failed to initialize client: %w", err)
	}
	return client, nil
}
