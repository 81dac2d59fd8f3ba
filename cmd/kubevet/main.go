package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/KubeVet/kubevet/internal/config"
	"github.com/KubeVet/kubevet/internal/log"
	"github.com/KubeVet/kubevet/internal/model"
)

var (
	cfg config.Config

	flagConfigFilePath string // value of --config flag
	flagVerbose        bool   // value of --verbose flag

	flagFormat  string
	flagOutput  string
	flagSuggest bool

	flagFixOutput string
)

func main() {
	rootCmd.PersistentFlags().StringVar(&flagConfigFilePath, "config", "", "config file to load - default is kubevet.yaml in current directory or in the user config directory")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "verbose logging")

	// errors are logged below, exit codes carry the outcome
	rootCmd.SilenceErrors = true

	rootCmd.PersistentPreRunE = initKubevet

	scanCmd.Flags().StringVar(&flagFormat, "format", "text", "report format: text, json, html or sarif")
	scanCmd.Flags().StringVar(&flagOutput, "output", "", "write the report to a file instead of stdout")
	scanCmd.Flags().BoolVar(&flagSuggest, "suggest", false, "ask the correction service for a fix suggestion per finding")

	fixCmd.Flags().StringVar(&flagFixOutput, "output", "corrected.yaml", "where to write the corrected document")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, model.ErrFindings) {
			os.Exit(1)
		}
		slog.Error("kubevet failed", "err", err)
		os.Exit(2)
	}
}

var rootCmd = &cobra.Command{
	Use:          "kubevet",
	Short:        "Static analyzer for Kubernetes YAML manifests",
	SilenceUsage: true,
}

var scanCmd = &cobra.Command{
	Use:   "scan PATH",
	Short: "scan a manifest file or a directory tree and report misconfigurations",
	Args:  cobra.ExactArgs(1),
	RunE:  doScan,
}

var fixCmd = &cobra.Command{
	Use:   "fix FILE",
	Short: "ask the correction service to rewrite a manifest file",
	Args:  cobra.ExactArgs(1),
	RunE:  doFix,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "version provides the version of kubevet",
	Run: func(cmd *cobra.Command, args []string) {
		info, ok := debug.ReadBuildInfo()
		if !ok {
			fmt.Println("kubevet: version info not available")
			return
		}

		fmt.Printf("kubevet: %s\n", info.Main.Version)
		fmt.Printf("go:      %s\n", info.GoVersion)
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				fmt.Printf("commit:  %s\n", s.Value)
			case "vcs.time":
				fmt.Printf("date:    %s\n", s.Value)
			case "vcs.modified":
				fmt.Printf("dirty:   %s\n", s.Value)
			}
		}
	},
}

func initKubevet(cmd *cobra.Command, _ []string) error {
	configPath := flagConfigFilePath
	if envConfig, ok := os.LookupEnv("KUBEVETCONFIG"); ok {
		configPath = envConfig
	}

	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}

	// --verbose has precedence over the config file
	if flagVerbose {
		cfg.Verbose = true
	}

	slog.SetDefault(log.New(cfg.Verbose))
	slog.Debug("kubevet start", "configPath", configPath)
	return nil
}
