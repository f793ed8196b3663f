package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var cfgFile string
var verbose bool
var logger *zap.SugaredLogger

var rootCmd = &cobra.Command{
	Use:   "misconfigmate",
	Short: "Discover third-party services and insecure-default misconfigurations on name variations of a target",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init config
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		} else {
			viper.AddConfigPath("$HOME")
			viper.SetConfigName(".misconfigmate")
			viper.SetConfigType("yaml")
		}

		_ = viper.ReadInConfig()
		applyConfigDefaults(cmd)

		// init logger; verbose switches on debug-level diagnostics,
		// including per-probe error detail
		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg = zap.NewDevelopmentConfig()
			zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		}
		l, err := zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l.Sugar()

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var interrupted *InterruptedError
		if errors.As(err, &interrupted) {
			fmt.Println(colorWarn(err.Error()))
		} else {
			fmt.Printf("%s %s\n", colorError("Error:"), err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.misconfigmate.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level diagnostic logging")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(versionCmd)
}
