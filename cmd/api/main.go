package main

import (
	"fmt"
	"os"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	_ = godotenv.Load()
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var cfgPath string
	root := &cobra.Command{
		Use:           "postboard",
		Short:         "users & posts API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          func(cmd *cobra.Command, _ []string) error { return serve(cfgPath) },
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default $CONFIG_PATH or ./configs/config.local.yaml)")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "start the HTTP server",
			RunE:  func(cmd *cobra.Command, _ []string) error { return serve(cfgPath) },
		},
		&cobra.Command{
			Use:   "version",
			Short: "print version",
			Run:   func(cmd *cobra.Command, _ []string) { cmd.Println(version) },
		},
	)
	return root
}
