package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Vrajesh-Sharma/Blog-Agent/config"
	srv "github.com/Vrajesh-Sharma/Blog-Agent/internal/server"
)

func main() {
	var root = &cobra.Command{Use: "blogagent"}

	var serveAddr string
	var configPath string
	var serve = &cobra.Command{
		Use:   "serve",
		Short: "Run HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig(configPath)
			if serveAddr == "" {
				serveAddr = os.Getenv("BLOGAGENT_HTTP_ADDR")
			}
			if serveAddr != "" {
				cfg.General.Listen = serveAddr
			}
			return srv.Run(cfg)
		},
	}
	serve.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
	serve.Flags().StringVar(&configPath, "config", "", "path to config file")

	root.AddCommand(serve)
	_ = root.Execute()
}
