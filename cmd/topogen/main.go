// Command topogen is the ambient CLI/HTTP front end over the
// configuration-generation pipeline: a thin wrapper, not a spec'd module.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var version = "dev"

func newLogger() *slog.Logger {
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelInfo}))
}

func main() {
	log := newLogger()

	root := &cobra.Command{
		Use:   "topogen",
		Short: "Generate Cisco IOS configurations from a drawn network topology",
	}

	root.AddCommand(newGenerateCmd(log))
	root.AddCommand(newServeCmd(log))
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the topogen version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	})

	if err := root.Execute(); err != nil {
		log.Error("command failed", "err", err)
		os.Exit(1)
	}
}
