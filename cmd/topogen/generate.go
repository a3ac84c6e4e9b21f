package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"topoforge/internal/config"
	"topoforge/internal/graph"
	"topoforge/internal/pipeline"
	"topoforge/internal/storage/workdir"
)

func newGenerateCmd(log *slog.Logger) *cobra.Command {
	var outDir string
	var save bool

	cmd := &cobra.Command{
		Use:   "generate <topology.json>",
		Short: "Generate IOS configurations and artifacts from a topology file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if outDir == "" {
				outDir = cfg.OutputDir
			}

			b, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading topology file: %w", err)
			}
			var raw graph.RawTopology
			if err := json.Unmarshal(b, &raw); err != nil {
				return fmt.Errorf("parsing topology JSON: %w", err)
			}
			if raw.BaseNetworkOctet == 0 {
				raw.BaseNetworkOctet = cfg.BaseNetworkOctet
			}
			if raw.Mode == "" {
				raw.Mode = cfg.Mode
			}

			log.Info("generating", "file", args[0], "mode", raw.Mode)
			result, err := pipeline.Generate(context.Background(), raw, cfg.CoordScale)
			if err != nil {
				return fmt.Errorf("generation failed: %w", err)
			}

			if err := writeArtifacts(outDir, result); err != nil {
				return err
			}
			log.Info("artifacts written", "dir", outDir)

			if save {
				wdm := workdir.NewManager(log)
				if err := wdm.EnsureStructure(); err != nil {
					return err
				}
				rec := wdm.NewRun(len(result.Topology.Devices), len(result.Topology.Links))
				if err := wdm.SaveRun(rec, artifactMap(result)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (defaults to config outputDir)")
	cmd.Flags().BoolVar(&save, "save", false, "also record this run in the working-directory run ledger")
	return cmd
}

func artifactMap(result *pipeline.Result) map[string]string {
	m := map[string]string{
		"routers.txt":    result.Bundles.Routers,
		"l3cores.txt":    result.Bundles.L3Cores,
		"l2switches.txt": result.Bundles.L2Switches,
		"all.txt":        result.Bundles.All,
		"report.txt":     result.Report,
		"simulator.txt":  result.Simulator,
	}
	if result.WLAN != "" {
		m["wlan.txt"] = result.WLAN
	}
	return m
}

func writeArtifacts(dir string, result *pipeline.Result) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for name, content := range artifactMap(result) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}
