package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/techimg/hippo-tracker/internal/ingest"
	"github.com/techimg/hippo-tracker/internal/policy"
)

var (
	initDir   string
	initForce bool
)

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initDir, "dir", "", "Config directory (default ~/.hippo)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing config files")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold default configuration",
	Long:  "Creates the config directory with a default SDK policy and collector\nconfig ready to edit.",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := initDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home directory: %w", err)
		}
		dir = filepath.Join(home, ".hippo")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	var created []string

	policyPath := filepath.Join(dir, "policy.yaml")
	if initForce || !exists(policyPath) {
		if err := policy.Default().Save(policyPath); err != nil {
			return err
		}
		created = append(created, policyPath)
	}

	collectorPath := filepath.Join(dir, "collector.yaml")
	if initForce || !exists(collectorPath) {
		cfg := ingest.DefaultConfig()
		cfg.DBPath = filepath.Join(dir, "events.db")
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal collector config: %w", err)
		}
		if err := os.WriteFile(collectorPath, data, 0o644); err != nil {
			return fmt.Errorf("write collector config: %w", err)
		}
		created = append(created, collectorPath)
	}

	if len(created) == 0 {
		fmt.Println("Config already present; use --force to overwrite.")
		return nil
	}
	for _, p := range created {
		fmt.Printf("created %s\n", p)
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
