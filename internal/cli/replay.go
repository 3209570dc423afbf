package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/techimg/hippo-tracker/internal/policy"
	"github.com/techimg/hippo-tracker/sdk/go/hippotracker"
)

var (
	replayPolicy   string
	replayEndpoint string
	replayBotID    int64
	replayBotName  string
)

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().StringVar(&replayPolicy, "policy", "", "Path to policy YAML")
	replayCmd.Flags().StringVar(&replayEndpoint, "endpoint", "", "Ship records to this collector instead of printing")
	replayCmd.Flags().Int64Var(&replayBotID, "bot-id", 0, "Bot id to stamp on records")
	replayCmd.Flags().StringVar(&replayBotName, "bot-username", "", "Bot username to stamp on records")
}

var replayCmd = &cobra.Command{
	Use:   "replay <updates.jsonl>",
	Short: "Run captured updates through the engine",
	Long:  "Reads raw updates (one JSON object per line), normalizes each through\nthe full classify/redact/prune pipeline, and prints the records — or\nships them when --endpoint is set.",
	Args:  cobra.ExactArgs(1),
	RunE:  runReplay,
}

func runReplay(cmd *cobra.Command, args []string) error {
	pol, err := policy.Load(replayPolicy)
	if err != nil {
		return err
	}

	endpoint := replayEndpoint
	if endpoint == "" {
		endpoint = pol.Endpoint
	}
	ship := endpoint != ""
	if !ship {
		// Engine-only pass; the endpoint is never dialed.
		endpoint = "http://localhost:0"
	}

	opts := []hippotracker.Option{
		hippotracker.WithToken(pol.Token),
		hippotracker.WithMaxTextLength(pol.MaxTextLength),
		hippotracker.WithTimeout(pol.Timeout()),
	}
	if pol.IncludeRawUpdate {
		opts = append(opts, hippotracker.WithRawUpdate())
	}
	if len(pol.ExtraMediaKeys) > 0 {
		opts = append(opts, hippotracker.WithExtraMediaKeys(pol.ExtraMediaKeys...))
	}
	ht, err := hippotracker.New(endpoint, opts...)
	if err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open updates file: %w", err)
	}
	defer f.Close()

	bot := hippotracker.Bot{ID: replayBotID, Username: replayBotName}
	start := time.Now()
	var line, shipped, failed int

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		if ship {
			ctx, cancel := context.WithTimeout(context.Background(), pol.Timeout())
			err := ht.Track(ctx, json.RawMessage(raw), bot)
			cancel()
			if err != nil {
				failed++
				fmt.Fprintf(os.Stderr, "line %d: %v\n", line, err)
				continue
			}
			shipped++
			continue
		}

		rec, err := ht.Record(json.RawMessage(raw), bot)
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "line %d: %v\n", line, err)
			continue
		}
		out, _ := json.Marshal(rec)
		fmt.Println(string(out))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read updates file: %w", err)
	}

	if ship {
		fmt.Fprintf(os.Stderr, "replayed %d updates in %s: %d shipped, %d failed\n",
			line, time.Since(start).Round(time.Millisecond), shipped, failed)
	}
	return nil
}
