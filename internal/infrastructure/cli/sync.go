package cli

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/felixgeelhaar/courtside/internal/infrastructure/watch"
	"github.com/felixgeelhaar/courtside/pkg/storage"
	"github.com/spf13/cobra"
)

var (
	syncWatch  bool
	syncConfig []string
)

var syncCmd = &cobra.Command{
	Use:   "sync <plugin-name>",
	Short: "Run a sync round against a registered plugin",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServices()
		if err != nil {
			return err
		}
		defer services.Loader.Cleanup()

		config, err := parseConfigFlags(syncConfig)
		if err != nil {
			return err
		}

		runRound := func() {
			messages, err := services.Sync.SyncWithPlugin(args[0], config)
			for _, msg := range messages {
				fmt.Println(msg)
			}
			if err != nil {
				fmt.Printf("sync error: %v\n", err)
			}
		}

		runRound()
		if !syncWatch {
			return nil
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		watcher, err := watch.NewDataWatcher(services.Repo.DataDir(), 500*time.Millisecond, func(file string) {
			// Board writes come from our own sync round; re-syncing on them
			// would loop forever.
			if file == storage.BoardFile {
				return
			}
			fmt.Printf("%s changed, syncing...\n", file)
			runRound()
		})
		if err != nil {
			return err
		}

		fmt.Println("Watching for changes (ctrl-c to stop)...")
		if err := watcher.Run(ctx); err != nil && err != context.Canceled {
			return err
		}
		return nil
	},
}

func parseConfigFlags(pairs []string) (map[string]string, error) {
	config := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --config value %q, expected key=value", pair)
		}
		config[key] = value
	}
	return config, nil
}

func init() {
	syncCmd.Flags().BoolVar(&syncWatch, "watch", false, "keep running and re-sync when data files change")
	syncCmd.Flags().StringSliceVar(&syncConfig, "config", nil, "plugin config as key=value (repeatable)")
	RootCmd.AddCommand(syncCmd)
}
