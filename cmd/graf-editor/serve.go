package main

import (
	"context"
	"fmt"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/ritzau/graf-editor/pkg/editor"
	"github.com/ritzau/graf-editor/pkg/logging"
	"github.com/ritzau/graf-editor/pkg/pubsub"
	"github.com/ritzau/graf-editor/pkg/templates"
	"github.com/ritzau/graf-editor/pkg/web"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the editor in the browser",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			store, err := templates.NewStore(cfg.Template)
			if err != nil {
				return err
			}

			publisher := pubsub.NewSSEPublisher()
			// scene: new subscribers get the full history so they can rebuild the scene
			publisher.ConfigureTopic(pubsub.TopicScene, pubsub.TopicConfig{
				BufferSize: cfg.History,
				ReplayAll:  true,
			})
			// template: only the latest revision matters
			publisher.ConfigureTopic(pubsub.TopicTemplate, pubsub.TopicConfig{
				BufferSize: 1,
				ReplayAll:  false,
			})
			go func() {
				<-ctx.Done()
				publisher.Close()
			}()

			session := editor.NewSession(pubsub.NewSceneBridge(publisher))
			server := web.NewServer(session, publisher, store)

			if cfg.Watch {
				err := store.Watch(ctx, func(int) {
					if err := server.PublishTemplate(); err != nil {
						logging.Warn("failed to publish template reload", "error", err)
					}
				})
				if err != nil {
					return fmt.Errorf("failed to watch template: %w", err)
				}
			}

			if cfg.OpenBrowser {
				openBrowser(fmt.Sprintf("http://localhost:%d", cfg.Port))
			}

			return server.Start(ctx, cfg.Port)
		},
	}

	cmd.Flags().Int("port", 8080, "Port for the web server")
	cmd.Flags().Bool("open", false, "Open the editor in a browser")
	cmd.Flags().String("template", "", "SVG file defining the node and arc symbols")
	cmd.Flags().Bool("watch", false, "Reload the template file when it changes")
	cmd.Flags().Int("history", 256, "Scene events replayed to new subscribers")
	return cmd
}

// openBrowser opens the URL in the default browser
func openBrowser(url string) {
	var name string
	var args []string

	switch runtime.GOOS {
	case "darwin":
		name = "open"
		args = []string{url}
	case "linux":
		name = "xdg-open"
		args = []string{url}
	case "windows":
		name = "cmd"
		args = []string{"/c", "start", url}
	default:
		logging.Warn("cannot open browser on this platform", "os", runtime.GOOS)
		return
	}

	if err := exec.CommandContext(context.Background(), name, args...).Start(); err != nil {
		logging.Warn("failed to open browser", "error", err)
	}
}
