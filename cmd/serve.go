package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/itsmostafa/gobook/internal/project"
	"github.com/itsmostafa/gobook/internal/renderer"
	"github.com/itsmostafa/gobook/internal/server"
	"github.com/itsmostafa/gobook/internal/watch"
	"github.com/spf13/cobra"
)

var servePort int
var serveHost string
var serveNoWatch bool

var serveCmd = &cobra.Command{
	Use:   "serve [dir]",
	Short: "Build the book and serve it locally",
	Long: `Build the book and serve the output directory over HTTP until interrupted.

The source directory is watched while serving. Every change rebuilds the
book and open pages reload themselves.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger()
		if err != nil {
			return err
		}

		p, err := project.Open(bookDir(args), log)
		if err != nil {
			return err
		}
		if !serveNoWatch {
			p.SetLiveReload(server.LiveReloadPath)
		}
		html := renderer.NewHTML()
		if _, err := p.Build(html); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		s := server.New(p.Dest(), log)
		if !serveNoWatch {
			w := watch.New(p.Src(), p.Dest())
			go func() {
				err := w.Watch(ctx, func() error {
					log.SourceChanged(p.Src())
					if _, err := p.Build(html); err != nil {
						return err
					}
					s.Reload()
					return nil
				}, log.RebuildFailed)
				if err != nil {
					log.Error("watcher stopped", "error", err)
				}
			}()
		}

		addr := fmt.Sprintf("%s:%d", serveHost, servePort)
		fmt.Fprintf(cmd.OutOrStdout(), "Serving %s at http://%s\n", p.Dest(), addr)
		return s.ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 3000, "Port to listen on")
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "Host to bind to")
	serveCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "Serve without rebuilding on changes or live reload")

	rootCmd.AddCommand(serveCmd)
}
