// Command cgi-info lists the GPU adapters visible to the toolkit and
// the one the builder would select, without opening a window.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/prataprc/cgi"
	"github.com/prataprc/cgi/vgi"
)

func main() {
	app := &cli.App{
		Name:  "cgi-info",
		Usage: "inspect GPU adapters and device selection",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "adapter",
				Value: -1,
				Usage: "pin selection to an adapter index",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "enable debug logging",
			},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.Bool("verbose") {
		cgi.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	b := vgi.NewBuilder().WithLabel("cgi-info")
	if idx := c.Int("adapter"); idx >= 0 {
		b = b.WithAdapter(idx)
	}
	ctx, err := b.Build()
	if err != nil {
		return err
	}
	defer ctx.Close()

	for _, info := range ctx.Adapters() {
		fmt.Printf("adapter %d: %s (type %v)\n", info.Index, info.Name, info.DeviceType)
	}
	sel := ctx.AdapterInfo()
	fmt.Printf("selected: %d %s\n", sel.Index, sel.Name)
	return nil
}
