package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/lysyi3m/news-map/app/client"
)

type options struct {
	Server   string `long:"server" env:"NEWS_MAP_SERVER" default:"http://localhost:8080" description:"News map server base URL"`
	Interval int    `long:"interval" env:"WATCH_INTERVAL" default:"60" description:"Marker refresh interval in seconds"`
	Limit    int    `long:"limit" default:"30" description:"Items requested per region"`
	Region   string `long:"region" short:"r" description:"Follow one region and print its items"`
	Force    bool   `long:"force" short:"f" description:"Bypass server and local caches on every refresh"`
	Once     bool   `long:"once" description:"Refresh once and exit"`
}

func main() {
	var opts options
	if _, err := flags.NewParser(&opts, flags.Default).Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("Watch failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, out io.Writer) error {
	c := client.New(opts.Server, client.WithLimit(opts.Limit))
	selector := client.NewSelector(c)

	regions, err := c.Regions(ctx)
	if err != nil {
		return fmt.Errorf("failed to list regions: %w", err)
	}

	refresh := func(force bool) {
		fmt.Fprintf(out, "== %s ==\n", time.Now().Format(time.RFC3339))
		for _, marker := range c.RefreshMarkers(ctx, regions, force) {
			printMarker(out, marker)
		}
		if opts.Region != "" {
			printRegion(ctx, out, selector, opts.Region, force)
		}
	}

	refresh(opts.Force)
	if opts.Once {
		return nil
	}

	ticker := time.NewTicker(time.Duration(max(opts.Interval, 1)) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			refresh(opts.Force)
		}
	}
}

func printMarker(out io.Writer, marker client.Marker) {
	name := marker.Region.Name
	if name == "" {
		name = marker.Region.ID
	}

	switch {
	case marker.Err != nil:
		fmt.Fprintf(out, "%-24s error: %s\n", name, marker.Err)
	case marker.Count == 0:
		fmt.Fprintf(out, "%-24s no items\n", name)
	default:
		fmt.Fprintf(out, "%-24s %-9s (%d items)\n", name, marker.Category, marker.Count)
	}
}

func printRegion(ctx context.Context, out io.Writer, selector *client.Selector, regionID string, force bool) {
	payload, err := selector.Select(ctx, regionID, force)
	if errors.Is(err, client.ErrSuperseded) {
		return
	}
	if err != nil {
		fmt.Fprintf(out, "\n%s: error: %s\n", regionID, err)
		return
	}

	fmt.Fprintf(out, "\n%s  latest: %s\n", regionID, client.LatestCategory(payload.Items))
	if len(payload.Items) == 0 {
		fmt.Fprintln(out, "  no items")
		return
	}
	for _, item := range payload.Items {
		published := ""
		if item.IsoDate != nil {
			published = item.IsoDate.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(out, "  [%-8s] %s\n             %s • %s\n", item.Category, item.Title, item.Source, published)
	}
}
