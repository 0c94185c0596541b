package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"kuanb/gosm-network/config"
	"kuanb/gosm-network/network"
	"kuanb/gosm-network/osm"
)

type options struct {
	configPath string
	input      string
	edges      bool
	nearest    string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "osmnet",
		Short:        "Reduce an OpenStreetMap extract to a junction graph weighted by travel time",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(opts.verbose)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck
			return run(opts, logger, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "config.toml", "Path to configuration file")
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "OSM XML or PBF file")
	cmd.Flags().BoolVar(&opts.edges, "edges", false, "Print every edge of the reduced graph")
	cmd.Flags().StringVar(&opts.nearest, "nearest", "", "Print the junction nearest to lat,lon")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(opts *options, logger *zap.Logger, out io.Writer) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return errors.Wrap(err, "loading config")
	}

	reducer, err := network.NewReducer(cfg, logger)
	if err != nil {
		return err
	}

	logger.Sugar().Infof("loading %s", opts.input)
	store, err := osm.Open(opts.input, logger)
	if err != nil {
		return errors.Wrapf(err, "loading %s", opts.input)
	}

	graph, _, err := reducer.Reduce(store)
	if err != nil {
		return errors.Wrap(err, "reducing network")
	}
	logRuntimeMetrics(logger)

	fmt.Fprintf(out, "%d junctions, %d edges\n", graph.NumNodes(), graph.NumEdges())

	if opts.edges {
		for _, e := range graph.Edges() {
			fmt.Fprintf(out, "%d\t%d\t%.6f\t%s\n", e.From, e.To, e.TravelTime, e.Name)
		}
	}

	if opts.nearest != "" {
		pt, err := parseLatLon(opts.nearest)
		if err != nil {
			return err
		}
		n, miles, ok := graph.Nearest(pt)
		if !ok {
			return errors.New("graph has no junctions")
		}
		fmt.Fprintf(out, "nearest junction %d at %.6f,%.6f (%.3f mi)\n",
			n.ID, n.Coord.Lat(), n.Coord.Lon(), miles)
	}
	return nil
}

// parseLatLon parses "lat,lon" into an orb point.
func parseLatLon(s string) (orb.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return orb.Point{}, errors.Errorf("expected lat,lon, got %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return orb.Point{}, errors.Wrap(err, "latitude")
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return orb.Point{}, errors.Wrap(err, "longitude")
	}
	return orb.Point{lon, lat}, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
