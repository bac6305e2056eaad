package main

import (
	"flag"

	"github.com/Stunkymonkey/pbfextractor/pkg/extractor"
	"github.com/Stunkymonkey/pbfextractor/pkg/graphwriter"
	"github.com/Stunkymonkey/pbfextractor/pkg/logger"
	"github.com/Stunkymonkey/pbfextractor/pkg/metrics"
	"github.com/Stunkymonkey/pbfextractor/pkg/osmparser"
	"github.com/Stunkymonkey/pbfextractor/pkg/srtm"
	"github.com/Stunkymonkey/pbfextractor/pkg/util"
)

var (
	configPath = flag.String("config", "./data", "directory containing config.yaml")
)

func main() {
	flag.Parse()
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}

	cfg, err := util.ReadConfig(*configPath)
	if err != nil {
		panic(err)
	}

	grid := metrics.NewGrid(cfg.Grid.MinLat, cfg.Grid.MinLon, cfg.Grid.MaxLat, cfg.Grid.MaxLon,
		cfg.Grid.Rows, cfg.Grid.Cols)
	registry, err := metrics.NewRegistry(cfg.Metrics, cfg.InternalMetrics, grid, cfg.RandomSeed)
	if err != nil {
		panic(err)
	}

	sampler, err := srtm.NewSampler(cfg.SrtmPath, logger)
	if err != nil {
		panic(err)
	}
	defer sampler.Close()

	var filter extractor.EdgeFilter = extractor.BicycleEdgeFilter{}
	if cfg.Profile == "car" {
		filter = extractor.CarEdgeFilter{}
	}

	ext := extractor.New(registry, filter, sampler, logger)
	parser := osmparser.NewParser(cfg.PbfPath)
	if err := parser.Parse(ext, logger); err != nil {
		panic(err)
	}

	graph, err := ext.Run()
	if err != nil {
		panic(err)
	}

	if err := graphwriter.WriteFile(cfg.OutputPath, cfg.Compress, graph, registry); err != nil {
		panic(err)
	}
	logger.Sugar().Infof("graph written to %s", cfg.OutputPath)
}
