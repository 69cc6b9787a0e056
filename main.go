package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/utils"
)

const defaultConfigFile = "config.json"

// loadConfig merges defaults, the JSON config file and command-line flags, in
// that order of precedence from lowest to highest
func loadConfig(args []string) (utils.Config, error) {
	bind := func(config *utils.Config) (*flag.FlagSet, *string) {
		fs := flag.NewFlagSet("go-life", flag.ContinueOnError)
		path := fs.String("config", defaultConfigFile, "path to a JSON config file")
		config.Bind(fs)
		return fs, path
	}

	config := utils.DefaultConfig()
	fs, path := bind(&config)
	if err := fs.Parse(args); err != nil {
		return config, err
	}

	fileConfig, err := utils.LoadConfig(*path)
	if err != nil {
		// only a missing default file falls back; a file the user named must load
		if *path == defaultConfigFile && os.IsNotExist(errors.Cause(err)) {
			fmt.Printf("Using default configuration (%s not found)\n", *path)
			return config, config.Validate()
		}
		return config, errors.Wrap(err, "[loadConfig]")
	}

	// parse again so flags win over the file
	fs, _ = bind(&fileConfig)
	if err := fs.Parse(args); err != nil {
		return fileConfig, err
	}
	return fileConfig, fileConfig.Validate()
}

func main() {
	config, err := loadConfig(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("configuration: %v", err)
	}

	g, err := newGame(config, os.Stdout)
	if err != nil {
		log.Fatalf("starting game: %v", err)
	}
	g.clearScreen = true
	displayGameInfo(config, g)

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var cmds chan string
	eg, ctx := errgroup.WithContext(ctx)
	if config.Interactive {
		cmds = make(chan string)
		eg.Go(func() error {
			return readCommands(ctx, os.Stdin, cmds)
		})
	}
	eg.Go(func() error {
		defer cancel()
		return g.run(ctx, cmds)
	})

	if err := eg.Wait(); err != nil {
		log.Fatalf("game loop: %v", err)
	}

	fmt.Println("\n🛑 Shutting down gracefully...")
	fmt.Printf("Final stats: %d generations in %.1f seconds\n", g.generation, g.stats.Runtime().Seconds())
	fmt.Printf("Average: %.1f gen/sec, %.1f avg population\n",
		g.stats.GenerationsPerSecond, g.stats.AveragePopulation)
}
