package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/LCF-xybq/file-handler/codec"
	"github.com/LCF-xybq/file-handler/common"
	"github.com/LCF-xybq/file-handler/interfaces"
	"github.com/LCF-xybq/file-handler/storage"
)

var flagBackend = &cli.StringFlag{
	Name:  "backend",
	Usage: "Backend name to use instead of inferring it from the path prefix",
}
var flagConfig = &cli.StringSliceFlag{
	Name:  "config",
	Usage: "Backend configuration entries as key=value, repeatable",
}
var flagFormat = &cli.StringFlag{
	Name:  "format",
	Usage: "Serialization format token, inferred from the path extension if unset",
}
var flagLogJSON = &cli.BoolFlag{
	Name:  "log-json",
	Usage: "Log in JSON format",
}
var flagLogDebug = &cli.BoolFlag{
	Name:  "log-debug",
	Usage: "Log debug messages",
}
var flagLogUID = &cli.BoolFlag{
	Name:  "log-uid",
	Usage: "Attach a random uid to all log messages",
}

func main() {
	app := &cli.App{
		Name:  "fileio",
		Usage: "read, write and convert files across storage backends",
		Flags: []cli.Flag{
			flagBackend,
			flagConfig,
			flagLogJSON,
			flagLogDebug,
			flagLogUID,
		},
		Commands: []*cli.Command{
			{
				Name:      "cat",
				Usage:     "print the content at a path to stdout",
				ArgsUsage: "<path>",
				Action:    runCat,
			},
			{
				Name:      "put",
				Usage:     "write stdin to a path",
				ArgsUsage: "<path>",
				Action:    runPut,
			},
			{
				Name:      "ls",
				Usage:     "list a directory",
				ArgsUsage: "<dir>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "dirs", Usage: "list directories"},
					&cli.BoolFlag{Name: "files", Value: true, Usage: "list files"},
					&cli.StringFlag{Name: "suffix", Usage: "only list files with this suffix"},
					&cli.BoolFlag{Name: "recursive", Usage: "descend into subdirectories"},
				},
				Action: runList,
			},
			{
				Name:      "convert",
				Usage:     "load a structured file and dump it elsewhere, possibly in another format",
				ArgsUsage: "<source> <target>",
				Flags:     []cli.Flag{flagFormat},
				Action:    runConvert,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func setupLogger(cCtx *cli.Context) *slog.Logger {
	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:   cCtx.Bool(flagLogDebug.Name),
		JSON:    cCtx.Bool(flagLogJSON.Name),
		Service: "fileio",
		Version: common.Version,
	})
	if cCtx.Bool(flagLogUID.Name) {
		logger = logger.With("uid", uuid.Must(uuid.NewRandom()).String())
	}
	return logger
}

func parseConfig(cCtx *cli.Context) interfaces.Config {
	entries := cCtx.StringSlice(flagConfig.Name)
	if len(entries) == 0 {
		return nil
	}
	cfg := make(interfaces.Config, len(entries))
	for _, entry := range entries {
		key, value, _ := strings.Cut(entry, "=")
		cfg[key] = value
	}
	return cfg
}

func resolveClient(cCtx *cli.Context, path string) (*storage.Client, error) {
	registry := storage.NewRegistry(setupLogger(cCtx))
	if backend := cCtx.String(flagBackend.Name); backend != "" {
		return registry.Resolve(backend, "", parseConfig(cCtx))
	}
	return registry.InferFromURI(path, parseConfig(cCtx))
}

func runCat(cCtx *cli.Context) error {
	path := cCtx.Args().First()
	if path == "" {
		return fmt.Errorf("a path argument is required")
	}

	client, err := resolveClient(cCtx, path)
	if err != nil {
		return err
	}
	defer client.Close()

	data, err := client.Get(context.Background(), path)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func runPut(cCtx *cli.Context) error {
	path := cCtx.Args().First()
	if path == "" {
		return fmt.Errorf("a path argument is required")
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	client, err := resolveClient(cCtx, path)
	if err != nil {
		return err
	}
	defer client.Close()

	return client.Put(context.Background(), data, path)
}

func runList(cCtx *cli.Context) error {
	dir := cCtx.Args().First()
	if dir == "" {
		return fmt.Errorf("a directory argument is required")
	}

	client, err := resolveClient(cCtx, dir)
	if err != nil {
		return err
	}
	defer client.Close()

	opts := interfaces.ListOptions{
		ListDir:   cCtx.Bool("dirs"),
		ListFile:  cCtx.Bool("files"),
		Recursive: cCtx.Bool("recursive"),
	}
	if suffix := cCtx.String("suffix"); suffix != "" {
		opts.Suffix = suffix
	}

	entries, err := client.ListDirOrFile(context.Background(), dir, opts)
	if err != nil {
		return err
	}
	for entry, err := range entries {
		if err != nil {
			return err
		}
		fmt.Println(entry)
	}
	return nil
}

func runConvert(cCtx *cli.Context) error {
	source := cCtx.Args().Get(0)
	target := cCtx.Args().Get(1)
	if source == "" || target == "" {
		return fmt.Errorf("source and target arguments are required")
	}

	registry := storage.NewRegistry(setupLogger(cCtx))
	loadOpts := []codec.Option{
		codec.WithRegistry(registry),
		codec.WithConfig(parseConfig(cCtx)),
	}
	if backend := cCtx.String(flagBackend.Name); backend != "" {
		loadOpts = append(loadOpts, codec.WithBackend(backend))
	}

	obj, err := codec.Load(context.Background(), source, loadOpts...)
	if err != nil {
		return err
	}

	dumpOpts := loadOpts
	if format := cCtx.String(flagFormat.Name); format != "" {
		dumpOpts = append(dumpOpts, codec.WithFormat(format))
	}
	_, err = codec.Dump(context.Background(), obj, target, dumpOpts...)
	return err
}
