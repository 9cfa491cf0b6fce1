// pdfgen generates and stores an invoice PDF from a JSON file, without the HTTP server.
//
// Usage: pdfgen [-log-level info] invoice.json
//
// Storage, renderer and labels come from the same configuration as the server. The
// derived file name is printed on stdout; validation failures are printed on stderr
// and exit with status 2.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	jsoniter "github.com/json-iterator/go"

	"github.com/sushnag22/pdf-generator/internal/application/dto"
	"github.com/sushnag22/pdf-generator/internal/application/validation"
	"github.com/sushnag22/pdf-generator/internal/bootstrap"
	"github.com/sushnag22/pdf-generator/pkg/config"
	"github.com/sushnag22/pdf-generator/pkg/logger"
)

func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] invoice.json\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}
	os.Exit(run(flag.Arg(0), logLevel))
}

func run(path, logLevel string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load configuration: %v\n", err)
		return 1
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: logLevel, Output: os.Stderr})

	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", path, err)
		return 1
	}
	var req dto.GenerateRequest
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(raw, &req); err != nil {
		fmt.Fprintf(os.Stderr, "parse %s: %v\n", path, err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	docs, err := bootstrap.NewDocuments(ctx, cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build document service: %v\n", err)
		return 1
	}
	defer docs.Close()

	res, err := docs.UseCase.GenerateAndStore(ctx, &req)
	if err != nil {
		if ve, ok := validation.AsError(err); ok {
			fmt.Fprintln(os.Stderr, ve.Message)
			for _, d := range ve.Details {
				fmt.Fprintf(os.Stderr, "  %s: %s\n", d.Field, d.Message)
			}
			return 2
		}
		fmt.Fprintf(os.Stderr, "generate PDF: %v\n", err)
		return 1
	}

	fmt.Println(res.FileName)
	return 0
}
