// SPDX-License-Identifier: MIT

// Command ccs calls polished consensus reads from groups of subreads.
//
//	ccs [flags] <reads>
//
// Reads are SAM, BAM or plain text (one sequence per line, blank line
// between molecules). Consensus reads go to --output as FASTQ.
package main

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
	"gopkg.in/cheggaaa/pb.v1"

	"github.com/katalvlaran/quiver/ccs"
)

type options struct {
	input       string
	output      string
	config      string
	format      string
	workers     int
	minReads    int
	logLevel    string
	metricsAddr string
	progress    bool
}

func main() {
	app := kingpin.New("ccs", "Circular consensus from subreads")
	app.Version("v0.1")
	var o options
	app.Arg("reads", "SAM, BAM or text reads").Required().StringVar(&o.input)
	app.Flag("output", "FASTQ output; - for stdout").Short('o').Default("-").StringVar(&o.output)
	app.Flag("config", "settings file (yaml, json, toml)").Default("").StringVar(&o.config)
	app.Flag("format", "input format: auto, text, sam or bam").Default("auto").StringVar(&o.format)
	app.Flag("workers", "groups called in parallel; 0 for one per CPU").Default("0").IntVar(&o.workers)
	app.Flag("min-reads", "override ccs.min_reads; 0 keeps the setting").Default("0").IntVar(&o.minReads)
	app.Flag("log-level", "debug, info, warn or error").Default("info").StringVar(&o.logLevel)
	app.Flag("metrics-addr", "serve Prometheus metrics on this address").Default("").StringVar(&o.metricsAddr)
	app.Flag("progress", "show progress").Default("false").BoolVar(&o.progress)
	kingpin.MustParse(app.Parse(os.Args[1:]))

	if err := run(o); err != nil {
		log.Fatal(err)
	}
}

func run(o options) error {
	level, err := log.ParseLevel(o.logLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)

	settings, err := loadSettings(o)
	if err != nil {
		return err
	}
	format, err := ccs.ParseFormat(o.format, o.input)
	if err != nil {
		return err
	}
	groups, err := readGroups(o.input, format)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{"groups": len(groups), "format": format}).Info("reads loaded")

	if o.metricsAddr != "" {
		srv := serveMetrics(o.metricsAddr)
		defer srv.Close()
	}

	caller, err := ccs.NewCaller(settings, ccs.WithLogger(log.StandardLogger()))
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(o.output)
	if err != nil {
		return err
	}
	defer closeOut()
	w := bufio.NewWriter(out)

	var pbar *pb.ProgressBar
	if o.progress {
		pbar = pb.New(len(groups))
		pbar.Output = os.Stderr
		pbar.Start()
	}

	workers := o.workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var written, skipped, failed int
	err = caller.Run(ctx, groups, workers, func(oc ccs.Outcome) error {
		if pbar != nil {
			pbar.Increment()
		}
		switch {
		case errors.Is(oc.Err, ccs.ErrTooFewReads):
			skipped++
			log.WithField("group", oc.Group).Debug(oc.Err)

			return nil
		case oc.Err != nil:
			failed++
			log.WithField("group", oc.Group).WithError(oc.Err).Warn("consensus failed")

			return nil
		}
		written++

		return ccs.WriteFASTQ(w, oc.Result)
	})
	if pbar != nil {
		pbar.Finish()
	}
	if ferr := w.Flush(); err == nil {
		err = ferr
	}
	log.WithFields(log.Fields{"written": written, "skipped": skipped, "failed": failed}).Info("done")

	return err
}

func loadSettings(o options) (ccs.Settings, error) {
	var (
		s   ccs.Settings
		err error
	)
	if o.config != "" {
		s, err = ccs.LoadSettings(o.config)
	} else {
		s, err = ccs.DefaultSettings()
	}
	if err != nil {
		return s, err
	}
	if o.minReads > 0 {
		s.MinReads = o.minReads
	}

	return s, s.Validate()
}

func readGroups(path string, f ccs.Format) ([]ccs.Group, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ccs.ReadGroups(bufio.NewReader(file), f)
}

func openOutput(path string) (io.Writer, func(), error) {
	if path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}

	return f, func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("closing output")
		}
	}, nil
}

func serveMetrics(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("metrics server")
		}
	}()
	log.WithField("addr", addr).Info("serving metrics")

	return srv
}
