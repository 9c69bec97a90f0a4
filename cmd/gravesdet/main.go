// Command gravesdet runs the streaming meteor-scatter chirp detector
// against a live audio device or a recorded I/Q file, archiving and/or
// network-exporting whatever it finds.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"meteorscatter/gravesdet/config"
	"meteorscatter/gravesdet/internal/export"
	"meteorscatter/gravesdet/internal/iqsource"
	gravesdet "meteorscatter/gravesdet/src"
)

func main() {
	var flags = config.RegisterFlags()
	var useAudio = pflag.BoolP("audio", "A", false, "Read I/Q from the default sound card instead of stdin.")
	var framesPerBuffer = pflag.IntP("frames", "F", 1024, "Frames per audio buffer (only with --audio).")
	pflag.Parse()

	var cfg, loadErr = config.Load(*flags.ConfigFile)
	if loadErr != nil {
		fmt.Fprintf(os.Stderr, "gravesdet: %s, using defaults\n", loadErr)
		cfg = config.Default()
	}
	cfg = flags.Apply(cfg)

	var logger = gravesdet.NewLogger(os.Stderr, parseLevel(cfg.LogLevel))

	if err := run(cfg, logger, *useAudio, *framesPerBuffer); err != nil {
		logger.Error("exiting", "err", err)
		os.Exit(1)
	}
}

func parseLevel(name string) log.Level {
	var level, err = log.ParseLevel(name)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

func run(cfg config.Config, logger *log.Logger, useAudio bool, framesPerBuffer int) error {
	var sinks []gravesdet.Sink

	if cfg.ArchiveDir != "" {
		if err := os.MkdirAll(cfg.ArchiveDir, 0755); err != nil {
			return fmt.Errorf("creating archive dir: %w", err)
		}
		var archiver = export.NewArchiver(cfg.ArchiveDir, cfg.ArchivePattern, cfg.TransmitterHz, logger)
		defer archiver.Close()
		sinks = append(sinks, archiver)
	}

	var netServer *export.NetServer
	if cfg.NetExportAddr != "" {
		netServer = export.NewNetServer(cfg.TransmitterHz, logger)
		var listener, err = netServer.Listen(cfg.NetExportAddr)
		if err != nil {
			return fmt.Errorf("starting net export: %w", err)
		}
		defer listener.Close()

		if cfg.DNSSD {
			var ctx, cancel = context.WithCancel(context.Background())
			defer cancel()
			var name = cfg.NetExportName
			if name == "" {
				name = "gravesdet"
			}
			if err := netServer.Advertise(ctx, name, listenerPort(cfg.NetExportAddr)); err != nil {
				logger.Error("dnssd advertisement failed", "err", err)
			}
		}
		sinks = append(sinks, netServer)
	}

	var sink gravesdet.Sink
	if len(sinks) == 0 {
		sink = gravesdet.SinkFunc(func(record *gravesdet.ChirpRecord) bool {
			logger.Info("chirp", "t0", record.StartSeconds, "t0f", record.StartFraction, "len", record.Len())
			return true
		})
	} else {
		sink = fanoutSink(sinks)
	}

	var detector, detErr = gravesdet.New(cfg.DetectorParams(), sink, gravesdet.WithLogger(logger))
	if detErr != nil {
		return fmt.Errorf("constructing detector: %w", detErr)
	}

	var ctx, cancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if useAudio {
		var src = iqsource.NewAudioSource(cfg.SampleRate, framesPerBuffer)
		return src.Run(ctx, func(sample complex128) error {
			return detector.Feed(sample)
		})
	}

	return feedFromReader(ctx, detector, os.Stdin)
}

func feedFromReader(ctx context.Context, detector *gravesdet.Detector, r io.Reader) error {
	var src = iqsource.NewFileSource(r)
	var batch = make([]complex128, 4096)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		var n, err = src.ReadBatch(batch)
		if n > 0 {
			if feedErr := detector.FeedBatch(batch[:n]); feedErr != nil {
				return feedErr
			}
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

// fanoutSink broadcasts each chirp to every sink in the list, still
// delivering to the remaining sinks after one rejects. It reports false if
// any sink rejected, which the detector returns as a SinkFailed error and
// which ends run.
type fanoutSink []gravesdet.Sink

func (f fanoutSink) OnChirp(record *gravesdet.ChirpRecord) bool {
	var ok = true
	for _, s := range f {
		if !s.OnChirp(record) {
			ok = false
		}
	}
	return ok
}

// listenerPort extracts the numeric port from an addr of the form
// "host:port" or ":port"; used only to feed the dnssd advertisement, which
// wants the port as an int rather than a string.
func listenerPort(addr string) int {
	var port int
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			fmt.Sscanf(addr[i+1:], "%d", &port)
			break
		}
	}
	return port
}
