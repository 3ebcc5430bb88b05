/*
DESCRIPTION
  ld-rf-decode reads a raw RF capture and writes a demodulated, 16-bit
  little-endian luma sample stream.

  Usage:
    ld-rf-decode [-offset n] [-max-bytes n] [input-file|-]

  With no input-file, or "-", input is read from stdin. offset seeks the
  input file before reading; max-bytes truncates the read, matching the
  reference decoder's command-line contract.
*/
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ausocean/utils/logging"

	"github.com/wbirkmaier/ld-decode/ldconfig"
	"github.com/wbirkmaier/ld-decode/rf"
)

func main() {
	offset := flag.Int64("offset", 0, "byte offset to seek to before reading")
	maxBytes := flag.Int64("max-bytes", 0, "maximum number of bytes to read (0 = unlimited)")
	candidateFreqs := flag.String("candidates", "", "comma-separated heterodyne candidate frequencies in Hz (default 8100000,8700000,9300000)")
	verbosity := flag.Int("log-level", int(logging.Info), "log verbosity (0=Debug .. 4=Fatal)")
	flag.Parse()

	log := logging.New(int8(*verbosity), os.Stderr, true)

	cfg := &ldconfig.Config{Logger: log}
	if *candidateFreqs != "" {
		cfg.Update(map[string]string{ldconfig.KeyCandidateFreqs: *candidateFreqs})
	}

	in, err := openInput(flag.Arg(0), *offset, *maxBytes)
	if err != nil {
		log.Fatal("could not open input", "error", err.Error())
		os.Exit(1)
	}
	defer in.Close()

	p, err := rf.NewPipeline(cfg)
	if err != nil {
		log.Fatal("could not build rf pipeline", "error", err.Error())
		os.Exit(1)
	}

	if err := p.Run(in, os.Stdout); err != nil {
		log.Fatal("rf pipeline failed", "error", err.Error())
		os.Exit(1)
	}
}

// openInput opens the named file (or stdin for "" or "-"), seeking to
// offset and, if maxBytes is positive, truncating the stream to that many
// bytes.
func openInput(name string, offset, maxBytes int64) (io.ReadCloser, error) {
	var f *os.File
	var err error

	if name == "" || name == "-" {
		f = os.Stdin
	} else {
		f, err = os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", name, err)
		}
	}

	if offset != 0 {
		if _, err := f.Seek(offset, io.SeekStart); err != nil {
			return nil, fmt.Errorf("seeking to offset %d: %w", offset, err)
		}
	}

	if maxBytes > 0 {
		return limitedReadCloser{io.LimitReader(f, maxBytes), f}, nil
	}
	return f, nil
}

type limitedReadCloser struct {
	io.Reader
	io.Closer
}
