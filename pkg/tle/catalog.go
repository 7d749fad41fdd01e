package tle

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mholt/archiver/v3"
)

// CatalogFile wraps a single on-disk TLE catalog bundle (the
// concatenation of many 2- or 3-line records CelesTrak and similar
// feeds distribute, routinely gzip- or tar-compressed). It mirrors
// pkg/rinex's ObsFile.Compress idiom: a thin wrapper that delegates
// to archiver/v3 rather than reimplementing container formats.
type CatalogFile struct {
	Path        string
	Compression string // "", "gz", "tar.gz", ...
}

// NewCatalogFile stats path and classifies its compression from its
// extension.
func NewCatalogFile(path string) (*CatalogFile, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("tle: catalog file: %w", err)
	}
	return &CatalogFile{Path: path, Compression: compressionOf(path)}, nil
}

func compressionOf(path string) string {
	switch {
	case strings.HasSuffix(path, ".tar.gz"), strings.HasSuffix(path, ".tgz"):
		return "tar.gz"
	case strings.HasSuffix(path, ".gz"):
		return "gz"
	case strings.HasSuffix(path, ".zip"):
		return "zip"
	default:
		return ""
	}
}

// Compress gzip-compresses the catalog bundle in place, removing the
// source file once compression succeeds. No-op if already compressed.
func (f *CatalogFile) Compress() error {
	if f.Compression != "" {
		return nil
	}
	dst := f.Path + ".gz"
	if err := archiver.CompressFile(f.Path, dst); err != nil {
		return fmt.Errorf("tle: compress catalog: %w", err)
	}
	if err := os.Remove(f.Path); err != nil {
		return fmt.Errorf("tle: remove source catalog: %w", err)
	}
	f.Path = dst
	f.Compression = "gz"
	return nil
}

// Decompress extracts the catalog bundle, removing the compressed
// source once decompression succeeds. No-op if not compressed.
func (f *CatalogFile) Decompress() error {
	if f.Compression == "" {
		return nil
	}
	dst := strings.TrimSuffix(f.Path, "."+f.Compression)
	if err := archiver.DecompressFile(f.Path, dst); err != nil {
		return fmt.Errorf("tle: decompress catalog: %w", err)
	}
	if err := os.Remove(f.Path); err != nil {
		return fmt.Errorf("tle: remove compressed catalog: %w", err)
	}
	f.Path = dst
	f.Compression = ""
	return nil
}

// Records splits an uncompressed catalog bundle into its individual
// 2- or 3-line TLE records and parses each independently with opts,
// grounded on the per-epoch scanning loop in pkg/rinex/obsdecoder.go
// (read lines, detect a record boundary, hand the accumulated lines
// to the decoder). A catalog entry that fails to parse does not abort
// the scan; its error is collected in the returned slice alongside
// successfully parsed records, in file order.
func (f *CatalogFile) Records(opts Options) ([]ParsedRecord, []error, error) {
	if f.Compression != "" {
		return nil, nil, fmt.Errorf("tle: catalog must be decompressed before reading records")
	}
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("tle: open catalog: %w", err)
	}
	defer file.Close()

	var records []ParsedRecord
	var errs []error
	var chunk []string

	flush := func() {
		if len(chunk) == 0 {
			return
		}
		rec, err := Parse(strings.Join(chunk, "\n"), opts)
		if err != nil {
			errs = append(errs, err)
		} else {
			records = append(records, rec)
		}
		chunk = chunk[:0]
	}

	sc := bufio.NewScanner(file)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if len(chunk) > 0 && strings.HasPrefix(line, "1 ") && strings.HasPrefix(chunk[len(chunk)-1], "1 ") {
			// A fresh line-1 while the chunk's last line is itself a
			// line-1 means the previous record was truncated before
			// its line-2 ever arrived; flush what we have so the scan
			// keeps moving.
			flush()
		}
		chunk = append(chunk, line)
		if len(chunk) >= 2 && chunk[len(chunk)-1][0] == '2' {
			flush()
		}
	}
	flush()
	if err := sc.Err(); err != nil {
		return records, errs, fmt.Errorf("tle: scan catalog: %w", err)
	}
	return records, errs, nil
}
