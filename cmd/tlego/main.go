// Command-line tool for handling TLE (Two-Line Element) sets.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gotle/tlecore/pkg/tle"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Version:   "v0.0.1",
		Compiled:  time.Now(),
		Copyright: "(c) 2026 gotle contributors",
		HelpName:  "tlego",
		Usage:     "a Two-Line Element toolkit",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "permissive", Usage: "downgrade checksum/range/classification errors to warnings"},
		},
		Commands: []*cli.Command{
			parseCommand,
			validateCommand,
			checksumCommand,
			reconstructCommand,
			catalogCommand,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func optionsFromContext(c *cli.Context) tle.Options {
	opts := tle.DefaultOptions()
	if c.Bool("permissive") {
		opts.Mode = tle.ModePermissive
	}
	return opts
}

var parseCommand = &cli.Command{
	Name:      "parse",
	Usage:     "parse a TLE file and print its decoded numeric view",
	ArgsUsage: "<file>",
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return cli.Exit("parse needs exactly one file argument", 1)
		}
		text, err := os.ReadFile(c.Args().Get(0))
		if err != nil {
			log.Fatal(err)
		}

		rec, err := tle.Parse(string(text), optionsFromContext(c))
		if err != nil {
			log.Fatal(err)
		}

		nv, err := tle.Normalize(rec)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Fprintf(c.App.Writer, "satellite_number: %d\n", nv.SatelliteNumber)
		fmt.Fprintf(c.App.Writer, "classification:   %s\n", nv.Classification)
		fmt.Fprintf(c.App.Writer, "epoch:            %s\n", nv.EpochInstant.Format(time.RFC3339))
		fmt.Fprintf(c.App.Writer, "julian_date:       %.6f\n", nv.JulianDate)
		fmt.Fprintf(c.App.Writer, "inclination_deg:  %.4f\n", nv.InclinationDeg)
		fmt.Fprintf(c.App.Writer, "eccentricity:     %.7f\n", nv.Eccentricity)
		fmt.Fprintf(c.App.Writer, "mean_motion:      %.8f\n", nv.MeanMotion)
		return nil
	},
}

var validateCommand = &cli.Command{
	Name:      "validate",
	Usage:     "run the layered validator and print every error/warning",
	ArgsUsage: "<file>",
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return cli.Exit("validate needs exactly one file argument", 1)
		}
		text, err := os.ReadFile(c.Args().Get(0))
		if err != nil {
			log.Fatal(err)
		}

		report, err := tle.Validate(string(text), optionsFromContext(c))
		if err != nil {
			log.Fatal(err)
		}

		for _, iss := range report.Errors {
			fmt.Fprintf(c.App.Writer, "ERROR   %s: %s\n", iss.Code, iss.Message)
		}
		for _, iss := range report.Warnings {
			fmt.Fprintf(c.App.Writer, "WARNING %s: %s\n", iss.Code, iss.Message)
		}
		if report.IsValid {
			fmt.Fprintln(c.App.Writer, "valid")
			return nil
		}
		return cli.Exit("invalid", 1)
	},
}

var checksumCommand = &cli.Command{
	Name:      "checksum",
	Usage:     "compute or verify a single 69-character TLE line's checksum",
	ArgsUsage: "<line>",
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return cli.Exit("checksum needs exactly one line argument", 1)
		}
		line := c.Args().Get(0)
		res, err := tle.ValidateChecksum(line)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Fprintf(c.App.Writer, "expected: %d\nactual:   %d\nvalid:    %t\n", res.Expected, res.Actual, res.Valid)
		return nil
	},
}

var reconstructCommand = &cli.Command{
	Name:      "reconstruct",
	Usage:     "parse a TLE and re-emit it, recomputing checksums",
	ArgsUsage: "<file>",
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return cli.Exit("reconstruct needs exactly one file argument", 1)
		}
		text, err := os.ReadFile(c.Args().Get(0))
		if err != nil {
			log.Fatal(err)
		}
		rec, err := tle.Parse(string(text), optionsFromContext(c))
		if err != nil {
			log.Fatal(err)
		}
		out, err := tle.Reconstruct(rec)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Fprintln(c.App.Writer, out)
		return nil
	},
}

var catalogCommand = &cli.Command{
	Name:  "catalog",
	Usage: "compress or decompress TLE catalog bundles in a directory",
	Subcommands: []*cli.Command{
		{
			Name:      "compress",
			ArgsUsage: "<dir>",
			Action:    walkCatalogDir(func(f *tle.CatalogFile) error { return f.Compress() }),
		},
		{
			Name:      "decompress",
			ArgsUsage: "<dir>",
			Action:    walkCatalogDir(func(f *tle.CatalogFile) error { return f.Decompress() }),
		},
	},
}

// walkCatalogDir grounds its directory walk on cmd/rnxgo's
// compressRINEXFiles closure: list the directory with os.ReadDir (no
// recursion into subdirectories), act on each .tle or .tle.gz file, log
// and continue rather than abort on a single failure.
func walkCatalogDir(action func(*tle.CatalogFile) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		if c.NArg() != 1 {
			return cli.Exit("expected exactly one directory argument", 1)
		}
		root := c.Args().Get(0)
		entries, err := os.ReadDir(root)
		if err != nil {
			log.Fatal(err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".tle") && !strings.HasSuffix(entry.Name(), ".tle.gz") {
				continue
			}
			path := root + string(os.PathSeparator) + entry.Name()
			cat, err := tle.NewCatalogFile(path)
			if err != nil {
				log.Printf("catalog file: %v", err)
				continue
			}
			if err := action(cat); err != nil {
				log.Printf("catalog action: %v", err)
				continue
			}
			log.Printf("ok: %s", cat.Path)
		}
		return nil
	}
}
