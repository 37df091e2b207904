package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/meigma/tarprobe"
)

var (
	okColor   = color.New(color.FgGreen)
	failColor = color.New(color.FgRed)
	dimColor  = color.New(color.Faint)
)

func writeResults(w io.Writer, format string, results []fileResult) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(results); err != nil {
			return err
		}
		return enc.Close()
	default:
		for _, r := range results {
			if err := writeText(w, r); err != nil {
				return err
			}
		}
		return nil
	}
}

func writeText(w io.Writer, r fileResult) error {
	var err error
	printf := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	rep := r.Report
	switch {
	case rep == nil:
		printf("%s: %s: %s\n", r.Path, failColor.Sprint("error"), r.Error)
		return err
	case rep.WellFormed:
		var entries any = "?"
		if p, ok := rep.Property(tarprobe.PropertyEntryCount); ok {
			entries = p.Value
		}
		printf("%s: %s (%s, %v entries", r.Path, okColor.Sprint("well-formed"), rep.Version, entries)
		if p, ok := rep.Property(tarprobe.PropertyCompressionType); ok && p.Value != "none" {
			printf(", %v", p.Value)
		}
		printf(")\n")
	default:
		printf("%s: %s: %s\n", r.Path, failColor.Sprint("malformed"), rep.Message)
	}

	for _, c := range rep.Checksums {
		printf("  %-8s %s\n", c.Type, c.Value)
	}
	if p, ok := rep.Property(tarprobe.PropertyTOCDigest); ok {
		printf("  %-8s %v\n", "TOC", p.Value)
	}
	for _, name := range r.Entries {
		printf("  %s\n", dimColor.Sprint(name))
	}
	return err
}
