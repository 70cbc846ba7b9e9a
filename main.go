package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/polarsignals/elf-header/pkg/elfheader"
	"github.com/polarsignals/elf-header/pkg/elfutils"
	"github.com/polarsignals/elf-header/pkg/logger"

	"github.com/alecthomas/kong"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/sync/errgroup"
)

type flags struct {
	LogLevel    string   `kong:"enum='error,warn,info,debug',help='Log level.',default='info'"`
	LogFormat   string   `kong:"enum='logfmt,json',help='Log format.',default='logfmt'"`
	Concurrency int      `kong:"help='Number of files to decode in parallel.',default='4'"`
	Paths       []string `kong:"required,arg,name='path',help='File paths of the ELF objects to read the file header from.'"`
}

func main() {
	flags := flags{}
	_ = kong.Parse(&flags)
	l := logger.NewLogger(flags.LogLevel, flags.LogFormat, "")
	if err := run(context.Background(), l, os.Stdout, flags.Paths, flags.Concurrency); err != nil {
		level.Error(l).Log("err", err)
		os.Exit(1)
	}
	level.Debug(l).Log("msg", "done!")
}

func run(ctx context.Context, l log.Logger, out io.Writer, paths []string, concurrency int) error {
	headers := make([]elfheader.Header, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			// Skip files queued behind a failure or a cancelled caller.
			if err := gctx.Err(); err != nil {
				return err
			}
			h, err := elfutils.Open(path)
			if err != nil {
				return fmt.Errorf("failed to read ELF header: %w", err)
			}
			level.Debug(l).Log("msg", "decoded ELF header", "path", path, "class", h.Class, "machine", h.Machine)
			headers[i] = h
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, h := range headers {
		if len(paths) > 1 {
			fmt.Fprintf(out, "\nFile: %s\n", paths[i])
		}
		printHeader(out, h)
	}
	return nil
}

// printHeader renders h the way `readelf -h` lays it out.
func printHeader(out io.Writer, h elfheader.Header) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Field", "Value"})
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	u := func(v uint16) string { return strconv.FormatUint(uint64(v), 10) }
	table.AppendBulk([][]string{
		{"Class", h.Class.String()},
		{"Data", h.Endian.String() + " endian"},
		{"Version", h.Version.String()},
		{"OS/ABI", h.OSABI.String()},
		{"ABI Version", strconv.Itoa(int(h.ABIVersion))},
		{"Type", h.Type.String()},
		{"Machine", h.Machine.String()},
		{"Object Version", fmt.Sprintf("0x%x", h.ObjectVersion)},
		{"Entry point address", h.Entry.String()},
		{"Start of program headers", h.ProgramHeaderOffset.String()},
		{"Start of section headers", h.SectionHeaderOffset.String()},
		{"Flags", fmt.Sprintf("0x%x", h.Flags)},
		{"Size of this header", u(h.HeaderSize)},
		{"Size of program headers", u(h.ProgramHeaderEntrySize)},
		{"Number of program headers", u(h.ProgramHeaderCount)},
		{"Size of section headers", u(h.SectionHeaderEntrySize)},
		{"Number of section headers", u(h.SectionHeaderCount)},
		{"Section header string table index", u(h.SectionHeaderStringIndex)},
	})
	table.Render()
}
