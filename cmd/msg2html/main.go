package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/forbes3100/macbak/internal/common"
	"github.com/forbes3100/macbak/internal/config"
	"github.com/forbes3100/macbak/internal/convert"
	"github.com/forbes3100/macbak/internal/utils"
	"github.com/spf13/cobra"
)

type flags struct {
	configPath  string
	debug       int
	externalDir string
	links       bool
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	cmd := &cobra.Command{
		Use:   common.ProgramName + " START_YEAR [END_YEAR]",
		Short: "Convert a Messages archive to one HTML document per year",
		Long: `Reads chat.db and writes YEAR.html for each year in the range, with
attachments shown inline. Run it from the Messages library directory or
point --config at a file naming the archive and its directories.

Examples:
  msg2html 2021                 # 2021.html
  msg2html 2019 2021            # 2019.html, 2020.html, 2021.html
  msg2html 2019-2021 -e ~/old   # also adopt attachments found under ~/old
  msg2html 2021 -f              # symlink received images into links/`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       common.ProgramVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f, args)
		},
	}
	cmd.Flags().StringVar(&f.configPath, "config", "", "Path to config")
	cmd.Flags().IntVarP(&f.debug, "debug", "d", 0, "Debug level; writes YEAR_dbg.html with notes")
	cmd.Flags().StringVarP(&f.externalDir, "extern", "e", "", "Secondary archive searched for missing attachments")
	cmd.Flags().BoolVarP(&f.links, "links", "f", false, "Symlink received images into the links directory")
	return cmd
}

func newLogger(debug int) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          common.ProgramName,
		ReportTimestamp: true,
	})
	if debug > 0 {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func run(cmd *cobra.Command, f *flags, args []string) error {
	start, end, err := utils.ParseYearRange(args)
	if err != nil {
		return err
	}

	cfg, err := config.ParseConfig(f.configPath)
	if err != nil {
		return err
	}

	logger := newLogger(f.debug)
	logger.Info("starting", "version", common.ProgramVersion, "archive", cfg.Archive.Path, "years", args)

	c, err := convert.New(cfg, convert.Options{
		Debug:       f.debug,
		ExternalDir: f.externalDir,
		Links:       f.links,
		Logger:      logger,
	})
	if err != nil {
		return err
	}
	defer c.Close()

	paths, err := c.ConvertRange(start, end)
	for _, p := range paths {
		cmd.Println(p)
	}
	return err
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}
