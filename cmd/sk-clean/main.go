// sk-clean turns raw song sources into flat tagged text.
//
// $ sk-clean -m telugu all_songs_telugu.txt > telugu.txt
// $ sk-clean -labeled ta -catalog songs_catalog.csv tamil/*.txt > tamil.txt
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/zionsongs/songkit"
	"github.com/zionsongs/songkit/align"
	"github.com/zionsongs/songkit/atomicfile"
	"github.com/zionsongs/songkit/cleanup"
	"github.com/zionsongs/songkit/convert"
	"github.com/zionsongs/songkit/report"
	"github.com/zionsongs/songkit/song"
	"github.com/zionsongs/songkit/xio"
)

var docs = strings.TrimLeft(`
# sk-clean - clean raw song sources

Scraped dumps of songsofzion.org pages have titles starting with a dot
(".12. Title"); use -m to select english, telugu or interleaved text.

	$ sk-clean -m english raw.txt > english.txt

Labeled per-song files of the Tamil and Hindi books, named after the song
number, mark lines with "c:", "ec:", "s1." and "ch:" labels. Each file
becomes one record; Telugu reference numbers come from the catalog.

	$ sk-clean -labeled hi -catalog songs_catalog.csv hindi/*.txt > hindi.txt

## flags

`, "\n")

var (
	mode        = flag.String("m", "english", "scraped layout: english, telugu or interleaved")
	labeled     = flag.String("labeled", "", "clean labeled per-song files of this language (ta, hi)")
	catalogFile = flag.String("catalog", "", "song catalog CSV, for Telugu reference numbers")
	output      = flag.String("o", "", "output file, default stdout")
	issueLog    = flag.String("log", "", "write warnings to this file")
	verbose     = flag.Bool("v", false, "debug logging")
	showVersion = flag.Bool("version", false, "show version")
)

func main() {
	flag.Usage = func() {
		io.WriteString(os.Stderr, docs)
		flag.PrintDefaults()
	}
	flag.Parse()
	if *showVersion {
		fmt.Println(songkit.Version)
		os.Exit(0)
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}
	var w io.Writer = os.Stdout
	if *output != "" {
		f, err := atomicfile.Create(*output)
		if err != nil {
			log.Fatal(err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				log.Fatal(err)
			}
		}()
		w = f
	}
	var logw io.Writer
	if *issueLog != "" {
		f, err := atomicfile.Create(*issueLog)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		logw = f
	}
	issues := report.NewLog(logw)
	if *labeled != "" {
		cleanLabeled(w, issues)
	} else {
		cleanScraped(w, issues)
	}
	log.Info(issues.Summary())
}

func cleanScraped(w io.Writer, issues *report.Log) {
	m, err := cleanup.ParseMode(*mode)
	if err != nil {
		log.Fatal(err)
	}
	var (
		r      io.Reader = os.Stdin
		source           = "stdin"
	)
	if flag.NArg() > 0 {
		source = flag.Arg(0)
		rc, err := xio.Open(source)
		if err != nil {
			log.Fatal(err)
		}
		defer rc.Close()
		r = rc
	}
	s := &cleanup.Scraped{Mode: m, Source: source}
	found, err := s.Clean(r, w)
	issues.AddAll(found)
	if err != nil {
		log.Fatal(err)
	}
	log.WithFields(log.Fields{"mode": m, "songs": s.Songs()}).Info("cleaned")
}

func cleanLabeled(w io.Writer, issues *report.Log) {
	lang, err := song.ParseLang(*labeled)
	if err != nil {
		log.Fatal(err)
	}
	var catalog *align.Catalog
	if *catalogFile != "" {
		if catalog, err = align.LoadCatalogFile(*catalogFile); err != nil {
			log.Fatal(err)
		}
	}
	cleaner, found := cleanup.NewLabeled(lang, catalog)
	issues.AddAll(found)
	records := song.NewCollection()
	for _, name := range flag.Args() {
		rc, err := xio.Open(name)
		if err != nil {
			issues.Addf(report.Skipped, name, "", "%v", err)
			continue
		}
		r, found, err := cleaner.Clean(filepath.Base(name), rc)
		rc.Close()
		issues.AddAll(found)
		if convert.IsSkip(err) {
			issues.Addf(report.Skipped, name, "", "%v", err)
			continue
		}
		if err != nil {
			log.Fatal(err)
		}
		if records.Add(r) {
			issues.Addf(report.Duplicate, name, r.Number.String(), "duplicate song number, earlier file replaced")
		}
	}
	if err := convert.WriteText(w, records.Sorted(), convert.TextOptions{}); err != nil {
		log.Fatal(err)
	}
	log.WithFields(log.Fields{"lang": lang, "songs": records.Len()}).Info("cleaned")
}
