// sk-merge aligns per-language song collections through the song catalog
// and writes one interleaved OpenLyrics file per song.
//
// $ sk-merge -catalog songs_catalog.csv -en english.txt -te telugu.txt \
//	-ta tamil.txt -hi hindi.txt -o out/
package main

import (
	"bytes"
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
	"github.com/zionsongs/songkit/config"
	"github.com/zionsongs/songkit/convert"
	"github.com/zionsongs/songkit/parse"
	"github.com/zionsongs/songkit/report"
	"github.com/zionsongs/songkit/song"
	"github.com/zionsongs/songkit/xflag"
	"github.com/zionsongs/songkit/xio"
)

var docs = strings.TrimLeft(`
# sk-merge - merge language collections into interleaved OpenLyrics

Every catalog row (SongNumber, v1TeluguNo, v2TeluguNo, TamilNumber,
HindiNumber) yields one song with the text of all languages, each wrapped in
{lang-xxx} spans. Tamil and Hindi songs not referenced by the catalog are
exported on their own (-unmatched).

Output directory contents:

    xml/                      one file per song
    trace_log.txt             warnings, one per line, and a summary
    duplicates_report.csv     songs skipped as duplicates
    songs_export_summary.csv  exported songs with numbers and titles

## flags

`, "\n")

var (
	catalogFile = flag.String("catalog", "", "song catalog CSV, default from config")
	englishFile = flag.String("en", "", "English flat text")
	teluguFile  = flag.String("te", "", "Telugu flat text")
	tamilFile   = flag.String("ta", "", "Tamil flat text")
	hindiFile   = flag.String("hi", "", "Hindi flat text")
	outputDir   = flag.String("o", "out", "output directory")
	unmatched   = flag.Bool("unmatched", true, "export Tamil and Hindi songs not in the catalog")
	orphans     = flag.String("orphans", "verse", "lines outside of any section: discard, attach, verse")
	byOrdinal   = flag.Bool("merge-ordinal", false, "select verses by their number, so languages line up verse by verse")
	songbook    = flag.String("songbook", "", "songbook name, default from config")
	author      = flag.String("author", "", "author, default from config")
	envFile     = flag.String("env", "", "load environment from this file")
	verbose     = flag.Bool("v", false, "debug logging")
	showVersion = flag.Bool("version", false, "show version")
	modified    xflag.Date
)

func main() {
	flag.Var(&modified, "modified-date", "OpenLyrics modifiedDate, default beginning of today")
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
	var envFiles []string
	if *envFile != "" {
		envFiles = append(envFiles, *envFile)
	}
	cfg, err := config.Load(envFiles...)
	if err != nil {
		log.Fatal(err)
	}
	if *catalogFile == "" {
		*catalogFile = cfg.Catalog
	}
	catalog, err := align.LoadCatalogFile(*catalogFile)
	if err != nil {
		log.Fatal(err)
	}
	policy, ok := parse.ParseOrphanPolicy(*orphans)
	if !ok {
		log.Fatalf("unknown orphan policy: %s", *orphans)
	}
	trace, err := atomicfile.Create(filepath.Join(*outputDir, "trace_log.txt"))
	if err != nil {
		log.Fatal(err)
	}
	issues := report.NewLog(trace)
	issues.Note("Song Processing Trace Log\n")
	var (
		aligner = &align.Aligner{
			Catalog:   catalog,
			Sources:   make(map[song.Lang]*song.Collection),
			Unmatched: *unmatched,
		}
		files = []struct {
			lang song.Lang
			name string
		}{
			{song.English, *englishFile},
			{song.Telugu, *teluguFile},
			{song.Tamil, *tamilFile},
			{song.Hindi, *hindiFile},
		}
	)
	for _, f := range files {
		if f.name == "" {
			aligner.Sources[f.lang] = song.NewCollection()
			continue
		}
		rc, err := xio.Open(f.name)
		if err != nil {
			log.Fatal(err)
		}
		opts := parse.DefaultOptions()
		opts.Source, opts.DefaultLang, opts.Orphans = f.name, f.lang, policy
		opts.MergeByOrdinal = *byOrdinal
		result, err := parse.Parse(rc, opts)
		rc.Close()
		if err != nil {
			log.Fatal(err)
		}
		issues.AddAll(result.Issues)
		aligner.Sources[f.lang] = result.Songs
		log.WithFields(log.Fields{"lang": f.lang, "songs": result.Songs.Len()}).Info("loaded")
	}
	result := aligner.Merge()
	issues.AddAll(result.Issues)
	opts := convert.OpenLyricsOptions{
		Songbook: cfg.Songbook,
		Author:   cfg.Author,
		Modified: cfg.Modified,
	}
	if *songbook != "" {
		opts.Songbook = *songbook
	}
	if *author != "" {
		opts.Author = *author
	}
	if !modified.IsZero() {
		opts.Modified = modified.Time
	}
	xmlDir := filepath.Join(*outputDir, "xml")
	for _, m := range result.Songs {
		var buf bytes.Buffer
		if err := convert.WriteOpenLyrics(&buf, convert.MergedToOpenLyrics(m, opts)); err != nil {
			log.Fatal(err)
		}
		name := filepath.Join(xmlDir, convert.SafeFilename(m.ID, m.FileTitle(), ".xml"))
		if err := atomicfile.WriteFile(name, buf.Bytes()); err != nil {
			log.Fatal(err)
		}
		issues.Note("Saved: %s", name)
	}
	writeCSV(filepath.Join(*outputDir, "duplicates_report.csv"), func(w io.Writer) error {
		return align.WriteDuplicates(w, result.Duplicates)
	})
	writeCSV(filepath.Join(*outputDir, "songs_export_summary.csv"), func(w io.Writer) error {
		return align.WriteExportSummary(w, result.Songs)
	})
	stats := result.Stats()
	issues.Note("Export Summary:")
	issues.Note("  Matched songs: %d", stats.Matched)
	for _, lang := range []song.Lang{song.Tamil, song.Hindi} {
		ids := stats.Unmatched[lang]
		issues.Note("  Unmatched %s songs exported: %d -> %v", lang.Name(), len(ids), ids)
	}
	issues.Note("  Duplicates skipped: %d", stats.Duplicates)
	issues.Note("  Total songs exported: %d", stats.Total())
	issues.Note("  %s", issues.Summary())
	if err := issues.Err(); err != nil {
		log.Fatal(err)
	}
	if err := trace.Close(); err != nil {
		log.Fatal(err)
	}
}

func writeCSV(name string, write func(io.Writer) error) {
	f, err := atomicfile.Create(name)
	if err != nil {
		log.Fatal(err)
	}
	if err := write(f); err != nil {
		f.Abort()
		log.Fatal(err)
	}
	if err := f.Close(); err != nil {
		log.Fatal(err)
	}
}
