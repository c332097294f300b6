// sk-convert converts song collections between flat tagged text, OpenLyrics
// XML and JSON lines.
//
// $ sk-convert -f text -t openlyrics -o xml/ english.txt
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
	"github.com/zionsongs/songkit/atomicfile"
	"github.com/zionsongs/songkit/config"
	"github.com/zionsongs/songkit/convert"
	"github.com/zionsongs/songkit/parse"
	"github.com/zionsongs/songkit/report"
	"github.com/zionsongs/songkit/song"
	"github.com/zionsongs/songkit/xflag"
	"github.com/zionsongs/songkit/xio"
	"github.com/zionsongs/songkit/xmlsplit"
)

var docs = strings.TrimLeft(`
# sk-convert - convert song collections

Source formats (-f):

    text        flat tagged text, zion or cis dialect (-d)
    openlyrics  one OpenLyrics song per file
    songs       <songs> collections of OpenLyrics songs

Target formats (-t):

    text        flat tagged text, to stdout or -o file
    openlyrics  one file per song, "{number}_{title}.xml", into -o directory
    jsonl       one JSON object per song

Inputs may be compressed (.zst, .gz).

    $ sk-convert -f openlyrics -t text -d cis export/*.xml > christinsong.txt
    $ sk-convert -f text -t openlyrics -lang te -o xml/ telugu.txt.zst

## flags

`, "\n")

var (
	fromFormat   = flag.String("f", "text", "source format: text, openlyrics, songs")
	toFormat     = flag.String("t", "openlyrics", "target format: text, openlyrics, jsonl")
	dialectName  = flag.String("d", "zion", "flat text dialect: zion, cis")
	output       = flag.String("o", "", "output file or, for openlyrics, directory")
	langCode     = flag.String("lang", "", "language of the input; titles without prefix and sentinel spans")
	songbook     = flag.String("songbook", "", "songbook name, default from config")
	author       = flag.String("author", "", "author, default from config")
	teluguLabels = flag.Bool("telugu-labels", false, "write refrain labels in Telugu script")
	orphans      = flag.String("orphans", "discard", "lines outside of any section: discard, attach, verse")
	byOrdinal    = flag.Bool("merge-ordinal", false, "select verses by their number, merging repeated and sorting out of order verses")
	rulesFile    = flag.String("rules", "", "JSON file with line patterns")
	issueLog     = flag.String("log", "", "write warnings to this file")
	envFile      = flag.String("env", "", "load environment from this file")
	verbose      = flag.Bool("v", false, "debug logging")
	showVersion  = flag.Bool("version", false, "show version")
	modified     xflag.Date
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
	log.WithFields(cfg.Fields()).Debug("config")
	lang, err := song.ParseLang(*langCode)
	if err != nil {
		log.Fatal(err)
	}
	dialect, err := convert.ParseDialect(*dialectName)
	if err != nil {
		log.Fatal(err)
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
	records := read(lang, issues)
	log.WithField("songs", len(records)).Info("read")
	switch *toFormat {
	case "text", "jsonl":
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
		if *toFormat == "jsonl" {
			jw := convert.NewJSONWriter(w)
			for _, r := range records {
				if err := jw.Write(r); err != nil {
					log.Fatal(err)
				}
			}
			if err := jw.Flush(); err != nil {
				log.Fatal(err)
			}
			break
		}
		opts := convert.TextOptions{Dialect: dialect, TeluguLabels: *teluguLabels}
		if err := convert.WriteText(w, records, opts); err != nil {
			log.Fatal(err)
		}
	case "openlyrics":
		if *output == "" {
			log.Fatal("openlyrics output needs a directory, use -o")
		}
		opts := convert.OpenLyricsOptions{
			Songbook: firstNonEmpty(*songbook, cfg.Songbook),
			Author:   firstNonEmpty(*author, cfg.Author),
			Modified: cfg.Modified,
			Lang:     lang,
		}
		if !modified.IsZero() {
			opts.Modified = modified.Time
		}
		var n int
		for _, r := range records {
			title := r.Title(song.English)
			if title == "" {
				title = r.FirstTitle()
			}
			var buf bytes.Buffer
			if err := convert.WriteOpenLyrics(&buf, convert.RecordToOpenLyrics(r, opts)); err != nil {
				log.Fatal(err)
			}
			name := filepath.Join(*output, convert.SafeFilename(r.Number.String(), title, ".xml"))
			if err := atomicfile.WriteFile(name, buf.Bytes()); err != nil {
				log.Fatal(err)
			}
			log.WithField("file", name).Debug("saved")
			n++
		}
		log.WithFields(log.Fields{"dir": *output, "songs": n}).Info("saved")
	default:
		log.Fatalf("unknown target format: %s", *toFormat)
	}
	log.Info(issues.Summary())
}

func firstNonEmpty(vs ...string) string {
	for _, v := range vs {
		if v != "" {
			return v
		}
	}
	return ""
}

func inputs() []string {
	if flag.NArg() == 0 {
		return []string{"-"}
	}
	return flag.Args()
}

func open(name string) (io.ReadCloser, error) {
	if name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return xio.Open(name)
}

// read collects records from all inputs, in input order. Unreadable inputs
// are logged and skipped.
func read(lang song.Lang, issues *report.Log) []*song.Record {
	var (
		records []*song.Record
		skip    = func(name string, err error) {
			issues.Addf(report.Skipped, name, "", "%v", err)
		}
	)
	opts := parse.DefaultOptions()
	opts.DefaultLang = lang
	opts.MergeByOrdinal = *byOrdinal
	if policy, ok := parse.ParseOrphanPolicy(*orphans); ok {
		opts.Orphans = policy
	} else {
		log.Fatalf("unknown orphan policy: %s", *orphans)
	}
	if *rulesFile != "" {
		patterns, err := parse.LoadPatternsFile(*rulesFile)
		if err != nil {
			log.Fatal(err)
		}
		if opts.Rules, err = patterns.Compile(); err != nil {
			log.Fatal(err)
		}
	}
	for _, name := range inputs() {
		rc, err := open(name)
		if err != nil {
			skip(name, err)
			continue
		}
		switch *fromFormat {
		case "text":
			opts.Source = name
			result, err := parse.Parse(rc, opts)
			if err != nil {
				skip(name, err)
				break
			}
			issues.AddAll(result.Issues)
			records = append(records, result.Songs.Records()...)
		case "openlyrics":
			r, err := convert.ReadOpenLyrics(rc)
			if err != nil {
				skip(name, err)
				break
			}
			records = append(records, r)
		case "songs":
			var i int
			err := xmlsplit.Each(rc, "song", func(b []byte) error {
				i++
				r, err := convert.ReadOpenLyrics(bytes.NewReader(b))
				if convert.IsSkip(err) {
					skip(fmt.Sprintf("%s#%d", name, i), err)
					return nil
				}
				if err != nil {
					return err
				}
				records = append(records, r)
				return nil
			})
			if err != nil {
				skip(name, err)
			}
		default:
			log.Fatalf("unknown source format: %s", *fromFormat)
		}
		rc.Close()
	}
	return records
}
