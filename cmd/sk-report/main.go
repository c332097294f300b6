// sk-report runs validation reports over flat text collections and exported
// OpenLyrics files.
//
// $ sk-report -r missing-pallavi english.txt
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/zionsongs/songkit"
	"github.com/zionsongs/songkit/align"
	"github.com/zionsongs/songkit/atomicfile"
	"github.com/zionsongs/songkit/convert"
	"github.com/zionsongs/songkit/parse"
	"github.com/zionsongs/songkit/report"
	"github.com/zionsongs/songkit/song"
	"github.com/zionsongs/songkit/validate"
	"github.com/zionsongs/songkit/xio"
)

var docs = strings.TrimLeft(`
# sk-report - validation reports

Reports (-r) and their inputs:

    missing-pallavi       FILE              songs with lyrics but no pallavi
    anupallavi            FILE              anupallavi without pallavi
    verse-before-refrain  FILE              refrain markers after verses
    verses                -a L:FILE -b L:FILE   verse count mismatches
    refrains              -a L:FILE -b L:FILE   pallavi/anupallavi presence
    coverage              -langs en,te,ta,hi XML...  language coverage CSVs into -o
    titles                -catalog CSV -te FILE -ta FILE -hi FILE
    listing               FILE              catalog rows from a Telugu file

    $ sk-report -r verses -a en:english.txt -b te:telugu.txt
    $ sk-report -r coverage -o reports/ out/xml/*.xml

## flags

`, "\n")

var (
	reportName  = flag.String("r", "", "report name")
	sideA       = flag.String("a", "", "first collection, as lang:file")
	sideB       = flag.String("b", "", "second collection, as lang:file")
	langList    = flag.String("langs", "en,te,ta,hi", "languages expected in every section")
	catalogFile = flag.String("catalog", "", "song catalog CSV")
	teluguFile  = flag.String("te", "", "Telugu flat text")
	tamilFile   = flag.String("ta", "", "Tamil flat text")
	hindiFile   = flag.String("hi", "", "Hindi flat text")
	output      = flag.String("o", "", "output file, or directory for coverage")
	verbose     = flag.Bool("v", false, "debug logging")
	showVersion = flag.Bool("version", false, "show version")
)

var reports = map[string]func(w io.Writer, issues *report.Log) error{
	"missing-pallavi":      missingPallavi,
	"anupallavi":           anupallavi,
	"verse-before-refrain": verseBeforeRefrain,
	"verses":               verses,
	"refrains":             refrains,
	"coverage":             coverage,
	"titles":               titles,
	"listing":              listing,
}

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
	run, ok := reports[*reportName]
	if !ok {
		var names []string
		for k := range reports {
			names = append(names, k)
		}
		sort.Strings(names)
		log.Fatalf("unknown report %q, available: %s", *reportName, strings.Join(names, ", "))
	}
	issues := report.NewLog(nil)
	var (
		w io.Writer = os.Stdout
		f *atomicfile.File
	)
	if *output != "" && *reportName != "coverage" {
		var err error
		if f, err = atomicfile.Create(*output); err != nil {
			log.Fatal(err)
		}
		w = f
	}
	if err := run(w, issues); err != nil {
		log.Fatal(err)
	}
	if f != nil {
		if err := f.Close(); err != nil {
			log.Fatal(err)
		}
	}
	log.Info(issues.Summary())
}

// load parses a flat text file; parse warnings are only logged at debug
// level, reports list their own findings.
func load(name string, lang song.Lang) (*song.Collection, []report.Issue) {
	if name == "" {
		return song.NewCollection(), nil
	}
	rc, err := xio.Open(name)
	if err != nil {
		log.Fatal(err)
	}
	defer rc.Close()
	opts := parse.DefaultOptions()
	opts.Source, opts.DefaultLang = name, lang
	result, err := parse.Parse(rc, opts)
	if err != nil {
		log.Fatal(err)
	}
	for _, issue := range result.Issues {
		log.Debug(issue)
	}
	return result.Songs, result.Issues
}

func side(s string) validate.Side {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		log.Fatalf("want lang:file, got %q", s)
	}
	lang, err := song.ParseLang(parts[0])
	if err != nil {
		log.Fatal(err)
	}
	c, _ := load(parts[1], lang)
	return validate.Side{Lang: lang, Songs: c}
}

func writeIssues(w io.Writer, issues []report.Issue) error {
	for _, issue := range issues {
		if _, err := fmt.Fprintln(w, issue); err != nil {
			return err
		}
	}
	return nil
}

func missingPallavi(w io.Writer, issues *report.Log) error {
	c, _ := load(flag.Arg(0), "")
	return validate.WriteSongList(w, validate.WithoutPallavi(c))
}

func anupallavi(w io.Writer, issues *report.Log) error {
	c, _ := load(flag.Arg(0), "")
	found := validate.AnupallaviWithoutPallavi(c, flag.Arg(0))
	issues.AddAll(found)
	return writeIssues(w, found)
}

func verseBeforeRefrain(w io.Writer, issues *report.Log) error {
	_, parsed := load(flag.Arg(0), "")
	var found []report.Issue
	for _, issue := range parsed {
		if issue.Kind == report.Anomaly && strings.HasSuffix(issue.Message, "after verses") {
			found = append(found, issue)
		}
	}
	issues.AddAll(found)
	return writeIssues(w, found)
}

func verses(w io.Writer, issues *report.Log) error {
	return validate.WriteVerseReport(w, side(*sideA), side(*sideB))
}

func refrains(w io.Writer, issues *report.Log) error {
	found := validate.RefrainAlignment(side(*sideA), side(*sideB))
	issues.AddAll(found)
	return writeIssues(w, found)
}

func coverage(_ io.Writer, issues *report.Log) error {
	var langs []song.Lang
	for _, s := range strings.Split(*langList, ",") {
		lang, err := song.ParseLang(s)
		if err != nil {
			return err
		}
		langs = append(langs, lang)
	}
	dir := *output
	if dir == "" {
		dir = "."
	}
	var files []*atomicfile.File
	for _, name := range []string{"missing_languages.csv", "verses_missing_languages.csv", "choruses_missing_languages.csv"} {
		f, err := atomicfile.Create(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		files = append(files, f)
	}
	var (
		cw    = validate.NewCoverageWriter(files[0], files[1], files[2])
		codes = validate.Codes(langs)
	)
	for _, name := range flag.Args() {
		rc, err := xio.Open(name)
		if err != nil {
			issues.Addf(report.Skipped, name, "", "%v", err)
			continue
		}
		cov, err := validate.CheckOpenLyrics(filepath.Base(name), rc, codes)
		rc.Close()
		if convert.IsSkip(err) {
			issues.Addf(report.Skipped, name, "", "%v", err)
			continue
		}
		if err != nil {
			return err
		}
		if err := cw.Write(cov); err != nil {
			return err
		}
	}
	if err := cw.Flush(); err != nil {
		return err
	}
	for _, f := range files {
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

func titles(w io.Writer, issues *report.Log) error {
	catalog, err := align.LoadCatalogFile(*catalogFile)
	if err != nil {
		return err
	}
	telugu, _ := load(*teluguFile, song.Telugu)
	tamil, _ := load(*tamilFile, song.Tamil)
	hindi, _ := load(*hindiFile, song.Hindi)
	return validate.WriteTitles(w, validate.TitleRows(catalog, telugu, tamil, hindi))
}

func listing(w io.Writer, issues *report.Log) error {
	c, _ := load(flag.Arg(0), song.Telugu)
	return align.WriteCatalog(w, validate.Listing(c))
}
