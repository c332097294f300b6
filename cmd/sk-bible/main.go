// sk-bible merges bibles of several languages into a single OSIS document,
// with one language span per verse.
//
// $ sk-bible -o EN-TE.osis.xml en=english.xml te=telugu.xml
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/zionsongs/songkit"
	"github.com/zionsongs/songkit/atomicfile"
	"github.com/zionsongs/songkit/bible"
	"github.com/zionsongs/songkit/report"
	"github.com/zionsongs/songkit/song"
)

var docs = strings.TrimLeft(`
# sk-bible - merge bibles into OSIS

Arguments are lang=file pairs; the first bible is primary and defines books,
chapters, verses and their order. Zefania (BIBLEBOOK/CHAPTER/VERS) and
numbered (testament/book/chapter/verse) layouts are read.

    $ sk-bible -o merged.xml en=english.xml te=telugu.xml
    $ sk-bible -w warnings.txt en=english.xml te=telugu.xml ta=tamil.xml > merged.xml

## flags

`, "\n")

var (
	output      = flag.String("o", "", "output file, stdout if empty")
	warnings    = flag.String("w", "", "write missing verse warnings to this file")
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
	if flag.NArg() == 0 {
		log.Fatal("at least one lang=file argument required")
	}
	var bibles []*bible.Bible
	for _, arg := range flag.Args() {
		parts := strings.SplitN(arg, "=", 2)
		if len(parts) != 2 {
			log.Fatalf("want lang=file, got %q", arg)
		}
		lang, err := song.ParseLang(parts[0])
		if err != nil {
			log.Fatal(err)
		}
		b, err := bible.ReadFile(parts[1], lang)
		if err != nil {
			log.Fatal(err)
		}
		log.WithFields(log.Fields{"lang": lang, "file": parts[1], "verses": b.Len()}).Info("read bible")
		bibles = append(bibles, b)
	}
	var logw io.Writer
	if *warnings != "" {
		f, err := atomicfile.Create(*warnings)
		if err != nil {
			log.Fatal(err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				log.Fatal(err)
			}
		}()
		logw = f
	}
	issues := report.NewLog(logw)
	if logw != nil {
		// Missing verses can be plenty, keep them out of the console.
		issues.Logger = nil
	}
	m := &bible.Merger{Primary: bibles[0], Bibles: bibles}
	doc, found := m.Merge()
	issues.AddAll(found)
	if *output == "" {
		if err := bible.Write(os.Stdout, doc); err != nil {
			log.Fatal(err)
		}
	} else {
		f, err := atomicfile.Create(*output)
		if err != nil {
			log.Fatal(err)
		}
		if err := bible.Write(f, doc); err != nil {
			f.Abort()
			log.Fatal(err)
		}
		if err := f.Close(); err != nil {
			log.Fatal(err)
		}
	}
	if err := issues.Err(); err != nil {
		log.Fatal(err)
	}
	log.WithField("work", m.Work()).Info(issues.Summary())
}
