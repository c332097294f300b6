// sk-feed scrapes song collections from the web and writes them as flat
// tagged text. Requests are sequential and delayed; index pages are cached.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sethgrid/pester"
	log "github.com/sirupsen/logrus"
	"github.com/zionsongs/songkit"
	"github.com/zionsongs/songkit/atomicfile"
	"github.com/zionsongs/songkit/config"
	"github.com/zionsongs/songkit/convert"
	"github.com/zionsongs/songkit/dateutil"
	"github.com/zionsongs/songkit/feeds"
	"github.com/zionsongs/songkit/report"
)

var docs = strings.TrimLeft(`
# sk-feed - scrape song collections

## list sources

$ sk-feed -l
zion
memphis

## fetch

The zion source writes English, Telugu or interleaved text; memphis writes
Christ in Song tagged text.

$ sk-feed -s zion -layout interleaved -o zion.txt
$ sk-feed -s memphis -o christ_in_song.txt

Index pages are cached under the XDG cache directory, see -cache-ttl and
-cache-window.

## flags

`, "\n")

var availableSources = []string{
	"zion",
	"memphis",
}

var (
	fetchSource = flag.String("s", "", "name of the source to fetch")
	listSources = flag.Bool("l", false, "list available source names")
	layout      = flag.String("layout", "english", "zion output layout: english, telugu, interleaved")
	sourceURL   = flag.String("u", "", "override the source URL")
	output      = flag.String("o", "", "output file, stdout if empty")
	envFile     = flag.String("env", "", "environment file to load")
	cacheTTL    = flag.Duration("cache-ttl", feeds.DefaultCacheTTL, "reuse cached index pages younger than this")
	cacheWindow = flag.String("cache-window", "", "reuse cached index pages fetched in the current hourly, daily, weekly or monthly window")
	logFile     = flag.String("log", "", "write skipped pages to this file")
	delay       = flag.Duration("delay", 0, "pause between requests, SONGKIT_DELAY or 500ms if zero")
	maxRetries  = flag.Int("r", 0, "max retries, SONGKIT_MAX_RETRIES or 3 if zero")
	timeout     = flag.Duration("T", 0, "connection timeout, SONGKIT_TIMEOUT or 30s if zero")
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
	if *listSources {
		for _, s := range availableSources {
			fmt.Println(s)
		}
		os.Exit(0)
	}
	if !isSource(*fetchSource) {
		log.Fatalf("unknown source %q, use -l to list sources", *fetchSource)
	}
	var envFiles []string
	if *envFile != "" {
		envFiles = append(envFiles, *envFile)
	}
	cfg, err := config.Load(envFiles...)
	if err != nil {
		log.Fatal(err)
	}
	if *delay == 0 {
		*delay = cfg.Delay
	}
	if *maxRetries == 0 {
		*maxRetries = cfg.MaxRetries
	}
	if *timeout == 0 {
		*timeout = cfg.Timeout
	}
	client := pester.New()
	client.Backoff = pester.ExponentialBackoff
	client.MaxRetries = *maxRetries
	client.RetryOnHTTP429 = true
	client.Timeout = *timeout
	fetcher, err := feeds.NewFetcher(client, *fetchSource)
	if err != nil {
		log.Fatal(err)
	}
	fetcher.Delay = *delay
	fetcher.CacheTTL = *cacheTTL
	if *cacheWindow != "" {
		if fetcher.CacheWindow, err = dateutil.ParseWindow(*cacheWindow); err != nil {
			log.Fatal(err)
		}
	}
	if cfg.CacheDir != "" {
		fetcher.CacheDir = filepath.Join(cfg.CacheDir, *fetchSource)
		if err := os.MkdirAll(fetcher.CacheDir, 0755); err != nil {
			log.Fatal(err)
		}
	}
	var logw io.Writer
	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		logw = f
	}
	issues := report.NewLog(logw)
	skip := func(link string, err error) {
		issues.Addf(report.Skipped, link, "", "%v", err)
	}
	var (
		w  io.Writer = os.Stdout
		af *atomicfile.File
	)
	if *output != "" {
		if af, err = atomicfile.Create(*output); err != nil {
			log.Fatal(err)
		}
		w = af
	}
	started := time.Now()
	log.WithFields(cfg.Fields()).Infof("fetching %v [...]", *fetchSource)
	switch *fetchSource {
	case "zion":
		l, err := feeds.ParseLayout(*layout)
		if err != nil {
			log.Fatal(err)
		}
		link := *sourceURL
		if link == "" {
			link = feeds.ZionBookURL
		}
		songs, err := fetcher.FetchZion(link, skip)
		if err != nil {
			log.Fatal(err)
		}
		if err := feeds.WriteZion(w, songs, l); err != nil {
			log.Fatal(err)
		}
	case "memphis":
		link := *sourceURL
		if link == "" {
			link = feeds.MemphisURL
		}
		records, err := fetcher.FetchMemphis(link, skip)
		if err != nil {
			log.Fatal(err)
		}
		if err := convert.WriteText(w, records, convert.TextOptions{Dialect: convert.ChristInSong}); err != nil {
			log.Fatal(err)
		}
	default:
		log.Fatalf("unknown source %q, use -l to list sources", *fetchSource)
	}
	if af != nil {
		if err := af.Close(); err != nil {
			log.Fatal(err)
		}
	}
	log.WithField("elapsed", time.Since(started).Round(time.Second)).Info(issues.Summary())
}

func isSource(name string) bool {
	for _, s := range availableSources {
		if s == name {
			return true
		}
	}
	return false
}
