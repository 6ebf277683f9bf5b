// Command subcrack breaks monoalphabetic substitution ciphers.
// It reads cryptograms, one per line, from a file or stdin.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/jmccarv/subcrack/internal/freq"
	"github.com/jmccarv/subcrack/internal/keymap"
	"github.com/jmccarv/subcrack/internal/logging"
	"github.com/jmccarv/subcrack/internal/ngram"
	"github.com/jmccarv/subcrack/internal/solver"
)

// CLI defines the command-line interface for subcrack.
type CLI struct {
	Bigrams   string `name:"bigrams" short:"b" env:"SUBCRACK_BIGRAMS" default:"bigrams.txt" help:"Bigram counts, one 'GRAM COUNT' per line (.xz ok)"`
	Quadgrams string `name:"quadgrams" short:"q" env:"SUBCRACK_QUADGRAMS" default:"quadgrams.txt" help:"Quadgram counts, one 'GRAM COUNT' per line (.xz ok)"`
	Words     string `name:"words" short:"f" env:"SUBCRACK_WORDS" help:"Word frequency list replacing the built-in common words"`
	WordLimit int    `name:"word-limit" default:"100" help:"Use the N most frequent words of --words"`

	Seed         uint64 `name:"seed" env:"SUBCRACK_SEED" help:"Random seed, 0 picks one from the clock"`
	Passes       int    `name:"passes" default:"10" help:"Bigram refinement passes"`
	MaxNoChange  int    `name:"max-no-change" default:"10000" help:"Stop after this many failed swaps in a row"`
	RestartAfter int    `name:"restart-after" default:"9990" help:"Start over after this many failed swaps without reaching the word target"`
	MaxDoOvers   int    `name:"max-do-overs" default:"1000" help:"Maximum number of restarts, 0 disables them"`
	TopN         int    `name:"topn" short:"n" default:"3" help:"Display top N solutions"`
	Key          string `name:"key" short:"k" help:"Known letters as CIPHER=PLAIN pairs. Ex: 'QX=TH'"`

	MaxRuntime time.Duration `name:"max-runtime" short:"r" help:"Quit after this amount of time. Ex: 30s or 1m"`
	Parallel   int           `name:"parallel" short:"p" help:"Number of cryptograms solved at once (default: number of CPUs)"`

	LogLevel  string `name:"log-level" env:"SUBCRACK_LOG_LEVEL" default:"warn" enum:"debug,info,warn,error" help:"Log level"`
	LogFormat string `name:"log-format" env:"SUBCRACK_LOG_FORMAT" default:"text" enum:"text,json" help:"Log format"`

	CPUProfile string `name:"cpuprofile" help:"Write cpu profile to 'file'"`
	MemProfile string `name:"memprofile" help:"Write memory profile to 'file'"`

	File string `arg:"" optional:"" help:"Cryptogram file (default stdin)"`
}

// job is one cryptogram and, once solved, its result.
type job struct {
	line int
	cg   solver.Cryptogram
	res  solver.Result
}

func main() {
	// A missing .env is fine.
	_ = godotenv.Load()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("subcrack"),
		kong.Description("Solve monoalphabetic substitution ciphers, one per line"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	kctx.FatalIfErrorf(cli.run(os.Stdout))
}

func (c *CLI) run(out io.Writer) error {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(c.LogFormat)
	if err != nil {
		return err
	}
	logging.Init(level, format, os.Stderr)
	log := logging.Logger().With("run_id", uuid.NewString())

	if c.CPUProfile != "" {
		f, err := os.Create(c.CPUProfile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	opts, err := c.options()
	if err != nil {
		return err
	}
	opts.Logger = log

	bigrams, quadgrams, err := loadModels(c.Bigrams, c.Quadgrams)
	if err != nil {
		return err
	}
	log.Debug("models loaded",
		"bigrams", bigrams.Len(), "bigram_total", bigrams.Total(),
		"quadgrams", quadgrams.Len(), "quadgram_total", quadgrams.Total())

	var in io.ReadCloser = os.Stdin
	if c.File != "" {
		if in, err = os.Open(c.File); err != nil {
			return err
		}
	}
	defer in.Close()

	jobs, err := readCryptograms(in)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT)
	defer stop()
	if c.MaxRuntime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.MaxRuntime)
		defer cancel()
	}

	parallel := c.Parallel
	if parallel < 1 {
		parallel = runtime.NumCPU()
	}
	solveAll(ctx, jobs, bigrams, quadgrams, opts, parallel, log)

	for _, j := range jobs {
		printResult(out, j)
	}

	if c.MemProfile != "" {
		f, err := os.Create(c.MemProfile)
		if err != nil {
			return fmt.Errorf("could not create memory profile: %w", err)
		}
		defer f.Close()
		runtime.GC() // get up-to-date statistics
		if err := pprof.WriteHeapProfile(f); err != nil {
			return fmt.Errorf("could not write memory profile: %w", err)
		}
	}
	return nil
}

// options turns the flags into solver options. The logger is left unset.
func (c *CLI) options() (solver.Options, error) {
	opts := solver.DefaultOptions()
	opts.Passes = c.Passes
	opts.MaxNoChange = c.MaxNoChange
	opts.RestartAfter = c.RestartAfter
	opts.MaxDoOvers = c.MaxDoOvers
	opts.TopN = c.TopN

	opts.Seed = c.Seed
	if opts.Seed == 0 {
		opts.Seed = uint64(time.Now().UnixNano())
	}

	if c.Words != "" {
		wl, err := solver.LoadWordList(c.Words, c.WordLimit)
		if err != nil {
			return opts, err
		}
		opts.Words = wl
	}

	if c.Key != "" {
		h, err := keymap.Parse(c.Key)
		if err != nil {
			return opts, fmt.Errorf("invalid key: %w", err)
		}
		opts.Hint = &h
	}
	return opts, nil
}

func loadModels(bigramPath, quadgramPath string) (*ngram.Model, *ngram.Model, error) {
	var bigrams, quadgrams *ngram.Model
	var g errgroup.Group
	g.Go(func() (err error) {
		bigrams, err = ngram.Load(bigramPath)
		return err
	})
	g.Go(func() (err error) {
		quadgrams, err = ngram.Load(quadgramPath)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return bigrams, quadgrams, nil
}

func readCryptograms(r io.Reader) ([]*job, error) {
	var jobs []*job
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lno := 0
	for s.Scan() {
		lno++
		cg, ok := solver.ParseCryptogram(s.Bytes())
		if !ok {
			continue
		}
		jobs = append(jobs, &job{line: lno, cg: cg})
	}
	return jobs, s.Err()
}

// solveAll solves every job, at most parallel at a time. Each job gets its own
// seed derived from opts.Seed and its line number.
func solveAll(ctx context.Context, jobs []*job, bigrams, quadgrams solver.Scorer, opts solver.Options, parallel int, log *slog.Logger) {
	var g errgroup.Group
	g.SetLimit(parallel)
	for _, j := range jobs {
		o := opts
		o.Seed = opts.Seed + uint64(j.line)
		if log != nil {
			o.Logger = log.With("line", j.line)
		}
		g.Go(func() error {
			j.res = solver.Solve(ctx, j.cg.Text, bigrams, quadgrams, o)
			return nil
		})
	}
	g.Wait()
}

func printResult(w io.Writer, j *job) {
	res := j.res
	fmt.Fprintf(w, "\n%v\n", j.cg)
	fmt.Fprintf(w, "Line %d: %d letters, %d words\n", j.line, j.cg.Letters, j.cg.Words)
	fmt.Fprintf(w, "Time taken: %f seconds\n", res.Elapsed.Seconds())
	fmt.Fprintf(w, "bestWordCount->%d<- (target %d)\n", res.Words, res.WordTarget)
	fmt.Fprintf(w, "->%s<-\n", res.Text)
	fmt.Fprintf(w, "map is %s\n", res.MapString())
	fmt.Fprintf(w, "key is %s\n", res.Mapping.Key())
	if res.Interrupted {
		fmt.Fprintln(w, "Interrupted after", res.Iterations, "iterations")
	}

	for i, c := range res.Top {
		fmt.Fprintf(w, "%d. %v\n", i+1, c)
	}
	fmt.Fprintf(w, "Letter fit (chi-squared): %0.2f\n", freq.Fit(res.Text))

	if s := res.Summary(); s.Restarts > 0 {
		fmt.Fprintf(w, "Restarts: %d  mean %0.4f  stddev %0.4f  best %0.4f\n", s.Restarts, s.Mean, s.StdDev, s.Max)
	}
}
