package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/zgrigoryan/shared-pointer/ptr"
	"github.com/zgrigoryan/shared-pointer/track"
)

func main() {
	var (
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose lifecycle logging")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		track.SetLogger(logger)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runScenario(os.Stdout)
}

// runScenario walks through the handle lifecycle: adoption, sharing,
// custom deleters, moves and reset.
func runScenario(w io.Writer) {
	p1 := ptr.Adopt(intp(10))
	p2 := p1.Clone()
	fmt.Fprintf(w, "p1: %d\n", p1.Value())
	fmt.Fprintf(w, "p2: %d\n", p2.Value())
	fmt.Fprintf(w, "p1 use count: %d\n", p1.UseCount())
	fmt.Fprintf(w, "p2 use count: %d\n", p2.UseCount())

	p3 := ptr.AdoptWith(intp(20), func(p *int) {
		fmt.Fprintf(w, "deleter ran for %d\n", *p)
	})
	p4 := p3.Clone()
	fmt.Fprintf(w, "p3: %d\n", p3.Value())
	fmt.Fprintf(w, "p4: %d\n", p4.Value())
	fmt.Fprintf(w, "p3 use count: %d\n", p3.UseCount())
	fmt.Fprintf(w, "p4 use count: %d\n", p4.UseCount())

	p5 := p4.Move()
	fmt.Fprintf(w, "p5: %d\n", p5.Value())
	fmt.Fprintf(w, "p4: %s\n", nullness(&p4))
	fmt.Fprintf(w, "p5 use count: %d\n", p5.UseCount())
	fmt.Fprintf(w, "p4 use count: %d\n", p4.UseCount())

	p6 := ptr.Adopt(intp(30))
	p7 := p6.Clone()
	fmt.Fprintf(w, "p6 use count: %d\n", p6.UseCount())
	fmt.Fprintf(w, "p7 use count: %d\n", p7.UseCount())

	p8 := p7.Move()
	fmt.Fprintf(w, "p8: %d\n", p8.Value())
	fmt.Fprintf(w, "p7: %s\n", nullness(&p7))
	fmt.Fprintf(w, "p8 use count: %d\n", p8.UseCount())

	p9 := ptr.Adopt(intp(50))
	fmt.Fprintf(w, "p9: %d\n", p9.Value())
	p9.Reset(intp(60))
	fmt.Fprintf(w, "p9 after reset: %d\n", p9.Value())
	fmt.Fprintf(w, "p9 use count: %d\n", p9.UseCount())

	arr := ptr.AdoptSlice([]int{1, 2, 3, 4, 5})
	fmt.Fprintf(w, "arr[2]: %d\n", arr.At(2))
	fmt.Fprintf(w, "arr use count: %d\n", arr.UseCount())

	arr.Release()
	p9.Release()
	p8.Release()
	p6.Release()
	p5.Release()
	p3.Release()
	p2.Release()
	p1.Release()
}

func intp(v int) *int {
	return &v
}

func nullness[T any](r *ptr.Ref[T]) string {
	if r.Valid() {
		return "not null"
	}
	return "null"
}
