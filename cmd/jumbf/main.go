// Command jumbf inspects JUMBF (ISO/IEC 19566-5) files.
//
// Usage:
//
//	jumbf dump [-max-depth N] <file>
//	jumbf extract -label a/b [-o out] <file>
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/reoring/jumbf"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "dump":
		dumpCmd(os.Args[2:])
	case "extract":
		extractCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "jumbf CLI\n\nUsage:\n  jumbf dump [-max-depth N] <file>\n  jumbf extract -label a/b [-o out] <file>")
}

func dumpCmd(args []string) {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	maxDepth := fs.Int("max-depth", jumbf.DefaultMaxDepth, "maximum superbox nesting")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		usage()
		os.Exit(2)
	}

	sb, err := parseFile(fs.Arg(0), *maxDepth)
	if err != nil {
		fatal(err)
	}
	dumpSuperBox(os.Stdout, sb, 0)
}

func extractCmd(args []string) {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	label := fs.String("label", "", "slash-separated label path of the box to extract")
	out := fs.String("o", "", "output filename (default stdout)")
	_ = fs.Parse(args)
	if fs.NArg() != 1 || *label == "" {
		usage()
		os.Exit(2)
	}

	sb, err := parseFile(fs.Arg(0), jumbf.DefaultMaxDepth)
	if err != nil {
		fatal(err)
	}
	hit := sb.FindByLabel(*label)
	if hit == nil {
		fatal(fmt.Errorf("no requestable box at label %q", *label))
	}
	box := hit.DataBox()
	if box == nil {
		fatal(fmt.Errorf("box at label %q has no content data box", *label))
	}

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			fatal(err)
		}
		defer f.Close()
		w = f
	}
	if _, err := w.Write(box.Data.Bytes()); err != nil {
		fatal(err)
	}
}

func parseFile(path string, maxDepth int) (*jumbf.SuperBox, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return jumbf.SuperBoxFromReader(f, jumbf.ParseOpt{MaxDepth: maxDepth})
}

func dumpSuperBox(w io.Writer, sb *jumbf.SuperBox, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%sjumb uuid=%x", indent, sb.Description.UUID)
	if sb.Description.Label != nil {
		fmt.Fprintf(w, " label=%q", sb.Description.Label)
	}
	if sb.Description.Requestable {
		fmt.Fprint(w, " requestable")
	}
	if sb.Description.ID != nil {
		fmt.Fprintf(w, " id=%d", *sb.Description.ID)
	}
	if sb.Description.Hash != nil {
		fmt.Fprintf(w, " sha256=%x", *sb.Description.Hash)
	}
	fmt.Fprintf(w, " size=%d offset=%d\n", sb.Original.Len(), sb.Original.Offset())

	for _, c := range sb.Children {
		if child := c.AsSuperBox(); child != nil {
			dumpSuperBox(w, child, depth+1)
			continue
		}
		box := c.AsDataBox()
		fmt.Fprintf(w, "%s  %s size=%d offset=%d\n", indent, box.Type, box.Original.Len(), box.Original.Offset())
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "jumbf:", err)
	os.Exit(1)
}
