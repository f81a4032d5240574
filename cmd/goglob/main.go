package main

import (
	"fmt"
	"os"
	"strings"

	box "github.com/Delta456/box-cli-maker/v2"
	"github.com/jessevdk/go-flags"

	"github.com/koblas/goglob/pkg/goglob"
)

func main() {
	var opts struct {
		Version    bool     `short:"v" long:"version" description:"Display the current version of goglob"`
		Brace      bool     `short:"b" long:"brace" description:"Enable {a,b,c} brace expansion"`
		Tilde      bool     `short:"t" long:"tilde" description:"Enable ~ and ~user expansion"`
		ExtGlob    bool     `short:"e" long:"extglob" description:"Enable @(...) !(...) ?(...) *(...) +(...) groups"`
		Mark       bool     `short:"m" long:"mark" description:"Append '/' to directory matches"`
		NoSort     bool     `long:"no-sort" description:"Do not sort the results"`
		NoCheck    bool     `long:"no-check" description:"Return the pattern literal instead of failing on empty match"`
		OnlyDir    bool     `long:"only-dir" description:"Only match directories"`
		CaseFold   bool     `short:"i" long:"ignore-case" description:"Case-insensitive matching"`
		Gitignore  bool     `short:"g" long:"gitignore" description:"Prune paths matched by .gitignore while walking"`
		Follow     bool     `short:"L" long:"follow-symlinks" description:"Follow symlinked directories during ** recursion"`
		MatchPaths []string `short:"P" long:"match" description:"Filter this path instead of touching the filesystem (repeatable)"`
		Debug      bool     `short:"d" long:"debug" description:"Shows debugging information"`
	}

	args, err := flags.Parse(&opts)
	if err != nil {
		if !flags.WroteHelp(err) {
			panic(err)
		}
		os.Exit(0)
	}

	if opts.Version {
		fmt.Printf("0.1.0\n")
		os.Exit(0)
	}

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "goglob: a pattern is required")
		os.Exit(2)
	}
	pattern := args[0]

	var flagBits goglob.Flag
	if opts.Brace {
		flagBits |= goglob.BRACE
	}
	if opts.Tilde {
		flagBits |= goglob.TILDE
	}
	if opts.ExtGlob {
		flagBits |= goglob.EXTGLOB
	}
	if opts.Mark {
		flagBits |= goglob.MARK
	}
	if opts.NoSort {
		flagBits |= goglob.NOSORT
	}
	if opts.NoCheck {
		flagBits |= goglob.NOCHECK
	}
	if opts.OnlyDir {
		flagBits |= goglob.ONLYDIR
	}
	if opts.CaseFold {
		flagBits |= goglob.CASEFOLD
	}
	if opts.Gitignore {
		flagBits |= goglob.GITIGNORE
	}

	logger := goglob.NewLogger(opts.Debug)

	var result *goglob.MatchResult
	if len(opts.MatchPaths) > 0 {
		result, err = goglob.MatchPaths(pattern, opts.MatchPaths, flagBits)
	} else {
		driverOpts := []goglob.DriverOption{
			goglob.WithLogger(logger),
			goglob.WithFollowSymlinks(opts.Follow),
		}
		if opts.Gitignore {
			ignore, ierr := goglob.FromGitignoreFiles(".")
			if ierr != nil {
				fmt.Fprintf(os.Stderr, "goglob: %s\n", ierr)
				os.Exit(1)
			}
			driverOpts = append(driverOpts, goglob.WithIgnore(ignore))
		}
		result, err = goglob.Glob(pattern, flagBits, driverOpts...)
	}

	if err != nil {
		if err == goglob.ErrNoMatch {
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "goglob: %s\n", err)
		os.Exit(1)
	}

	paths := result.Paths()
	for _, p := range paths {
		fmt.Println(p)
	}

	bx := box.New(box.Config{Px: 4, Py: 1})
	bx.Println("goglob", fmt.Sprintf("%s\nmatched %d (%s)", pattern, len(paths), strings.ToLower(result.OwnershipTag().String())))
}
