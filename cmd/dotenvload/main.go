// Command dotenvload is a standalone driver for pkg/dotenv: it discovers
// and loads the dot-env files applicable to the running platform from a
// directory and prints the resulting key=value pairs, sorted, one per
// line — suitable for feeding into `export $(dotenvload)` style tooling.
package main

import (
	"os"
	"runtime"
	"sort"

	"github.com/rcarmo/envara/pkg/core"
	"github.com/rcarmo/envara/pkg/dotenv"
	"github.com/rcarmo/envara/pkg/expand"
)

func main() {
	stdio := core.DefaultStdio()
	os.Exit(run(stdio, os.Args[1:]))
}

func run(stdio *core.Stdio, args []string) int {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	vars := map[string]string{}
	_, err := dotenv.Load(
		dotenv.DiscoverOptions{
			Dir:        dir,
			PlatformID: runtime.GOOS,
			FileFlags:  dotenv.DefaultFileFlags,
		},
		nil,
		expand.DefaultFlags|expand.AllowShell,
		expand.Options{Vars: vars},
	)
	if err != nil {
		return core.FileError(stdio, "dotenvload", dir, err)
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		stdio.Printf("%s=%s\n", k, vars[k])
	}
	return core.ExitSuccess
}
