package main

import (
	"io"
	"time"

	"github.com/go-python/gpython/py"
	"github.com/go-python/gpython/repl"
	"github.com/go-python/gpython/repl/cli"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	_ "github.com/2x3systems/chem2x3/pychem"
	_ "github.com/go-python/gpython/stdlib"
)

// runGPython runs the script at pathname with the chem module importable, or starts a REPL if pathname is empty.
// Python tracebacks are written to errOut.
func runGPython(pathname string, errOut io.Writer) error {
	ctx := py.NewContext(py.DefaultContextOpts())
	defer func() {
		ctx.Close()
		<-ctx.Done()
	}()

	if pathname == "" {
		cli.RunREPL(repl.New(ctx))
		return nil
	}

	start := time.Now()
	if _, err := py.RunFile(ctx, pathname, py.CompileOpts{}, nil); err != nil {
		switch exc := err.(type) {
		case py.ExceptionInfo:
			exc.TracebackDump(errOut)
		case *py.ExceptionInfo:
			exc.TracebackDump(errOut)
		}
		return errors.Wrapf(err, "running %s", pathname)
	}
	klog.V(1).Infof("ran %s in %v", pathname, time.Since(start))
	return nil
}
