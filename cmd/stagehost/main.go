package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/reusee/dscope"
	"github.com/reusee/stagecoach/cmds"
	"github.com/reusee/stagecoach/debugs"
	"github.com/reusee/stagecoach/hosts"
	"github.com/reusee/stagecoach/logs"
	"github.com/reusee/stagecoach/modes"
	"github.com/reusee/stagecoach/projects"
	"github.com/reusee/stagecoach/scripts"
	"github.com/reusee/stagecoach/vars"
)

var (
	scriptFlag = cmds.Var[string]("-script")
	framesFlag = cmds.Var[int]("-frames")
	tuiFlag    = cmds.Switch("-tui")
	serveFlag  = cmds.Var[string]("-serve")
	tapFlag    = cmds.Switch("-tap")
)

func main() {
	if err := cmds.Execute(os.Args[1:]); err != nil {
		fail(err)
	}
	if vars.DerefOrZero(scriptFlag) == "" {
		fail(errors.New("-script is required"))
	}

	var err error
	dscope.New(
		new(Module),
		modes.ForProduction(),
	).Call(run).Assign(&err)
	if err != nil {
		fail(err)
	}
}

func fail(err error) {
	os.Stderr.WriteString(err.Error())
	os.Stderr.WriteString("\n")
	os.Exit(-1)
}

func run(
	logger logs.Logger,
	compile scripts.CompileFunc,
	build projects.BuildFunc,
	newLoop hosts.NewLoop,
	feed *hosts.Feed,
	newTerminal hosts.NewTerminal,
	tapProject debugs.TapProject,
) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	path := *scriptFlag
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	program, err := compile(path, src)
	if err != nil {
		return err
	}
	project, err := build(program)
	if err != nil {
		return err
	}
	defer project.Close()

	var sinks []hosts.Sink

	if addr := vars.DerefOrZero(serveFlag); addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/feed", feed.Handler())
		server := &http.Server{
			Addr:    addr,
			Handler: mux,
		}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.ErrorContext(ctx, "serve", "addr", addr, "error", err)
				cancel()
			}
		}()
		defer server.Close()
		logger.InfoContext(ctx, "serving feed", "addr", addr)
		sinks = append(sinks, feed)
	}

	if *tuiFlag {
		screen, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		if err := screen.Init(); err != nil {
			return err
		}
		defer screen.Fini()
		terminal := newTerminal(screen)
		go func() {
			defer cancel()
			if err := terminal.Pump(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.WarnContext(ctx, "terminal", "error", err)
			}
		}()
		sinks = append(sinks, terminal)
	}

	loop := newLoop(project, sinks...)
	project.Start()
	if n := vars.DerefOrZero(framesFlag); n > 0 {
		err = loop.RunFrames(ctx, n)
	} else {
		err = loop.Run(ctx)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.InfoContext(ctx, "stopped",
		"frame", project.Frame(),
		"threads", project.Threads(),
		"instances", project.Registry().Len(),
	)

	if *tapFlag {
		tapProject(context.Background(), project)
	}

	return nil
}
