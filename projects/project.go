package projects

import (
	"context"
	"errors"
	"fmt"

	"github.com/reusee/stagecoach/actors"
	"github.com/reusee/stagecoach/logs"
	"github.com/reusee/stagecoach/stageconfigs"
	"github.com/reusee/stagecoach/threads"
)

var (
	ErrBuilt          = errors.New("classes cannot be declared after build")
	ErrDuplicateClass = errors.New("duplicated class")
	ErrReentrantTick  = errors.New("tick called from inside a tick")
)

// Program is a compiled project as handed over by a script compiler. Load
// declares the classes and runs top-level code; it runs with no active
// Thread.
type Program struct {
	Name string
	Load func(p *Project) error
}

type Config struct {
	ClonesOnStop stageconfigs.ClonesOnStop
	BatchBudget  int
	MaxClones    int
}

type Options struct {
	Config   Config
	Reporter Reporter
	Logger   logs.Logger
}

// BuildError is the failure of a Program's Load.
type BuildError struct {
	Program string
	Report  Report
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build %s: %v", e.Program, e.Report.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Report.Err
}

// Project is a built program: its classes, live instances and live threads.
// A Project is driven from a single goroutine.
type Project struct {
	Name string

	config   Config
	reporter Reporter
	logger   logs.Logger
	ctx      context.Context

	registry *actors.Registry
	classes  []*actors.Class
	handlers map[*actors.Class][]Handler

	tasks        []*task
	current      *task
	lastThreadID uint64
	frame        uint64
	building     bool
	ticking      bool

	keys map[string]bool
}

// task is a Thread together with what it runs on.
type task struct {
	thread   *threads.Thread
	instance actors.ID
	class    *actors.Class
	handler  *Handler
	context  *Context
	reported bool
}

// Build runs the program's top-level code and returns the ready project. Any
// failure is reported once with origin build and no project is returned.
func Build(program Program, options Options) (*Project, error) {
	if options.Logger == nil {
		options.Logger = logs.Discard()
	}
	if options.Reporter == nil {
		options.Reporter = LogReporter{Logger: options.Logger}
	}
	if options.Config.BatchBudget <= 0 {
		options.Config.BatchBudget = threads.Unbounded
	}
	p := &Project{
		Name:     program.Name,
		config:   options.Config,
		reporter: options.Reporter,
		logger:   options.Logger.With("project", program.Name),
		ctx:      context.Background(),
		registry: actors.NewRegistry(options.Config.MaxClones),
		handlers: make(map[*actors.Class][]Handler),
		keys:     make(map[string]bool),
	}

	p.building = true
	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic during build: %v", r)
			}
		}()
		if program.Load == nil {
			return nil
		}
		return program.Load(p)
	}()
	p.building = false

	if err != nil {
		report := newReport(threads.OriginBuild, err)
		p.reporter.Report(report)
		return nil, &BuildError{
			Program: program.Name,
			Report:  report,
		}
	}

	p.logger.Debug("built",
		"classes", len(p.classes),
		"instances", p.registry.Len(),
	)
	return p, nil
}

// Declare adds a class, its handlers and its original instance. It is only
// allowed while the program loads.
func (p *Project) Declare(class *actors.Class, handlers ...Handler) (*actors.Instance, error) {
	if !p.building {
		return nil, ErrBuilt
	}
	for _, c := range p.classes {
		if c.Name == class.Name {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateClass, class.Name)
		}
	}
	p.classes = append(p.classes, class)
	p.handlers[class] = handlers
	return p.registry.AddOriginal(class), nil
}

// On appends handlers to a declared class while the program loads.
func (p *Project) On(class *actors.Class, handlers ...Handler) error {
	if !p.building {
		return ErrBuilt
	}
	if _, ok := p.handlers[class]; !ok {
		return fmt.Errorf("%w: class %s is not declared", actors.ErrUnknownInstance, class.Name)
	}
	p.handlers[class] = append(p.handlers[class], handlers...)
	return nil
}

func (p *Project) Classes() []*actors.Class {
	return p.classes
}

func (p *Project) Class(name string) *actors.Class {
	for _, class := range p.classes {
		if class.Name == name {
			return class
		}
	}
	return nil
}

func (p *Project) Registry() *actors.Registry {
	return p.registry
}

func (p *Project) Frame() uint64 {
	return p.frame
}

// Threads returns the number of live threads.
func (p *Project) Threads() int {
	return len(p.tasks)
}

// Building reports whether the program's top-level code is running.
func (p *Project) Building() bool {
	return p.building
}

// WithContext sets the context carried into log records of this project.
func (p *Project) WithContext(ctx context.Context) {
	p.ctx = ctx
}

func (p *Project) instanceAlive(id uint64) bool {
	return p.registry.Alive(actors.ID(id))
}

// Close kills every thread.
func (p *Project) Close() {
	p.killAll(nil)
}
