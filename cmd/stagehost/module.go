package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/stagecoach/debugs"
	"github.com/reusee/stagecoach/hosts"
	"github.com/reusee/stagecoach/projects"
	"github.com/reusee/stagecoach/scripts"
)

type Module struct {
	dscope.Module
	Projects projects.Module
	Scripts  scripts.Module
	Hosts    hosts.Module
	Debugs   debugs.Module
}
