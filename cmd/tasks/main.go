package main

import (
	"teamTasks/internal/command"
	"teamTasks/internal/command/tasks"
)

func main() {
	command.Main(
		"tasks", "manage the team task list from the terminal",
		tasks.Commands()...,
	)
}
