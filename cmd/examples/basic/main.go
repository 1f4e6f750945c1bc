package main

import (
	"fmt"
	"os"

	. "statechartx"
)

func logAction(msg string) func() {
	return func() { fmt.Println(msg) }
}

func main() {
	init := &State{
		ID:      "init",
		Initial: true,
		OnEntry: logAction("enter init"),
		OnExit:  logAction("exit init"),
		On:      []Transition{{Event: "run", Target: "running"}},
	}
	running := &State{
		ID:      "running",
		OnEntry: logAction("enter running"),
		OnExit:  logAction("exiting running"),
		On:      []Transition{{Event: "stop", Target: "stopped"}},
	}
	stopped := &State{
		ID:      "stopped",
		OnEntry: logAction("enter stopped"),
		OnExit:  logAction("exiting stopped"),
		On:      []Transition{{Event: "run", Target: "running"}},
	}

	machine, err := NewMachine(init, running, stopped)
	if err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}

	if err := machine.Start(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}

	machine.Send("run", nil)
	machine.Send("stop", nil)
	machine.Send("run", nil)
}
