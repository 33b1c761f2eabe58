package cmds

import (
	"fmt"
	"testing"
)

func TestVar(t *testing.T) {
	a := Var[int]("TestVar.int", "")
	b := Var[string]("TestVar.string", "")
	if err := Execute([]string{
		"TestVar.int", "42",
		"TestVar.string", "propagate",
	}); err != nil {
		t.Fatal(err)
	}
	if *a != 42 {
		t.Fatal()
	}
	if *b != "propagate" {
		t.Fatal()
	}
	GlobalExecutor.MustExecute([]string{"TestVar.int."})
	if *a != 0 {
		t.Fatal()
	}
}

func TestSwitch(t *testing.T) {
	foo := Switch("TestSwitch", "")
	GlobalExecutor.MustExecute([]string{
		"TestSwitch",
	})
	if *foo != true {
		t.Fatal()
	}
	GlobalExecutor.MustExecute([]string{
		"!TestSwitch",
	})
	if *foo != false {
		t.Fatal()
	}
}

func TestCollect(t *testing.T) {
	list := Collect[string]("TestCollect", "")
	GlobalExecutor.MustExecute([]string{
		"TestCollect", "a.mll",
		"TestCollect", "b.mll",
	})
	if str := fmt.Sprintf("%v", *list); str != "[a.mll b.mll]" {
		t.Fatalf("got %s", str)
	}
}

func TestTypedVar(t *testing.T) {
	type Scope string
	v := Var[Scope]("TestTypedVar", "")
	GlobalExecutor.MustExecute([]string{
		"TestTypedVar", "isolated",
	})
	if *v != "isolated" {
		t.Fatal()
	}
}
