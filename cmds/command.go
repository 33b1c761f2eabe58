package cmds

import (
	"fmt"
	"reflect"
)

type Command struct {
	Func        reflect.Value
	Subs        map[string]*Command
	Description string
	Aliases     []string
}

func (c *Command) Desc(desc string) *Command {
	c.Description = desc
	return c
}

func (c *Command) Alias(names ...string) *Command {
	c.Aliases = append(c.Aliases, names...)
	return c
}

// Func wraps fn as a command. fn takes its arguments from the following argv
// items and returns nothing or an error. A variadic fn takes items up to the
// next defined command.
func Func(fn any) *Command {
	fnValue := reflect.ValueOf(fn)

	if fnValue.Kind() != reflect.Func {
		panic(fmt.Errorf("must be function, got %T", fn))
	}

	numRets := fnValue.Type().NumOut()
	if numRets >= 2 {
		panic(fmt.Errorf("must return 0 or 1 value"))
	}
	if numRets == 1 && fnValue.Type().Out(0) != errorType {
		panic(fmt.Errorf("must return error"))
	}

	return &Command{
		Func: fnValue,
	}
}

func Sub(subs map[string]*Command) *Command {
	return &Command{
		Subs: subs,
	}
}

func (c *Command) argNames() (ret []string) {
	if !c.Func.IsValid() {
		return
	}
	t := c.Func.Type()
	for i := range t.NumIn() {
		in := t.In(i)
		if t.IsVariadic() && i == t.NumIn()-1 {
			ret = append(ret, "<"+in.Elem().Name()+">...")
		} else if in.Kind() == reflect.Pointer {
			ret = append(ret, "["+in.Elem().Name()+"]")
		} else {
			ret = append(ret, "<"+in.Name()+">")
		}
	}
	return
}
