package thread

import (
	"errors"
	"testing"
)

func TestCallOutsideMain(t *testing.T) {
	value := 0
	Call(func() { value = 1 })
	if value != 1 {
		t.Errorf("wrong value %v", value)
	}
}

func TestMainThread(t *testing.T) {
	value := 0
	var err error
	Main(func() {
		Call(func() { value = 1 })
		err = CallErr(func() error { return errors.New("x") })
	})
	if value != 1 {
		t.Errorf("wrong value %v", value)
	}
	if err == nil || err.Error() != "x" {
		t.Errorf("wrong error %v", err)
	}
}
