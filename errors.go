package vkdev

import (
	"fmt"
	"runtime"

	vk "github.com/vulkan-go/vulkan"
)

// ResultError is the error returned for any non-success vk.Result. It keeps
// the originating status code so callers can branch on recoverable results
// such as vk.ErrorOutOfDate or vk.Suboptimal after a present.
type ResultError struct {
	Ret  vk.Result
	site string
}

func (e *ResultError) Error() string {
	if e.site == "" {
		return fmt.Sprintf("vulkan error: %s (%d)", vk.Error(e.Ret).Error(), e.Ret)
	}
	return fmt.Sprintf("vulkan error: %s (%d) on %s", vk.Error(e.Ret).Error(), e.Ret, e.site)
}

// Result returns the Vulkan status code that produced this error.
func (e *ResultError) Result() vk.Result { return e.Ret }

func isError(ret vk.Result) bool {
	return ret != vk.Success
}

// newError returns nil for vk.Success, otherwise a *ResultError annotated
// with the call site.
func newError(ret vk.Result) error {
	if ret == vk.Success {
		return nil
	}
	err := &ResultError{Ret: ret}
	if pc, file, line, ok := runtime.Caller(1); ok {
		if fn := runtime.FuncForPC(pc); fn != nil {
			err.site = fmt.Sprintf("%s %s:%d", fn.Name(), file, line)
		}
	}
	return err
}

func orPanic(err error, finalizers ...func()) {
	if err != nil {
		for _, fn := range finalizers {
			fn()
		}
		panic(err)
	}
}

func checkErr(err *error) {
	if v := recover(); v != nil {
		*err = fmt.Errorf("%+v", v)
	}
}
