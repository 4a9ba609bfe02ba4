package vm

import (
	"syscall"

	"lox-core/internal/value"
)

// defineNative installs name as a global bound to an ObjNative wrapping fn
// (spec.md §4.F.4).
func (vm *VM) defineNative(name string, fn value.NativeFn) {
	vm.globals.Set(name, value.NewObject(&value.ObjNative{Name: name, Fn: fn}))
}

func (vm *VM) defineNatives() {
	vm.defineNative("clock", nativeClock)
}

// nativeClock returns the process's consumed CPU time (user+system) in
// seconds, per spec.md §4.F.4. Read via getrusage rather than wall-clock
// time so repeated calls within a tight loop are still meaningfully
// distinguishable on a busy machine.
func nativeClock(argc int, args []value.Value) value.Value {
	var ru syscall.Rusage
	if err := syscall.Getrusage(syscall.RUSAGE_SELF, &ru); err != nil {
		return value.NewNumber(0)
	}
	user := float64(ru.Utime.Sec) + float64(ru.Utime.Usec)/1e6
	sys := float64(ru.Stime.Sec) + float64(ru.Stime.Usec)/1e6
	return value.NewNumber(user + sys)
}
