package calc

// FrameValue is a value bound to a name in a Frame. It is one of Number[N],
// *NativeFunc[N], or UserFunc.
type FrameValue[N any] interface {
	frameValue()
}

// Number is a numeric binding.
type Number[N any] struct {
	V N
}

// UserFunc is a function defined by a statement. Its body is evaluated anew on
// each call.
type UserFunc struct {
	Def *Defun
}

func (Number[N]) frameValue()      {}
func (*NativeFunc[N]) frameValue() {}
func (UserFunc) frameValue()       {}

// Frame is one lexical scope.
type Frame[N any] struct {
	// Vars holds the bindings made in this scope.
	Vars map[string]FrameValue[N]
	// Callee is the name of the function whose call created the frame, or
	// empty for the global and session frames.
	Callee string
}

// NewFrame creates an empty frame.
func NewFrame[N any](callee string) *Frame[N] {
	return &Frame[N]{Vars: make(map[string]FrameValue[N]), Callee: callee}
}

// CallStack is an ordered list of frames. The bottom frame holds global
// constants and native functions and is never modified by evaluation. Above it
// is always a session frame where top-level definitions land. Function calls
// push and pop frames above those. A CallStack is not safe for concurrent use.
type CallStack[N any] struct {
	global *Frame[N]
	// frames is ordered from the global frame to the innermost scope.
	frames []*Frame[N]
}

// NewCallStack creates a call stack with the given global frame and a fresh
// session frame.
func NewCallStack[N any](global *Frame[N]) *CallStack[N] {
	cs := CallStack[N]{global: global}
	cs.Reset()
	return &cs
}

// Reset discards every frame except the global frame and installs a fresh
// session frame.
func (cs *CallStack[N]) Reset() {
	cs.frames = append(cs.frames[:0], cs.global, NewFrame[N](""))
}

// Push makes f the innermost scope.
func (cs *CallStack[N]) Push(f *Frame[N]) {
	cs.frames = append(cs.frames, f)
}

// Pop removes and returns the innermost scope. Panics if that would remove
// the session or global frame.
func (cs *CallStack[N]) Pop() *Frame[N] {
	if len(cs.frames) <= 2 {
		panic("calc: pop of base frame")
	}
	f := cs.frames[len(cs.frames)-1]
	cs.frames[len(cs.frames)-1] = nil
	cs.frames = cs.frames[:len(cs.frames)-1]
	return f
}

// Top returns the innermost scope.
func (cs *CallStack[N]) Top() *Frame[N] {
	return cs.frames[len(cs.frames)-1]
}

// Len returns the number of frames, including the global and session frames.
func (cs *CallStack[N]) Len() int {
	return len(cs.frames)
}

// FindVar looks up a name from the innermost scope outward.
func (cs *CallStack[N]) FindVar(name string) (FrameValue[N], bool) {
	for i := len(cs.frames) - 1; i >= 0; i-- {
		if v, ok := cs.frames[i].Vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// FindCallee reports whether any frame was created by a call to name.
func (cs *CallStack[N]) FindCallee(name string) bool {
	if name == "" {
		return false
	}
	for i := len(cs.frames) - 1; i >= 0; i-- {
		if cs.frames[i].Callee == name {
			return true
		}
	}
	return false
}
