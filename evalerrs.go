package calc

import (
	"errors"
	"math/big"
	"strconv"
)

// ErrUnknownNode is wrapped by errors for AST values that are not one of the
// known node types, e.g. a Statement implemented outside this package.
var ErrUnknownNode = errors.New("unknown AST node")

// NameError is an error from a lookup for a variable or function that is not
// defined in any frame.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return err.Name + " は定義されていません"
}

// NotFuncError is an error from calling a name bound to a number.
type NotFuncError struct {
	Name string
}

func (err *NotFuncError) Error() string {
	return err.Name + " は関数ではありません"
}

// NotNumberError is an error from using a function name as a variable.
type NotNumberError struct {
	Name string
}

func (err *NotNumberError) Error() string {
	return err.Name + " は数値ではありません"
}

// RecursionError is an error from calling a function that is already being
// evaluated, directly or through other functions.
type RecursionError struct {
	// Func is the function that was called again.
	Func string
}

func (err *RecursionError) Error() string {
	return err.Func + " は再帰呼び出しできません"
}

// CallError is an error indicating a function call with the wrong number of
// arguments.
type CallError struct {
	// Func is the function name that was called.
	Func string
	// Want is the number of parameters the function takes.
	Want int
	// Len is the number of arguments in the call.
	Len int
}

func (err *CallError) Error() string {
	return err.Func + " の引数は " + strconv.Itoa(err.Want) + " 個必要です (" + strconv.Itoa(err.Len) + " 個指定されました)"
}

// DuplicateParamError is an error from calling a function whose definition
// names the same parameter twice.
type DuplicateParamError struct {
	Func  string
	Param string
}

func (err *DuplicateParamError) Error() string {
	return err.Func + " の引数 " + err.Param + " は既に定義されています"
}

// DomainError is an error returned in arbitrary-precision mode when an
// operation or function is applied outside its domain. DomainError unwraps to
// big.ErrNaN.
type DomainError struct {
	// X is the out-of-domain argument, if there is a single one.
	X *big.Float
	// Func is the operator or function name.
	Func string
}

func (err *DomainError) Error() string {
	r := err.Func + " の定義域外です"
	if err.X != nil {
		r += ": " + err.X.String()
	}
	return r
}

func (err *DomainError) Unwrap() error {
	return big.ErrNaN{}
}
