// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2015-2019 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
)

// ScriptFlags is a bitmask defining additional operations or tests that will be
// done when executing a script.
type ScriptFlags uint32

const (
	// ScriptDupTopOfStack makes OP_DUP duplicate the item on top of the
	// data stack.  Without it OP_DUP duplicates the item at the bottom.
	ScriptDupTopOfStack ScriptFlags = 1 << iota

	// ScriptVerifySingleTrue replaces the empty stack termination rule with
	// the requirement that exactly one item remains and that it evaluates
	// to true.
	ScriptVerifySingleTrue

	// ScriptVerifyNone is the empty set of flags.
	ScriptVerifyNone ScriptFlags = 0
)

// noPendingPush marks that no push opcode is waiting for its data term.
const noPendingPush = -1

// Engine is the virtual machine that executes scripts.
type Engine struct {
	// script is the parsed script being executed.
	script Script

	// scriptOff is the offset of the next term to execute.
	scriptOff int

	// pushLen is the number of bytes announced by the most recent push
	// opcode, or noPendingPush when no data term is expected.
	pushLen int

	dstack stack // data stack
	flags  ScriptFlags
}

// hasFlag returns whether the script engine instance has the passed flag set.
func (vm *Engine) hasFlag(flag ScriptFlags) bool {
	return vm.flags&flag == flag
}

// expectPush records that the next data term must be exactly n bytes.
func (vm *Engine) expectPush(n int) {
	vm.pushLen = n
}

// isDone returns whether every term of the script has been executed.
func (vm *Engine) isDone() bool {
	return vm.scriptOff >= len(vm.script)
}

// executeData pushes a data term onto the data stack after checking it against
// the length announced by the preceding push opcode.
func (vm *Engine) executeData(data Data) error {
	if vm.pushLen == noPendingPush {
		str := fmt.Sprintf("data %x is not preceded by a push opcode",
			[]byte(data))
		return scriptError(ErrUnexpectedData, str)
	}
	if len(data) != vm.pushLen {
		str := fmt.Sprintf("push opcode announced %d bytes, but data "+
			"holds %d", vm.pushLen, len(data))
		return scriptError(ErrPushLengthMismatch, str)
	}

	vm.dstack.PushByteArray(data)
	vm.pushLen = noPendingPush
	return nil
}

// executeOpcode performs execution on the passed opcode.  Opcodes that can not
// be encoded are rejected before their handler is consulted.
func (vm *Engine) executeOpcode(op Opcode) error {
	if _, err := op.Byte(); err != nil {
		return err
	}

	info := op.info()
	return info.opfunc(info, op, vm)
}

// DisasmPC returns the string for the disassembly of the term that will be
// next to execute when Step is called.
func (vm *Engine) DisasmPC() (string, error) {
	if vm.isDone() {
		str := fmt.Sprintf("attempt to disassemble term %d of a script "+
			"with %d terms", vm.scriptOff, len(vm.script))
		return "", scriptError(ErrScriptDone, str)
	}
	return fmt.Sprintf("%04x: %s", vm.scriptOff,
		vm.script[vm.scriptOff]), nil
}

// Step executes the next term and moves the program counter to the one after
// it.  Step returns true once the last term has been executed successfully.
//
// The result of calling Step or any other method is undefined if an error is
// returned.
func (vm *Engine) Step() (done bool, err error) {
	if vm.isDone() {
		str := fmt.Sprintf("attempt to step past the final term %d",
			len(vm.script))
		return true, scriptError(ErrScriptDone, str)
	}

	switch term := vm.script[vm.scriptOff].(type) {
	case Data:
		err = vm.executeData(term)
	case Instruction:
		err = vm.executeOpcode(term.Opcode)
	default:
		str := fmt.Sprintf("unknown script term %T", term)
		err = scriptError(ErrInternal, str)
	}
	if err != nil {
		return true, err
	}

	vm.scriptOff++
	return vm.isDone(), nil
}

// CheckErrorCondition returns nil if the script has finished and its final
// stack satisfies the termination rule.  By default the stack must be empty.
// With ScriptVerifySingleTrue it must instead hold exactly one item that
// evaluates to true.
func (vm *Engine) CheckErrorCondition() error {
	if !vm.isDone() {
		return scriptError(ErrScriptUnfinished,
			"error check when script unfinished")
	}

	if !vm.hasFlag(ScriptVerifySingleTrue) {
		if vm.dstack.Depth() != 0 {
			str := fmt.Sprintf("stack must be empty after execution, "+
				"but contains %d items", vm.dstack.Depth())
			return scriptError(ErrCleanStack, str)
		}
		return nil
	}

	if vm.dstack.Depth() != 1 {
		str := fmt.Sprintf("stack must contain exactly one item after "+
			"execution, but contains %d", vm.dstack.Depth())
		return scriptError(ErrEvalFalse, str)
	}
	v, err := vm.dstack.PeekBool(0)
	if err != nil {
		return err
	}
	if !v {
		log.Tracef("%v", newLogClosure(func() string {
			return fmt.Sprintf("script failed: %v", vm.script)
		}))
		return scriptError(ErrEvalFalse,
			"false stack entry at end of script execution")
	}
	return nil
}

// Execute will execute all terms in the script engine and return either nil
// for successful validation or an error if one occurred.
func (vm *Engine) Execute() error {
	for !vm.isDone() {
		log.Tracef("%v", newLogClosure(func() string {
			dis, err := vm.DisasmPC()
			if err != nil {
				return fmt.Sprintf("stepping (%v)", err)
			}
			return fmt.Sprintf("stepping %v", dis)
		}))

		if _, err := vm.Step(); err != nil {
			return err
		}

		log.Tracef("%v", newLogClosure(func() string {
			if vm.dstack.Depth() == 0 {
				return "Stack: empty"
			}
			return "Stack:\n" + spew.Sdump(vm.GetStack())
		}))
	}

	return vm.CheckErrorCondition()
}

// GetStack returns the contents of the data stack as an array where the last
// item in the array is the top of the stack.
func (vm *Engine) GetStack() [][]byte {
	array := make([][]byte, vm.dstack.Depth())
	for i := range array {
		// PeekByteArray can't fail due to underflow, already checked.
		array[len(array)-i-1], _ = vm.dstack.PeekByteArray(i)
	}
	return array
}

// SetStack sets the contents of the data stack to the contents of the provided
// array where the last item in the array will be the top of the stack.
func (vm *Engine) SetStack(data [][]byte) {
	// This can not error since exactly the current depth is dropped.
	if depth := vm.dstack.Depth(); depth > 0 {
		_ = vm.dstack.DropN(depth)
	}

	for i := range data {
		vm.dstack.PushByteArray(data[i])
	}
}

// NewEngine returns a new script engine for the provided script, initial data
// stack and flags.  The last item of stack is the top of the data stack.  The
// engine works on its own copy of the stack slice; the items themselves are
// treated as immutable and are not copied.
func NewEngine(script Script, stack [][]byte, flags ScriptFlags) (*Engine, error) {
	for i, term := range script {
		if term == nil {
			str := fmt.Sprintf("term %d of the script is nil", i)
			return nil, scriptError(ErrInternal, str)
		}
	}

	vm := Engine{
		script:  script,
		pushLen: noPendingPush,
		flags:   flags,
	}
	vm.SetStack(stack)
	return &vm, nil
}

// Interpret executes script against the initial stack and reports the verdict.
// A script that evaluates to false yields false with a nil error.  A non-nil
// error is only returned when the script can not be judged, most notably when
// it reaches an opcode the engine does not implement.
func Interpret(script Script, stack [][]byte, flags ScriptFlags) (bool, error) {
	vm, err := NewEngine(script, stack, flags)
	if err != nil {
		return false, err
	}

	err = vm.Execute()
	switch {
	case err == nil:
		return true, nil
	case isVerdictError(err):
		log.Debugf("Script evaluated to false: %v", err)
		return false, nil
	}
	return false, err
}
