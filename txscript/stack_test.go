// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"errors"
	"testing"
)

// TestStack tests that all of the stack operations work as expected.
func TestStack(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		before    [][]byte
		operation func(*stack) error
		err       error
		after     [][]byte
	}{
		{
			"noop",
			[][]byte{{1}, {2}, {3}, {4}, {5}},
			func(s *stack) error {
				return nil
			},
			nil,
			[][]byte{{1}, {2}, {3}, {4}, {5}},
		},
		{
			"peek underflow (byte)",
			[][]byte{{1}, {2}, {3}, {4}, {5}},
			func(s *stack) error {
				_, err := s.PeekByteArray(5)
				return err
			},
			scriptError(ErrInvalidStackOperation, ""),
			nil,
		},
		{
			"peek underflow (bool)",
			[][]byte{{1}, {2}, {3}, {4}, {5}},
			func(s *stack) error {
				_, err := s.PeekBool(5)
				return err
			},
			scriptError(ErrInvalidStackOperation, ""),
			nil,
		},
		{
			"pop",
			[][]byte{{1}, {2}, {3}, {4}, {5}},
			func(s *stack) error {
				val, err := s.PopByteArray()
				if err != nil {
					return err
				}
				if !bytes.Equal(val, []byte{5}) {
					return errors.New("not equal")
				}
				return err
			},
			nil,
			[][]byte{{1}, {2}, {3}, {4}},
		},
		{
			"pop everything",
			[][]byte{{1}, {2}, {3}, {4}, {5}},
			func(s *stack) error {
				for i := 0; i < 5; i++ {
					_, err := s.PopByteArray()
					if err != nil {
						return err
					}
				}
				return nil
			},
			nil,
			[][]byte{},
		},
		{
			"pop underflow",
			[][]byte{{1}, {2}, {3}, {4}, {5}},
			func(s *stack) error {
				for i := 0; i < 6; i++ {
					_, err := s.PopByteArray()
					if err != nil {
						return err
					}
				}
				return nil
			},
			scriptError(ErrInvalidStackOperation, ""),
			nil,
		},
		{
			"peek bool negative zero",
			[][]byte{{0x00, 0x80}},
			func(s *stack) error {
				val, err := s.PeekBool(0)
				if err != nil {
					return err
				}
				if val {
					return errors.New("unexpected value")
				}
				return nil
			},
			nil,
			[][]byte{{0x00, 0x80}},
		},
		{
			"peek bool true",
			[][]byte{{0x00, 0x01}},
			func(s *stack) error {
				val, err := s.PeekBool(0)
				if err != nil {
					return err
				}
				if !val {
					return errors.New("unexpected value")
				}
				return nil
			},
			nil,
			[][]byte{{0x00, 0x01}},
		},
		{
			"push bool",
			nil,
			func(s *stack) error {
				s.PushBool(true)
				s.PushBool(false)
				return nil
			},
			nil,
			[][]byte{{1}, {0}},
		},
		{
			"dup",
			[][]byte{{1}, {2}},
			func(s *stack) error {
				return s.DupTop()
			},
			nil,
			[][]byte{{1}, {2}, {2}},
		},
		{
			"dup underflow",
			nil,
			func(s *stack) error {
				return s.DupTop()
			},
			scriptError(ErrInvalidStackOperation, ""),
			nil,
		},
		{
			"dup bottom",
			[][]byte{{1}, {2}, {3}},
			func(s *stack) error {
				return s.DupBottom()
			},
			nil,
			[][]byte{{1}, {2}, {3}, {1}},
		},
		{
			"dup bottom single item",
			[][]byte{{7}},
			func(s *stack) error {
				return s.DupBottom()
			},
			nil,
			[][]byte{{7}, {7}},
		},
		{
			"dup bottom underflow",
			nil,
			func(s *stack) error {
				return s.DupBottom()
			},
			scriptError(ErrInvalidStackOperation, ""),
			nil,
		},
		{
			"drop",
			[][]byte{{1}, {2}, {3}, {4}},
			func(s *stack) error {
				return s.DropN(2)
			},
			nil,
			[][]byte{{1}, {2}},
		},
		{
			"drop zero",
			[][]byte{{1}},
			func(s *stack) error {
				return s.DropN(0)
			},
			scriptError(ErrInvalidStackOperation, ""),
			nil,
		},
		{
			"drop too many",
			[][]byte{{1}},
			func(s *stack) error {
				return s.DropN(2)
			},
			scriptError(ErrInvalidStackOperation, ""),
			nil,
		},
	}

	for _, test := range tests {
		s := stack{}

		for i := range test.before {
			s.PushByteArray(test.before[i])
		}
		err := test.operation(&s)
		if test.err != nil {
			wantCode := test.err.(Error).ErrorCode
			if !IsErrorCode(err, wantCode) {
				t.Errorf("%s: operation return not what expected: "+
					"%v vs %v", test.name, err, wantCode)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", test.name, err)
			continue
		}

		if len(test.after) != s.Depth() {
			t.Errorf("%s: stack depth doesn't match expected: %v "+
				"vs %v", test.name, len(test.after), s.Depth())
		}

		for i := range test.after {
			val, err := s.PeekByteArray(s.Depth() - i - 1)
			if err != nil {
				t.Errorf("%s: can't peek %dth stack entry: %v",
					test.name, i, err)
				break
			}

			if !bytes.Equal(val, test.after[i]) {
				t.Errorf("%s: %dth stack entry doesn't match "+
					"expected: %v vs %v", test.name, i, val,
					test.after[i])
				break
			}
		}
	}
}
