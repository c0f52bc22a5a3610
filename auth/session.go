// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package auth

// Session tracks the account logged in at the console. The zero value is logged out.
type Session struct {
	accountNumber int64
	authenticated bool
}

// Begin marks accountNumber as logged in
func (s *Session) Begin(accountNumber int64) {
	s.accountNumber = accountNumber
	s.authenticated = true
}

// End logs the current account out
func (s *Session) End() {
	s.accountNumber = 0
	s.authenticated = false
}

// Current returns the logged in account number
func (s *Session) Current() (int64, bool) {
	return s.accountNumber, s.authenticated
}

// IsAuthenticated reports whether an account is logged in
func (s *Session) IsAuthenticated() bool {
	return s.authenticated
}
