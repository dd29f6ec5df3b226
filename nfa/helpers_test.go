package nfa

import "testing"

// mustCompile compiles a pattern with default flags or fails the test.
func mustCompile(t *testing.T, pattern string) *NFA {
	t.Helper()
	n, err := NewDefaultCompiler().Compile(pattern)
	if err != nil {
		t.Fatalf("failed to compile pattern %q: %v", pattern, err)
	}
	return n
}
