package main

import (
	"strings"
	"testing"

	"github.com/halprin/glox/interp"
)

func runForTest(t *testing.T, src string) (stdout, stderr string, exitCode int) {
	t.Helper()
	var out, errOut strings.Builder
	exitCode = runSource(src, interp.New(nil, &out), &errOut)
	return out.String(), errOut.String(), exitCode
}

func TestRunSourceScenarios(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		wantStdout string
		wantExit   int
	}{
		{
			name:       "arithmetic",
			src:        `print 1 + 2;`,
			wantStdout: "3\n",
			wantExit:   0,
		},
		{
			name:       "string concatenation",
			src:        `var a = "foo"; var b = "bar"; print a + b;`,
			wantStdout: "foobar\n",
			wantExit:   0,
		},
		{
			name:       "block shadowing",
			src:        `var a = 1; { var a = 2; print a; } print a;`,
			wantStdout: "2\n1\n",
			wantExit:   0,
		},
		{
			name: "closures",
			src: `fun makeCounter() { var i = 0; fun count() { i = i + 1; print i; } return count; }
var c = makeCounter(); c(); c();`,
			wantStdout: "1\n2\n",
			wantExit:   0,
		},
		{
			name: "classes and inheritance",
			src: `class A { hello() { print "A"; } }
class B < A { hello() { super.hello(); print "B"; } }
B().hello();`,
			wantStdout: "A\nB\n",
			wantExit:   0,
		},
		{
			name:       "initializer semantics",
			src:        `class P { init(x) { this.x = x; } } print P(5).x;`,
			wantStdout: "5\n",
			wantExit:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, exitCode := runForTest(t, tt.src)
			if exitCode != tt.wantExit {
				t.Errorf("exit code = %d, want %d (stderr: %s)", exitCode, tt.wantExit, stderr)
			}
			if stdout != tt.wantStdout {
				t.Errorf("stdout = %q, want %q", stdout, tt.wantStdout)
			}
		})
	}
}

func TestRunSourceUndefinedVariableIsRuntimeError(t *testing.T) {
	_, stderr, exitCode := runForTest(t, `print a;`)
	if exitCode != exitRuntimeError {
		t.Errorf("exit code = %d, want %d", exitCode, exitRuntimeError)
	}
	if !strings.Contains(stderr, "Undefined variable 'a'.") {
		t.Errorf("stderr = %q, want it to contain %q", stderr, "Undefined variable 'a'.")
	}
}

func TestRunSourceReturnAtTopLevelIsStaticError(t *testing.T) {
	stdout, stderr, exitCode := runForTest(t, `return 1;`)
	if exitCode != exitStaticError {
		t.Errorf("exit code = %d, want %d", exitCode, exitStaticError)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want no output since evaluation should be skipped", stdout)
	}
	if !strings.Contains(stderr, "Can't return from top-level code.") {
		t.Errorf("stderr = %q, want it to contain the static error message", stderr)
	}
}

func TestRunSourceUnexpectedCharacterIsStaticError(t *testing.T) {
	_, stderr, exitCode := runForTest(t, `@`)
	if exitCode != exitStaticError {
		t.Errorf("exit code = %d, want %d", exitCode, exitStaticError)
	}
	if !strings.Contains(stderr, "Unexpected character.") {
		t.Errorf("stderr = %q, want it to contain %q", stderr, "Unexpected character.")
	}
}
